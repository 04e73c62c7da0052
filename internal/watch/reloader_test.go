package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autohan/internal/exception"
)

func TestReloaderPublishesNewFilter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.yaml")
	require.NoError(t, os.WriteFile(path, []byte("words:\n  - hello\n"), 0o600))

	var (
		mu     sync.Mutex
		latest *exception.Filter
	)
	r := NewReloader(path, exception.DefaultOptions(), func(f *exception.Filter) {
		mu.Lock()
		latest = f
		mu.Unlock()
	}, nil)
	r.delay = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	current := func() *exception.Filter {
		mu.Lock()
		defer mu.Unlock()
		return latest
	}

	// the watch is registered asynchronously, so keep writing until seen
	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("words:\n  - hello\n  - rksk\n"), 0o600)
		f := current()
		return f != nil && f.Len() == 2
	}, 5*time.Second, 50*time.Millisecond)

	verdict, _ := current().Check("rksk")
	assert.Equal(t, exception.Reject, verdict)

	// invalid YAML keeps the previous filter
	require.NoError(t, os.WriteFile(path, []byte("words: [unterminated\n"), 0o600))
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 2, current().Len())

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("reloader did not stop")
	}
}

func TestReloaderIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.yaml")
	require.NoError(t, os.WriteFile(path, []byte("words: []\n"), 0o600))

	called := make(chan struct{}, 1)
	r := NewReloader(path, exception.DefaultOptions(), func(*exception.Filter) {
		select {
		case called <- struct{}{}:
		default:
		}
	}, nil)
	r.delay = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = r.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0o600))
	select {
	case <-called:
		t.Fatal("reload triggered by unrelated file")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestRunFailsForMissingDirectory(t *testing.T) {
	r := NewReloader(filepath.Join(t.TempDir(), "missing", "words.yaml"), exception.DefaultOptions(), func(*exception.Filter) {}, nil)
	assert.Error(t, r.Run(context.Background()))
}
