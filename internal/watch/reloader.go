package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"autohan/internal/exception"
)

const DefaultDelay = 100 * time.Millisecond

// Reloader rebuilds the exception filter whenever its word list file
// changes. Bad edits are logged and the previous filter stays in use.
type Reloader struct {
	path     string
	opts     exception.Options
	delay    time.Duration
	onReload func(*exception.Filter)
	log      *slog.Logger
}

func NewReloader(path string, opts exception.Options, onReload func(*exception.Filter), log *slog.Logger) *Reloader {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Reloader{path: filepath.Clean(path), opts: opts, delay: DefaultDelay, onReload: onReload, log: log}
}

// Run watches until ctx is cancelled.
func (r *Reloader) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace the file, so watch its directory.
	if err := watcher.Add(filepath.Dir(r.path)); err != nil {
		return fmt.Errorf("watch directory: %w", err)
	}
	r.log.Info("watching exception list", "path", r.path)

	var (
		debounce *time.Timer
		fire     <-chan time.Time
	)
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != r.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if debounce == nil {
				debounce = time.NewTimer(r.delay)
			} else {
				debounce.Reset(r.delay)
			}
			fire = debounce.C
		case <-fire:
			fire = nil
			r.reload()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.log.Warn("exception watcher error", "error", err)
		}
	}
}

func (r *Reloader) reload() {
	words, err := exception.LoadFile(r.path)
	if err != nil {
		r.log.Warn("exception list reload failed, keeping previous list", "path", r.path, "error", err)
		return
	}
	r.onReload(exception.New(words, r.opts))
}
