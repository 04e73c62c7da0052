package source

import (
	"testing"
	"time"

	"github.com/eiannone/keyboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autohan/internal/config"
	"autohan/internal/engine"
	"autohan/internal/types"
)

func TestParseHotkey(t *testing.T) {
	cases := map[string]keyboard.Key{
		"ctrl+space":  keyboard.KeyCtrlSpace,
		"Ctrl+Z":      keyboard.KeyCtrlZ,
		"control + t": keyboard.KeyCtrlT,
		"esc":         keyboard.KeyEsc,
		"F5":          keyboard.KeyF5,
	}
	for name, want := range cases {
		got, err := ParseHotkey(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	for _, bad := range []string{"", "alt+x", "ctrl+1", "ctrl+c", "ctrl+m", "hyper"} {
		_, err := ParseHotkey(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseHotkeysRejectsDuplicates(t *testing.T) {
	hk, err := ParseHotkeys(config.Default().Hotkeys)
	require.NoError(t, err)
	assert.Equal(t, keyboard.KeyCtrlSpace, hk.Convert)
	assert.Equal(t, keyboard.KeyCtrlZ, hk.Undo)

	cfg := config.Default().Hotkeys
	cfg.Toggle = "ctrl+z"
	_, err = ParseHotkeys(cfg)
	assert.ErrorContains(t, err, "already bound to undo")
}

func newTestTerminal(t *testing.T) *Terminal {
	t.Helper()
	hk, err := ParseHotkeys(config.Default().Hotkeys)
	require.NoError(t, err)
	term := NewTerminal(hk, nil)
	term.now = func() time.Time { return time.Unix(42, 0) }
	return term
}

func TestTranslateKeys(t *testing.T) {
	term := newTestTerminal(t)

	ev, ok := term.Translate(keyboard.KeyEvent{Rune: 'R'})
	require.True(t, ok)
	key := ev.(engine.KeyPressed).Key
	assert.Equal(t, 'r', key.Key)
	assert.True(t, key.Shift)
	assert.Equal(t, types.KindCharacter, key.Kind)
	assert.Equal(t, time.Unix(42, 0), key.Time)

	cases := []struct {
		key  keyboard.Key
		kind types.KeyKind
		char rune
	}{
		{keyboard.KeySpace, types.KindSeparator, ' '},
		{keyboard.KeyEnter, types.KindSeparator, '\n'},
		{keyboard.KeyTab, types.KindSeparator, '\t'},
		{keyboard.KeyBackspace2, types.KindBackspace, '\b'},
		{keyboard.KeyArrowLeft, types.KindNavigation, 0},
		{keyboard.KeyHome, types.KindNavigation, 0},
	}
	for _, tc := range cases {
		ev, ok := term.Translate(keyboard.KeyEvent{Key: tc.key})
		require.True(t, ok)
		key := ev.(engine.KeyPressed).Key
		assert.Equal(t, tc.kind, key.Kind)
		assert.Equal(t, tc.char, key.Key)
	}
}

func TestTranslateHotkeys(t *testing.T) {
	term := newTestTerminal(t)
	cases := map[keyboard.Key]engine.Command{
		keyboard.KeyCtrlSpace: engine.CommandConvert,
		keyboard.KeyCtrlZ:     engine.CommandUndo,
		keyboard.KeyCtrlT:     engine.CommandToggleMode,
		keyboard.KeyEsc:       engine.CommandCancel,
	}
	for key, want := range cases {
		ev, ok := term.Translate(keyboard.KeyEvent{Key: key})
		require.True(t, ok)
		assert.Equal(t, want, ev)
	}

	_, ok := term.Translate(keyboard.KeyEvent{Key: keyboard.KeyCtrlB})
	assert.False(t, ok)
}
