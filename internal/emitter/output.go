package emitter

import "autohan/internal/types"

// Sink performs edits in the focused application. The engine calls it from
// its owner goroutine only, so implementations need no locking of their own.
type Sink interface {
	// Forward delivers a key the engine let through.
	Forward(ev types.KeyEvent) error
	// Replace deletes count characters before the caret and inserts text.
	Replace(count int, text string) error
	// Restore undoes a replacement: it deletes count characters and
	// re-inserts the original text.
	Restore(count int, original string) error
}

// ModeSwitcher is implemented by sinks that can change the host input mode.
type ModeSwitcher interface {
	SwitchMode(mode types.InputMode) error
}

var (
	_ Sink         = (*Terminal)(nil)
	_ Sink         = (*Clipboard)(nil)
	_ ModeSwitcher = (*Terminal)(nil)
	_ ModeSwitcher = (*Clipboard)(nil)
)
