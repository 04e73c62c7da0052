package emitter

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"

	"autohan/internal/types"
)

// Clipboard mirrors every inserted replacement onto the system clipboard so
// hosts that paste instead of typing can pick it up. Edits go to next.
type Clipboard struct {
	next  Sink
	write func(string) error
}

func NewClipboard(next Sink) *Clipboard {
	return &Clipboard{next: next, write: clipboard.WriteAll}
}

// Available reports whether the platform has a clipboard utility.
func Available() bool { return !clipboard.Unsupported }

func (c *Clipboard) Forward(ev types.KeyEvent) error {
	return c.next.Forward(ev)
}

func (c *Clipboard) Replace(count int, text string) error {
	if err := c.next.Replace(count, text); err != nil {
		return err
	}
	return c.copy(text)
}

func (c *Clipboard) Restore(count int, original string) error {
	if err := c.next.Restore(count, original); err != nil {
		return err
	}
	return c.copy(original)
}

func (c *Clipboard) SwitchMode(mode types.InputMode) error {
	switcher, ok := c.next.(ModeSwitcher)
	if !ok {
		return errors.New("sink cannot switch input mode")
	}
	return switcher.SwitchMode(mode)
}

func (c *Clipboard) copy(text string) error {
	if err := c.write(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}
