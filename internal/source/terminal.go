package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/eiannone/keyboard"

	"autohan/internal/engine"
	"autohan/internal/types"
)

// ErrInterrupted is returned by Run when the user presses Ctrl+C.
var ErrInterrupted = errors.New("interrupted")

// Poster accepts engine events. *engine.Engine satisfies it.
type Poster interface {
	Post(ev engine.Event) bool
}

// Terminal reads raw keys from the controlling terminal.
type Terminal struct {
	hotkeys Hotkeys
	log     *slog.Logger
	now     func() time.Time
}

func NewTerminal(hotkeys Hotkeys, log *slog.Logger) *Terminal {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Terminal{hotkeys: hotkeys, log: log, now: time.Now}
}

// Run feeds dst until ctx is cancelled, the terminal fails or Ctrl+C is
// pressed.
func (t *Terminal) Run(ctx context.Context, dst Poster) error {
	keys, err := keyboard.GetKeys(32)
	if err != nil {
		return fmt.Errorf("open keyboard: %w", err)
	}
	defer keyboard.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-keys:
			if !ok {
				return nil
			}
			if ev.Err != nil {
				return fmt.Errorf("read keyboard: %w", ev.Err)
			}
			if ev.Rune == 0 && ev.Key == keyboard.KeyCtrlC {
				return ErrInterrupted
			}
			out, ok := t.Translate(ev)
			if !ok {
				continue
			}
			if !dst.Post(out) {
				return nil
			}
		}
	}
}

// Translate maps one terminal key to an engine event.
func (t *Terminal) Translate(ev keyboard.KeyEvent) (engine.Event, bool) {
	now := t.now()
	if ev.Rune != 0 {
		return engine.KeyPressed{Key: types.CharEvent(ev.Rune, now)}, true
	}
	switch ev.Key {
	case t.hotkeys.Convert:
		return engine.CommandConvert, true
	case t.hotkeys.Undo:
		return engine.CommandUndo, true
	case t.hotkeys.Toggle:
		return engine.CommandToggleMode, true
	case t.hotkeys.Cancel:
		return engine.CommandCancel, true
	}
	switch ev.Key {
	case keyboard.KeySpace:
		return engine.KeyPressed{Key: types.CharEvent(' ', now)}, true
	case keyboard.KeyEnter:
		return engine.KeyPressed{Key: types.CharEvent('\n', now)}, true
	case keyboard.KeyTab:
		return engine.KeyPressed{Key: types.CharEvent('\t', now)}, true
	case keyboard.KeyBackspace, keyboard.KeyBackspace2:
		return engine.KeyPressed{Key: types.BackspaceEvent(now)}, true
	case keyboard.KeyArrowUp, keyboard.KeyArrowDown, keyboard.KeyArrowLeft, keyboard.KeyArrowRight,
		keyboard.KeyHome, keyboard.KeyEnd, keyboard.KeyPgup, keyboard.KeyPgdn,
		keyboard.KeyDelete, keyboard.KeyInsert:
		return engine.KeyPressed{Key: types.NavigationEvent(now)}, true
	}
	t.log.Debug("ignored key", "key", uint16(ev.Key))
	return nil, false
}
