package source

import (
	"errors"
	"fmt"
	"strings"

	"github.com/eiannone/keyboard"

	"autohan/internal/config"
)

type Hotkeys struct {
	Convert keyboard.Key
	Undo    keyboard.Key
	Toggle  keyboard.Key
	Cancel  keyboard.Key
}

var namedKeys = map[string]keyboard.Key{
	"ctrl+space": keyboard.KeyCtrlSpace,
	"esc":        keyboard.KeyEsc,
	"escape":     keyboard.KeyEsc,
	"f1":         keyboard.KeyF1,
	"f2":         keyboard.KeyF2,
	"f3":         keyboard.KeyF3,
	"f4":         keyboard.KeyF4,
	"f5":         keyboard.KeyF5,
	"f6":         keyboard.KeyF6,
	"f7":         keyboard.KeyF7,
	"f8":         keyboard.KeyF8,
	"f9":         keyboard.KeyF9,
	"f10":        keyboard.KeyF10,
	"f11":        keyboard.KeyF11,
	"f12":        keyboard.KeyF12,
}

// reservedKeys already mean something to the line being edited.
var reservedKeys = map[keyboard.Key]string{
	keyboard.KeyCtrlC: "ctrl+c",
	keyboard.KeyCtrlH: "ctrl+h",
	keyboard.KeyCtrlI: "ctrl+i",
	keyboard.KeyCtrlM: "ctrl+m",
}

// ParseHotkey accepts "ctrl+space", "ctrl+a" through "ctrl+z", "esc" and
// "f1" through "f12".
func ParseHotkey(name string) (keyboard.Key, error) {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", ""))
	normalized = strings.ReplaceAll(normalized, "control+", "ctrl+")
	if normalized == "" {
		return 0, errors.New("empty hotkey")
	}
	key, ok := namedKeys[normalized]
	if !ok {
		letter, found := strings.CutPrefix(normalized, "ctrl+")
		if !found || len(letter) != 1 || letter[0] < 'a' || letter[0] > 'z' {
			return 0, fmt.Errorf("unknown hotkey '%s'", name)
		}
		key = keyboard.KeyCtrlA + keyboard.Key(letter[0]-'a')
	}
	if reserved, ok := reservedKeys[key]; ok {
		return 0, fmt.Errorf("hotkey '%s' is reserved (%s)", name, reserved)
	}
	return key, nil
}

func ParseHotkeys(cfg config.HotkeyConfig) (Hotkeys, error) {
	var hk Hotkeys
	seen := make(map[keyboard.Key]string, 4)
	for _, item := range []struct {
		action string
		value  string
		dst    *keyboard.Key
	}{
		{"convert", cfg.Convert, &hk.Convert},
		{"undo", cfg.Undo, &hk.Undo},
		{"toggle", cfg.Toggle, &hk.Toggle},
		{"cancel", cfg.Cancel, &hk.Cancel},
	} {
		key, err := ParseHotkey(item.value)
		if err != nil {
			return Hotkeys{}, fmt.Errorf("hotkeys.%s: %w", item.action, err)
		}
		if other, dup := seen[key]; dup {
			return Hotkeys{}, fmt.Errorf("hotkeys.%s: '%s' is already bound to %s", item.action, item.value, other)
		}
		seen[key] = item.action
		*item.dst = key
	}
	return hk, nil
}
