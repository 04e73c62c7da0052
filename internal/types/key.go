package types

import (
	"time"
	"unicode"
)

type KeyKind int

const (
	KindCharacter KeyKind = iota
	KindBackspace
	// KindSeparator covers whitespace, punctuation and digits.
	KindSeparator
	KindModifier
	// KindNavigation covers keys that move the caret or leave the field.
	KindNavigation
)

func (k KeyKind) String() string {
	switch k {
	case KindCharacter:
		return "character"
	case KindBackspace:
		return "backspace"
	case KindSeparator:
		return "separator"
	case KindModifier:
		return "modifier"
	case KindNavigation:
		return "navigation"
	default:
		return "unknown"
	}
}

// KeyEvent is one key-down delivered by the keystroke source. Key holds the
// lower-case label of the physical key for letters and the produced rune
// otherwise.
type KeyEvent struct {
	Key   rune
	Shift bool
	Kind  KeyKind
	Time  time.Time
}

// Char returns the rune the key types into the focused application.
func (k KeyEvent) Char() rune {
	if k.Shift && unicode.IsLower(k.Key) {
		return unicode.ToUpper(k.Key)
	}
	return k.Key
}

// CharEvent classifies a typed rune the way the engine expects.
func CharEvent(ch rune, at time.Time) KeyEvent {
	switch {
	case unicode.IsLetter(ch):
		if unicode.IsUpper(ch) {
			return KeyEvent{Key: unicode.ToLower(ch), Shift: true, Kind: KindCharacter, Time: at}
		}
		return KeyEvent{Key: ch, Kind: KindCharacter, Time: at}
	case unicode.IsDigit(ch), unicode.IsSpace(ch), unicode.IsPunct(ch), unicode.IsSymbol(ch):
		return KeyEvent{Key: ch, Kind: KindSeparator, Time: at}
	default:
		return KeyEvent{Key: ch, Kind: KindModifier, Time: at}
	}
}

func BackspaceEvent(at time.Time) KeyEvent {
	return KeyEvent{Key: '\b', Kind: KindBackspace, Time: at}
}

func NavigationEvent(at time.Time) KeyEvent {
	return KeyEvent{Kind: KindNavigation, Time: at}
}
