package types

import (
	"fmt"
	"strings"
)

// InputMode is the keyboard mode reported by the host. The engine only
// converts while the host types Latin.
type InputMode int

const (
	ModeLatin InputMode = iota
	ModeHangul
)

func (m InputMode) String() string {
	switch m {
	case ModeHangul:
		return "hangul"
	case ModeLatin:
		return "latin"
	default:
		return "unknown"
	}
}

func (m InputMode) Toggle() InputMode {
	if m == ModeHangul {
		return ModeLatin
	}
	return ModeHangul
}

func ParseMode(value string) (InputMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "latin", "english", "en":
		return ModeLatin, nil
	case "hangul", "korean", "ko":
		return ModeHangul, nil
	default:
		return ModeLatin, fmt.Errorf("unknown input mode: %s", value)
	}
}
