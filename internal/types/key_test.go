package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCharEventClassification(t *testing.T) {
	now := time.Now()
	cases := []struct {
		in    rune
		kind  KeyKind
		key   rune
		shift bool
	}{
		{'g', KindCharacter, 'g', false},
		{'R', KindCharacter, 'r', true},
		{' ', KindSeparator, ' ', false},
		{'.', KindSeparator, '.', false},
		{'7', KindSeparator, '7', false},
		{'+', KindSeparator, '+', false},
		{'\x00', KindModifier, '\x00', false},
	}
	for _, tc := range cases {
		ev := CharEvent(tc.in, now)
		assert.Equal(t, tc.kind, ev.Kind, "kind of %q", tc.in)
		assert.Equal(t, tc.key, ev.Key, "key of %q", tc.in)
		assert.Equal(t, tc.shift, ev.Shift, "shift of %q", tc.in)
		if tc.kind != KindModifier {
			assert.Equal(t, tc.in, ev.Char(), "char of %q", tc.in)
		}
	}
}

func TestModeToggleAndParse(t *testing.T) {
	assert.Equal(t, ModeHangul, ModeLatin.Toggle())
	assert.Equal(t, ModeLatin, ModeHangul.Toggle())

	mode, err := ParseMode(" Korean ")
	assert.NoError(t, err)
	assert.Equal(t, ModeHangul, mode)

	_, err = ParseMode("kana")
	assert.Error(t, err)
}
