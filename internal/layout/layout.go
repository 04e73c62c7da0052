package layout

import (
	"sort"
	"strings"
	"unicode"

	"autohan/internal/hangul"
)

// LayoutEntry holds the jamo produced by one physical key. Shifted is zero
// when Shift does not change the jamo.
type LayoutEntry struct {
	Normal  rune
	Shifted rune
}

type Layout struct {
	name    string
	mapping map[rune]LayoutEntry
	reverse map[rune]string
}

func NewLayout(name string) *Layout {
	return &Layout{
		name:    name,
		mapping: make(map[rune]LayoutEntry),
		reverse: make(map[rune]string),
	}
}

func (l *Layout) Name() string { return l.name }

// Translate maps a key label to its jamo. Upper-case labels imply Shift.
func (l *Layout) Translate(key rune, shift bool) (rune, bool) {
	if l == nil {
		return 0, false
	}
	if unicode.IsUpper(key) {
		key = unicode.ToLower(key)
		shift = true
	}
	entry, ok := l.mapping[key]
	if !ok {
		return 0, false
	}
	if shift && entry.Shifted != 0 {
		return entry.Shifted, true
	}
	return entry.Normal, entry.Normal != 0
}

// KeysFor returns the keystrokes that type jamo, splitting compound vowels and
// compound finals into their two halves.
func (l *Layout) KeysFor(jamo rune) (string, bool) {
	if keys, ok := l.reverse[jamo]; ok {
		return keys, true
	}
	var pair [2]rune
	var ok bool
	if pair, ok = hangul.SplitVowel(jamo); !ok {
		if pair, ok = hangul.SplitFinal(jamo); !ok {
			return "", false
		}
	}
	first, ok := l.KeysFor(pair[0])
	if !ok {
		return "", false
	}
	second, ok := l.KeysFor(pair[1])
	if !ok {
		return "", false
	}
	return first + second, true
}

// Keystrokes rewrites Hangul text as the Latin keys that would type it.
// Runes that are neither syllables nor mapped jamo are copied through.
func (l *Layout) Keystrokes(text string) string {
	var sb strings.Builder
	for _, ch := range text {
		if lead, vowel, tail, ok := hangul.DecomposeSyllable(ch); ok {
			for _, part := range []rune{lead, vowel, tail} {
				if part == 0 {
					continue
				}
				keys, _ := l.KeysFor(part)
				sb.WriteString(keys)
			}
			continue
		}
		if keys, ok := l.KeysFor(ch); ok {
			sb.WriteString(keys)
			continue
		}
		sb.WriteRune(ch)
	}
	return sb.String()
}

func addEntry(l *Layout, key rune, normal rune, shifted rune) {
	l.mapping[key] = LayoutEntry{Normal: normal, Shifted: shifted}
	if _, exists := l.reverse[normal]; !exists {
		l.reverse[normal] = string(key)
	}
	if shifted != 0 {
		l.reverse[shifted] = string(unicode.ToUpper(key))
	}
}

func buildDubeolsik() *Layout {
	layout := NewLayout("dubeolsik")
	addEntry(layout, 'q', 'ㅂ', 'ㅃ')
	addEntry(layout, 'w', 'ㅈ', 'ㅉ')
	addEntry(layout, 'e', 'ㄷ', 'ㄸ')
	addEntry(layout, 'r', 'ㄱ', 'ㄲ')
	addEntry(layout, 't', 'ㅅ', 'ㅆ')
	addEntry(layout, 'y', 'ㅛ', 0)
	addEntry(layout, 'u', 'ㅕ', 0)
	addEntry(layout, 'i', 'ㅑ', 0)
	addEntry(layout, 'o', 'ㅐ', 'ㅒ')
	addEntry(layout, 'p', 'ㅔ', 'ㅖ')
	addEntry(layout, 'a', 'ㅁ', 0)
	addEntry(layout, 's', 'ㄴ', 0)
	addEntry(layout, 'd', 'ㅇ', 0)
	addEntry(layout, 'f', 'ㄹ', 0)
	addEntry(layout, 'g', 'ㅎ', 0)
	addEntry(layout, 'h', 'ㅗ', 0)
	addEntry(layout, 'j', 'ㅓ', 0)
	addEntry(layout, 'k', 'ㅏ', 0)
	addEntry(layout, 'l', 'ㅣ', 0)
	addEntry(layout, 'z', 'ㅋ', 0)
	addEntry(layout, 'x', 'ㅌ', 0)
	addEntry(layout, 'c', 'ㅊ', 0)
	addEntry(layout, 'v', 'ㅍ', 0)
	addEntry(layout, 'b', 'ㅠ', 0)
	addEntry(layout, 'n', 'ㅜ', 0)
	addEntry(layout, 'm', 'ㅡ', 0)
	return layout
}

var dubeolsik = buildDubeolsik()

// Dubeolsik returns the shared 2-set table. It is never mutated after init.
func Dubeolsik() *Layout { return dubeolsik }

// ShiftKeys lists the keys whose shifted form types a different jamo.
func (l *Layout) ShiftKeys() []rune {
	keys := make([]rune, 0, 8)
	for key, entry := range l.mapping {
		if entry.Shifted != 0 {
			keys = append(keys, unicode.ToUpper(key))
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
