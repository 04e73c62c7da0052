package hangul

import "strings"

const (
	syllableBase = 0xAC00
	syllableLast = 0xD7A3
	jungCount    = 21
	jongCount    = 28
)

// Role is the structural slot a jamo takes inside a syllable block.
type Role int

const (
	RoleUnassigned Role = iota
	RoleLeading
	RoleVowel
	RoleTrailing
	// RolePending marks a trailing consonant at the end of an unfinished run.
	RolePending
)

func (r Role) String() string {
	switch r {
	case RoleLeading:
		return "leading"
	case RoleVowel:
		return "vowel"
	case RoleTrailing:
		return "trailing"
	case RolePending:
		return "pending"
	default:
		return "unassigned"
	}
}

type JamoUnit struct {
	Jamo rune
	Role Role
}

// SyllableBlock is a leading/vowel/trailing triple. Zero means the slot is empty.
type SyllableBlock struct {
	Leading  rune
	Vowel    rune
	Trailing rune
	Pending  bool
}

var (
	choList  = []rune{'ㄱ', 'ㄲ', 'ㄴ', 'ㄷ', 'ㄸ', 'ㄹ', 'ㅁ', 'ㅂ', 'ㅃ', 'ㅅ', 'ㅆ', 'ㅇ', 'ㅈ', 'ㅉ', 'ㅊ', 'ㅋ', 'ㅌ', 'ㅍ', 'ㅎ'}
	jungList = []rune{'ㅏ', 'ㅐ', 'ㅑ', 'ㅒ', 'ㅓ', 'ㅔ', 'ㅕ', 'ㅖ', 'ㅗ', 'ㅘ', 'ㅙ', 'ㅚ', 'ㅛ', 'ㅜ', 'ㅝ', 'ㅞ', 'ㅟ', 'ㅠ', 'ㅡ', 'ㅢ', 'ㅣ'}
	jongList = []rune{0, 'ㄱ', 'ㄲ', 'ㄳ', 'ㄴ', 'ㄵ', 'ㄶ', 'ㄷ', 'ㄹ', 'ㄺ', 'ㄻ', 'ㄼ', 'ㄽ', 'ㄾ', 'ㄿ', 'ㅀ', 'ㅁ', 'ㅂ', 'ㅄ', 'ㅅ', 'ㅆ', 'ㅇ', 'ㅈ', 'ㅊ', 'ㅋ', 'ㅌ', 'ㅍ', 'ㅎ'}
)

var (
	doubleMedial = map[[2]rune]rune{
		{'ㅗ', 'ㅏ'}: 'ㅘ',
		{'ㅗ', 'ㅐ'}: 'ㅙ',
		{'ㅗ', 'ㅣ'}: 'ㅚ',
		{'ㅜ', 'ㅓ'}: 'ㅝ',
		{'ㅜ', 'ㅔ'}: 'ㅞ',
		{'ㅜ', 'ㅣ'}: 'ㅟ',
		{'ㅡ', 'ㅣ'}: 'ㅢ',
	}
	doubleFinal = map[[2]rune]rune{
		{'ㄱ', 'ㅅ'}: 'ㄳ',
		{'ㄴ', 'ㅈ'}: 'ㄵ',
		{'ㄴ', 'ㅎ'}: 'ㄶ',
		{'ㄹ', 'ㄱ'}: 'ㄺ',
		{'ㄹ', 'ㅁ'}: 'ㄻ',
		{'ㄹ', 'ㅂ'}: 'ㄼ',
		{'ㄹ', 'ㅅ'}: 'ㄽ',
		{'ㄹ', 'ㅌ'}: 'ㄾ',
		{'ㄹ', 'ㅍ'}: 'ㄿ',
		{'ㄹ', 'ㅎ'}: 'ㅀ',
		{'ㅂ', 'ㅅ'}: 'ㅄ',
	}
)

var (
	medialDecompose = invertDouble(doubleMedial)
	finalDecompose  = invertDouble(doubleFinal)
)

var (
	choseongIndex  = buildIndex(choList)
	jungseongIndex = buildIndex(jungList)
	jongseongIndex = buildIndex(jongList)
)

var (
	consonantSet = buildSet(append(append([]rune{}, choList...), filterZero(jongList)...))
	vowelSet     = buildSet(jungList)
)

func invertDouble(src map[[2]rune]rune) map[rune][2]rune {
	dst := make(map[rune][2]rune, len(src))
	for pair, value := range src {
		dst[value] = pair
	}
	return dst
}

func buildIndex(list []rune) map[rune]int {
	idx := make(map[rune]int, len(list))
	for i, ch := range list {
		idx[ch] = i
	}
	return idx
}

func buildSet(list []rune) map[rune]struct{} {
	set := make(map[rune]struct{}, len(list))
	for _, ch := range list {
		set[ch] = struct{}{}
	}
	return set
}

func filterZero(list []rune) []rune {
	out := make([]rune, 0, len(list))
	for _, ch := range list {
		if ch != 0 {
			out = append(out, ch)
		}
	}
	return out
}

func IsConsonant(ch rune) bool {
	_, ok := consonantSet[ch]
	return ok
}

func IsVowel(ch rune) bool {
	_, ok := vowelSet[ch]
	return ok
}

// CanTrail reports whether ch may close a syllable as its trailing consonant.
func CanTrail(ch rune) bool {
	if ch == 0 {
		return false
	}
	_, ok := jongseongIndex[ch]
	return ok
}

func CombineVowel(first, second rune) (rune, bool) {
	ch, ok := doubleMedial[[2]rune{first, second}]
	return ch, ok
}

func CombineFinal(first, second rune) (rune, bool) {
	ch, ok := doubleFinal[[2]rune{first, second}]
	return ch, ok
}

func SplitVowel(ch rune) ([2]rune, bool) {
	pair, ok := medialDecompose[ch]
	return pair, ok
}

func SplitFinal(ch rune) ([2]rune, bool) {
	pair, ok := finalDecompose[ch]
	return pair, ok
}

func IsSyllable(ch rune) bool {
	return ch >= syllableBase && ch <= syllableLast
}

// ComposeSyllable maps a component triple to its precomposed code point.
// trailing may be zero.
func ComposeSyllable(leading, vowel, trailing rune) (rune, bool) {
	l, ok := choseongIndex[leading]
	if !ok {
		return 0, false
	}
	v, ok := jungseongIndex[vowel]
	if !ok {
		return 0, false
	}
	t, ok := jongseongIndex[trailing]
	if !ok {
		return 0, false
	}
	return rune(syllableBase + (l*jungCount+v)*jongCount + t), true
}

func DecomposeSyllable(ch rune) (leading, vowel, trailing rune, ok bool) {
	l, v, t, ok := SyllableIndices(ch)
	if !ok {
		return 0, 0, 0, false
	}
	return choList[l], jungList[v], jongList[t], true
}

// SyllableIndices returns the choseong, jungseong and jongseong indices of ch.
func SyllableIndices(ch rune) (int, int, int, bool) {
	if !IsSyllable(ch) {
		return 0, 0, 0, false
	}
	offset := int(ch - syllableBase)
	return offset / (jungCount * jongCount), (offset % (jungCount * jongCount)) / jongCount, offset % jongCount, true
}

// Tokenize folds compound vowels and assigns each jamo its role. A consonant
// directly before a vowel always leads the next syllable. When final is false
// a trailing consonant at the very end is tagged RolePending.
func Tokenize(jamo []rune, final bool) []JamoUnit {
	merged := mergeVowels(jamo)
	units := make([]JamoUnit, 0, len(merged))
	open := false
	for i := 0; i < len(merged); i++ {
		ch := merged[i]
		if IsVowel(ch) {
			open = len(units) > 0 && units[len(units)-1].Role == RoleLeading
			units = append(units, JamoUnit{Jamo: ch, Role: RoleVowel})
			continue
		}
		if !IsConsonant(ch) {
			continue
		}
		if !open || !CanTrail(ch) {
			units = append(units, JamoUnit{Jamo: ch, Role: RoleLeading})
			open = false
			continue
		}
		open = false
		if i+1 >= len(merged) {
			units = append(units, JamoUnit{Jamo: ch, Role: tailRole(final)})
			continue
		}
		next := merged[i+1]
		if IsVowel(next) {
			units = append(units, JamoUnit{Jamo: ch, Role: RoleLeading})
			continue
		}
		if compound, ok := CombineFinal(ch, next); ok {
			if i+2 >= len(merged) {
				units = append(units, JamoUnit{Jamo: compound, Role: tailRole(final)})
				i++
				continue
			}
			if !IsVowel(merged[i+2]) {
				units = append(units, JamoUnit{Jamo: compound, Role: RoleTrailing})
				i++
				continue
			}
		}
		units = append(units, JamoUnit{Jamo: ch, Role: RoleTrailing})
	}
	return units
}

func tailRole(final bool) Role {
	if final {
		return RoleTrailing
	}
	return RolePending
}

func mergeVowels(jamo []rune) []rune {
	out := make([]rune, 0, len(jamo))
	for _, ch := range jamo {
		if n := len(out); n > 0 && IsVowel(ch) {
			if combined, ok := CombineVowel(out[n-1], ch); ok {
				out[n-1] = combined
				continue
			}
		}
		out = append(out, ch)
	}
	return out
}

// Blocks groups role-tagged units into syllable blocks. A vowel without a
// preceding leading consonant opens an incomplete block of its own.
func Blocks(units []JamoUnit) []SyllableBlock {
	blocks := make([]SyllableBlock, 0, len(units))
	for _, unit := range units {
		n := len(blocks)
		switch unit.Role {
		case RoleLeading:
			blocks = append(blocks, SyllableBlock{Leading: unit.Jamo})
		case RoleVowel:
			if n > 0 && blocks[n-1].Leading != 0 && blocks[n-1].Vowel == 0 {
				blocks[n-1].Vowel = unit.Jamo
				continue
			}
			blocks = append(blocks, SyllableBlock{Vowel: unit.Jamo})
		case RoleTrailing, RolePending:
			if n > 0 && blocks[n-1].Vowel != 0 && blocks[n-1].Trailing == 0 {
				blocks[n-1].Trailing = unit.Jamo
				blocks[n-1].Pending = unit.Role == RolePending
				continue
			}
			blocks = append(blocks, SyllableBlock{Leading: unit.Jamo})
		}
	}
	return blocks
}

func Compose(jamo []rune, final bool) []SyllableBlock {
	return Blocks(Tokenize(jamo, final))
}

func (b SyllableBlock) Rune() (rune, bool) {
	if b.Leading == 0 || b.Vowel == 0 {
		return 0, false
	}
	return ComposeSyllable(b.Leading, b.Vowel, b.Trailing)
}

func (b SyllableBlock) Complete() bool {
	_, ok := b.Rune()
	return ok
}

// String renders a complete block as its syllable and an incomplete one as
// its bare jamo.
func (b SyllableBlock) String() string {
	if ch, ok := b.Rune(); ok {
		return string(ch)
	}
	var sb strings.Builder
	for _, ch := range []rune{b.Leading, b.Vowel, b.Trailing} {
		if ch != 0 {
			sb.WriteRune(ch)
		}
	}
	return sb.String()
}

// Candidate returns the composed text when every block is complete.
func Candidate(blocks []SyllableBlock) (string, bool) {
	if len(blocks) == 0 {
		return "", false
	}
	out := make([]rune, 0, len(blocks))
	for _, block := range blocks {
		ch, ok := block.Rune()
		if !ok {
			return "", false
		}
		out = append(out, ch)
	}
	return string(out), true
}

// IncompleteTail reports whether the last block is the only incomplete one.
func IncompleteTail(blocks []SyllableBlock) bool {
	if len(blocks) == 0 {
		return false
	}
	for _, block := range blocks[:len(blocks)-1] {
		if !block.Complete() {
			return false
		}
	}
	return !blocks[len(blocks)-1].Complete()
}

func Render(blocks []SyllableBlock) string {
	var sb strings.Builder
	for _, block := range blocks {
		sb.WriteString(block.String())
	}
	return sb.String()
}
