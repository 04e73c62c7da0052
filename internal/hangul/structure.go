package hangul

// Indices below are choseong / jungseong / jongseong positions as used by
// SyllableIndices.

var rareTransitions = map[[2]int]struct{}{
	{17, 17}: {}, // ㅂ -> ㅍ
	{7, 16}:  {}, // ㄷ -> ㅌ
	{1, 15}:  {}, // ㄱ -> ㅋ
	{17, 8}:  {}, // ㅂ -> ㅃ
	{7, 4}:   {}, // ㄷ -> ㄸ
	{22, 13}: {}, // ㅈ -> ㅉ
	{23, 14}: {}, // ㅊ -> ㅊ
	{24, 15}: {}, // ㅋ -> ㅋ
	{25, 16}: {}, // ㅌ -> ㅌ
	{26, 17}: {}, // ㅍ -> ㅍ
}

func rareOnset(cho, jung int) bool {
	switch jung {
	case 3: // ㅒ
		return !inSet(cho, 0, 11, 12)
	case 10: // ㅙ
		return !inSet(cho, 0, 3, 9, 11, 15)
	case 15: // ㅞ
		return !inSet(cho, 0, 11, 18)
	case 2: // ㅑ
		if !inSet(cho, 0, 2, 9, 11) {
			return true
		}
	}
	return inSet(cho, 1, 4, 8, 13) && inSet(jung, 2, 7, 12, 17, 19)
}

func inSet(v int, set ...int) bool {
	for _, s := range set {
		if v == s {
			return true
		}
	}
	return false
}

// StructureReport counts the unusual syllable shapes found in a word.
type StructureReport struct {
	Syllables       int
	Rare            int
	RareRun         int
	RareTransitions int
}

func Inspect(text string) StructureReport {
	var report StructureReport
	run := 0
	prevTrailing := -1
	for _, ch := range text {
		cho, jung, jong, ok := SyllableIndices(ch)
		if !ok {
			prevTrailing = -1
			run = 0
			continue
		}
		report.Syllables++
		if rareOnset(cho, jung) {
			report.Rare++
			run++
			if run > report.RareRun {
				report.RareRun = run
			}
		} else {
			run = 0
		}
		if prevTrailing > 0 {
			if _, ok := rareTransitions[[2]int{prevTrailing, cho}]; ok {
				report.RareTransitions++
			}
		}
		prevTrailing = jong
	}
	return report
}

// Natural reports whether text reads like ordinary Korean syllable structure.
func (r StructureReport) Natural() bool {
	if r.Syllables == 0 {
		return true
	}
	if r.RareRun >= 2 {
		return false
	}
	if float64(r.Rare)/float64(r.Syllables) >= 0.5 {
		return false
	}
	if r.RareTransitions >= 2 {
		return false
	}
	if r.Syllables <= 3 && r.RareTransitions >= 1 && r.Rare >= 1 {
		return false
	}
	return true
}

func Natural(text string) bool {
	return Inspect(text).Natural()
}
