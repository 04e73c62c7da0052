package hangul

import "testing"

func jamoOf(s string) []rune { return []rune(s) }

func TestComposeSyllableRoundTrip(t *testing.T) {
	for _, lead := range choList {
		for _, vowel := range jungList {
			for _, tail := range jongList {
				ch, ok := ComposeSyllable(lead, vowel, tail)
				if !ok {
					t.Fatalf("expected %c%c%c to compose", lead, vowel, tail)
				}
				l, v, tr, ok := DecomposeSyllable(ch)
				if !ok || l != lead || v != vowel || tr != tail {
					t.Fatalf("round trip of %c gave %q %q %q", ch, l, v, tr)
				}
			}
		}
	}
}

func TestComposeSyllableBounds(t *testing.T) {
	first, _ := ComposeSyllable('ㄱ', 'ㅏ', 0)
	if first != 0xAC00 {
		t.Fatalf("expected U+AC00, got %U", first)
	}
	last, _ := ComposeSyllable('ㅎ', 'ㅣ', 'ㅎ')
	if last != 0xD7A3 {
		t.Fatalf("expected U+D7A3, got %U", last)
	}
	if _, ok := ComposeSyllable('ㄳ', 'ㅏ', 0); ok {
		t.Fatalf("compound final must not lead a syllable")
	}
	if _, _, _, ok := DecomposeSyllable('A'); ok {
		t.Fatalf("expected non-syllable to fail decomposition")
	}
}

func TestComposeWords(t *testing.T) {
	cases := []struct {
		jamo string
		want string
	}{
		{"ㄱㅏㄴㅏㄷㅏ", "가나다"},
		{"ㅇㅏㄴㄴㅕㅇㅎㅏㅅㅔㅇㅛ", "안녕하세요"},
		{"ㅎㅏㄴㄱㅡㄹ", "한글"},
		{"ㅇㅗㅏㄴㄹㅛ", "완료"},
		{"ㅇㅣㄹㄱ", "읽"},
		{"ㅇㅣㄹㄱㅓ", "일거"},
		{"ㄱㅏㅂㅅㅇㅡㄴ", "값은"},
		{"ㅋㅓㅁㅍㅠㅌㅓ", "컴퓨터"},
		{"ㅍㅡㄹㅗㄱㅡㄹㅐㅁ", "프로그램"},
		{"ㅆㅏㄴ", "싼"},
		{"ㄱㅏㄲㅏ", "가까"},
	}
	for _, tc := range cases {
		got, ok := Candidate(Compose(jamoOf(tc.jamo), true))
		if !ok {
			t.Fatalf("expected %q to compose", tc.jamo)
		}
		if got != tc.want {
			t.Fatalf("expected %q for %q, got %q", tc.want, tc.jamo, got)
		}
	}
}

func TestComposeMaximalMunch(t *testing.T) {
	blocks := Compose(jamoOf("ㄱㅏㄴㅏ"), true)
	if len(blocks) != 2 {
		t.Fatalf("expected two blocks, got %d", len(blocks))
	}
	if blocks[0].Trailing != 0 {
		t.Fatalf("expected first block to stay open, got trailing %q", blocks[0].Trailing)
	}
	if got := Render(blocks); got != "가나" {
		t.Fatalf("expected '가나', got %q", got)
	}
}

func TestTokenizePendingTail(t *testing.T) {
	units := Tokenize(jamoOf("ㅎㅏㄴ"), false)
	if len(units) != 3 || units[2].Role != RolePending {
		t.Fatalf("expected pending trailing consonant, got %#v", units)
	}
	blocks := Blocks(units)
	if len(blocks) != 1 || !blocks[0].Pending {
		t.Fatalf("expected a single pending block, got %#v", blocks)
	}

	units = Tokenize(jamoOf("ㅎㅏㄴ"), true)
	if units[2].Role != RoleTrailing {
		t.Fatalf("expected trailing role once the run is final, got %s", units[2].Role)
	}
}

func TestTokenizeCompoundVowel(t *testing.T) {
	units := Tokenize(jamoOf("ㅇㅜㅓ"), true)
	if len(units) != 2 || units[1].Jamo != 'ㅝ' || units[1].Role != RoleVowel {
		t.Fatalf("expected folded vowel 'ㅝ', got %#v", units)
	}
}

func TestComposeDeadEnds(t *testing.T) {
	cases := []string{
		"ㅏ",
		"ㅜㅁㅣㄷ",
		"ㅊㅐㅇㄷ",
		"ㄱ",
		"ㄱㄴㅏ",
	}
	for _, jamo := range cases {
		if got, ok := Candidate(Compose(jamoOf(jamo), true)); ok {
			t.Fatalf("expected %q to have no candidate, got %q", jamo, got)
		}
	}
	if _, ok := Candidate(nil); ok {
		t.Fatalf("expected empty input to have no candidate")
	}
}

func TestIncompleteTail(t *testing.T) {
	if !IncompleteTail(Compose(jamoOf("ㅎㅏㄴㄱ"), true)) {
		t.Fatalf("expected trailing lone consonant to count as incomplete tail")
	}
	if IncompleteTail(Compose(jamoOf("ㄱㄴㅏ"), true)) {
		t.Fatalf("expected mid-run dead end not to count as incomplete tail")
	}
	if IncompleteTail(Compose(jamoOf("ㅎㅏㄴ"), true)) {
		t.Fatalf("expected complete run not to report an incomplete tail")
	}
}

func TestBlockStringIncomplete(t *testing.T) {
	got := Render(Compose(jamoOf("ㅊㅐㅇㄷ"), true))
	if got != "챙ㄷ" {
		t.Fatalf("expected bare jamo rendering, got %q", got)
	}
}
