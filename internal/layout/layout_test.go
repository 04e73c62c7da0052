package layout

import (
	"testing"

	"autohan/internal/hangul"
)

func TestDubeolsikTranslate(t *testing.T) {
	layout := Dubeolsik()
	if layout.Name() != "dubeolsik" {
		t.Fatalf("unexpected layout name %q", layout.Name())
	}

	jamo, ok := layout.Translate('q', false)
	if !ok || jamo != 'ㅂ' {
		t.Fatalf("expected 'ㅂ' for q, got %q", jamo)
	}

	shifted, ok := layout.Translate('q', true)
	if !ok || shifted != 'ㅃ' {
		t.Fatalf("expected shifted symbol 'ㅃ', got %q", shifted)
	}

	if _, ok := layout.Translate('1', false); ok {
		t.Fatalf("expected no mapping for digit")
	}
	if _, ok := layout.Translate(';', false); ok {
		t.Fatalf("expected no mapping for punctuation")
	}
}

func TestTranslateUpperCase(t *testing.T) {
	layout := Dubeolsik()
	cases := map[rune]rune{
		'R': 'ㄲ',
		'T': 'ㅆ',
		'O': 'ㅒ',
		'P': 'ㅖ',
		'A': 'ㅁ',
		'X': 'ㅌ',
	}
	for key, want := range cases {
		got, ok := layout.Translate(key, false)
		if !ok || got != want {
			t.Fatalf("expected %q for %q, got %q", want, key, got)
		}
	}
}

func TestKeysForCompounds(t *testing.T) {
	layout := Dubeolsik()
	cases := map[rune]string{
		'ㅘ': "hk",
		'ㅢ': "ml",
		'ㄺ': "fr",
		'ㅄ': "qt",
		'ㄲ': "R",
		'ㅎ': "g",
	}
	for jamo, want := range cases {
		got, ok := layout.KeysFor(jamo)
		if !ok || got != want {
			t.Fatalf("expected %q for %q, got %q", want, jamo, got)
		}
	}
	if _, ok := layout.KeysFor('A'); ok {
		t.Fatalf("expected no keys for a Latin rune")
	}
}

func TestKeystrokesRoundTrip(t *testing.T) {
	layout := Dubeolsik()
	runs := []string{"rkskek", "dkssudgktpdy", "gksrmf", "dhksfy", "dlfr", "Tks", "zjavbxj", "vmfhrmfoa"}
	for _, run := range runs {
		jamo := make([]rune, 0, len(run))
		for _, key := range run {
			j, ok := layout.Translate(key, false)
			if !ok {
				t.Fatalf("expected %q to map", key)
			}
			jamo = append(jamo, j)
		}
		text, ok := hangul.Candidate(hangul.Compose(jamo, true))
		if !ok {
			t.Fatalf("expected %q to compose", run)
		}
		if back := layout.Keystrokes(text); back != run {
			t.Fatalf("expected %q to reverse to %q, got %q", text, run, back)
		}
	}
}

func TestKeystrokesPassesThroughOtherRunes(t *testing.T) {
	if got := Dubeolsik().Keystrokes("한 글!"); got != "gks rmf!" {
		t.Fatalf("unexpected keystrokes %q", got)
	}
}

func TestShiftKeys(t *testing.T) {
	got := string(Dubeolsik().ShiftKeys())
	if got != "EOPQRTW" {
		t.Fatalf("unexpected shift keys %q", got)
	}
}
