package exception

import (
	"sort"
	"strings"
	"unicode"

	"autohan/internal/layout"
)

type Verdict int

const (
	Allow Verdict = iota
	// Defer means the run may still grow into a listed word.
	Defer
	Reject
)

func (v Verdict) String() string {
	switch v {
	case Allow:
		return "allow"
	case Defer:
		return "defer"
	case Reject:
		return "reject"
	default:
		return "unknown"
	}
}

type Options struct {
	// MinPrefix is the shortest run that can be deferred as a prefix of a
	// listed word. Zero disables prefix matching.
	MinPrefix int
	// Patterns enables the English shape rules (caps, camelCase, affixes).
	Patterns bool
}

func DefaultOptions() Options {
	return Options{MinPrefix: 3, Patterns: true}
}

// Filter is immutable once built; reloads construct a new Filter.
type Filter struct {
	words []string
	set   map[string]struct{}
	opts  Options
}

func New(words []string, opts Options) *Filter {
	list := normalise(words)
	sort.Strings(list)
	set := make(map[string]struct{}, len(list))
	for _, word := range list {
		set[word] = struct{}{}
	}
	return &Filter{words: list, set: set, opts: opts}
}

func Default() *Filter {
	return New(DefaultWords(), DefaultOptions())
}

func (f *Filter) Len() int { return len(f.words) }

func (f *Filter) Options() Options { return f.opts }

// Check classifies the raw keystroke run and names the rule that fired.
func (f *Filter) Check(run string) (Verdict, string) {
	if run == "" {
		return Allow, ""
	}
	lower := strings.ToLower(run)
	if _, ok := f.set[lower]; ok {
		return Reject, "listed word"
	}
	if f.opts.Patterns {
		if reason := englishShape(run, lower); reason != "" {
			return Reject, reason
		}
	}
	if f.opts.MinPrefix > 0 && len([]rune(lower)) >= f.opts.MinPrefix && f.isPrefix(lower) {
		return Defer, "prefix of listed word"
	}
	return Allow, ""
}

func (f *Filter) isPrefix(run string) bool {
	i := sort.SearchStrings(f.words, run)
	return i < len(f.words) && strings.HasPrefix(f.words[i], run) && f.words[i] != run
}

var (
	englishSuffixes = []string{"tion", "ment", "ness", "ing", "able", "ful", "less", "ous", "ive", "ence", "ance"}
	englishPrefixes = []string{"un", "re", "pre", "dis", "mis"}
)

// shiftJamoKeys type a different jamo with Shift and so are normal inside
// Korean runs.
var shiftJamoKeys = string(layout.Dubeolsik().ShiftKeys())

func englishShape(run, lower string) string {
	letters := 0
	upper := 0
	for _, ch := range run {
		if unicode.IsLetter(ch) {
			letters++
			if unicode.IsUpper(ch) {
				upper++
			}
		}
	}
	if letters >= 2 && upper == letters {
		return "all caps"
	}
	first := []rune(run)[0]
	if unicode.IsLower(first) {
		for _, ch := range run {
			if unicode.IsUpper(ch) && !strings.ContainsRune(shiftJamoKeys, ch) {
				return "camel case"
			}
		}
	}
	for _, suffix := range englishSuffixes {
		if len(lower) > len(suffix) && strings.HasSuffix(lower, suffix) {
			return "english suffix"
		}
	}
	if len(lower) >= 5 {
		for _, prefix := range englishPrefixes {
			if strings.HasPrefix(lower, prefix) {
				return "english prefix"
			}
		}
	}
	return ""
}
