package ngram

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// BigramSeparator joins the two characters of a bigram key in the model file.
const BigramSeparator = "|"

var (
	ErrModelMissing    = errors.New("model file not found")
	ErrModelUnreadable = errors.New("model file unreadable")
	ErrModelFormat     = errors.New("model file malformed")
)

// LoadError reports why a model file was refused. Kind is one of the
// ErrModel* sentinels and matches with errors.Is.
type LoadError struct {
	Path string
	Kind error
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load model %s: %v: %v", e.Path, e.Kind, e.Err)
}

func (e *LoadError) Unwrap() []error { return []error{e.Kind, e.Err} }

type Metadata struct {
	CorpusSize     uint64 `json:"corpus_size"`
	UniqueUnigrams int    `json:"unique_unigrams"`
	UniqueBigrams  int    `json:"unique_bigrams"`
	MinFreq        uint64 `json:"min_freq,omitempty"`
	Source         string `json:"source,omitempty"`
}

type modelFile struct {
	Metadata Metadata          `json:"metadata"`
	Unigrams map[string]uint64 `json:"unigrams"`
	Bigrams  map[string]uint64 `json:"bigrams"`
}

// Model is an immutable unigram/bigram frequency table. All methods are safe
// for concurrent use.
type Model struct {
	meta       Metadata
	unigrams   map[rune]uint64
	bigrams    map[[2]rune]uint64
	total      uint64
	maxUnigram uint64
	maxBigram  uint64
}

func NewModel(meta Metadata, unigrams map[rune]uint64, bigrams map[[2]rune]uint64) *Model {
	m := &Model{
		meta:     meta,
		unigrams: make(map[rune]uint64, len(unigrams)),
		bigrams:  make(map[[2]rune]uint64, len(bigrams)),
	}
	for ch, count := range unigrams {
		m.unigrams[ch] = count
		m.total += count
		if count > m.maxUnigram {
			m.maxUnigram = count
		}
	}
	for pair, count := range bigrams {
		m.bigrams[pair] = count
		if count > m.maxBigram {
			m.maxBigram = count
		}
	}
	return m
}

// Load reads and validates a model file. No partial model is ever returned.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &LoadError{Path: path, Kind: ErrModelMissing, Err: err}
		}
		return nil, &LoadError{Path: path, Kind: ErrModelUnreadable, Err: err}
	}
	model, err := Parse(data)
	if err != nil {
		return nil, &LoadError{Path: path, Kind: ErrModelFormat, Err: err}
	}
	return model, nil
}

func Parse(data []byte) (*Model, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	if err := validateDocument(doc); err != nil {
		return nil, err
	}

	var file modelFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}

	unigrams := make(map[rune]uint64, len(file.Unigrams))
	for key, count := range file.Unigrams {
		ch, ok := singleRune(key)
		if !ok {
			return nil, fmt.Errorf("unigram key %q is not a single character", key)
		}
		unigrams[ch] = count
	}
	bigrams := make(map[[2]rune]uint64, len(file.Bigrams))
	for key, count := range file.Bigrams {
		first, second, ok := strings.Cut(key, BigramSeparator)
		if !ok {
			return nil, fmt.Errorf("bigram key %q has no %q separator", key, BigramSeparator)
		}
		a, okA := singleRune(first)
		b, okB := singleRune(second)
		if !okA || !okB {
			return nil, fmt.Errorf("bigram key %q must join two single characters", key)
		}
		bigrams[[2]rune{a, b}] = count
	}
	return NewModel(file.Metadata, unigrams, bigrams), nil
}

func singleRune(s string) (rune, bool) {
	ch, size := utf8.DecodeRuneInString(s)
	if ch == utf8.RuneError || size != len(s) {
		return 0, false
	}
	return ch, true
}

func (m *Model) Metadata() Metadata { return m.meta }

func (m *Model) Unigram(ch rune) uint64 { return m.unigrams[ch] }

func (m *Model) Bigram(first, second rune) uint64 { return m.bigrams[[2]rune{first, second}] }

func (m *Model) UnigramCount() int { return len(m.unigrams) }

func (m *Model) BigramCount() int { return len(m.bigrams) }

// TotalUnigrams is the sum of all unigram counts.
func (m *Model) TotalUnigrams() uint64 { return m.total }

// Empty reports a well-formed model without any entries.
func (m *Model) Empty() bool { return len(m.unigrams) == 0 && len(m.bigrams) == 0 }

// Consistent reports whether the metadata counts match the tables.
func (m *Model) Consistent() bool {
	return m.meta.UniqueUnigrams == len(m.unigrams) && m.meta.UniqueBigrams == len(m.bigrams)
}
