package ngram

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/samber/lo"
	"golang.org/x/text/unicode/norm"

	"autohan/internal/hangul"
)

// Counter accumulates unigram and bigram counts from corpus text. Bigrams are
// only counted inside contiguous runs of Hangul syllables. A Counter is not
// safe for concurrent use; count shards separately and Merge them.
type Counter struct {
	unigrams map[rune]uint64
	bigrams  map[[2]rune]uint64
	size     uint64
}

func NewCounter() *Counter {
	return &Counter{
		unigrams: make(map[rune]uint64),
		bigrams:  make(map[[2]rune]uint64),
	}
}

// AddText counts one piece of text after NFC normalisation, so corpora stored
// as conjoining jamo count the same as precomposed text.
func (c *Counter) AddText(text string) {
	var prev rune
	for _, ch := range norm.NFC.String(text) {
		if !hangul.IsSyllable(ch) {
			prev = 0
			continue
		}
		c.unigrams[ch]++
		c.size++
		if prev != 0 {
			c.bigrams[[2]rune{prev, ch}]++
		}
		prev = ch
	}
}

func (c *Counter) AddReader(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		c.AddText(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read corpus: %w", err)
	}
	return nil
}

// Boost adds weight to every unigram and bigram of text, scaled per entry.
func (c *Counter) Boost(text string, unigramWeight, bigramWeight uint64) {
	chars := []rune(norm.NFC.String(text))
	for i, ch := range chars {
		if !hangul.IsSyllable(ch) {
			continue
		}
		c.unigrams[ch] += unigramWeight
		if i > 0 && hangul.IsSyllable(chars[i-1]) {
			c.bigrams[[2]rune{chars[i-1], ch}] += bigramWeight
		}
	}
}

func (c *Counter) Merge(other *Counter) {
	for ch, count := range other.unigrams {
		c.unigrams[ch] += count
	}
	for pair, count := range other.bigrams {
		c.bigrams[pair] += count
	}
	c.size += other.size
}

// Size is the number of Hangul syllables seen.
func (c *Counter) Size() uint64 { return c.size }

// Build drops entries below minFreq and freezes the counts into a Model.
func (c *Counter) Build(minFreq uint64, source string) *Model {
	keep := func(_ rune, count uint64) bool { return count >= minFreq }
	unigrams := lo.PickBy(c.unigrams, keep)
	bigrams := lo.PickBy(c.bigrams, func(_ [2]rune, count uint64) bool { return count >= minFreq })
	meta := Metadata{
		CorpusSize:     c.size,
		UniqueUnigrams: len(unigrams),
		UniqueBigrams:  len(bigrams),
		MinFreq:        minFreq,
		Source:         source,
	}
	return NewModel(meta, unigrams, bigrams)
}

// WriteJSON serialises the model in the on-disk format read by Load.
func (m *Model) WriteJSON(w io.Writer) error {
	file := modelFile{
		Metadata: m.meta,
		Unigrams: make(map[string]uint64, len(m.unigrams)),
		Bigrams:  make(map[string]uint64, len(m.bigrams)),
	}
	for ch, count := range m.unigrams {
		file.Unigrams[string(ch)] = count
	}
	for pair, count := range m.bigrams {
		file.Bigrams[string(pair[0])+BigramSeparator+string(pair[1])] = count
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(file); err != nil {
		return fmt.Errorf("encode model: %w", err)
	}
	return nil
}

type Entry struct {
	Text  string
	Count uint64
}

// TopUnigrams lists the n most frequent characters, ties broken by text.
func (m *Model) TopUnigrams(n int) []Entry {
	entries := lo.MapToSlice(m.unigrams, func(ch rune, count uint64) Entry {
		return Entry{Text: string(ch), Count: count}
	})
	return topN(entries, n)
}

func (m *Model) TopBigrams(n int) []Entry {
	entries := lo.MapToSlice(m.bigrams, func(pair [2]rune, count uint64) Entry {
		return Entry{Text: string(pair[:]), Count: count}
	})
	return topN(entries, n)
}

func topN(entries []Entry, n int) []Entry {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Text < entries[j].Text
	})
	if n >= 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
