package ngram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounterOnlyCountsInsideHangulRuns(t *testing.T) {
	counter := NewCounter()
	counter.AddText("한글 abc 글자, 한")

	model := counter.Build(1, "unit")
	assert.Equal(t, uint64(2), model.Unigram('한'))
	assert.Equal(t, uint64(2), model.Unigram('글'))
	assert.Equal(t, uint64(1), model.Bigram('한', '글'))
	assert.Equal(t, uint64(1), model.Bigram('글', '자'))
	assert.Equal(t, uint64(0), model.Bigram('글', '글'))
	assert.Equal(t, uint64(0), model.Bigram('자', '한'))
	assert.Equal(t, uint64(5), counter.Size())
}

func TestCounterNormalisesConjoiningJamo(t *testing.T) {
	counter := NewCounter()
	counter.AddText("\u1112\u1161\u11ab\u1100\u1173\u11af")

	model := counter.Build(1, "unit")
	assert.Equal(t, uint64(1), model.Bigram('한', '글'))
}

func TestBuildAppliesMinFrequency(t *testing.T) {
	counter := NewCounter()
	require.NoError(t, counter.AddReader(strings.NewReader("가나\n가나\n가다\n")))

	model := counter.Build(2, "unit")
	assert.Equal(t, uint64(3), model.Unigram('가'))
	assert.Equal(t, uint64(0), model.Unigram('다'))
	assert.Equal(t, uint64(2), model.Bigram('가', '나'))
	assert.Equal(t, uint64(0), model.Bigram('가', '다'))

	meta := model.Metadata()
	assert.Equal(t, uint64(6), meta.CorpusSize)
	assert.Equal(t, 2, meta.UniqueUnigrams)
	assert.Equal(t, 1, meta.UniqueBigrams)
	assert.Equal(t, uint64(2), meta.MinFreq)
}

func TestMergeCounters(t *testing.T) {
	a, b := NewCounter(), NewCounter()
	a.AddText("한글")
	b.AddText("한글 한국")
	a.Merge(b)

	model := a.Build(1, "unit")
	assert.Equal(t, uint64(2), model.Bigram('한', '글'))
	assert.Equal(t, uint64(6), a.Size())
}

func TestTopEntries(t *testing.T) {
	counter := NewCounter()
	counter.AddText("가가가 나나 다")
	model := counter.Build(1, "unit")

	top := model.TopUnigrams(2)
	require.Len(t, top, 2)
	assert.Equal(t, Entry{Text: "가", Count: 3}, top[0])
	assert.Equal(t, Entry{Text: "나", Count: 2}, top[1])

	bigrams := model.TopBigrams(10)
	require.Len(t, bigrams, 2)
	assert.Equal(t, "가가", bigrams[0].Text)
}

func TestSampleModel(t *testing.T) {
	model := Sample()
	assert.False(t, model.Empty())
	assert.True(t, model.Consistent())
	assert.Equal(t, "sample", model.Metadata().Source)
	assert.Greater(t, model.Bigram('한', '글'), uint64(50))
	assert.Greater(t, model.Unigram('가'), uint64(200))
}
