package ngram

import "math"

// Floor is the score of a candidate the model knows nothing about.
var Floor = math.Inf(-1)

type ScoreConfig struct {
	// UnseenPenalty is subtracted once per character missing from the
	// unigram table.
	UnseenPenalty float64
}

func DefaultScoreConfig() ScoreConfig {
	return ScoreConfig{UnseenPenalty: 0.5}
}

// Scorer rates how Korean-like a candidate looks. It never fails.
type Scorer struct {
	model *Model
	cfg   ScoreConfig
}

func NewScorer(model *Model, cfg ScoreConfig) *Scorer {
	if model == nil {
		model = NewModel(Metadata{}, nil, nil)
	}
	return &Scorer{model: model, cfg: cfg}
}

// Score returns coverage + strength/(pairs+1) - penalty, where coverage is
// the fraction of adjacent pairs present in the bigram table and strength is
// their mean log frequency normalised to [0,1]. Every all-present candidate
// scores at least 1 and any candidate with a missing pair scores below 1.
func (s *Scorer) Score(candidate string) float64 {
	chars := []rune(candidate)
	if len(chars) == 0 {
		return Floor
	}

	unseen := 0
	for _, ch := range chars {
		if s.model.Unigram(ch) == 0 {
			unseen++
		}
	}
	if unseen == len(chars) {
		return Floor
	}
	if len(chars) == 1 {
		return 1 + normLog(s.model.Unigram(chars[0]), s.model.maxUnigram)/2
	}

	pairs := len(chars) - 1
	present := 0
	strength := 0.0
	for i := 0; i < pairs; i++ {
		count := s.model.Bigram(chars[i], chars[i+1])
		if count == 0 {
			continue
		}
		present++
		strength += normLog(count, s.model.maxBigram)
	}
	coverage := float64(present) / float64(pairs)
	strength /= float64(pairs)
	return coverage + strength/float64(pairs+1) - s.cfg.UnseenPenalty*float64(unseen)
}

func normLog(count, max uint64) float64 {
	if count == 0 || max == 0 {
		return 0
	}
	return math.Log1p(float64(count)) / math.Log1p(float64(max))
}
