package engine

import (
	"unicode/utf8"

	"autohan/internal/exception"
	"autohan/internal/hangul"
	"autohan/internal/ngram"
)

// Trigger names what caused a run to be evaluated.
type Trigger int

const (
	TriggerTimer Trigger = iota
	TriggerSeparator
	TriggerManual
)

func (t Trigger) String() string {
	switch t {
	case TriggerTimer:
		return "timer"
	case TriggerSeparator:
		return "separator"
	case TriggerManual:
		return "manual"
	default:
		return "unknown"
	}
}

type Decision int

const (
	DecisionConvert Decision = iota
	// DecisionWait keeps the run buffered so more keys can complete it.
	DecisionWait
	DecisionReject
)

func (d Decision) String() string {
	switch d {
	case DecisionConvert:
		return "convert"
	case DecisionWait:
		return "wait"
	case DecisionReject:
		return "reject"
	default:
		return "unknown"
	}
}

// Analysis is the outcome of one evaluation, kept whole for logging and
// the --explain mode.
type Analysis struct {
	Run       string
	Trigger   Trigger
	Verdict   exception.Verdict
	Blocks    []hangul.SyllableBlock
	Candidate string
	Score     float64
	Decision  Decision
	Reason    string
}

// Analyze evaluates a Latin run as if trigger had fired on it. It must not
// be called concurrently with Run.
func (e *Engine) Analyze(run string, trigger Trigger) Analysis {
	jamo := make([]rune, 0, len(run))
	for _, ch := range run {
		j, ok := e.layout.Translate(ch, false)
		if !ok {
			return Analysis{Run: run, Trigger: trigger, Score: ngram.Floor, Decision: DecisionReject, Reason: "unmapped key " + string(ch)}
		}
		jamo = append(jamo, j)
	}
	return e.analyze(run, jamo, trigger)
}

func (e *Engine) analyze(run string, jamo []rune, trigger Trigger) Analysis {
	a := Analysis{Run: run, Trigger: trigger, Score: ngram.Floor}
	manual := trigger == TriggerManual
	reject := func(reason string) Analysis {
		a.Decision = DecisionReject
		a.Reason = reason
		return a
	}
	// A timer fire leaves room for more keys; a separator or the hotkey
	// ends the run for good.
	hold := func(reason string) Analysis {
		if trigger == TriggerTimer {
			a.Decision = DecisionWait
			a.Reason = reason
			return a
		}
		return reject(reason)
	}

	if len(jamo) == 0 {
		return reject("empty run")
	}
	if !manual && len(jamo) < e.cfg.MinKeys {
		return hold("too few keys")
	}

	verdict, why := e.filter.Check(run)
	a.Verdict = verdict
	switch verdict {
	case exception.Reject:
		return reject(why)
	case exception.Defer:
		if !manual {
			return hold(why)
		}
	}

	a.Blocks = hangul.Compose(jamo, true)
	candidate, ok := hangul.Candidate(a.Blocks)
	if !ok {
		if hangul.IncompleteTail(a.Blocks) {
			return hold("incomplete syllable")
		}
		return reject("no syllable sequence")
	}
	a.Candidate = candidate

	if !manual && utf8.RuneCountInString(candidate) < e.cfg.MinSyllables {
		return hold("too few syllables")
	}
	if e.cfg.StructureCheck && !hangul.Natural(candidate) {
		return hold("unnatural syllable structure")
	}
	a.Score = e.scorer.Score(candidate)
	if a.Score < e.cfg.Threshold {
		return hold("score below threshold")
	}
	a.Decision = DecisionConvert
	a.Reason = "accepted"
	return a
}
