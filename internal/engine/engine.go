package engine

import (
	"context"
	"errors"
	"log/slog"
	"unicode"

	"autohan/internal/debounce"
	"autohan/internal/emitter"
	"autohan/internal/exception"
	"autohan/internal/hangul"
	"autohan/internal/layout"
	"autohan/internal/ngram"
	"autohan/internal/types"
	"autohan/internal/undo"
)

const inboxSize = 64

// Deps are the collaborators an Engine drives. Layout, Filter, Clock and
// Logger fall back to defaults when nil.
type Deps struct {
	Layout *layout.Layout
	Scorer *ngram.Scorer
	Filter *exception.Filter
	Sink   emitter.Sink
	Clock  debounce.Clock
	Logger *slog.Logger
}

// Engine is the conversion state machine. All state is owned by the
// goroutine running Run; other goroutines talk to it through Post.
type Engine struct {
	cfg    Config
	layout *layout.Layout
	scorer *ngram.Scorer
	filter *exception.Filter
	sink   emitter.Sink
	log    *slog.Logger
	timer  *debounce.Timer

	inbox chan Event
	done  chan struct{}

	state   State
	mode    types.InputMode
	buffer  pendingBuffer
	history undo.History
	// suppress lets letters through unbuffered until the word ends.
	suppress bool
}

func New(cfg Config, deps Deps) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if deps.Scorer == nil {
		return nil, errors.New("engine: scorer is required")
	}
	if deps.Sink == nil {
		return nil, errors.New("engine: sink is required")
	}
	if deps.Layout == nil {
		deps.Layout = layout.Dubeolsik()
	}
	if deps.Filter == nil {
		deps.Filter = exception.Default()
	}
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}
	e := &Engine{
		cfg:    cfg,
		layout: deps.Layout,
		scorer: deps.Scorer,
		filter: deps.Filter,
		sink:   deps.Sink,
		log:    deps.Logger,
		inbox:  make(chan Event, inboxSize),
		done:   make(chan struct{}),
		mode:   cfg.StartMode,
	}
	e.timer = debounce.NewTimer(deps.Clock, cfg.Debounce, func(seq uint64) {
		e.Post(timerFired{seq: seq})
	})
	return e, nil
}

func (e *Engine) State() State { return e.state }

func (e *Engine) Mode() types.InputMode { return e.mode }

// Pending returns the buffered run as typed.
func (e *Engine) Pending() string { return e.buffer.text() }

func (e *Engine) CanUndo() bool { return e.state == StateConverted && !e.history.Empty() }

// Post queues ev for the owner loop. It is safe for concurrent use and
// reports false once Run has returned.
func (e *Engine) Post(ev Event) bool {
	select {
	case <-e.done:
		return false
	default:
	}
	select {
	case e.inbox <- ev:
		return true
	case <-e.done:
		return false
	}
}

// Run processes events until ctx is cancelled. It must be called once.
func (e *Engine) Run(ctx context.Context) error {
	defer close(e.done)
	defer e.timer.Cancel()
	e.log.Info("engine started", "debounce", e.cfg.Debounce, "threshold", e.cfg.Threshold)
	for {
		select {
		case <-ctx.Done():
			e.log.Info("engine stopped")
			return nil
		case ev := <-e.inbox:
			e.dispatch(ev)
		}
	}
}

// dispatch handles ev and forwards the key when the engine lets it through.
// Replacements triggered by a key are applied before the key itself.
func (e *Engine) dispatch(ev Event) {
	forward := e.Handle(ev)
	key, ok := ev.(KeyPressed)
	if !ok || !forward {
		return
	}
	if err := e.sink.Forward(key.Key); err != nil {
		e.log.Warn("forward failed", "key", string(key.Key.Char()), "error", err)
	}
}

// Handle applies one event and reports whether a key event should reach
// the application. Only the owner goroutine may call it.
func (e *Engine) Handle(ev Event) bool {
	switch ev := ev.(type) {
	case KeyPressed:
		return e.handleKey(ev.Key)
	case Command:
		e.handleCommand(ev)
	case ModeChanged:
		e.setMode(ev.Mode)
	case FilterReloaded:
		if ev.Filter != nil {
			e.filter = ev.Filter
			e.log.Info("exception list reloaded", "words", ev.Filter.Len())
		}
	case timerFired:
		e.handleTimer(ev.seq)
	}
	return false
}

func (e *Engine) handleKey(key types.KeyEvent) bool {
	if e.mode == types.ModeHangul {
		if e.state == StateConverted {
			// the host now types after the converted text
			e.history.Clear()
			e.state = StateIdle
		}
		return true
	}
	switch key.Kind {
	case types.KindCharacter:
		jamo, ok := e.layout.Translate(key.Key, key.Shift)
		if !ok {
			if endsWord(key.Key) {
				e.handleSeparator(key)
			} else {
				e.handleForeign(key)
			}
			return true
		}
		e.handleJamo(key, jamo)
	case types.KindSeparator:
		e.handleSeparator(key)
	case types.KindBackspace:
		e.handleBackspace()
	case types.KindNavigation:
		e.reset("navigation")
	}
	return true
}

func endsWord(ch rune) bool {
	return unicode.IsSpace(ch) || unicode.IsPunct(ch) || unicode.IsSymbol(ch) || unicode.IsDigit(ch)
}

// handleForeign ends the run at a letter the layout cannot type. The run is
// no longer contiguous with the caret, so it is dropped unevaluated and the
// rest of the word stays as typed.
func (e *Engine) handleForeign(key types.KeyEvent) {
	if e.state != StateIdle {
		e.log.Debug("foreign letter ends run", "key", string(key.Char()), "run", e.buffer.text())
	}
	e.discard()
	e.history.Clear()
	e.suppress = true
}

func (e *Engine) handleJamo(key types.KeyEvent, jamo rune) {
	if e.state == StateConverted {
		e.history.Clear()
		e.state = StateIdle
	}
	if e.suppress {
		return
	}
	if e.buffer.len() >= e.cfg.MaxKeys {
		e.log.Debug("run too long, passing through", "keys", e.buffer.len())
		e.discard()
		e.suppress = true
		return
	}
	e.buffer.push(key, jamo)
	e.state = StateBuffering
	e.arm()
	e.log.Debug("buffered", "run", e.buffer.text(), "preview", hangul.Render(hangul.Compose(e.buffer.jamo, false)))
}

func (e *Engine) handleSeparator(key types.KeyEvent) {
	switch e.state {
	case StateBuffering, StateAwaitingDebounce:
		if e.cfg.ManualOnly {
			e.discard()
			break
		}
		e.evaluate(TriggerSeparator)
		if e.state == StateConverted {
			e.trail(key.Char())
		}
	case StateConverted:
		e.trail(key.Char())
	}
	e.suppress = false
}

// trail extends the undo extent by a separator. A line break moves the
// text out of reach, so it ends the undo window instead.
func (e *Engine) trail(ch rune) {
	if ch == '\n' || ch == '\r' {
		e.history.Clear()
		e.state = StateIdle
		return
	}
	e.history.AppendTrailing(ch)
}

func (e *Engine) handleBackspace() {
	switch e.state {
	case StateConverted:
		if !e.history.TrimTrailing() {
			e.history.Clear()
			e.state = StateIdle
		}
	case StateBuffering, StateAwaitingDebounce:
		e.buffer.pop()
		if e.buffer.len() == 0 {
			e.timer.Cancel()
			e.state = StateIdle
			return
		}
		e.state = StateBuffering
		e.arm()
	}
}

// arm starts the quiet period for the buffered run. Without automatic
// detection the run just waits for the manual trigger.
func (e *Engine) arm() {
	if e.cfg.ManualOnly {
		return
	}
	e.timer.Restart()
	e.state = StateAwaitingDebounce
}

func (e *Engine) handleTimer(seq uint64) {
	if !e.timer.Expire(seq) {
		e.log.Debug("stale debounce fire ignored", "seq", seq)
		return
	}
	if e.state != StateAwaitingDebounce || e.buffer.len() == 0 {
		return
	}
	e.evaluate(TriggerTimer)
}

func (e *Engine) handleCommand(cmd Command) {
	switch cmd {
	case CommandConvert:
		if e.mode == types.ModeHangul || e.buffer.len() == 0 {
			return
		}
		e.evaluate(TriggerManual)
	case CommandUndo:
		e.undo()
	case CommandCancel:
		e.reset("cancel")
	case CommandToggleMode:
		e.setMode(e.mode.Toggle())
	}
}

func (e *Engine) evaluate(trigger Trigger) {
	e.timer.Cancel()
	a := e.analyze(e.buffer.text(), e.buffer.jamo, trigger)
	e.log.Debug("evaluated",
		"run", a.Run,
		"trigger", trigger.String(),
		"candidate", a.Candidate,
		"score", a.Score,
		"decision", a.Decision.String(),
		"reason", a.Reason,
	)
	switch a.Decision {
	case DecisionWait:
		e.state = StateBuffering
	case DecisionReject:
		e.discard()
		if trigger == TriggerTimer {
			e.suppress = true
		}
	case DecisionConvert:
		e.convert(a)
	}
}

func (e *Engine) convert(a Analysis) {
	count := e.buffer.len()
	e.buffer.reset()
	e.history.Clear()
	if err := e.sink.Replace(count, a.Candidate); err != nil {
		e.log.Warn("replace failed", "run", a.Run, "error", err)
		e.state = StateIdle
		return
	}
	e.history.Push(undo.Entry{Original: a.Run, Converted: a.Candidate})
	e.state = StateConverted
	e.log.Info("converted", "from", a.Run, "to", a.Candidate, "score", a.Score, "trigger", a.Trigger.String())
	if e.cfg.SwitchToHangul {
		e.switchHost(types.ModeHangul)
	}
}

// switchHost moves the host input mode through the sink. The undo entry
// survives the switch; setMode would drop it.
func (e *Engine) switchHost(mode types.InputMode) {
	if mode == e.mode {
		return
	}
	switcher, ok := e.sink.(emitter.ModeSwitcher)
	if !ok {
		return
	}
	if err := switcher.SwitchMode(mode); err != nil {
		e.log.Warn("host mode switch failed", "mode", mode.String(), "error", err)
		return
	}
	e.mode = mode
	e.log.Info("host switched", "mode", mode.String())
}

func (e *Engine) undo() {
	if e.state != StateConverted {
		return
	}
	entry, ok := e.history.Pop()
	e.state = StateIdle
	if !ok {
		return
	}
	if err := e.sink.Restore(entry.Extent(), entry.Restoration()); err != nil {
		e.log.Warn("undo failed", "text", entry.Converted, "error", err)
		return
	}
	e.switchHost(types.ModeLatin)
	// The restored word is still being typed; keep the rest of it Latin.
	e.suppress = entry.Trailing == ""
	e.log.Info("conversion undone", "restored", entry.Original)
}

func (e *Engine) discard() {
	e.timer.Cancel()
	e.buffer.reset()
	e.state = StateIdle
}

func (e *Engine) reset(reason string) {
	if e.state != StateIdle || e.suppress {
		e.log.Debug("reset", "reason", reason, "state", e.state.String())
	}
	e.discard()
	e.history.Clear()
	e.suppress = false
}

func (e *Engine) setMode(mode types.InputMode) {
	if mode == e.mode {
		return
	}
	e.reset("mode change")
	e.mode = mode
	e.log.Info("input mode changed", "mode", mode.String())
}
