package engine

import "autohan/internal/types"

type State int

const (
	StateIdle State = iota
	StateBuffering
	StateAwaitingDebounce
	StateConverted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateBuffering:
		return "buffering"
	case StateAwaitingDebounce:
		return "awaiting-debounce"
	case StateConverted:
		return "converted"
	default:
		return "unknown"
	}
}

// pendingBuffer holds the keys of the current run and their jamo.
type pendingBuffer struct {
	keys []types.KeyEvent
	jamo []rune
}

func (b *pendingBuffer) push(key types.KeyEvent, jamo rune) {
	b.keys = append(b.keys, key)
	b.jamo = append(b.jamo, jamo)
}

func (b *pendingBuffer) pop() {
	if len(b.keys) == 0 {
		return
	}
	b.keys = b.keys[:len(b.keys)-1]
	b.jamo = b.jamo[:len(b.jamo)-1]
}

func (b *pendingBuffer) reset() {
	b.keys = b.keys[:0]
	b.jamo = b.jamo[:0]
}

func (b *pendingBuffer) len() int { return len(b.keys) }

// text is the run as it appears in the application.
func (b *pendingBuffer) text() string {
	out := make([]rune, len(b.keys))
	for i, key := range b.keys {
		out[i] = key.Char()
	}
	return string(out)
}
