package undo

import "unicode/utf8"

// Entry describes one replacement. Trailing is text typed after the
// converted text, which sits between it and the caret.
type Entry struct {
	Original  string
	Converted string
	Trailing  string
}

// Extent is the number of characters between the start of the converted
// text and the caret.
func (e Entry) Extent() int {
	return utf8.RuneCountInString(e.Converted) + utf8.RuneCountInString(e.Trailing)
}

// Restoration is the text that replaces the extent on undo.
func (e Entry) Restoration() string {
	return e.Original + e.Trailing
}

// History keeps a single undo slot. It is owned by one goroutine.
type History struct {
	entry *Entry
}

// Push stores entry, discarding any previous one.
func (h *History) Push(entry Entry) {
	h.entry = &entry
}

func (h *History) Peek() (Entry, bool) {
	if h.entry == nil {
		return Entry{}, false
	}
	return *h.entry, true
}

func (h *History) Pop() (Entry, bool) {
	entry, ok := h.Peek()
	h.entry = nil
	return entry, ok
}

func (h *History) Clear() { h.entry = nil }

func (h *History) Empty() bool { return h.entry == nil }

func (h *History) AppendTrailing(ch rune) {
	if h.entry != nil {
		h.entry.Trailing += string(ch)
	}
}

// TrimTrailing removes the last trailing character. It reports false when
// there was nothing to remove.
func (h *History) TrimTrailing() bool {
	if h.entry == nil || h.entry.Trailing == "" {
		return false
	}
	_, size := utf8.DecodeLastRuneInString(h.entry.Trailing)
	h.entry.Trailing = h.entry.Trailing[:len(h.entry.Trailing)-size]
	return true
}
