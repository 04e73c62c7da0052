package undo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistorySingleSlot(t *testing.T) {
	var h History
	assert.True(t, h.Empty())

	h.Push(Entry{Original: "dkssud", Converted: "안녕"})
	h.Push(Entry{Original: "gksrmf", Converted: "한글"})

	entry, ok := h.Pop()
	assert.True(t, ok)
	assert.Equal(t, "gksrmf", entry.Original)

	_, ok = h.Pop()
	assert.False(t, ok, "second pop is a no-op")
}

func TestHistoryTrailing(t *testing.T) {
	var h History
	assert.False(t, h.TrimTrailing())
	h.AppendTrailing('x')

	h.Push(Entry{Original: "dkssud", Converted: "안녕"})
	h.AppendTrailing(' ')
	h.AppendTrailing('!')

	entry, _ := h.Peek()
	assert.Equal(t, 4, entry.Extent())
	assert.Equal(t, "dkssud !", entry.Restoration())

	assert.True(t, h.TrimTrailing())
	assert.True(t, h.TrimTrailing())
	assert.False(t, h.TrimTrailing())

	entry, _ = h.Peek()
	assert.Equal(t, 2, entry.Extent())
	assert.Equal(t, "dkssud", entry.Restoration())
}

func TestHistoryClear(t *testing.T) {
	var h History
	h.Push(Entry{Original: "a", Converted: "ㅁ"})
	h.Clear()
	_, ok := h.Peek()
	assert.False(t, ok)
}
