package engine

import (
	"autohan/internal/exception"
	"autohan/internal/types"
)

// Event is anything the engine's owner loop consumes.
type Event interface {
	isEvent()
}

type KeyPressed struct {
	Key types.KeyEvent
}

// ModeChanged reports that the host switched its input mode.
type ModeChanged struct {
	Mode types.InputMode
}

// FilterReloaded swaps the exception filter for subsequent evaluations.
type FilterReloaded struct {
	Filter *exception.Filter
}

type Command int

const (
	CommandConvert Command = iota
	CommandUndo
	CommandCancel
	CommandToggleMode
)

func (c Command) String() string {
	switch c {
	case CommandConvert:
		return "convert"
	case CommandUndo:
		return "undo"
	case CommandCancel:
		return "cancel"
	case CommandToggleMode:
		return "toggle"
	default:
		return "unknown"
	}
}

type timerFired struct {
	seq uint64
}

func (KeyPressed) isEvent()     {}
func (ModeChanged) isEvent()    {}
func (FilterReloaded) isEvent() {}
func (Command) isEvent()        {}
func (timerFired) isEvent()     {}
