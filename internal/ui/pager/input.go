package pager

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// Command is what a key press asks the pager to do.
type Command int

const (
	CommandNoOp Command = iota
	CommandScrollUp
	CommandScrollDown
	CommandQuit
)

func (c Command) String() string {
	switch c {
	case CommandScrollUp:
		return "scroll-up"
	case CommandScrollDown:
		return "scroll-down"
	case CommandQuit:
		return "quit"
	default:
		return "noop"
	}
}

// quitKey is shown in the status line and accepted in either case.
const quitKey = 'Q'

// MapKey classifies a key press. Unrecognized keys map to CommandNoOp.
func MapKey(ev KeyEvent) Command {
	switch ev.Key {
	case tcell.KeyUp:
		return CommandScrollUp
	case tcell.KeyDown:
		return CommandScrollDown
	case tcell.KeyRune:
		if unicode.ToUpper(ev.Rune) == quitKey {
			return CommandQuit
		}
	}
	return CommandNoOp
}
