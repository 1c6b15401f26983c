package pager

import "github.com/gdamore/tcell/v2"

const (
	escape         = "\x1b"
	altScreenEnter = escape + "[?1049h"
	altScreenExit  = escape + "[?1049l"
	reverseStart   = escape + "[7m"
	reverseEnd     = escape + "[0m"
)

// Terminal is the capability the pager drives. Implementations own the
// underlying device; the pager never touches it directly.
type Terminal interface {
	WindowHeight() (int, error)
	BufferHeight() (int, error)
	BufferWidth() (int, error)
	// Write emits text verbatim, without an implicit newline.
	Write(s string) error
	Clear() error
	// ReadKey blocks until a key is available. The key is consumed without
	// echo. io.EOF reports that no further input will arrive.
	ReadKey() (KeyEvent, error)
}

// KeyEvent is a single captured key press. Key uses the tcell vocabulary;
// Rune is set when Key is tcell.KeyRune.
type KeyEvent struct {
	Key  tcell.Key
	Rune rune
}

func (ev KeyEvent) String() string {
	if ev.Key == tcell.KeyRune {
		return string(ev.Rune)
	}
	if name, ok := tcell.KeyNames[ev.Key]; ok {
		return name
	}
	return "Unknown"
}

// Geometry is a snapshot of the usable terminal area.
type Geometry struct {
	Height int
	Width  int
}

func readGeometry(t Terminal) (Geometry, error) {
	windowHeight, err := t.WindowHeight()
	if err != nil {
		return Geometry{}, err
	}
	bufferHeight, err := t.BufferHeight()
	if err != nil {
		return Geometry{}, err
	}
	width, err := t.BufferWidth()
	if err != nil {
		return Geometry{}, err
	}
	// Window and scrollback can disagree; never draw past either.
	return Geometry{Height: min(windowHeight, bufferHeight), Width: width}, nil
}
