package pager

import (
	"fmt"
	"io"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// fakeTerminal records output and replays scripted key presses. Once keys
// run out ReadKey returns readErr, or io.EOF when it is nil.
type fakeTerminal struct {
	windowHeight int
	bufferHeight int
	width        int

	keys    []KeyEvent
	readErr error

	writeErr   error
	failWrites int // number of successful writes before writeErr applies
	sizeErr    error

	writes []string
	clears int
	events []string
}

func newFakeTerminal(height, width int, keys ...KeyEvent) *fakeTerminal {
	return &fakeTerminal{
		windowHeight: height,
		bufferHeight: height,
		width:        width,
		keys:         keys,
	}
}

func (f *fakeTerminal) WindowHeight() (int, error) { return f.windowHeight, f.sizeErr }
func (f *fakeTerminal) BufferHeight() (int, error) { return f.bufferHeight, f.sizeErr }
func (f *fakeTerminal) BufferWidth() (int, error) { return f.width, f.sizeErr }

func (f *fakeTerminal) Write(s string) error {
	if f.writeErr != nil && len(f.writes) >= f.failWrites {
		// Teardown writes still go through so tests can observe them.
		if s != altScreenExit {
			return f.writeErr
		}
	}
	f.writes = append(f.writes, s)
	f.events = append(f.events, "write")
	return nil
}

func (f *fakeTerminal) Clear() error {
	f.clears++
	f.events = append(f.events, "clear")
	return nil
}

func (f *fakeTerminal) ReadKey() (KeyEvent, error) {
	f.events = append(f.events, "read")
	if len(f.keys) == 0 {
		if f.readErr != nil {
			return KeyEvent{}, f.readErr
		}
		return KeyEvent{}, io.EOF
	}
	ev := f.keys[0]
	f.keys = f.keys[1:]
	return ev, nil
}

// frames returns the content block of every render, in order.
func (f *fakeTerminal) frames() []string {
	var out []string
	for i, w := range f.writes {
		if w == statusLine && i > 0 {
			out = append(out, f.writes[i-1])
		}
	}
	return out
}

func (f *fakeTerminal) output() string {
	return strings.Join(f.writes, "")
}

func keyUp() KeyEvent { return KeyEvent{Key: tcell.KeyUp} }

func keyDown() KeyEvent { return KeyEvent{Key: tcell.KeyDown} }

func keyRune(r rune) KeyEvent { return KeyEvent{Key: tcell.KeyRune, Rune: r} }

func numberedLines(n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line-%d", i)
	}
	return lines
}
