package pager

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrInterrupted is returned by TTY.ReadKey when the user presses Ctrl-C.
// Raw mode turns the key into input instead of a signal.
var ErrInterrupted = errors.New("interrupted")

const (
	clearScreen = escape + "[2J" + escape + "[H"
	hideCursor  = escape + "[?25l"
	showCursor  = escape + "[?25h"
	enableWrap  = escape + "[?7h"
)

var (
	termGetSize = term.GetSize
	termMakeRaw = term.MakeRaw
	termRestore = term.Restore
)

var newlineNormalizer = strings.NewReplacer("\r\n", "\r\n", "\n", "\r\n")

// TTY is a Terminal backed by the controlling terminal in raw mode.
type TTY struct {
	input          *os.File
	output         *os.File
	reader         *bufio.Reader
	writer         *bufio.Writer
	restoreTerm    *term.State
	restoreConsole func()
}

// OpenTTY opens the controlling terminal and switches it to raw mode so key
// presses are delivered without echo or line buffering.
func OpenTTY() (*TTY, error) {
	in, out, err := openConsole()
	if err != nil {
		return nil, fmt.Errorf("open tty: %w", err)
	}
	t := &TTY{input: in, output: out}

	t.reader = bufio.NewReader(t.input)
	t.writer = bufio.NewWriter(t.output)

	rawState, err := termMakeRaw(int(t.input.Fd()))
	if err != nil {
		t.closeInput()
		return nil, fmt.Errorf("enter raw mode: %w", err)
	}
	t.restoreTerm = rawState

	restore, err := prepareConsole(t.input, t.output)
	if err != nil {
		_ = termRestore(int(t.input.Fd()), t.restoreTerm)
		t.closeInput()
		return nil, fmt.Errorf("prepare console: %w", err)
	}
	t.restoreConsole = restore

	_, _ = t.writer.WriteString(hideCursor)
	return t, nil
}

// Close shows the cursor, re-enables line wrap and restores the terminal
// mode saved by OpenTTY.
func (t *TTY) Close() error {
	var errs []error
	if t.writer != nil {
		_, _ = t.writer.WriteString(showCursor)
		_, _ = t.writer.WriteString(enableWrap)
		if err := t.writer.Flush(); err != nil {
			errs = append(errs, err)
		}
		t.writer = nil
	}
	if t.restoreConsole != nil {
		t.restoreConsole()
		t.restoreConsole = nil
	}
	if t.input != nil && t.restoreTerm != nil {
		if err := termRestore(int(t.input.Fd()), t.restoreTerm); err != nil {
			errs = append(errs, fmt.Errorf("restore terminal: %w", err))
		}
		t.restoreTerm = nil
	}
	t.closeInput()
	return errors.Join(errs...)
}

func (t *TTY) closeInput() {
	if t.output != nil && t.output != t.input {
		_ = t.output.Close()
	}
	if t.input != nil {
		_ = t.input.Close()
	}
	t.input = nil
	t.output = nil
}

// size asks the input descriptor first and falls back to the output one;
// redirected descriptors on some platforms only answer on one side.
func (t *TTY) size() (width, height int, err error) {
	if t.input == nil && t.output == nil {
		return 0, 0, errors.New("no tty available")
	}
	if t.input != nil {
		if width, height, err = termGetSize(int(t.input.Fd())); err == nil {
			return width, height, nil
		}
	}
	if t.output != nil && t.output != t.input {
		if width, height, err = termGetSize(int(t.output.Fd())); err == nil {
			return width, height, nil
		}
	}
	return 0, 0, fmt.Errorf("terminal size: %w", err)
}

func (t *TTY) WindowHeight() (int, error) {
	_, height, err := t.size()
	return height, err
}

func (t *TTY) BufferHeight() (int, error) {
	return bufferHeight(t)
}

func (t *TTY) BufferWidth() (int, error) {
	width, _, err := t.size()
	return width, err
}

// Write queues s for output. Raw mode disables output post-processing, so
// bare line feeds are expanded to CR LF.
func (t *TTY) Write(s string) error {
	if t.writer == nil {
		return errors.New("no tty available")
	}
	_, err := newlineNormalizer.WriteString(t.writer, s)
	return err
}

func (t *TTY) Clear() error {
	if t.writer == nil {
		return errors.New("no tty available")
	}
	_, err := t.writer.WriteString(clearScreen)
	return err
}

// ReadKey flushes pending output and blocks for the next key press.
func (t *TTY) ReadKey() (KeyEvent, error) {
	if t.writer != nil {
		if err := t.writer.Flush(); err != nil {
			return KeyEvent{}, err
		}
	}
	if t.reader == nil {
		return KeyEvent{}, errors.New("no reader available")
	}
	return readKeyEvent(t.reader)
}

// Display pages content on the controlling terminal. It is the entry point for
// hosts that have text in hand and no terminal of their own.
func Display(content, scrollToPattern string, opts ...Option) (err error) {
	if err := ValidatePattern(scrollToPattern); err != nil {
		return err
	}

	tty, err := OpenTTY()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := tty.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	return New(tty, opts...).Display(content, scrollToPattern)
}
