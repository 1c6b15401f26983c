package pager

import (
	"bufio"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// maxCSILength bounds how much of an unknown CSI sequence is consumed.
const maxCSILength = 8

func readKeyEvent(r *bufio.Reader) (KeyEvent, error) {
	b, err := r.ReadByte()
	if err != nil {
		return KeyEvent{}, err
	}

	switch {
	case b == 0x1b:
		return parseEscapeSequence(r), nil
	case b == 0x03:
		return KeyEvent{Key: tcell.KeyCtrlC}, ErrInterrupted
	case b == '\r' || b == '\n':
		return KeyEvent{Key: tcell.KeyEnter}, nil
	case b == '\t':
		return KeyEvent{Key: tcell.KeyTab}, nil
	case b == 0x7f || b == 0x08:
		return KeyEvent{Key: tcell.KeyBackspace2}, nil
	case b < 0x20:
		return KeyEvent{Key: tcell.Key(b)}, nil
	case b < utf8.RuneSelf:
		return KeyEvent{Key: tcell.KeyRune, Rune: rune(b)}, nil
	}

	buf := []byte{b}
	for !utf8.FullRune(buf) && len(buf) < utf8.UTFMax {
		next, err := r.ReadByte()
		if err != nil {
			break
		}
		buf = append(buf, next)
	}
	ru, _ := utf8.DecodeRune(buf)
	return KeyEvent{Key: tcell.KeyRune, Rune: ru}, nil
}

func parseEscapeSequence(r *bufio.Reader) KeyEvent {
	// A lone ESC has nothing queued behind it.
	if r.Buffered() == 0 {
		return KeyEvent{Key: tcell.KeyEscape}
	}
	next, err := r.ReadByte()
	if err != nil {
		return KeyEvent{Key: tcell.KeyEscape}
	}

	switch next {
	case '[':
		return parseCSI(r)
	case 'O':
		// SS3, sent for cursor keys in application mode.
		final, err := r.ReadByte()
		if err != nil {
			return KeyEvent{Key: tcell.KeyEscape}
		}
		if key, ok := cursorKey(final); ok {
			return KeyEvent{Key: key}
		}
		return KeyEvent{Key: tcell.KeyNUL}
	default:
		return KeyEvent{Key: tcell.KeyEscape}
	}
}

func parseCSI(r *bufio.Reader) KeyEvent {
	seq := make([]byte, 0, maxCSILength)
	for {
		b, err := r.ReadByte()
		if err != nil {
			return KeyEvent{Key: tcell.KeyEscape}
		}
		seq = append(seq, b)
		if isCSIFinal(b) || len(seq) >= maxCSILength {
			break
		}
	}

	final := seq[len(seq)-1]
	if key, ok := cursorKey(final); ok {
		return KeyEvent{Key: key}
	}
	if final == '~' {
		switch string(seq[:len(seq)-1]) {
		case "1", "7":
			return KeyEvent{Key: tcell.KeyHome}
		case "3":
			return KeyEvent{Key: tcell.KeyDelete}
		case "4", "8":
			return KeyEvent{Key: tcell.KeyEnd}
		case "5":
			return KeyEvent{Key: tcell.KeyPgUp}
		case "6":
			return KeyEvent{Key: tcell.KeyPgDn}
		}
	}
	return KeyEvent{Key: tcell.KeyNUL}
}

// isCSIFinal reports the byte that terminates a control sequence.
func isCSIFinal(b byte) bool {
	return b >= 0x40 && b <= 0x7e
}

func cursorKey(final byte) (tcell.Key, bool) {
	switch final {
	case 'A':
		return tcell.KeyUp, true
	case 'B':
		return tcell.KeyDown, true
	case 'C':
		return tcell.KeyRight, true
	case 'D':
		return tcell.KeyLeft, true
	case 'H':
		return tcell.KeyHome, true
	case 'F':
		return tcell.KeyEnd, true
	}
	return 0, false
}
