package textutil

import (
	"fmt"
	"strings"
)

// SanitizeTerminalText makes control characters visible so content cannot
// move the cursor or change terminal modes. C0 controls and DEL use caret
// notation (ESC becomes ^[); bidi and zero-width formatting runes become
// <U+XXXX>. Tabs are left for ExpandTabs.
func SanitizeTerminalText(text string) string {
	if !strings.ContainsFunc(text, needsEscape) {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + 8)
	for _, r := range text {
		switch {
		case r == '\t':
			b.WriteRune(r)
		case r < 0x20:
			b.WriteByte('^')
			b.WriteByte(byte(r) + '@')
		case r == 0x7f:
			b.WriteString("^?")
		case isFormattingRune(r):
			fmt.Fprintf(&b, "<U+%04X>", r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func needsEscape(r rune) bool {
	if r == '\t' {
		return false
	}
	return r < 0x20 || r == 0x7f || isFormattingRune(r)
}

// isFormattingRune reports invisible runes that reorder or join text.
func isFormattingRune(r rune) bool {
	switch {
	case r == 0x00AD, r == 0x061C, r == 0x180E, r == 0xFEFF:
		return true
	case r >= 0x200B && r <= 0x200F:
		return true
	case r >= 0x2028 && r <= 0x202E:
		return true
	case r >= 0x2060 && r <= 0x206F:
		return true
	}
	return false
}
