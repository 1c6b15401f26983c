package textutil

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

const DefaultTabWidth = 4

// DisplayWidth reports how many terminal columns text occupies. Escape
// sequences take no columns and grapheme clusters count once.
func DisplayWidth(text string) int {
	return ansi.StringWidth(text)
}

// ExpandTabs replaces tab characters with spaces up to the next tab stop.
func ExpandTabs(text string, tabWidth int) string {
	if tabWidth <= 0 || !strings.ContainsRune(text, '\t') {
		return text
	}

	var builder strings.Builder
	builder.Grow(len(text) + tabWidth)
	column := 0
	for _, ru := range text {
		if ru == '\t' {
			spaces := tabWidth - (column % tabWidth)
			builder.WriteString(strings.Repeat(" ", spaces))
			column += spaces
			continue
		}
		builder.WriteRune(ru)
		column += max(1, runewidth.RuneWidth(ru))
	}
	return builder.String()
}
