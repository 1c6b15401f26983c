package pager

import (
	"github.com/kk-code-lab/rpage/internal/textutil"
)

// RenderPlan describes a single frame. It is rebuilt on every render.
type RenderPlan struct {
	VisibleLines []string
	PaddingRows  int
	WrapOffset   int
}

// WrapOffset counts the extra physical rows taken by lines wider than width
// in the window candidate range [startLine, min(startLine+height, n-1)].
// Width is measured in terminal columns, not characters: escape sequences
// count as zero and wide runes as two. For plain ASCII the two agree.
func WrapOffset(content []string, startLine, height, width int) int {
	if width <= 0 || len(content) == 0 {
		return 0
	}
	if startLine < 0 {
		startLine = 0
	}
	endLine := min(startLine+height, len(content)-1)

	offset := 0
	for i := startLine; i <= endLine; i++ {
		offset += rowSpan(content[i], width) - 1
	}
	return offset
}

func rowSpan(line string, width int) int {
	w := textutil.DisplayWidth(line)
	if w <= width {
		return 1
	}
	rows := w / width
	if w%width != 0 {
		rows++
	}
	return rows
}

// VisibleSlice returns the logical lines that fit above the status row once
// offset wrapped rows are accounted for.
func VisibleSlice(content []string, startLine, height, offset int) []string {
	budget := rowBudget(height, offset)
	if startLine < 0 || startLine >= len(content) || budget == 0 {
		return nil
	}
	end := min(startLine+budget, len(content))
	return content[startLine:end]
}

func rowBudget(height, offset int) int {
	return max(0, height-offset-1)
}

// Plan computes the frame for state under geometry.
func Plan(content []string, state ScrollState, geo Geometry) RenderPlan {
	offset := WrapOffset(content, state.StartLine, geo.Height, geo.Width)
	visible := VisibleSlice(content, state.StartLine, geo.Height, offset)
	return RenderPlan{
		VisibleLines: visible,
		PaddingRows:  max(0, rowBudget(geo.Height, offset)-len(visible)),
		WrapOffset:   offset,
	}
}

// Rows returns the lines to write: the visible slice followed by
// PaddingRows+1 blanks. The last blank is the row the status line lands on.
func (rp RenderPlan) Rows() []string {
	rows := make([]string, 0, len(rp.VisibleLines)+rp.PaddingRows+1)
	rows = append(rows, rp.VisibleLines...)
	for i := 0; i <= rp.PaddingRows; i++ {
		rows = append(rows, "")
	}
	return rows
}
