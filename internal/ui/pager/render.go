package pager

import (
	"fmt"
	"strings"
)

// statusLine is written directly after the last padding row.
var statusLine = reverseStart + "Up:" + reverseEnd + "↑ " +
	reverseStart + "Down:" + reverseEnd + "↓ " +
	reverseStart + "Quit:" + reverseEnd + string(quitKey) + " " +
	": "

// StatusLine returns the prompt shown on the last terminal row.
func StatusLine() string {
	return statusLine
}

type screenRenderer struct {
	term Terminal
}

func (r screenRenderer) enter() error {
	if err := r.term.Write(altScreenEnter); err != nil {
		return fmt.Errorf("enter alternate screen: %w", err)
	}
	return nil
}

func (r screenRenderer) exit() error {
	if err := r.term.Write(altScreenExit); err != nil {
		return fmt.Errorf("exit alternate screen: %w", err)
	}
	return nil
}

func (r screenRenderer) render(content []string, state ScrollState, geo Geometry) (RenderPlan, error) {
	if err := r.term.Clear(); err != nil {
		return RenderPlan{}, fmt.Errorf("clear screen: %w", err)
	}

	plan := Plan(content, state, geo)
	if err := r.term.Write(strings.Join(plan.Rows(), LineSeparator)); err != nil {
		return plan, fmt.Errorf("write content: %w", err)
	}
	if err := r.term.Write(statusLine); err != nil {
		return plan, fmt.Errorf("write status line: %w", err)
	}
	return plan, nil
}
