package pager

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/kk-code-lab/rpage/internal/textutil"
	"pkt.systems/pslog"
)

// ScrollState is the index of the first displayed line.
type ScrollState struct {
	StartLine int
}

// Transition applies cmd to state. render reports whether the screen must be
// redrawn; quit reports that the session is over. geo is the geometry of the
// last rendered frame and lineCount the number of content lines.
func Transition(state ScrollState, cmd Command, geo Geometry, lineCount int) (next ScrollState, render, quit bool) {
	switch cmd {
	case CommandScrollUp:
		if state.StartLine > 0 {
			state.StartLine--
			return state, true, false
		}
	case CommandScrollDown:
		// Scrolling is only possible when content exceeds one screenful.
		// The last line may be scrolled up to the top row but no further.
		if geo.Height-1 < lineCount && state.StartLine < lineCount-1 {
			state.StartLine++
			return state, true, false
		}
	case CommandQuit:
		return state, false, true
	}
	return state, false, false
}

// Option configures a Pager.
type Option func(*Pager)

// WithLogger sets the logger used for session diagnostics.
func WithLogger(logger pslog.Logger) Option {
	return func(p *Pager) {
		if logger != nil {
			p.log = logger
		}
	}
}

// WithTabWidth expands tabs to the given width before display. Zero leaves
// tabs untouched.
func WithTabWidth(width int) Option {
	return func(p *Pager) {
		p.tabWidth = max(0, width)
	}
}

// WithSanitize makes control characters in the content visible instead of
// passing them through to the terminal.
func WithSanitize(enabled bool) Option {
	return func(p *Pager) {
		p.sanitize = enabled
	}
}

// Pager shows content on a Terminal one screenful at a time.
type Pager struct {
	term     Terminal
	renderer screenRenderer
	log      pslog.Logger
	tabWidth int
	sanitize bool
}

// New returns a pager drawing on term.
func New(term Terminal, opts ...Option) *Pager {
	p := &Pager{
		term:     term,
		renderer: screenRenderer{term: term},
		log:      discardLogger(),
		tabWidth: textutil.DefaultTabWidth,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func discardLogger() pslog.Logger {
	return pslog.NewWithOptions(io.Discard, pslog.Options{
		Mode:     pslog.ModeStructured,
		NoColor:  true,
		MinLevel: pslog.ErrorLevel,
	})
}

// Display pages content, split on LineSeparator, until the user quits or
// input ends. When scrollToPattern is not empty the view starts at the last
// line matching it. Pattern errors are returned before the screen is touched.
func (p *Pager) Display(content, scrollToPattern string) (err error) {
	if p.term == nil {
		return errors.New("pager: no terminal")
	}

	lines := SplitLines(content)
	start, err := seekLine(lines, scrollToPattern)
	if err != nil {
		return err
	}
	lines = p.prepareLines(lines)

	log := p.log.With("lines", len(lines))
	log.Info("pager session start", "start_line", start, "pattern", scrollToPattern != "")

	defer func() {
		if exitErr := p.renderer.exit(); exitErr != nil {
			log.Warn("pager teardown failed", "err", exitErr)
			if err == nil {
				err = exitErr
			}
		}
		if err != nil {
			log.Error("pager session failed", "err", err)
			return
		}
		log.Info("pager session end")
	}()
	if err := p.renderer.enter(); err != nil {
		return err
	}

	return p.loop(lines, ScrollState{StartLine: start}, log)
}

func (p *Pager) loop(lines []string, state ScrollState, log pslog.Logger) error {
	var geo Geometry
	dirty := true
	for {
		if dirty {
			g, err := readGeometry(p.term)
			if err != nil {
				return fmt.Errorf("query terminal size: %w", err)
			}
			geo = g
			plan, err := p.renderer.render(lines, state, geo)
			if err != nil {
				return err
			}
			log.Debug("pager render",
				"start_line", state.StartLine,
				"height", geo.Height,
				"width", geo.Width,
				"wrap_offset", plan.WrapOffset,
				"padding", plan.PaddingRows,
			)
		}

		ev, err := p.term.ReadKey()
		if errors.Is(err, io.EOF) {
			log.Debug("pager input closed")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read key: %w", err)
		}

		cmd := MapKey(ev)
		log.Debug("pager key", "key", ev.String(), "command", cmd.String())

		next, render, quit := Transition(state, cmd, geo, len(lines))
		if quit {
			return nil
		}
		state, dirty = next, render
	}
}

func (p *Pager) prepareLines(lines []string) []string {
	if p.tabWidth <= 0 && !p.sanitize {
		return lines
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		line = textutil.ExpandTabs(line, p.tabWidth)
		if p.sanitize {
			line = textutil.SanitizeTerminalText(line)
		}
		out[i] = line
	}
	return out
}

// SplitLines breaks content on LineSeparator. Empty content is one empty line.
func SplitLines(content string) []string {
	return strings.Split(content, LineSeparator)
}
