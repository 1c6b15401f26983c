package pager

import (
	"errors"
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
	"golang.org/x/text/unicode/norm"
)

// ErrInvalidPattern reports a scroll-to pattern that cannot be compiled or
// evaluated.
var ErrInvalidPattern = errors.New("invalid scroll-to pattern")

const patternMatchTimeout = 2 * time.Second

func compilePattern(pattern string) (*regexp2.Regexp, error) {
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}
	re.MatchTimeout = patternMatchTimeout
	return re, nil
}

// ValidatePattern reports whether pattern compiles. An empty pattern is valid
// and disables seeking.
func ValidatePattern(pattern string) error {
	if pattern == "" {
		return nil
	}
	_, err := compilePattern(pattern)
	return err
}

// lineMatcher matches lines as written and, failing that, in NFC form so a
// composed pattern finds decomposed text and vice versa.
type lineMatcher struct {
	raw *regexp2.Regexp
	nfc *regexp2.Regexp
}

func newLineMatcher(pattern string) (lineMatcher, error) {
	raw, err := compilePattern(pattern)
	if err != nil {
		return lineMatcher{}, err
	}
	m := lineMatcher{raw: raw, nfc: raw}
	if normalized := norm.NFC.String(pattern); normalized != pattern {
		if nfc, err := compilePattern(normalized); err == nil {
			m.nfc = nfc
		}
	}
	return m, nil
}

func (m lineMatcher) match(line string) (bool, error) {
	matched, err := m.raw.MatchString(line)
	if matched || err != nil {
		return matched, err
	}
	normalized := norm.NFC.String(line)
	if normalized == line && m.nfc == m.raw {
		return false, nil
	}
	return m.nfc.MatchString(normalized)
}

// seekLine returns the index of the last line matching pattern, or 0 when
// nothing matches or pattern is empty.
func seekLine(content []string, pattern string) (int, error) {
	if pattern == "" {
		return 0, nil
	}
	m, err := newLineMatcher(pattern)
	if err != nil {
		return 0, err
	}

	start := 0
	for i, line := range content {
		matched, err := m.match(line)
		if err != nil {
			return 0, fmt.Errorf("%w: line %d: %w", ErrInvalidPattern, i+1, err)
		}
		if matched {
			start = i
		}
	}
	return start, nil
}
