// Package source turns files and streams into text the pager can display.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kk-code-lab/rpage/internal/ui/pager"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	sniffSampleSize              = 4096
	nonPrintableThresholdPercent = 30
)

// ErrBinary is returned when content does not look like text.
var ErrBinary = errors.New("content looks binary")

// Options controls how content is loaded.
type Options struct {
	// AllowBinary skips the binary check.
	AllowBinary bool
}

// LoadFile reads path and prepares it for display.
func LoadFile(path string, opts Options) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = f.Close()
	}()

	text, err := Load(f, opts)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return text, nil
}

// Load reads r to the end. Content with a UTF-8 or UTF-16 byte order mark is
// decoded to UTF-8; invalid UTF-8 is replaced. Line endings are converted to
// pager.LineSeparator and a single trailing line break is dropped so the last
// line is not followed by an empty one.
func Load(r io.Reader, opts Options) (string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read content: %w", err)
	}
	if !opts.AllowBinary && !IsText(raw) {
		return "", ErrBinary
	}

	decoded, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), raw)
	if err != nil {
		return "", fmt.Errorf("decode content: %w", err)
	}
	return normalizeLineEndings(string(decoded)), nil
}

func normalizeLineEndings(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if pager.LineSeparator != "\n" {
		text = strings.ReplaceAll(text, "\n", pager.LineSeparator)
	}
	return text
}

// IsText sniffs the head of content. BOM-marked Unicode is text and NUL bytes
// mark binary. Anything else, valid UTF-8 or not, is text while control bytes
// stay under a third of the sample.
func IsText(content []byte) bool {
	if len(content) == 0 {
		return true
	}

	sample := content
	if len(sample) > sniffSampleSize {
		sample = sample[:sniffSampleSize]
	}

	if hasUnicodeBOM(sample) {
		return true
	}
	if bytes.IndexByte(sample, 0x00) != -1 {
		return false
	}
	nonPrintable := 0
	for _, b := range sample {
		if !isCommonTextByte(b) {
			nonPrintable++
		}
	}
	return nonPrintable*100/len(sample) < nonPrintableThresholdPercent
}

func hasUnicodeBOM(sample []byte) bool {
	return bytes.HasPrefix(sample, []byte{0xEF, 0xBB, 0xBF}) ||
		bytes.HasPrefix(sample, []byte{0xFF, 0xFE}) ||
		bytes.HasPrefix(sample, []byte{0xFE, 0xFF})
}

func isCommonTextByte(b byte) bool {
	switch {
	case b == '\t' || b == '\n' || b == '\r' || b == 0x1b:
		return true
	case b >= 0x20 && b != 0x7f:
		return true
	default:
		return false
	}
}
