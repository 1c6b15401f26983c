package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kk-code-lab/rpage/internal/source"
	"github.com/kk-code-lab/rpage/internal/ui/pager"
)

type displayCall struct {
	content string
	pattern string
	opts    int
}

func stubDisplay(t *testing.T, err error) *[]displayCall {
	t.Helper()
	original := displayFunc
	t.Cleanup(func() {
		displayFunc = original
	})

	var calls []displayCall
	displayFunc = func(content, pattern string, opts ...pager.Option) error {
		calls = append(calls, displayCall{content: content, pattern: pattern, opts: len(opts)})
		return err
	}
	return &calls
}

func isolateConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	t.Setenv("AppData", dir)
	return dir
}

func runRoot(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRootHasSubcommands(t *testing.T) {
	root := newRootCmd()
	want := map[string]bool{"config": false, "version": false}
	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Fatalf("expected root command to include %s", name)
		}
	}
}

func TestPageFile(t *testing.T) {
	dir := isolateConfig(t)
	calls := stubDisplay(t, nil)

	path := filepath.Join(dir, "log.txt")
	if err := os.WriteFile(path, []byte("alpha\nbeta\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if _, err := runRoot(t, "", path, "-p", "be.a"); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(*calls) != 1 {
		t.Fatalf("expected one display call, got %d", len(*calls))
	}
	call := (*calls)[0]
	if want := "alpha" + pager.LineSeparator + "beta"; call.content != want {
		t.Fatalf("content=%q want %q", call.content, want)
	}
	if call.pattern != "be.a" {
		t.Fatalf("pattern=%q want be.a", call.pattern)
	}
	if call.opts != 2 {
		t.Fatalf("expected tab width and sanitize options without a log file, got %d", call.opts)
	}
}

func TestPageStdin(t *testing.T) {
	isolateConfig(t)
	calls := stubDisplay(t, nil)

	if _, err := runRoot(t, "one\ntwo\n"); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(*calls) != 1 || len(pager.SplitLines((*calls)[0].content)) != 2 {
		t.Fatalf("expected two lines from stdin, got %+v", *calls)
	}
}

func TestPageRejectsInvalidPatternBeforeDisplay(t *testing.T) {
	isolateConfig(t)
	calls := stubDisplay(t, nil)

	_, err := runRoot(t, "text", "-p", "(")
	if !errors.Is(err, pager.ErrInvalidPattern) {
		t.Fatalf("expected ErrInvalidPattern, got %v", err)
	}
	if len(*calls) != 0 {
		t.Fatalf("display must not run for an invalid pattern")
	}
}

func TestPageRejectsBinaryUnlessForced(t *testing.T) {
	isolateConfig(t)
	calls := stubDisplay(t, nil)

	if _, err := runRoot(t, "\x00\x01\x02"); !errors.Is(err, source.ErrBinary) {
		t.Fatalf("expected ErrBinary, got %v", err)
	}
	if _, err := runRoot(t, "\x00\x01\x02", "--force"); err != nil {
		t.Fatalf("expected forced binary to page, got %v", err)
	}
	if len(*calls) != 1 {
		t.Fatalf("expected exactly one display call, got %d", len(*calls))
	}
}

func TestPagePropagatesDisplayError(t *testing.T) {
	isolateConfig(t)
	stubDisplay(t, pager.ErrInterrupted)

	if _, err := runRoot(t, "text"); !errors.Is(err, pager.ErrInterrupted) {
		t.Fatalf("expected display error, got %v", err)
	}
}

func TestPageWithLogFileAddsLogger(t *testing.T) {
	dir := isolateConfig(t)
	calls := stubDisplay(t, nil)

	logPath := filepath.Join(dir, "rpage.log")
	if _, err := runRoot(t, "text", "--log-file", logPath, "--log-level", "debug"); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if (*calls)[0].opts != 3 {
		t.Fatalf("expected logger option, got %d options", (*calls)[0].opts)
	}
	if _, err := os.Stat(logPath); err != nil {
		t.Fatalf("expected log file to be created: %v", err)
	}
}

func TestPageMissingFile(t *testing.T) {
	dir := isolateConfig(t)
	stubDisplay(t, nil)

	if _, err := runRoot(t, "", filepath.Join(dir, "missing.txt")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestReadContentRefusesTerminalStdin(t *testing.T) {
	tty, err := os.Open("/dev/tty")
	if err != nil {
		t.Skip("no controlling terminal")
	}
	defer func() {
		_ = tty.Close()
	}()

	if _, err := readContent(tty, stdinName, source.Options{}); !errors.Is(err, errNoInput) {
		t.Fatalf("expected errNoInput, got %v", err)
	}
}

func TestConfigCommandPrintsEffectiveConfig(t *testing.T) {
	dir := isolateConfig(t)
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("tab_width: 8\nlog_level: debug\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out, err := runRoot(t, "", "config", "--config", path, "--tab-width", "2", "-R")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	for _, want := range []string{"tab_width: 2", "raw_control_chars: true", "log_level: debug"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := runRoot(t, "", "version")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	fields := strings.Fields(out)
	if len(fields) != 2 || fields[1] == "" {
		t.Fatalf("unexpected version output %q", out)
	}
}
