package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kk-code-lab/rpage/internal/config"
	"github.com/kk-code-lab/rpage/internal/source"
	"github.com/kk-code-lab/rpage/internal/ui/pager"
	"pkt.systems/pslog"
)

const stdinName = "-"

var errNoInput = errors.New("no input: name a file or pipe text into rpage")

// displayFunc is swapped in tests to keep the terminal out of the way.
var displayFunc = pager.Display

type pageOptions struct {
	pattern string
	force   bool
}

func runPage(cmd *cobra.Command, args []string, global globalOptions, opts pageOptions) error {
	cfg, err := config.Load(global.configPath, cmd.Flags())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := pager.ValidatePattern(opts.pattern); err != nil {
		return err
	}

	name := stdinName
	if len(args) == 1 {
		name = args[0]
	}
	content, err := readContent(cmd.InOrStdin(), name, source.Options{AllowBinary: opts.force})
	if err != nil {
		return err
	}

	logger, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	pslog.Ctx(cmd.Context()).Debug("paging", "source", name, "bytes", len(content))

	displayOpts := []pager.Option{
		pager.WithTabWidth(cfg.TabWidth),
		pager.WithSanitize(!cfg.RawControlChars),
	}
	if logger != nil {
		displayOpts = append(displayOpts, pager.WithLogger(logger.With("source", name)))
	}
	return displayFunc(content, opts.pattern, displayOpts...)
}

func readContent(stdin io.Reader, name string, opts source.Options) (string, error) {
	if name != stdinName {
		return source.LoadFile(name, opts)
	}
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "", errNoInput
	}
	content, err := source.Load(stdin, opts)
	if err != nil {
		return "", fmt.Errorf("stdin: %w", err)
	}
	return content, nil
}

// openLogger returns a structured file logger when log_file is configured.
// Without one the pager keeps its silent default: the terminal belongs to
// the UI while paging.
func openLogger(cfg config.Config) (pslog.Logger, func(), error) {
	if cfg.LogFile == "" {
		return nil, func() {}, nil
	}
	opts, err := cfg.LoggerOptions()
	if err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return pslog.NewWithOptions(f, opts), func() { _ = f.Close() }, nil
}
