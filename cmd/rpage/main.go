package main

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"

	"pkt.systems/psi"
	"pkt.systems/pslog"
)

func main() {
	psi.Run(submain)
}

func submain(ctx context.Context) int {
	logger := pslog.LoggerFromEnv(
		pslog.WithEnvWriter(os.Stderr),
		pslog.WithEnvOptions(pslog.Options{Mode: pslog.ModeConsole}),
	)
	ctx = pslog.ContextWithLogger(ctx, logger)
	log.SetOutput(pslog.LogLogger(logger).Writer())
	log.SetFlags(0)

	root := newRootCmd()
	root.SetArgs(os.Args[1:])

	if err := root.ExecuteContext(ctx); err != nil {
		pslog.Ctx(ctx).With("err", err).Error("rpage failed")
		return 1
	}
	return 0
}

// globalOptions are shared by every subcommand.
type globalOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	var global globalOptions
	var opts pageOptions

	root := &cobra.Command{
		Use:   "rpage [file]",
		Short: "Page text in the terminal, one screenful at a time",
		Long: `rpage shows a file, or text piped on stdin, in the terminal's alternate
screen. Up and Down scroll by one line, Q quits.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPage(cmd, args, global, opts)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&global.configPath, "config", "c", "", "config file (default $XDG_CONFIG_HOME/rpage/config.yaml)")
	pf.Int("tab-width", 4, "expand tabs to this many columns (0 keeps them)")
	pf.BoolP("raw-control-chars", "R", false, "pass control characters and escape sequences through")
	pf.String("log-file", "", "write structured logs to this file")
	pf.String("log-level", "info", "log level: trace, debug, info or error")

	f := root.Flags()
	f.StringVarP(&opts.pattern, "pattern", "p", "", "start at the last line matching this regular expression")
	f.BoolVarP(&opts.force, "force", "f", false, "page content that looks binary")

	root.AddCommand(newConfigCmd(&global))
	root.AddCommand(newVersionCmd())

	return root
}
