package main

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
)

const defaultModule = "github.com/kk-code-lab/rpage"

// buildVersion is set via -ldflags "-X main.buildVersion=...".
var buildVersion = ""

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			module, ver := versionInfo()
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", module, ver)
			return err
		},
	}
}

func versionInfo() (module, ver string) {
	module, ver = defaultModule, "v0.0.0-unknown"
	if v := strings.TrimSpace(buildVersion); v != "" {
		ver = v
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return module, ver
	}
	if path := strings.TrimSpace(info.Main.Path); path != "" {
		module = path
	}
	if buildVersion == "" {
		if v := strings.TrimSpace(info.Main.Version); v != "" && v != "(devel)" {
			ver = v
		}
	}
	return module, ver
}
