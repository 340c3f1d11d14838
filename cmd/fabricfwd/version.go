package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is set at link time.
var version = "dev"

func newVersion() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the fabricfwd version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "fabricfwd %s\n", version)
			if info, ok := debug.ReadBuildInfo(); ok {
				fmt.Fprintf(out, "  Go version:   %s\n", info.GoVersion)
			}
		},
	}
}
