// fabricfwd is a reactive forwarding controller for a switched fabric. It
// learns nothing: hosts and cables come from a fabric description, and the
// first IPv4 frame between two hosts installs the rules that carry the rest
// of their traffic.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRoot().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   filepath.Base(os.Args[0]),
		Short: "Reactive forwarding controller",
		Args:  cobra.NoArgs,
		// Errors are printed by main.
		SilenceErrors: true,
	}
	cmd.AddCommand(
		newServe(),
		newSessions(),
		newReplay(),
		newVersion(),
	)
	return cmd
}
