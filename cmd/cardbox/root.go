package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

// NewRootCmd creates the root command for the cardbox tool.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cardbox",
		Short: "Inspect, unpack and validate CardBox containers",
		Long: `cardbox works with CardBox containers: ZIP-structured bundles holding a
card document's metadata, its ordered component manifest and one
configuration file per component.

Decoding is best-effort by default: problems scoped to a single component
are reported as warnings instead of failing the whole document.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewInspectCmd())
	cmd.AddCommand(NewUnpackCmd())
	cmd.AddCommand(NewValidateCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
