// Package main is the entry point for the tcm CLI.
package main

import (
	"fmt"
	"os"

	"github.com/jacksmith/casepack/internal/cli"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tcm",
	Short: "tcm - a test case manager for programming problems",
	Long: `tcm keeps a small set of input/output test cases for a programming
problem and packs them into a zip archive (1.in, 1.out, 2.in, ...).

Test cases can be added one at a time, edited in $EDITOR, or recovered in
bulk from pasted text using in1:/out1: markers. Run 'tcm shell' for an
interactive session.`,
	Version:       Version,
	SilenceErrors: true,
	SilenceUsage:  true,
	// Show help when no subcommand is provided
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetVersionTemplate("tcm version {{.Version}}\n")
}
