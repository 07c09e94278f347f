package main

import (
	"fmt"

	"github.com/jacksmith/casepack/internal/storage"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new tcm workspace",
	Long: `Create a .tcm/ directory in the current directory.

Test cases are saved under .tcm/ after every change. Settings such as the
storage backend and the default archive name live in .tcmconfig.yaml next
to .tcm/; the file is optional and never written by tcm.

Fails if .tcm/ already exists in the current directory.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	if _, err := storage.Init("."); err != nil {
		return err
	}
	fmt.Printf("Initialized tcm in .tcm/\n")
	return nil
}
