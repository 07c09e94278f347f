package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jacksmith/casepack/internal/cli"
	"github.com/jacksmith/casepack/internal/logger"
	"github.com/jacksmith/casepack/internal/model"
	"github.com/jacksmith/casepack/internal/ops"
	"github.com/jacksmith/casepack/internal/storage"
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for tcm.

To load completions:

Bash:
  $ source <(tcm completion bash)

Zsh:
  $ tcm completion zsh > "${fpath[1]}/_tcm"

Fish:
  $ tcm completion fish | source
`,
}

var completionBashCmd = &cobra.Command{
	Use:   "bash",
	Short: "Generate bash completion script",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenBashCompletion(os.Stdout)
	},
}

var completionZshCmd = &cobra.Command{
	Use:   "zsh",
	Short: "Generate zsh completion script",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenZshCompletion(os.Stdout)
	},
}

var completionFishCmd = &cobra.Command{
	Use:   "fish",
	Short: "Generate fish completion script",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenFishCompletion(os.Stdout, true)
	},
}

func init() {
	completionCmd.AddCommand(completionBashCmd)
	completionCmd.AddCommand(completionZshCmd)
	completionCmd.AddCommand(completionFishCmd)
	rootCmd.AddCommand(completionCmd)
}

// completeTestCaseIDs completes test case ids with an input preview as the
// description. Completion must stay silent, so it logs nothing and skips
// sample seeding.
func completeTestCaseIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	s, err := storage.Open(".")
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	cfg, err := s.LoadConfig()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	slot, closeSlot, err := s.OpenSlot(cfg.Backend)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	defer closeSlot()

	store, err := ops.Load(context.Background(), slot, logger.Nop())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var completions []string
	prefix := strings.TrimPrefix(toComplete, "#")
	for _, tc := range store.TestCases() {
		id := fmt.Sprintf("%d", tc.ID)
		if strings.HasPrefix(id, prefix) {
			completions = append(completions, id+"\t"+cli.Preview(tc.Input, 40))
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

// completeFields completes the --field flag.
func completeFields(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{string(model.FieldInput), string(model.FieldOutput)}, cobra.ShellCompDirectiveNoFileComp
}
