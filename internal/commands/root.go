package commands

import (
	"github.com/spf13/cobra"

	"github.com/cleared-dev/smsledger/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "smsledger",
		Short:   "Expense ledger fed by bank SMS alerts",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("repo", ".", "ledger repository directory")

	rootCmd.AddCommand(
		newInitCommand(),
		newImportCommand(),
		newAddCommand(),
		newListCommand(),
		newDeleteCommand(),
		newSummaryCommand(),
		newCategoriesCommand(),
		newServeCommand(),
	)

	return rootCmd
}
