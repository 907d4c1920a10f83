package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newCategoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories and the keywords that select them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, r := range ws.taxonomy.Rules() {
				fmt.Fprintf(out, "%-18s %s\n", r.Category, strings.Join(r.Keywords, ", "))
			}
			fmt.Fprintf(out, "%-18s (fallback)\n", ws.taxonomy.Fallback())
			return nil
		},
	}
}
