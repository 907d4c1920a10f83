package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/smsledger/internal/summary"
)

func newSummaryCommand() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show spending for a month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd)
			if err != nil {
				return err
			}

			year, mon, _ := ws.now().In(ws.candidates.Location).Date()
			if month != "" {
				year, mon, err = summary.ParseMonth(month)
				if err != nil {
					return err
				}
			}

			m := summary.Month(ws.ledger.All(), year, mon)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %d: %s across %d expense(s)\n", mon, year, ws.money(m.Total), m.Count)
			for _, c := range m.Categories {
				fmt.Fprintf(out, "  %-18s %10s  (%d)\n", c.Category, ws.money(c.Total), c.Count)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "month as YYYY-MM (default current month)")

	return cmd
}
