package commands

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/smsledger/internal/id"
	"github.com/cleared-dev/smsledger/internal/ledger"
	"github.com/cleared-dev/smsledger/internal/model"
)

func newAddCommand() *cobra.Command {
	var amount, description, cat, date, notes string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an expense by hand",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			amt, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amount, err)
			}
			params := ledger.AddParams{
				Amount:      amt,
				Description: description,
				Category:    model.Category(cat),
				Notes:       notes,
			}
			if date != "" {
				d, err := time.Parse(model.DateFormat, date)
				if err != nil {
					return fmt.Errorf("invalid date %q, want YYYY-MM-DD", date)
				}
				params.Date = d
			}

			ws, err := openWorkspace(cmd)
			if err != nil {
				return err
			}
			e, err := ws.ledger.Add(params)
			if err != nil {
				return err
			}
			ws.printExpense(cmd.OutOrStdout(), e)
			return nil
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "amount spent (required)")
	cmd.Flags().StringVar(&description, "description", "", "what the money was spent on (required)")
	cmd.Flags().StringVar(&cat, "category", string(model.CategoryOther), "expense category")
	cmd.Flags().StringVar(&date, "date", "", "date as YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("description")

	return cmd
}

func newListCommand() *cobra.Command {
	var origin string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List ledger expenses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			keep, err := originFilter(origin)
			if err != nil {
				return err
			}
			ws, err := openWorkspace(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			var listed int
			for _, e := range ws.ledger.All() {
				if !keep(e) {
					continue
				}
				fmt.Fprintf(out, "%-24s  ", provenance(e))
				ws.printExpense(out, e)
				listed++
			}
			if listed == 0 {
				fmt.Fprintln(out, "No expenses recorded.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&origin, "origin", "all", "show only expenses from: all, sms or manual")

	return cmd
}

func originFilter(origin string) (func(model.Expense) bool, error) {
	switch origin {
	case "all":
		return func(model.Expense) bool { return true }, nil
	case "sms":
		return func(e model.Expense) bool { return id.IsImported(e.ID) }, nil
	case "manual":
		return func(e model.Expense) bool { return !id.IsImported(e.ID) }, nil
	}
	return nil, fmt.Errorf("invalid origin %q, want all, sms or manual", origin)
}

// provenance describes where an expense came from. Imported expenses carry
// the time their message was received.
func provenance(e model.Expense) string {
	if !id.IsImported(e.ID) {
		return "manual"
	}
	received, err := id.ParseTimestamp(e.ID)
	if err != nil {
		return "sms"
	}
	return "sms " + received.Format(time.RFC3339)
}

func newDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove an expense from the ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd)
			if err != nil {
				return err
			}
			if err := ws.ledger.Delete(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}
