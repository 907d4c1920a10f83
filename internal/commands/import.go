package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/smsledger/internal/importer"
	"github.com/cleared-dev/smsledger/internal/importlog"
	"github.com/cleared-dev/smsledger/internal/model"
)

func newImportCommand() *cobra.Command {
	var source string
	var commit bool

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import transactions from bank SMS alerts",
		Long: "Reads messages from a source, parses the bank alerts among them and " +
			"shows the ones not yet in the ledger. With --commit they are appended.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd)
			if err != nil {
				return err
			}
			svc, err := ws.importService(source)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if !commit {
				res, err := svc.Preview(cmd.Context(), ws.ledger.All())
				if err != nil {
					return err
				}
				ws.printResult(out, res)
				if len(res.Accepted) > 0 {
					fmt.Fprintln(out, "Dry run. Re-run with --commit to save.")
				}
				return nil
			}

			res, err := svc.Commit(cmd.Context(), ws.ledger)
			if err != nil && !errors.Is(err, importer.ErrNotAcknowledged) {
				return err
			}
			if err != nil {
				ws.log.Warn().Err(err).Msg("import acknowledgement failed")
			}
			if err := importlog.Record(ws.root, ws.now(), res); err != nil {
				ws.log.Warn().Err(err).Msg("failed to write import log")
			}
			ws.printResult(out, res)
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "message source (default from config)")
	cmd.Flags().BoolVar(&commit, "commit", false, "append new transactions to the ledger")

	return cmd
}

func (w *workspace) printResult(out io.Writer, res importer.Result) {
	for _, e := range res.Accepted {
		w.printExpense(out, e)
	}
	fmt.Fprintln(out, res.Summary())
}

func (w *workspace) printExpense(out io.Writer, e model.Expense) {
	fmt.Fprintf(out, "%s  %s  %10s  %-18s  %s\n",
		e.ID, e.Date.Format(model.DateFormat), w.money(e.Amount), e.Category, e.Description)
}
