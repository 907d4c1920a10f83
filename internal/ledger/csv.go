package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/smsledger/internal/model"
)

// Header is the CSV header for expenses.csv.
const Header = "id,date,amount,description,category,notes,created_at"

const (
	numFields    = 7
	colID        = 0
	colDate      = 1
	colAmount    = 2
	colDesc      = 3
	colCategory  = 4
	colNotes     = 5
	colCreatedAt = 6
)

var headerFields = strings.Split(Header, ",")

// ReadExpenses decodes an expenses.csv stream. An empty stream is an empty
// ledger; otherwise the first row must be Header.
func ReadExpenses(r io.Reader) ([]model.Expense, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields
	cr.ReuseRecord = true

	head, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading ledger header: %w", err)
	}
	if !slices.Equal(head, headerFields) {
		return nil, fmt.Errorf("unexpected ledger header %q", strings.Join(head, ","))
	}

	var expenses []model.Expense
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			return expenses, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading ledger: %w", err)
		}
		e, err := UnmarshalExpense(rec)
		if err != nil {
			return nil, fmt.Errorf("ledger line %d: %w", line, err)
		}
		expenses = append(expenses, e)
	}
}

// WriteExpenses encodes expenses with a header row.
func WriteExpenses(w io.Writer, expenses []model.Expense) error {
	rows := make([][]string, 0, len(expenses)+1)
	rows = append(rows, headerFields)
	for _, e := range expenses {
		rows = append(rows, MarshalExpense(e))
	}
	return csv.NewWriter(w).WriteAll(rows)
}

// MarshalExpense converts an Expense to a CSV row.
func MarshalExpense(e model.Expense) []string {
	row := make([]string, numFields)
	row[colID] = e.ID
	row[colDate] = e.Date.Format(model.DateFormat)
	row[colAmount] = model.FormatAmount(e.Amount)
	row[colDesc] = e.Description
	row[colCategory] = string(e.Category)
	row[colNotes] = e.Notes
	if !e.CreatedAt.IsZero() {
		row[colCreatedAt] = e.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
	return row
}

// UnmarshalExpense converts a CSV row to an Expense.
func UnmarshalExpense(record []string) (model.Expense, error) {
	if len(record) != numFields {
		return model.Expense{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := time.Parse(model.DateFormat, record[colDate])
	if err != nil {
		return model.Expense{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Expense{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	var createdAt time.Time
	if record[colCreatedAt] != "" {
		createdAt, err = time.Parse(time.RFC3339Nano, record[colCreatedAt])
		if err != nil {
			return model.Expense{}, fmt.Errorf("parsing created_at %q: %w", record[colCreatedAt], err)
		}
	}

	return model.Expense{
		ID:          record[colID],
		Amount:      amount,
		Description: record[colDesc],
		Category:    model.Category(record[colCategory]),
		Date:        date,
		Notes:       record[colNotes],
		CreatedAt:   createdAt,
	}, nil
}
