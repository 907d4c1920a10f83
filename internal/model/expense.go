package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DateFormat is the calendar-day layout used for Expense.Date.
const DateFormat = "2006-01-02"

// Expense is one ledger record.
type Expense struct {
	ID          string
	Amount      decimal.Decimal
	Description string
	Category    Category
	Date        time.Time // calendar day, midnight UTC
	Notes       string
	CreatedAt   time.Time
}

// Day truncates t to its calendar day in loc and returns it as midnight UTC.
func Day(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatAmount renders an amount with two decimals, or more when the value
// carries sub-cent precision.
func FormatAmount(d decimal.Decimal) string {
	if d.Exponent() < -2 && !d.Equal(d.Round(2)) {
		return d.String()
	}
	return d.StringFixed(2)
}

type expenseJSON struct {
	ID          string      `json:"id"`
	Amount      json.Number `json:"amount"`
	Description string      `json:"description"`
	Category    Category    `json:"category"`
	Date        string      `json:"date"`
	Notes       string      `json:"notes,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// MarshalJSON renders Amount as a number, Date as YYYY-MM-DD and CreatedAt
// as RFC 3339.
func (e Expense) MarshalJSON() ([]byte, error) {
	return json.Marshal(expenseJSON{
		ID:          e.ID,
		Amount:      json.Number(FormatAmount(e.Amount)),
		Description: e.Description,
		Category:    e.Category,
		Date:        e.Date.Format(DateFormat),
		Notes:       e.Notes,
		CreatedAt:   e.CreatedAt,
	})
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (e *Expense) UnmarshalJSON(data []byte) error {
	var raw expenseJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	amount, err := decimal.NewFromString(raw.Amount.String())
	if err != nil {
		return fmt.Errorf("parsing amount %q: %w", raw.Amount, err)
	}
	date, err := time.Parse(DateFormat, raw.Date)
	if err != nil {
		return fmt.Errorf("parsing date %q: %w", raw.Date, err)
	}
	*e = Expense{
		ID:          raw.ID,
		Amount:      amount,
		Description: raw.Description,
		Category:    raw.Category,
		Date:        date,
		Notes:       raw.Notes,
		CreatedAt:   raw.CreatedAt,
	}
	return nil
}
