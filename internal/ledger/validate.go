package ledger

import (
	"fmt"

	"github.com/cleared-dev/smsledger/internal/model"
)

// ValidationError describes a single invariant violation.
type ValidationError struct {
	Invariant   int
	ExpenseID   string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invariant %d [%s]: %s", e.Invariant, e.ExpenseID, e.Description)
}

// CategoryChecker tests whether a category belongs to the taxonomy.
type CategoryChecker interface {
	Exists(c model.Category) bool
}

// ValidateExpenses checks every record of a ledger.
//
//  1. ids are non-empty and unique
//  2. amounts are positive
//  3. categories are known
//  4. descriptions are non-empty
//  5. dates are set
func ValidateExpenses(expenses []model.Expense, categories CategoryChecker) []ValidationError {
	var errs []ValidationError

	seen := make(map[string]bool, len(expenses))
	for _, e := range expenses {
		if e.ID == "" {
			errs = append(errs, ValidationError{Invariant: 1, Description: "missing id"})
		} else if seen[e.ID] {
			errs = append(errs, ValidationError{Invariant: 1, ExpenseID: e.ID, Description: "duplicate id"})
		}
		seen[e.ID] = true

		if !e.Amount.IsPositive() {
			errs = append(errs, ValidationError{
				Invariant:   2,
				ExpenseID:   e.ID,
				Description: fmt.Sprintf("amount %s is not positive", e.Amount),
			})
		}

		if !categories.Exists(e.Category) {
			errs = append(errs, ValidationError{
				Invariant:   3,
				ExpenseID:   e.ID,
				Description: fmt.Sprintf("unknown category %q", e.Category),
			})
		}

		if e.Description == "" {
			errs = append(errs, ValidationError{Invariant: 4, ExpenseID: e.ID, Description: "missing description"})
		}

		if e.Date.IsZero() {
			errs = append(errs, ValidationError{Invariant: 5, ExpenseID: e.ID, Description: "missing date"})
		}
	}
	return errs
}
