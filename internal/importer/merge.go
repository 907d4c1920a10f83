package importer

import "github.com/cleared-dev/smsledger/internal/model"

// Key is the dedup identity of an expense: exact amount, calendar day and
// description. Amounts compare by value, so 450 and 450.00 are equal.
type Key struct {
	Amount      string
	Date        string
	Description string
}

// KeyOf returns the dedup identity of e.
func KeyOf(e model.Expense) Key {
	return Key{
		Amount:      e.Amount.String(),
		Date:        e.Date.Format(model.DateFormat),
		Description: e.Description,
	}
}

// Merge returns the candidates whose identity is not already present in
// existing, preserving candidate order. Candidates are not compared with
// each other. Neither input is modified.
func Merge(existing, candidates []model.Expense) []model.Expense {
	seen := make(map[Key]struct{}, len(existing))
	for _, e := range existing {
		seen[KeyOf(e)] = struct{}{}
	}

	accepted := make([]model.Expense, 0, len(candidates))
	for _, c := range candidates {
		if _, dup := seen[KeyOf(c)]; dup {
			continue
		}
		accepted = append(accepted, c)
	}
	return accepted
}
