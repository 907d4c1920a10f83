package importer

import (
	"time"

	"github.com/cleared-dev/smsledger/internal/id"
	"github.com/cleared-dev/smsledger/internal/model"
	"github.com/cleared-dev/smsledger/internal/sms"
)

// DefaultNotesPrefix precedes the sender in the notes of imported expenses.
const DefaultNotesPrefix = "Auto-imported from SMS: "

// CandidateOptions controls how parsed messages become expenses.
type CandidateOptions struct {
	Location    *time.Location // calendar day zone; nil means UTC
	NotesPrefix string         // empty means DefaultNotesPrefix
}

// ToExpense converts a parsed message into a ledger candidate. The id and
// timestamps derive from the message, so re-parsing yields the same record.
func ToExpense(msg model.RawMessage, tx model.ParsedTransaction, opts CandidateOptions) model.Expense {
	prefix := opts.NotesPrefix
	if prefix == "" {
		prefix = DefaultNotesPrefix
	}
	var notes string
	if tx.Sender != "" {
		notes = prefix + tx.Sender
	}
	return model.Expense{
		ID:          id.FromTimestamp(msg.Timestamp),
		Amount:      tx.Amount,
		Description: tx.Description,
		Category:    tx.Category,
		Date:        model.Day(msg.Timestamp, opts.Location),
		Notes:       notes,
		CreatedAt:   msg.Timestamp.UTC(),
	}
}

// BuildCandidates parses msgs in order and returns one expense per
// recognised transaction.
func BuildCandidates(p *sms.Parser, msgs []model.RawMessage, opts CandidateOptions) []model.Expense {
	var out []model.Expense
	for _, m := range msgs {
		tx, ok := p.Parse(m)
		if !ok {
			continue
		}
		out = append(out, ToExpense(m, tx, opts))
	}
	return out
}

// AssignIDs returns a copy of candidates whose ids are unique against
// existing and each other. A clashing id gets the first free -N suffix, so
// the same ledger and batch always yield the same ids.
func AssignIDs(existing, candidates []model.Expense) []model.Expense {
	taken := make(map[string]bool, len(existing)+len(candidates))
	for _, e := range existing {
		taken[e.ID] = true
	}
	out := make([]model.Expense, len(candidates))
	for i, c := range candidates {
		c.ID = id.Unique(c.ID, func(s string) bool { return taken[s] })
		taken[c.ID] = true
		out[i] = c
	}
	return out
}
