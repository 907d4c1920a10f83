package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Direction tells whether money left or entered the account.
type Direction string

const (
	DirectionDebit  Direction = "debit"
	DirectionCredit Direction = "credit" // reserved; no rule emits credits yet
)

// ParsedTransaction is the structured result of parsing one RawMessage.
type ParsedTransaction struct {
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	Category     Category        `json:"category"`
	MerchantName string          `json:"merchantName,omitempty"`
	Direction    Direction       `json:"direction"`
	Sender       string          `json:"-"`
}

// MarshalJSON renders Amount as a number, matching Expense.
func (p ParsedTransaction) MarshalJSON() ([]byte, error) {
	type plain ParsedTransaction
	return json.Marshal(struct {
		Amount json.Number `json:"amount"`
		plain
	}{
		Amount: json.Number(FormatAmount(p.Amount)),
		plain:  plain(p),
	})
}
