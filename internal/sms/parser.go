package sms

import (
	"github.com/rs/zerolog"

	"github.com/cleared-dev/smsledger/internal/category"
	"github.com/cleared-dev/smsledger/internal/model"
)

// DefaultDescription labels transactions with no recognisable merchant.
const DefaultDescription = "Transaction"

// Classifier assigns a category to free text.
type Classifier interface {
	Classify(text string) model.Category
}

// Parser turns RawMessages into ParsedTransactions.
type Parser struct {
	classifier Classifier
	log        zerolog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger used for skip diagnostics.
func WithLogger(log zerolog.Logger) Option {
	return func(p *Parser) { p.log = log }
}

// NewParser returns a Parser that categorises with classifier.
// A nil classifier selects the default taxonomy.
func NewParser(classifier Classifier, opts ...Option) *Parser {
	if classifier == nil {
		classifier = category.Default()
	}
	p := &Parser{classifier: classifier, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse extracts a debit from msg. The second result is false when msg is
// not a transaction or carries no usable amount.
func (p *Parser) Parse(msg model.RawMessage) (model.ParsedTransaction, bool) {
	if !IsTransaction(msg.Body) {
		p.log.Debug().Str("sender", msg.Sender).Msg("skipping message: no transaction keyword")
		return model.ParsedTransaction{}, false
	}

	amount, ok := ExtractAmount(msg.Body)
	if !ok {
		p.log.Debug().Str("sender", msg.Sender).Msg("skipping message: no amount")
		return model.ParsedTransaction{}, false
	}

	merchant := ExtractMerchant(msg.Body)
	description := merchant
	if description == "" {
		description = DefaultDescription
	}

	return model.ParsedTransaction{
		Amount:       amount,
		Description:  description,
		Category:     p.classifier.Classify(msg.Body),
		MerchantName: merchant,
		Direction:    model.DirectionDebit,
		Sender:       msg.Sender,
	}, true
}
