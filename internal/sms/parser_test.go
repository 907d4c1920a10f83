package sms

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/smsledger/internal/model"
)

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func msg(body, sender string) model.RawMessage {
	return model.RawMessage{Body: body, Timestamp: time.Date(2026, 2, 8, 9, 0, 0, 0, time.UTC), Sender: sender}
}

func TestParse_SampleMessages(t *testing.T) {
	p := NewParser(nil)

	tests := []struct {
		name     string
		body     string
		amount   string
		merchant string
		desc     string
		category model.Category
	}{
		{
			name:     "swiggy",
			body:     "Rs 450.00 debited from your account at SWIGGY on 08-Feb-26. Avl bal: Rs 15,234.50",
			amount:   "450.00",
			merchant: "SWIGGY",
			desc:     "SWIGGY",
			category: model.CategoryFood,
		},
		{
			name:     "amazon",
			body:     "Your A/c XX1234 debited with INR 1200.00 on 07-Feb-26 for Amazon transaction. Available balance: 14,034.50",
			amount:   "1200.00",
			merchant: "",
			desc:     DefaultDescription,
			category: model.CategoryShopping,
		},
		{
			name:     "uber",
			body:     "Rs 85.00 spent at UBER on 07-Feb-26 via Card ending 5678. Avl bal: Rs 12,834.50",
			amount:   "85.00",
			merchant: "UBER",
			desc:     "UBER",
			category: model.CategoryTransport,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := p.Parse(msg(tt.body, "HDFCBK"))
			require.True(t, ok)
			assert.Equal(t, tt.amount, got.Amount.StringFixed(2))
			assert.Equal(t, tt.merchant, got.MerchantName)
			assert.Equal(t, tt.desc, got.Description)
			assert.Equal(t, tt.category, got.Category)
			assert.Equal(t, model.DirectionDebit, got.Direction)
			assert.Equal(t, "HDFCBK", got.Sender)
		})
	}
}

func TestParse_NoIndicatorWord(t *testing.T) {
	p := NewParser(nil)
	bodies := []string{
		"Rs 5,000.00 credited to your account by NEFT",
		"Your OTP for login is 482913",
		"Rs 450.00 at SWIGGY on 08-Feb-26",
	}
	for _, body := range bodies {
		_, ok := p.Parse(msg(body, "VK-HDFCBK"))
		assert.False(t, ok, "expected no transaction for %q", body)
	}
}

func TestParse_DetectedWithoutAmount(t *testing.T) {
	p := NewParser(nil)
	_, ok := p.Parse(msg("Your bill has been paid. Thank you!", "AIRTEL"))
	assert.False(t, ok)
}

func TestParse_ConflictingKeywordsUseTaxonomyOrder(t *testing.T) {
	p := NewParser(nil)
	got, ok := p.Parse(msg("Rs 640.00 spent at AMAZON on 07-Feb-26 for UBER voucher", "ICICIB"))
	require.True(t, ok)
	assert.Equal(t, model.CategoryTransport, got.Category)
	assert.Equal(t, "AMAZON", got.Description)
}

type fixedClassifier model.Category

func (f fixedClassifier) Classify(string) model.Category { return model.Category(f) }

func TestParse_CustomClassifier(t *testing.T) {
	p := NewParser(fixedClassifier("Travel"))
	got, ok := p.Parse(msg("Rs 10 spent at UBER", "SBIIN"))
	require.True(t, ok)
	assert.Equal(t, model.Category("Travel"), got.Category)
}

func TestParse_LogsSkips(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)
	p := NewParser(nil, WithLogger(log))

	_, ok := p.Parse(msg("hello", "FRIEND"))
	assert.False(t, ok)
	assert.Contains(t, buf.String(), "no transaction keyword")
	assert.Contains(t, buf.String(), "FRIEND")
}

func TestParse_Deterministic(t *testing.T) {
	p := NewParser(nil)
	m := msg("Rs 450.00 debited from your account at SWIGGY on 08-Feb-26", "HDFCBK")
	first, ok := p.Parse(m)
	require.True(t, ok)
	for i := 0; i < 20; i++ {
		again, _ := p.Parse(m)
		assert.Equal(t, first.Category, again.Category)
		assert.True(t, first.Amount.Equal(again.Amount))
	}
}
