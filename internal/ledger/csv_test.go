package ledger

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/smsledger/internal/model"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestRoundTrip(t *testing.T) {
	expenses := []model.Expense{
		{
			ID:          "sms-1770534000000",
			Amount:      dec("450.00"),
			Description: "SWIGGY",
			Category:    model.CategoryFood,
			Date:        date(2026, 2, 8),
			Notes:       "Auto-imported from SMS: HDFCBK",
			CreatedAt:   time.Date(2026, 2, 8, 7, 0, 0, 0, time.UTC),
		},
		{
			ID:          "3f0c5b2e-1d3a-4c55-9a77-5e1f0c2d9b10",
			Amount:      dec("12.5"),
			Description: "Tea, biscuits",
			Category:    model.CategoryOther,
			Date:        date(2026, 2, 9),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteExpenses(&buf, expenses))

	got, err := ReadExpenses(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)

	for i := range expenses {
		assert.Equal(t, expenses[i].ID, got[i].ID)
		assert.True(t, expenses[i].Amount.Equal(got[i].Amount))
		assert.Equal(t, expenses[i].Description, got[i].Description)
		assert.Equal(t, expenses[i].Category, got[i].Category)
		assert.Equal(t, expenses[i].Date, got[i].Date)
		assert.Equal(t, expenses[i].Notes, got[i].Notes)
		assert.True(t, expenses[i].CreatedAt.Equal(got[i].CreatedAt))
	}
}

func TestMarshalExpense(t *testing.T) {
	row := MarshalExpense(model.Expense{
		ID:          "x",
		Amount:      dec("85"),
		Description: "UBER",
		Category:    model.CategoryTransport,
		Date:        date(2026, 2, 7),
	})
	assert.Equal(t, []string{"x", "2026-02-07", "85.00", "UBER", "Transportation", "", ""}, row)
}

func TestWriteExpenses_Header(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteExpenses(&buf, nil))
	assert.Equal(t, Header+"\n", buf.String())
}

func TestReadExpenses_Empty(t *testing.T) {
	got, err := ReadExpenses(strings.NewReader(""))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestReadExpenses_BadHeader(t *testing.T) {
	_, err := ReadExpenses(strings.NewReader("id,day,amount,description,category,notes,created_at\n"))
	assert.ErrorContains(t, err, "unexpected ledger header")
}

func TestReadExpenses_ReportsLine(t *testing.T) {
	in := Header + "\n" +
		"a,2026-02-08,10.00,Tea,Other,,\n" +
		"b,2026-02-08,ten,Tea,Other,,\n"
	_, err := ReadExpenses(strings.NewReader(in))
	assert.ErrorContains(t, err, "ledger line 3")
}

func TestUnmarshalExpense_Errors(t *testing.T) {
	tests := []struct {
		name   string
		record []string
		want   string
	}{
		{"field count", []string{"a"}, "expected 7 fields"},
		{"bad date", []string{"a", "08-02-2026", "1", "d", "Other", "", ""}, "parsing date"},
		{"bad amount", []string{"a", "2026-02-08", "ten", "d", "Other", "", ""}, "parsing amount"},
		{"bad created_at", []string{"a", "2026-02-08", "1", "d", "Other", "", "yesterday"}, "parsing created_at"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalExpense(tt.record)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
