// Package summary aggregates ledger expenses for dashboards.
package summary

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/smsledger/internal/model"
)

// CategoryTotal is the spend and record count of one category.
type CategoryTotal struct {
	Category model.Category  `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
}

// DailyTotal is the spend of one calendar day.
type DailyTotal struct {
	Date  string          `json:"date"`
	Total decimal.Decimal `json:"total"`
}

// Monthly summarises one calendar month.
type Monthly struct {
	Year        int             `json:"year"`
	Month       time.Month      `json:"month"`
	Total       decimal.Decimal `json:"total"`
	Count       int             `json:"count"`
	TopCategory model.Category  `json:"topCategory,omitempty"`
	Categories  []CategoryTotal `json:"categories"`
	Days        []DailyTotal    `json:"days"`
}

// CategoryTotals groups expenses by category, largest total first.
// Ties keep the order in which categories first appear.
func CategoryTotals(expenses []model.Expense) []CategoryTotal {
	idx := make(map[model.Category]int)
	var out []CategoryTotal
	for _, e := range expenses {
		i, ok := idx[e.Category]
		if !ok {
			i = len(out)
			idx[e.Category] = i
			out = append(out, CategoryTotal{Category: e.Category, Total: decimal.Zero})
		}
		out[i].Total = out[i].Total.Add(e.Amount)
		out[i].Count++
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Total.GreaterThan(out[b].Total)
	})
	return out
}

// DailyTotals sums expenses per calendar day in ascending date order.
func DailyTotals(expenses []model.Expense) []DailyTotal {
	totals := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		day := e.Date.Format(model.DateFormat)
		totals[day] = totals[day].Add(e.Amount)
	}
	days := make([]string, 0, len(totals))
	for d := range totals {
		days = append(days, d)
	}
	sort.Strings(days)

	out := make([]DailyTotal, len(days))
	for i, d := range days {
		out[i] = DailyTotal{Date: d, Total: totals[d]}
	}
	return out
}

// Month summarises the expenses dated in the given month.
func Month(expenses []model.Expense, year int, month time.Month) Monthly {
	var in []model.Expense
	for _, e := range expenses {
		if e.Date.Year() == year && e.Date.Month() == month {
			in = append(in, e)
		}
	}

	m := Monthly{
		Year:       year,
		Month:      month,
		Total:      decimal.Zero,
		Count:      len(in),
		Categories: CategoryTotals(in),
		Days:       DailyTotals(in),
	}
	for _, e := range in {
		m.Total = m.Total.Add(e.Amount)
	}
	if len(m.Categories) > 0 {
		m.TopCategory = m.Categories[0].Category
	}
	return m
}

// MonthLayout is the YYYY-MM form accepted by ParseMonth.
const MonthLayout = "2006-01"

// ParseMonth parses a YYYY-MM month.
func ParseMonth(s string) (int, time.Month, error) {
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q, want YYYY-MM", s)
	}
	return t.Year(), t.Month(), nil
}
