package commands_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddListDelete(t *testing.T) {
	dir := initRepo(t)

	out, err := runCLI(t, "list", "--repo", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "No expenses recorded.")

	out, err = runCLI(t, "add", "--repo", dir,
		"--amount", "120.5", "--description", "Chai and samosa",
		"--category", "Food & Dining", "--date", "2026-02-03")
	require.NoError(t, err)
	assert.Contains(t, out, "2026-02-03")
	assert.Contains(t, out, "₹120.50")

	all := loadLedger(t, dir).All()
	require.Len(t, all, 1)
	expenseID := all[0].ID

	out, err = runCLI(t, "list", "--repo", dir)
	require.NoError(t, err)
	assert.Contains(t, out, expenseID)
	assert.Contains(t, out, "Chai and samosa")

	out, err = runCLI(t, "delete", expenseID, "--repo", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted "+expenseID)
	assert.Empty(t, loadLedger(t, dir).All())

	_, err = runCLI(t, "delete", expenseID, "--repo", dir)
	assert.ErrorContains(t, err, "expense not found")
}

func TestAdd_Invalid(t *testing.T) {
	dir := initRepo(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad amount", []string{"--amount", "ten", "--description", "Tea"}, "invalid amount"},
		{"negative amount", []string{"--amount", "-5", "--description", "Tea"}, "invalid ledger"},
		{"unknown category", []string{"--amount", "5", "--description", "Tea", "--category", "Snacks"}, "unknown category"},
		{"bad date", []string{"--amount", "5", "--description", "Tea", "--date", "3 Feb"}, "want YYYY-MM-DD"},
		{"missing description", []string{"--amount", "5"}, "description"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, append([]string{"add", "--repo", dir}, tt.args...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
	assert.Empty(t, loadLedger(t, dir).All())
}

func TestSummary(t *testing.T) {
	dir := initRepo(t)
	for _, args := range [][]string{
		{"--amount", "200", "--description", "Groceries run", "--category", "Groceries", "--date", "2026-02-01"},
		{"--amount", "100", "--description", "Metro card", "--category", "Transportation", "--date", "2026-02-14"},
		{"--amount", "999", "--description", "Old bill", "--category", "Bills & Utilities", "--date", "2026-01-20"},
	} {
		_, err := runCLI(t, append([]string{"add", "--repo", dir}, args...)...)
		require.NoError(t, err)
	}

	out, err := runCLI(t, "summary", "--month", "2026-02", "--repo", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "February 2026: ₹300.00 across 2 expense(s)")
	assert.Contains(t, out, "Groceries")
	assert.NotContains(t, out, "Bills & Utilities")

	_, err = runCLI(t, "summary", "--month", "02/2026", "--repo", dir)
	assert.ErrorContains(t, err, "invalid month")
}

func TestCategories(t *testing.T) {
	dir := initRepo(t)
	out, err := runCLI(t, "categories", "--repo", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Food & Dining")
	assert.Contains(t, out, "swiggy, zomato")
	assert.Contains(t, out, "Other              (fallback)")
}

func TestList_Origin(t *testing.T) {
	dir := initRepo(t)
	msgs := "timestamp,sender,body\n" +
		"2026-02-08T09:00:00Z,SBIIN,Rs 85.00 spent at UBER on 08-Feb-26\n" +
		"2026-02-08T09:00:00Z,HDFCBK,Rs 450.00 debited from your account at SWIGGY on 08-Feb-26\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "import", "feb.csv"), []byte(msgs), 0o644))
	_, err := runCLI(t, "import", "--source", "file", "--commit", "--repo", dir)
	require.NoError(t, err)
	_, err = runCLI(t, "add", "--repo", dir, "--amount", "40", "--description", "Auto fare", "--date", "2026-02-08")
	require.NoError(t, err)

	out, err := runCLI(t, "list", "--repo", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "sms 2026-02-08T09:00:00Z  sms-1770541200000  ")
	assert.Contains(t, out, "sms 2026-02-08T09:00:00Z  sms-1770541200000-1  ")
	assert.Contains(t, out, "manual")

	out, err = runCLI(t, "list", "--origin", "sms", "--repo", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "UBER")
	assert.NotContains(t, out, "Auto fare")

	out, err = runCLI(t, "list", "--origin", "manual", "--repo", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Auto fare")
	assert.NotContains(t, out, "sms-")

	_, err = runCLI(t, "list", "--origin", "bank", "--repo", dir)
	assert.ErrorContains(t, err, "invalid origin")
}
