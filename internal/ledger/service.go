package ledger

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/smsledger/internal/id"
	"github.com/cleared-dev/smsledger/internal/model"
)

var (
	// ErrNotFound is returned when an expense id is not in the ledger.
	ErrNotFound = errors.New("expense not found")
	// ErrInvalid is returned when a change would break a ledger invariant.
	ErrInvalid = errors.New("invalid ledger")
)

// relPath is the ledger location inside a repo.
const relPath = "ledger/expenses.csv"

// Service owns the expense ledger of one repo.
type Service struct {
	repoRoot   string
	categories CategoryChecker
	now        func() time.Time

	mu       sync.Mutex
	expenses []model.Expense
}

// NewService creates a Service over an in-memory set of expenses.
func NewService(repoRoot string, categories CategoryChecker, expenses []model.Expense) *Service {
	return &Service{
		repoRoot:   repoRoot,
		categories: categories,
		now:        time.Now,
		expenses:   expenses,
	}
}

// Load reads <repoRoot>/ledger/expenses.csv. A missing file is an empty ledger.
func Load(repoRoot string, categories CategoryChecker) (*Service, error) {
	path := filepath.Join(repoRoot, relPath)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewService(repoRoot, categories, nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening ledger %s: %w", path, err)
	}
	defer f.Close()

	expenses, err := ReadExpenses(f)
	if err != nil {
		return nil, fmt.Errorf("reading ledger %s: %w", path, err)
	}
	return NewService(repoRoot, categories, expenses), nil
}

// Path returns the ledger file path.
func (s *Service) Path() string {
	return filepath.Join(s.repoRoot, relPath)
}

// All returns a copy of every expense in ledger order.
func (s *Service) All() []model.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Expense(nil), s.expenses...)
}

// Get returns the expense with the given id.
func (s *Service) Get(expenseID string) (model.Expense, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.expenses {
		if e.ID == expenseID {
			return e, true
		}
	}
	return model.Expense{}, false
}

// AddParams holds the fields of a hand-entered expense.
type AddParams struct {
	Amount      decimal.Decimal
	Description string
	Category    model.Category
	Date        time.Time
	Notes       string
}

// Add records a manual expense and saves the ledger. Manual entries are not
// checked for duplicates.
func (s *Service) Add(params AddParams) (model.Expense, error) {
	now := s.now()
	date := params.Date
	if date.IsZero() {
		date = now
	}
	e := model.Expense{
		ID:          id.NewManual(),
		Amount:      params.Amount,
		Description: strings.TrimSpace(params.Description),
		Category:    params.Category,
		Date:        model.Day(date, time.UTC),
		Notes:       params.Notes,
		CreatedAt:   now.UTC(),
	}
	if err := s.Append(e); err != nil {
		return model.Expense{}, err
	}
	return e, nil
}

// Append validates and adds expenses, then saves the ledger.
func (s *Service) Append(expenses ...model.Expense) error {
	_, err := s.AppendWith(func([]model.Expense) ([]model.Expense, error) {
		return expenses, nil
	})
	return err
}

// AppendWith calls fn with a snapshot of the ledger and appends what it
// returns, all under the ledger lock. Nothing is written if fn fails or the
// result does not validate.
func (s *Service) AppendWith(fn func(existing []model.Expense) ([]model.Expense, error)) ([]model.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	added, err := fn(append([]model.Expense(nil), s.expenses...))
	if err != nil {
		return nil, err
	}
	if len(added) == 0 {
		return nil, nil
	}

	all := append(append([]model.Expense(nil), s.expenses...), added...)
	if verrs := ValidateExpenses(all, s.categories); len(verrs) > 0 {
		return nil, joinValidation(verrs)
	}
	if err := s.write(all); err != nil {
		return nil, err
	}
	s.expenses = all
	return added, nil
}

// Delete removes the expense with the given id and saves the ledger.
func (s *Service) Delete(expenseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, e := range s.expenses {
		if e.ID == expenseID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%s: %w", expenseID, ErrNotFound)
	}

	remaining := make([]model.Expense, 0, len(s.expenses)-1)
	remaining = append(remaining, s.expenses[:idx]...)
	remaining = append(remaining, s.expenses[idx+1:]...)
	if err := s.write(remaining); err != nil {
		return err
	}
	s.expenses = remaining
	return nil
}

// Save writes the current ledger to disk.
func (s *Service) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(s.expenses)
}

// write replaces the ledger file via a temp file in the same directory.
func (s *Service) write(expenses []model.Expense) error {
	path := s.Path()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating ledger dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".expenses-*.csv")
	if err != nil {
		return fmt.Errorf("creating temp ledger: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := WriteExpenses(tmp, expenses); err != nil {
		tmp.Close()
		return fmt.Errorf("writing ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp ledger: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing ledger: %w", err)
	}
	return nil
}

func joinValidation(verrs []ValidationError) error {
	msgs := make([]string, len(verrs))
	for i, ve := range verrs {
		msgs[i] = ve.Error()
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}
