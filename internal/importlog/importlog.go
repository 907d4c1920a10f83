// Package importlog keeps an append-only record of committed imports in
// <repo>/logs/import-log.csv.
package importlog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/cleared-dev/smsledger/internal/importer"
)

// Entry is one committed import run.
type Entry struct {
	Timestamp  time.Time
	Source     string
	Messages   int
	Detected   int
	Accepted   int
	ExpenseIDs []string
}

// FromResult builds a log entry for a committed import.
func FromResult(at time.Time, res importer.Result) Entry {
	ids := make([]string, 0, len(res.Accepted))
	for _, e := range res.Accepted {
		ids = append(ids, e.ID)
	}
	return Entry{
		Timestamp:  at,
		Source:     res.Source,
		Messages:   res.Messages,
		Detected:   len(res.Detected),
		Accepted:   len(res.Accepted),
		ExpenseIDs: ids,
	}
}

// Header is the first row of the log file.
const Header = "timestamp,source,messages,detected,accepted,expense_ids"

// RelPath is the log location inside a repo.
const RelPath = "logs/import-log.csv"

// idSep joins expense ids inside the last column.
const idSep = ";"

var headerFields = strings.Split(Header, ",")

// Log is the import log of one repo.
type Log struct {
	path string
}

// Open returns the log of the repo at repoRoot. The file is created on the
// first Append.
func Open(repoRoot string) *Log {
	return &Log{path: filepath.Join(repoRoot, RelPath)}
}

// Append adds entries to the end of the log.
func (l *Log) Append(entries ...Entry) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("creating log dir: %w", err)
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening import log: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("stat import log: %w", err)
	}

	rows := make([][]string, 0, len(entries)+1)
	if info.Size() == 0 {
		rows = append(rows, headerFields)
	}
	for _, e := range entries {
		rows = append(rows, e.record())
	}
	// WriteAll flushes and reports the first write error.
	if err := csv.NewWriter(f).WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("appending to import log: %w", err)
	}
	return f.Close()
}

// Entries returns every logged run, oldest first. A missing file has none.
func (l *Log) Entries() ([]Entry, error) {
	f, err := os.Open(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening import log: %w", err)
	}
	defer f.Close()
	return decode(f)
}

// Record appends the entry for one committed import.
func Record(repoRoot string, at time.Time, res importer.Result) error {
	return Open(repoRoot).Append(FromResult(at, res))
}

// Read returns the entries of the repo's import log.
func Read(repoRoot string) ([]Entry, error) {
	return Open(repoRoot).Entries()
}

func decode(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(headerFields)

	head, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading import log: %w", err)
	}
	if !slices.Equal(head, headerFields) {
		return nil, fmt.Errorf("unexpected import log header %q", strings.Join(head, ","))
	}

	var entries []Entry
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			return entries, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading import log: %w", err)
		}
		e, err := parseEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("import log line %d: %w", line, err)
		}
		entries = append(entries, e)
	}
}

func (e Entry) record() []string {
	return []string{
		e.Timestamp.UTC().Format(time.RFC3339),
		e.Source,
		strconv.Itoa(e.Messages),
		strconv.Itoa(e.Detected),
		strconv.Itoa(e.Accepted),
		strings.Join(e.ExpenseIDs, idSep),
	}
}

func parseEntry(rec []string) (Entry, error) {
	if len(rec) != len(headerFields) {
		return Entry{}, fmt.Errorf("want %d fields, got %d", len(headerFields), len(rec))
	}
	ts, err := time.Parse(time.RFC3339, rec[0])
	if err != nil {
		return Entry{}, fmt.Errorf("bad timestamp %q: %w", rec[0], err)
	}

	var counts [3]int
	for i, s := range rec[2:5] {
		if counts[i], err = strconv.Atoi(s); err != nil {
			return Entry{}, fmt.Errorf("bad %s %q", headerFields[i+2], s)
		}
	}

	e := Entry{
		Timestamp: ts,
		Source:    rec[1],
		Messages:  counts[0],
		Detected:  counts[1],
		Accepted:  counts[2],
	}
	if rec[5] != "" {
		e.ExpenseIDs = strings.Split(rec[5], idSep)
	}
	return e, nil
}
