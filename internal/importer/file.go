package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cleared-dev/smsledger/internal/model"
)

const (
	inboxDir   = "import"
	archiveDir = "processed" // inside inboxDir
)

const (
	msgNumFields    = 3
	msgColTimestamp = 0
	msgColSender    = 1
	msgColBody      = 2
)

// FileSource reads exported messages from CSV files in <repoRoot>/import/.
// Each file has the header "timestamp,sender,body".
type FileSource struct {
	repoRoot string
}

// NewFileSource returns a FileSource rooted at repoRoot.
func NewFileSource(repoRoot string) *FileSource {
	return &FileSource{repoRoot: repoRoot}
}

// Name returns the source name.
func (f *FileSource) Name() string { return "file" }

// IsSupported reports whether the import directory exists.
func (f *FileSource) IsSupported() bool {
	info, err := os.Stat(f.inbox())
	return err == nil && info.IsDir()
}

// RequestAccess grants access whenever the source is supported.
func (f *FileSource) RequestAccess(context.Context) bool {
	return f.IsSupported()
}

// Messages reads every pending message file, oldest file name first.
func (f *FileSource) Messages(ctx context.Context) ([]model.RawMessage, error) {
	msgs, _, err := f.Read(ctx)
	return msgs, err
}

// Read is Messages plus an AckFunc that moves exactly the files read here
// to import/processed/. Files that arrive later stay in the inbox.
func (f *FileSource) Read(ctx context.Context) ([]model.RawMessage, AckFunc, error) {
	names, err := f.Pending()
	if err != nil {
		return nil, nil, err
	}

	var msgs []model.RawMessage
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		batch, err := readMessageFile(filepath.Join(f.inbox(), name))
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", name, err)
		}
		msgs = append(msgs, batch...)
	}

	ack := func(context.Context) error {
		for _, name := range names {
			if err := f.archive(name); err != nil {
				return err
			}
		}
		return nil
	}
	return msgs, ack, nil
}

func (f *FileSource) inbox() string {
	return filepath.Join(f.repoRoot, inboxDir)
}

// Pending lists the message files waiting in the inbox by name. A missing
// inbox has none.
func (f *FileSource) Pending() ([]string, error) {
	entries, err := os.ReadDir(f.inbox())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", inboxDir, err)
	}

	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() && strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// archive moves an inbox file under processed/. An earlier file with the same
// name is kept and the new one gets a numeric suffix. A file already moved
// by another commit is skipped.
func (f *FileSource) archive(name string) error {
	src := filepath.Join(f.inbox(), name)
	if _, err := os.Lstat(src); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	dir := filepath.Join(f.inbox(), archiveDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", archiveDir, err)
	}

	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	dst := filepath.Join(dir, name)
	for n := 1; ; n++ {
		if _, err := os.Lstat(dst); errors.Is(err, fs.ErrNotExist) {
			break
		}
		dst = filepath.Join(dir, fmt.Sprintf("%s-%d%s", base, n, ext))
	}

	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("archiving %s: %w", name, err)
	}
	return nil
}

func readMessageFile(path string) ([]model.RawMessage, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening messages: %w", err)
	}
	defer fh.Close()
	return ReadMessages(fh)
}

// ReadMessages parses a message CSV. The timestamp column holds epoch
// milliseconds or an RFC 3339 instant.
func ReadMessages(r io.Reader) ([]model.RawMessage, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = msgNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading messages CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var msgs []model.RawMessage
	for i, rec := range records[1:] {
		ts, err := parseMessageTime(rec[msgColTimestamp])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		msgs = append(msgs, model.RawMessage{
			Body:      rec[msgColBody],
			Timestamp: ts,
			Sender:    strings.TrimSpace(rec[msgColSender]),
		})
	}
	return msgs, nil
}

func parseMessageTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if millis, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(millis).UTC(), nil
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return ts, nil
}
