package importer

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cleared-dev/smsledger/internal/model"
	"github.com/cleared-dev/smsledger/internal/sms"
)

// Result describes one import run before it is committed.
type Result struct {
	Source   string          `json:"source"`
	Messages int             `json:"messages"`
	Detected []model.Expense `json:"detected"`
	Accepted []model.Expense `json:"accepted"`
}

// Summary renders the outcome the way it is shown to the user.
func (r Result) Summary() string {
	if len(r.Accepted) == 0 {
		return fmt.Sprintf("No new transactions found. All %d detected transaction(s) already exist.", len(r.Detected))
	}
	return fmt.Sprintf("Imported %d new transaction(s) of %d detected.", len(r.Accepted), len(r.Detected))
}

// Service runs a message source through the parser and dedup merge.
type Service struct {
	source Source
	parser *sms.Parser
	opts   CandidateOptions
	log    zerolog.Logger
}

// NewService creates an import Service.
func NewService(source Source, parser *sms.Parser, opts CandidateOptions, log zerolog.Logger) *Service {
	return &Service{source: source, parser: parser, opts: opts, log: log}
}

// Source returns the message source the service reads from.
func (s *Service) Source() Source {
	return s.source
}

// Preview fetches messages and returns the candidates not already in
// existing. It does not modify existing.
func (s *Service) Preview(ctx context.Context, existing []model.Expense) (Result, error) {
	res, _, err := s.preview(ctx, existing)
	return res, err
}

func (s *Service) preview(ctx context.Context, existing []model.Expense) (Result, AckFunc, error) {
	name := s.source.Name()
	if !s.source.IsSupported() {
		return Result{}, nil, fmt.Errorf("%s: %w", name, ErrUnsupported)
	}
	if !s.source.RequestAccess(ctx) {
		return Result{}, nil, fmt.Errorf("%s: %w", name, ErrAccessDenied)
	}

	msgs, ack, err := s.read(ctx)
	if err != nil {
		return Result{}, nil, fmt.Errorf("reading messages from %s: %w", name, err)
	}

	detected := BuildCandidates(s.parser, msgs, s.opts)
	accepted := AssignIDs(existing, Merge(existing, detected))

	s.log.Info().
		Str("source", name).
		Int("messages", len(msgs)).
		Int("detected", len(detected)).
		Int("accepted", len(accepted)).
		Msg("import preview")

	return Result{
		Source:   name,
		Messages: len(msgs),
		Detected: detected,
		Accepted: accepted,
	}, ack, nil
}

func (s *Service) read(ctx context.Context) ([]model.RawMessage, AckFunc, error) {
	if a, ok := s.source.(Acknowledger); ok {
		return a.Read(ctx)
	}
	msgs, err := s.source.Messages(ctx)
	return msgs, nil, err
}

// Store is the ledger an import commits into. AppendWith must hand fn a
// consistent snapshot and append its result atomically.
type Store interface {
	AppendWith(fn func(existing []model.Expense) ([]model.Expense, error)) ([]model.Expense, error)
}

// Commit previews against the store's current contents, appends the
// accepted expenses and acknowledges the source. A failed acknowledgement
// returns the committed Result with an error wrapping ErrNotAcknowledged.
func (s *Service) Commit(ctx context.Context, store Store) (Result, error) {
	var res Result
	var ack AckFunc
	_, err := store.AppendWith(func(existing []model.Expense) ([]model.Expense, error) {
		r, a, err := s.preview(ctx, existing)
		if err != nil {
			return nil, err
		}
		res, ack = r, a
		return r.Accepted, nil
	})
	if err != nil {
		return Result{}, err
	}
	if ack != nil {
		if err := ack(ctx); err != nil {
			return res, fmt.Errorf("%w: %s: %w", ErrNotAcknowledged, res.Source, err)
		}
	}
	s.log.Info().Str("source", res.Source).Int("accepted", len(res.Accepted)).Msg("import committed")
	return res, nil
}
