package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/smsledger/internal/category"
	"github.com/cleared-dev/smsledger/internal/config"
	"github.com/cleared-dev/smsledger/internal/importer"
	"github.com/cleared-dev/smsledger/internal/ledger"
	"github.com/cleared-dev/smsledger/internal/logger"
	"github.com/cleared-dev/smsledger/internal/model"
	"github.com/cleared-dev/smsledger/internal/sms"
)

// workspace is an opened ledger repo with its services wired up.
type workspace struct {
	root       string
	cfg        *config.Config
	log        zerolog.Logger
	taxonomy   *category.Taxonomy
	ledger     *ledger.Service
	sources    *importer.Registry
	parser     *sms.Parser
	candidates importer.CandidateOptions
	now        func() time.Time
}

func openWorkspace(cmd *cobra.Command) (*workspace, error) {
	repoDir, err := cmd.Flags().GetString("repo")
	if err != nil {
		return nil, err
	}
	root, err := filepath.Abs(repoDir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.LoadRepo(root)
	if err != nil {
		return nil, fmt.Errorf("not an smsledger repo (run init first): %w", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	tax := category.Default()
	led, err := ledger.Load(root, tax)
	if err != nil {
		return nil, err
	}

	return &workspace{
		root:     root,
		cfg:      cfg,
		log:      log,
		taxonomy: tax,
		ledger:   led,
		sources:  importer.DefaultRegistry(root, time.Now),
		parser:   sms.NewParser(tax, sms.WithLogger(log)),
		candidates: importer.CandidateOptions{
			Location:    loc,
			NotesPrefix: cfg.Import.NotesPrefix,
		},
		now: time.Now,
	}, nil
}

// importService resolves a source by name, falling back to the configured one.
func (w *workspace) importService(name string) (*importer.Service, error) {
	if name == "" {
		name = w.cfg.Import.Source
	}
	src, err := w.sources.Lookup(name)
	if err != nil {
		return nil, err
	}
	return importer.NewService(src, w.parser, w.candidates, w.log), nil
}

func (w *workspace) money(d decimal.Decimal) string {
	return w.cfg.Ledger.CurrencySymbol + model.FormatAmount(d)
}
