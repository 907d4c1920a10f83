// Package api serves the ledger and the SMS import flow over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/cleared-dev/smsledger/internal/category"
	"github.com/cleared-dev/smsledger/internal/importer"
	"github.com/cleared-dev/smsledger/internal/ledger"
	"github.com/cleared-dev/smsledger/internal/sms"
)

// Deps are the services the HTTP handlers work on.
type Deps struct {
	RepoRoot      string
	Ledger        *ledger.Service
	Sources       *importer.Registry
	Parser        *sms.Parser
	Taxonomy      *category.Taxonomy
	Candidates    importer.CandidateOptions
	DefaultSource string
	Now           func() time.Time
	Log           zerolog.Logger
}

// NewRouter wires every route onto a chi router.
func NewRouter(d Deps) *chi.Mux {
	if d.Now == nil {
		d.Now = time.Now
	}
	h := &handler{Deps: d}

	r := chi.NewRouter()
	r.Use(recoverer(d.Log))
	r.Use(requestLogger(d.Log))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		// Ledger
		r.Get("/expenses", h.listExpenses)
		r.Post("/expenses", h.createExpense)
		r.Delete("/expenses/{id}", h.deleteExpense)

		// Import
		r.Get("/import/capabilities", h.capabilities)
		r.Post("/import/preview", h.previewImport)
		r.Post("/import/commit", h.commitImport)
		r.Post("/parse", h.parseMessage)

		r.Get("/summary", h.summary)
		r.Get("/categories", h.categories)
	})

	return r
}
