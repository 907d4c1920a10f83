package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/smsledger/internal/importer"
	"github.com/cleared-dev/smsledger/internal/importlog"
	"github.com/cleared-dev/smsledger/internal/ledger"
	"github.com/cleared-dev/smsledger/internal/logger"
	"github.com/cleared-dev/smsledger/internal/model"
	"github.com/cleared-dev/smsledger/internal/summary"
)

type handler struct {
	Deps
}

// GET /api/expenses
func (h *handler) listExpenses(w http.ResponseWriter, r *http.Request) {
	expenses := h.Ledger.All()
	writeJSON(w, http.StatusOK, map[string]any{
		"expenses": expenses,
		"count":    len(expenses),
	})
}

type createExpenseRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    model.Category  `json:"category"`
	Date        string          `json:"date"`
	Notes       string          `json:"notes"`
}

// POST /api/expenses
func (h *handler) createExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	params := ledger.AddParams{
		Amount:      req.Amount,
		Description: req.Description,
		Category:    req.Category,
		Notes:       req.Notes,
	}
	if req.Date != "" {
		d, err := time.Parse(model.DateFormat, req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		params.Date = d
	}

	e, err := h.Ledger.Add(params)
	if err != nil {
		h.writeLedgerError(w, r, err, "failed to add expense")
		return
	}
	log := logger.FromContext(r.Context())
	log.Info().Str("id", e.ID).Msg("expense added")
	writeJSON(w, http.StatusCreated, e)
}

// DELETE /api/expenses/{id}
func (h *handler) deleteExpense(w http.ResponseWriter, r *http.Request) {
	expenseID := chi.URLParam(r, "id")
	if err := h.Ledger.Delete(expenseID); err != nil {
		h.writeLedgerError(w, r, err, "failed to delete expense")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type sourceInfo struct {
	Name      string `json:"name"`
	Supported bool   `json:"supported"`
}

// GET /api/import/capabilities
func (h *handler) capabilities(w http.ResponseWriter, r *http.Request) {
	names := h.Sources.Names()
	sources := make([]sourceInfo, 0, len(names))
	for _, n := range names {
		sources = append(sources, sourceInfo{Name: n, Supported: h.Sources.Get(n).IsSupported()})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"default": h.DefaultSource,
		"sources": sources,
	})
}

type importResponse struct {
	importer.Result
	Summary string `json:"summary"`
}

// POST /api/import/preview?source=name
func (h *handler) previewImport(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.importService(w, r)
	if !ok {
		return
	}
	res, err := svc.Preview(r.Context(), h.Ledger.All())
	if err != nil {
		h.writeImportError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, importResponse{Result: res, Summary: res.Summary()})
}

// POST /api/import/commit?source=name
func (h *handler) commitImport(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.importService(w, r)
	if !ok {
		return
	}
	res, err := svc.Commit(r.Context(), h.Ledger)
	if err != nil && !errors.Is(err, importer.ErrNotAcknowledged) {
		h.writeImportError(w, r, err)
		return
	}
	log := logger.FromContext(r.Context())
	if err != nil {
		log.Warn().Err(err).Msg("import acknowledgement failed")
	}
	if err := importlog.Record(h.RepoRoot, h.Now(), res); err != nil {
		log.Warn().Err(err).Msg("failed to write import log")
	}
	writeJSON(w, http.StatusOK, importResponse{Result: res, Summary: res.Summary()})
}

type parseResponse struct {
	Detected    bool                     `json:"detected"`
	Transaction *model.ParsedTransaction `json:"transaction,omitempty"`
	Expense     *model.Expense           `json:"expense,omitempty"`
}

// POST /api/parse
func (h *handler) parseMessage(w http.ResponseWriter, r *http.Request) {
	var msg model.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(msg.Body) == "" {
		writeError(w, http.StatusBadRequest, "body is required")
		return
	}
	if msg.Timestamp.UnixMilli() == 0 {
		msg.Timestamp = h.Now().UTC()
	}

	tx, ok := h.Parser.Parse(msg)
	if !ok {
		writeJSON(w, http.StatusOK, parseResponse{})
		return
	}
	e := importer.ToExpense(msg, tx, h.Candidates)
	writeJSON(w, http.StatusOK, parseResponse{Detected: true, Transaction: &tx, Expense: &e})
}

// GET /api/summary?month=YYYY-MM
func (h *handler) summary(w http.ResponseWriter, r *http.Request) {
	year, month, _ := h.Now().UTC().Date()
	if q := r.URL.Query().Get("month"); q != "" {
		var err error
		year, month, err = summary.ParseMonth(q)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	writeJSON(w, http.StatusOK, summary.Month(h.Ledger.All(), year, month))
}

// GET /api/categories
func (h *handler) categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"categories": h.Taxonomy.Names(),
		"fallback":   h.Taxonomy.Fallback(),
	})
}

func (h *handler) importService(w http.ResponseWriter, r *http.Request) (*importer.Service, bool) {
	name := r.URL.Query().Get("source")
	if name == "" {
		name = h.DefaultSource
	}
	src, err := h.Sources.Lookup(name)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return importer.NewService(src, h.Parser, h.Candidates, logger.FromContext(r.Context())), true
}

func (h *handler) writeImportError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, importer.ErrUnsupported):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, importer.ErrAccessDenied):
		writeError(w, http.StatusForbidden, err.Error())
	default:
		h.writeLedgerError(w, r, err, "import failed")
	}
}

func (h *handler) writeLedgerError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ledger.ErrInvalid):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		log := logger.FromContext(r.Context())
		log.Error().Err(err).Msg(msg)
		writeError(w, http.StatusInternalServerError, msg)
	}
}
