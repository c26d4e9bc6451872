package api

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/okian/socio/pkg/logger"
)

// SelectionHandler serves the option lists and every view of a selection.
type SelectionHandler struct {
	deps     Dependencies
	validate *validator.Validate
	log      logger.Logger
}

// NewSelectionHandler creates a new selection handler.
func NewSelectionHandler(deps Dependencies, v *validator.Validate, log logger.Logger) *SelectionHandler {
	return &SelectionHandler{deps: deps, validate: v, log: log}
}

// HandleStates handles GET /api/states.
func (h *SelectionHandler) HandleStates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{"states": h.deps.States(r.Context())})
}

// HandleSuburbs handles GET /api/states/{state}/suburbs.
func (h *SelectionHandler) HandleSuburbs(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_suburbs"
	state := chi.URLParam(r, "state")
	suburbs, err := h.deps.Suburbs(r.Context(), state)
	if err != nil {
		writeFailure(r.Context(), h.log, w, r, op, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"state": state, "suburbs": suburbs})
}

// HandleMap handles GET /api/map?state=S&suburb=U[&suburb=V].
// A selection that matches nothing still answers 200 with no_match set.
func (h *SelectionHandler) HandleMap(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_map"
	q, err := bindSelection(h.validate, r)
	if err != nil {
		writeFailure(r.Context(), h.log, w, r, op, err)
		return
	}
	view, err := h.deps.Map(r.Context(), q.selection())
	if err != nil {
		writeFailure(r.Context(), h.log, w, r, op, err)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

// HandleSummary handles GET /api/summary?state=S&suburb=U.
func (h *SelectionHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_summary"
	q, err := bindSelection(h.validate, r)
	if err != nil {
		writeFailure(r.Context(), h.log, w, r, op, err)
		return
	}
	rec, err := h.deps.Summary(r.Context(), q.selection())
	if err != nil {
		writeFailure(r.Context(), h.log, w, r, op, err)
		return
	}
	writeJSON(w, r, http.StatusOK, rec)
}

// HandleReport handles GET /api/report.pdf?state=S&suburb=U. The PDF is
// buffered so a failed render still gets a JSON error.
func (h *SelectionHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_report"
	q, err := bindSelection(h.validate, r)
	if err != nil {
		writeFailure(r.Context(), h.log, w, r, op, err)
		return
	}
	var buf bytes.Buffer
	info, err := h.deps.Report(r.Context(), &buf, q.selection())
	if err != nil {
		writeFailure(r.Context(), h.log, w, r, op, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", info.Filename))
	w.Header().Set("X-Report-Id", info.ID.String())
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
