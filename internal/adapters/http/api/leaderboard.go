package api

import (
	"bytes"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/okian/socio/pkg/logger"
)

// LeaderboardHandler handles leaderboard requests.
type LeaderboardHandler struct {
	deps     Dependencies
	validate *validator.Validate
	log      logger.Logger
}

// NewLeaderboardHandler creates a new leaderboard handler.
func NewLeaderboardHandler(deps Dependencies, v *validator.Validate, log logger.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{deps: deps, validate: v, log: log}
}

// HandleGetLeaderboard handles GET /api/leaderboard?state=S[&limit=N].
func (h *LeaderboardHandler) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_leaderboard"
	q, err := bindLeaderboard(h.validate, r)
	if err != nil {
		writeFailure(r.Context(), h.log, w, r, op, err)
		return
	}
	entries, err := h.deps.Leaderboard(r.Context(), q.State, q.Limit)
	if err != nil {
		writeFailure(r.Context(), h.log, w, r, op, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"state": q.State, "entries": entries})
}

// HandleChart handles GET /api/chart.png?state=S[&limit=N].
func (h *LeaderboardHandler) HandleChart(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_chart"
	q, err := bindLeaderboard(h.validate, r)
	if err != nil {
		writeFailure(r.Context(), h.log, w, r, op, err)
		return
	}
	var buf bytes.Buffer
	if err := h.deps.Chart(r.Context(), &buf, q.State, q.Limit); err != nil {
		writeFailure(r.Context(), h.log, w, r, op, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
