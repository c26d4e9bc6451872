// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	service "github.com/okian/socio/internal/app"
	"github.com/okian/socio/internal/adapters/render/report"
	"github.com/okian/socio/internal/domain/model"
	"github.com/okian/socio/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	States(ctx context.Context) []string
	Suburbs(ctx context.Context, state string) ([]string, error)
	Map(ctx context.Context, sel model.Selection) (service.MapView, error)
	Summary(ctx context.Context, sel model.Selection) (model.SummaryRecord, error)
	Leaderboard(ctx context.Context, state string, limit int) ([]model.LeaderboardEntry, error)
	Chart(ctx context.Context, w io.Writer, state string, limit int) error
	Report(ctx context.Context, w io.Writer, sel model.Selection) (report.Info, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	selectionHandler   *SelectionHandler
	leaderboardHandler *LeaderboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, log logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	v := validator.New(validator.WithRequiredStructEnabled())
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		selectionHandler:   NewSelectionHandler(deps, v, log),
		leaderboardHandler: NewLeaderboardHandler(deps, v, log),
	}
}

// Register attaches all HTTP routes to r.
func (s *Server) Register(_ context.Context, r chi.Router) {
	r.Get("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	r.Get("/metrics", s.healthHandler.HandleMetrics)
	r.Get("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	r.Route("/api", func(r chi.Router) {
		r.Get("/states", MetricsMiddleware(s.selectionHandler.HandleStates, "states"))
		r.Get("/states/{state}/suburbs", MetricsMiddleware(s.selectionHandler.HandleSuburbs, "suburbs"))
		r.Get("/map", MetricsMiddleware(s.selectionHandler.HandleMap, "map"))
		r.Get("/summary", MetricsMiddleware(s.selectionHandler.HandleSummary, "summary"))
		r.Get("/report.pdf", MetricsMiddleware(s.selectionHandler.HandleReport, "report"))
		r.Get("/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
		r.Get("/chart.png", MetricsMiddleware(s.leaderboardHandler.HandleChart, "chart"))
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, codeNotFound, fmt.Errorf("no route for %s", r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusMethodNotAllowed, codeMethodNotFound, nil)
	})
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, r, status, errorResponse{Code: code, Message: msg})
}

// writeFailure classifies err and writes it. Server errors are logged.
func writeFailure(ctx context.Context, log logger.Logger, w http.ResponseWriter, r *http.Request, op string, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		log.Error(ctx, "request failed", logger.String("op", op), logger.Error(err))
	}
	writeError(w, r, status, code, err)
}
