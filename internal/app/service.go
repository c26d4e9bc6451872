// Package service composes the selection pipeline over a loaded dataset and
// serves the results to the HTTP API and the report CLI.
package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/okian/socio/internal/adapters/render/chart"
	"github.com/okian/socio/internal/adapters/render/report"
	"github.com/okian/socio/internal/domain/aggregate"
	"github.com/okian/socio/internal/domain/filter"
	"github.com/okian/socio/internal/domain/model"
	"github.com/okian/socio/internal/domain/summary"
	"github.com/okian/socio/pkg/logger"
	"github.com/okian/socio/pkg/metrics"
)

// Range scopes accepted by WithRangeScope.
const (
	ScopeState   = "state"
	ScopeDataset = "dataset"
)

// Render kinds used in metrics.
const (
	kindChart  = "chart"
	kindReport = "report"
)

// MapView is everything the dashboard needs to draw one selection.
type MapView struct {
	State   string             `json:"state"`
	Suburbs []string           `json:"suburbs"`
	Points  []model.Point      `json:"points"`
	Range   model.RankingRange `json:"range"`
	// Scope names the population Range was computed over.
	Scope   string  `json:"scope"`
	Center  *LatLon `json:"center,omitempty"`
	Zoom    int     `json:"zoom"`
	Style   string  `json:"style"`
	NoMatch bool    `json:"no_match"`
	Warning string  `json:"warning,omitempty"`
}

// LatLon is a map position.
type LatLon struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Service implements the API dependencies over an immutable dataset.
type Service struct {
	dataset *model.Dataset

	// Configuration
	leaderboardSize int
	maxLimit        int
	rangeScope      string
	reportTitle     string
	mapStyle        string
	mapZoom         int

	started time.Time

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithLeaderboardSize sets the default number of leaderboard entries.
func WithLeaderboardSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.leaderboardSize = n
		}
	}
}

// WithMaxLimit caps the leaderboard limit a caller may ask for.
func WithMaxLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxLimit = n
		}
	}
}

// WithRangeScope selects the colour-scale population: ScopeState or
// ScopeDataset. Unknown values are ignored.
func WithRangeScope(scope string) Option {
	return func(s *Service) {
		if scope == ScopeState || scope == ScopeDataset {
			s.rangeScope = scope
		}
	}
}

// WithReportTitle sets the PDF title prefix.
func WithReportTitle(title string) Option {
	return func(s *Service) {
		if title != "" {
			s.reportTitle = title
		}
	}
}

// WithMapStyle sets the basemap style token handed to the dashboard.
func WithMapStyle(style string, zoom int) Option {
	return func(s *Service) {
		if style != "" {
			s.mapStyle = style
		}
		if zoom > 0 {
			s.mapZoom = zoom
		}
	}
}

// New constructs a Service over ds.
func New(ds *model.Dataset, opts ...Option) (*Service, error) {
	if ds.Len() == 0 {
		return nil, ErrNoDataset
	}
	s := &Service{
		dataset:         ds,
		leaderboardSize: 10,
		maxLimit:        100,
		rangeScope:      ScopeState,
		reportTitle:     report.DefaultTitle,
		mapStyle:        "carto-positron",
		mapZoom:         12,
		started:         time.Now(),
		logger:          logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.maxLimit < s.leaderboardSize {
		s.maxLimit = s.leaderboardSize
	}
	return s, nil
}

// States returns the state options.
func (s *Service) States(_ context.Context) []string {
	return filter.States(s.dataset)
}

// Suburbs returns the suburb options of state.
func (s *Service) Suburbs(_ context.Context, state string) ([]string, error) {
	if strings.TrimSpace(state) == "" {
		return nil, fmt.Errorf("%w: state is required", ErrInvalidSelection)
	}
	return filter.Suburbs(s.dataset, state), nil
}

// Map resolves sel into map points. A selection that matches nothing is not an
// error: the view comes back with NoMatch set and the warning text.
func (s *Service) Map(ctx context.Context, sel model.Selection) (MapView, error) {
	if err := validate(sel); err != nil {
		return MapView{}, err
	}

	res := filter.Resolve(s.dataset, sel)
	metrics.RecordSelection(!res.NoMatch, len(res.View))

	view := MapView{
		State:   sel.State,
		Suburbs: sel.Suburbs,
		Points:  []model.Point{},
		Scope:   s.rangeScope,
		Zoom:    s.mapZoom,
		Style:   s.mapStyle,
	}
	if res.NoMatch {
		s.logger.Debug(ctx, "selection matched nothing",
			logger.String("state", sel.State),
			logger.Strings("suburbs", sel.Suburbs),
		)
		view.NoMatch = true
		view.Warning = filter.NoMatchWarning
		return view, nil
	}

	rng, err := aggregate.Range(s.population(sel.State))
	if err != nil {
		return MapView{}, err
	}
	view.Range = rng
	for _, r := range res.View {
		view.Points = append(view.Points, model.NewPoint(r, rng))
	}
	if lat, lon, ok := res.Center(); ok {
		view.Center = &LatLon{Latitude: lat, Longitude: lon}
	}
	return view, nil
}

// Summary projects the record matching a single-suburb selection. Duplicate
// rows resolve to the first in dataset order.
func (s *Service) Summary(ctx context.Context, sel model.Selection) (model.SummaryRecord, error) {
	if err := validate(sel); err != nil {
		return model.SummaryRecord{}, err
	}
	if !sel.Single() {
		return model.SummaryRecord{}, ErrNotSingleSuburb
	}

	res := filter.Resolve(s.dataset, sel)
	metrics.RecordSelection(!res.NoMatch, len(res.View))
	if res.NoMatch {
		return model.SummaryRecord{}, fmt.Errorf("%w: %s, %s", ErrNoMatch, sel.Suburbs[0], sel.State)
	}
	if len(res.View) > 1 {
		s.logger.Warn(ctx, "duplicate suburb rows, using the first",
			logger.String("state", sel.State),
			logger.String("suburb", sel.Suburbs[0]),
			logger.Int("rows", len(res.View)),
		)
	}
	return summary.Project(res.View[0]), nil
}

// Leaderboard returns the top limit suburbs of state by ranking, ascending so
// the highest renders last. A zero limit uses the configured default.
func (s *Service) Leaderboard(_ context.Context, state string, limit int) ([]model.LeaderboardEntry, error) {
	if strings.TrimSpace(state) == "" {
		return nil, fmt.Errorf("%w: state is required", ErrInvalidSelection)
	}
	n, err := s.limit(limit)
	if err != nil {
		return nil, err
	}
	pop := filter.ByState(s.dataset, state)
	if len(pop) == 0 {
		return nil, fmt.Errorf("%w: state %s", ErrNoMatch, state)
	}
	return aggregate.Leaderboard(pop, n), nil
}

// Chart writes the leaderboard of state as a PNG bar chart.
func (s *Service) Chart(ctx context.Context, w io.Writer, state string, limit int) error {
	entries, err := s.Leaderboard(ctx, state, limit)
	if err != nil {
		return err
	}
	start := time.Now()
	if err := chart.Render(w, entries, chart.WithTitle(fmt.Sprintf("Top %d suburbs in %s", len(entries), state))); err != nil {
		metrics.RecordRenderError(kindChart)
		s.logger.Error(ctx, "chart render failed", logger.String("state", state), logger.Error(err))
		return err
	}
	metrics.RecordRender(kindChart, float64(time.Since(start).Milliseconds()))
	return nil
}

// Report writes the PDF report of a single-suburb selection to w. The
// state's leaderboard chart is embedded when it renders.
func (s *Service) Report(ctx context.Context, w io.Writer, sel model.Selection) (report.Info, error) {
	rec, err := s.Summary(ctx, sel)
	if err != nil {
		return report.Info{}, err
	}

	start := time.Now()
	opts := []report.Option{report.WithTitle(s.reportTitle)}
	var img bytes.Buffer
	if err := s.Chart(ctx, &img, sel.State, 0); err == nil {
		opts = append(opts, report.WithChart(img.Bytes()))
	} else {
		s.logger.Warn(ctx, "report without chart", logger.Error(err))
	}

	info, err := report.Render(w, rec, opts...)
	if err != nil {
		metrics.RecordRenderError(kindReport)
		s.logger.Error(ctx, "report render failed", logger.String("suburb", rec.Suburb), logger.Error(err))
		return report.Info{}, err
	}
	elapsedMs := float64(time.Since(start).Milliseconds())
	metrics.RecordRender(kindReport, elapsedMs)
	if info.OmittedFields > 0 || info.ChartOmitted {
		s.logger.Warn(ctx, "report truncated to one page",
			logger.String("report_id", info.ID.String()),
			logger.Int("omitted_fields", info.OmittedFields),
			logger.Bool("chart_omitted", info.ChartOmitted),
		)
	}
	s.logger.Info(ctx, "report rendered",
		logger.String("report_id", info.ID.String()),
		logger.String("suburb", rec.Suburb),
		logger.String("state", rec.State),
		logger.Float64("elapsed_ms", elapsedMs),
	)
	return info, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	return map[string]any{
		"source":          s.dataset.Source(),
		"sheet":           s.dataset.Sheet(),
		"records":         s.dataset.Len(),
		"skippedRows":     s.dataset.Skipped(),
		"states":          len(filter.States(s.dataset)),
		"rangeScope":      s.rangeScope,
		"leaderboardSize": s.leaderboardSize,
		"maxLimit":        s.maxLimit,
		"uptimeSeconds":   int64(time.Since(s.started).Seconds()),
	}
}

// population is the reference set for colour scaling.
func (s *Service) population(state string) []model.SuburbRecord {
	if s.rangeScope == ScopeDataset {
		return s.dataset.Records()
	}
	return filter.ByState(s.dataset, state)
}

func (s *Service) limit(n int) (int, error) {
	switch {
	case n == 0:
		return s.leaderboardSize, nil
	case n < 0 || n > s.maxLimit:
		return 0, fmt.Errorf("%w: %d not in 1..%d", ErrInvalidLimit, n, s.maxLimit)
	}
	return n, nil
}

func validate(sel model.Selection) error {
	if strings.TrimSpace(sel.State) == "" {
		return fmt.Errorf("%w: state is required", ErrInvalidSelection)
	}
	if len(sel.Suburbs) == 0 {
		return fmt.Errorf("%w: at least one suburb is required", ErrInvalidSelection)
	}
	return nil
}
