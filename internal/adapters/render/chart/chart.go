// Package chart draws leaderboards as horizontal bar charts.
package chart

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/okian/socio/internal/domain/model"
)

// Render writes entries as a horizontal bar chart. Entries are drawn bottom to
// top in the order given, so an ascending leaderboard puts the highest
// ranking at the top.
func Render(w io.Writer, entries []model.LeaderboardEntry, opts ...Option) error {
	if len(entries) == 0 {
		return ErrNoEntries
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	p := plot.New()
	p.Title.Text = o.title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = o.xLabel
	p.X.Min = 0

	values := make(plotter.Values, len(entries))
	labels := make([]string, len(entries))
	for i, e := range entries {
		values[i] = e.Ranking
		labels[i] = e.Suburb
	}

	bars, err := plotter.NewBarChart(values, o.barWidth)
	if err != nil {
		return fmt.Errorf("bar chart: %w", err)
	}
	bars.Horizontal = true
	bars.Color = o.barColour
	bars.LineStyle.Width = vg.Length(0)

	p.Add(bars, plotter.NewGrid())
	p.NominalY(labels...)

	wt, err := p.WriterTo(o.width, o.height, o.format)
	if err != nil {
		return fmt.Errorf("chart canvas: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	return nil
}
