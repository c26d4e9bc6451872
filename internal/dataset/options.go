package dataset

import "github.com/okian/socio/pkg/logger"

// Columns names the header cells the loader looks for, after trimming.
type Columns struct {
	State       string
	Suburb      string
	Ranking     string
	CoordinateA string
	CoordinateB string
}

// DefaultColumns matches the published Socioeconomic.xlsx workbook.
func DefaultColumns() Columns {
	return Columns{
		State:       "State",
		Suburb:      "Suburb",
		Ranking:     "Socio-economic Ranking",
		CoordinateA: "Long",
		CoordinateB: "Lat",
	}
}

// Option applies a configuration option to the loader.
type Option func(*loader)

// WithSheet reads the named worksheet instead of the first one.
func WithSheet(name string) Option {
	return func(l *loader) {
		l.sheet = name
	}
}

// WithColumns overrides individual column names. Empty names keep the default.
func WithColumns(c Columns) Option {
	return func(l *loader) {
		if c.State != "" {
			l.columns.State = c.State
		}
		if c.Suburb != "" {
			l.columns.Suburb = c.Suburb
		}
		if c.Ranking != "" {
			l.columns.Ranking = c.Ranking
		}
		if c.CoordinateA != "" {
			l.columns.CoordinateA = c.CoordinateA
		}
		if c.CoordinateB != "" {
			l.columns.CoordinateB = c.CoordinateB
		}
	}
}

// WithLogger sets the logger used for load diagnostics.
func WithLogger(log logger.Logger) Option {
	return func(l *loader) {
		if log != nil {
			l.log = log
		}
	}
}
