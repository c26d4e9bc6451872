// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New returns a Config populated with defaults.
// - Load layers defaults, an optional YAML file, an optional .env file and
//   SOCIO_* environment variables, in that order.
// - Errors are wrapped with this package's sentinel kinds.
package config

import (
	"fmt"
	"strings"
)

// Range scopes for colour-scale normalisation.
const (
	RangeScopeState   = "state"
	RangeScopeDataset = "dataset"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DatasetPath points at the suburb ranking workbook.
	DatasetPath string `koanf:"dataset_path"`
	// Sheet selects a worksheet; empty means the first sheet.
	Sheet string `koanf:"sheet"`

	// Column names, matched after trimming header whitespace.
	StateColumn       string `koanf:"state_column"`
	SuburbColumn      string `koanf:"suburb_column"`
	RankingColumn     string `koanf:"ranking_column"`
	CoordinateAColumn string `koanf:"coordinate_a_column"`
	CoordinateBColumn string `koanf:"coordinate_b_column"`

	// LeaderboardSize is the default top-N for leaderboards and charts.
	LeaderboardSize int `koanf:"leaderboard_size"`
	// MaxLeaderboardLimit caps ?limit on leaderboard endpoints.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`

	// RangeScope picks the colour-scale population: state or dataset.
	RangeScope string `koanf:"range_scope"`

	// ReportTitle prefixes the PDF report title.
	ReportTitle string `koanf:"report_title"`

	// MapStyle and MapZoom are handed to the dashboard as-is.
	MapStyle string `koanf:"map_style"`
	MapZoom  int    `koanf:"map_zoom"`

	// EnvFile is an optional dotenv file read before the environment.
	EnvFile string `koanf:"env_file"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		LogFormat:           "text",
		Addr:                ":9080",
		DatasetPath:         "Socioeconomic.xlsx",
		StateColumn:         "State",
		SuburbColumn:        "Suburb",
		RankingColumn:       "Socio-economic Ranking",
		CoordinateAColumn:   "Long",
		CoordinateBColumn:   "Lat",
		LeaderboardSize:     10,
		MaxLeaderboardLimit: 100,
		RangeScope:          RangeScopeState,
		ReportTitle:         "Socioeconomic Report",
		MapStyle:            "carto-positron",
		MapZoom:             12,
		EnvFile:             ".env",
	}
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.DatasetPath) == "":
		return fmt.Errorf("%w: dataset_path must not be empty", ErrInvalidConfig)
	case c.LeaderboardSize < 1:
		return fmt.Errorf("%w: leaderboard_size must be positive", ErrInvalidConfig)
	case c.MaxLeaderboardLimit < c.LeaderboardSize:
		return fmt.Errorf("%w: max_leaderboard_limit must be at least leaderboard_size", ErrInvalidConfig)
	case c.RangeScope != RangeScopeState && c.RangeScope != RangeScopeDataset:
		return fmt.Errorf("%w: range_scope must be %q or %q", ErrInvalidConfig, RangeScopeState, RangeScopeDataset)
	case c.CoordinateAColumn != "" && c.CoordinateAColumn == c.CoordinateBColumn:
		return fmt.Errorf("%w: coordinate columns must differ", ErrInvalidConfig)
	}
	return nil
}
