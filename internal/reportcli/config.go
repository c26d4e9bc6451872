package reportcli

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUsage marks missing or conflicting flags.
var ErrUsage = errors.New("usage")

// Config holds configuration for one report run.
type Config struct {
	DataPath  string // Workbook to read
	Sheet     string // Worksheet; empty means the first
	State     string // State of the suburb
	Suburb    string // Suburb to report on
	OutFile   string // PDF path; empty means <Suburb>_Socioeconomic_Report.pdf
	ChartFile string // Optional PNG path for the state leaderboard
	Limit     int    // Leaderboard size; 0 means the default
	Title     string // Report title prefix
	LogFile   string // Optional log file, tee'd with stdout
	Verbose   bool   // Enable debug logging
}

// Validate checks that the run has everything it needs.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.DataPath) == "":
		return fmt.Errorf("%w: -data is required", ErrUsage)
	case strings.TrimSpace(c.State) == "":
		return fmt.Errorf("%w: -state is required", ErrUsage)
	case strings.TrimSpace(c.Suburb) == "":
		return fmt.Errorf("%w: -suburb is required", ErrUsage)
	case c.Limit < 0:
		return fmt.Errorf("%w: -limit must not be negative", ErrUsage)
	}
	return nil
}

// Result describes the files a run wrote.
type Result struct {
	ReportID  string
	PDFPath   string
	ChartPath string
}
