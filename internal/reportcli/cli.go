package reportcli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/okian/socio/pkg/logger"
)

// File permission constants.
const (
	logFilePermission    = 0o600
	outputFilePermission = 0o644
)

// SetupLogging initializes the global logger on stdout, tee'd to logFile when
// one is given. The returned closer releases the file.
func SetupLogging(logFile string, verbose bool) (io.Closer, error) {
	var (
		out    io.Writer = os.Stdout
		closer io.Closer = io.NopCloser(nil)
	)
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
		if err != nil {
			return nil, fmt.Errorf("failed to create log file: %w", err)
		}
		out = io.MultiWriter(os.Stdout, file)
		closer = file
	}

	if err := logger.Init(logger.WithOutput(out)); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		_ = logger.SetLevelString("debug")
	}
	if logFile != "" {
		logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	}
	return closer, nil
}

// ShowHelp prints usage information for the report tool.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `Suburb Report Tool
==================

Writes the one-page socioeconomic PDF report for a single suburb, without
starting the map service.

Usage:
  suburb-report -state NSW -suburb Bondi [options]

Options:
  -data string
        Workbook with the suburb rankings (default "Socioeconomic.xlsx")
  -sheet string
        Worksheet to read (default: the first sheet)
  -state string
        State of the suburb (required)
  -suburb string
        Suburb to report on (required)
  -out string
        PDF output path (default: <Suburb>_Socioeconomic_Report.pdf)
  -chart string
        Also write the state's leaderboard chart as PNG to this path
  -limit int
        Leaderboard size for the chart (default 10)
  -log string
        Also write log output to this file
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Report on Bondi
  suburb-report -state NSW -suburb Bondi

  # Report with the NSW top 15 chart written next to it
  suburb-report -data data/Socioeconomic.xlsx -state NSW -suburb Bondi -chart nsw.png -limit 15
`)
}
