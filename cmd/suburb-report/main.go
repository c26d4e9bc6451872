package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/socio/internal/reportcli"
)

// Default configuration constants.
const (
	defaultDataPath = "Socioeconomic.xlsx"
	defaultTimeout  = 2 * time.Minute
)

func main() {
	var (
		dataPath  = flag.String("data", defaultDataPath, "Workbook with the suburb rankings")
		sheet     = flag.String("sheet", "", "Worksheet to read (default: the first sheet)")
		state     = flag.String("state", "", "State of the suburb")
		suburb    = flag.String("suburb", "", "Suburb to report on")
		outFile   = flag.String("out", "", "PDF output path (default: <Suburb>_Socioeconomic_Report.pdf)")
		chartFile = flag.String("chart", "", "Also write the leaderboard chart as PNG to this path")
		limit     = flag.Int("limit", 0, "Leaderboard size for the chart (default 10)")
		logFile   = flag.String("log", "", "Also write log output to this file")
		verbose   = flag.Bool("verbose", false, "Enable verbose logging")
		help      = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		reportcli.ShowHelp(os.Stdout)
		return
	}

	closer, err := reportcli.SetupLogging(*logFile, *verbose)
	if err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = closer.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	config := &reportcli.Config{
		DataPath:  *dataPath,
		Sheet:     *sheet,
		State:     *state,
		Suburb:    *suburb,
		OutFile:   *outFile,
		ChartFile: *chartFile,
		Limit:     *limit,
		LogFile:   *logFile,
		Verbose:   *verbose,
	}

	res, err := reportcli.Run(ctx, config)
	if err != nil {
		os.Stderr.WriteString("Report failed: " + err.Error() + "\n")
		cancel()
		os.Exit(1)
	}
	os.Stdout.WriteString("Report written to " + res.PDFPath + "\n")
}
