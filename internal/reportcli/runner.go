// Package reportcli implements the offline suburb report command.
package reportcli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/okian/socio/internal/adapters/render/report"
	app "github.com/okian/socio/internal/app"
	"github.com/okian/socio/internal/dataset"
	"github.com/okian/socio/internal/domain/model"
	"github.com/okian/socio/pkg/logger"
)

// Run loads the workbook and writes the report, plus the chart when asked.
func Run(ctx context.Context, cfg *Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	start := time.Now()
	log := logger.Get().Named("reportcli")

	log.Info(ctx, "starting suburb report",
		logger.String("data", cfg.DataPath),
		logger.String("state", cfg.State),
		logger.String("suburb", cfg.Suburb),
		logger.Bool("verbose", cfg.Verbose),
	)

	ds, err := dataset.Load(ctx, cfg.DataPath, dataset.WithSheet(cfg.Sheet), dataset.WithLogger(log))
	if err != nil {
		return Result{}, fmt.Errorf("dataset load failed: %w", err)
	}

	opts := []app.Option{app.WithLogger(log)}
	if cfg.Limit > 0 {
		opts = append(opts, app.WithLeaderboardSize(cfg.Limit))
	}
	if cfg.Title != "" {
		opts = append(opts, app.WithReportTitle(cfg.Title))
	}
	svc, err := app.New(ds, opts...)
	if err != nil {
		return Result{}, err
	}

	sel := model.Selection{State: cfg.State, Suburbs: []string{cfg.Suburb}}
	res := Result{PDFPath: cfg.OutFile}
	if res.PDFPath == "" {
		res.PDFPath = report.Filename(cfg.Suburb)
	}

	info, err := writeFile(res.PDFPath, func(f *os.File) (report.Info, error) {
		return svc.Report(ctx, f, sel)
	})
	if err != nil {
		return Result{}, fmt.Errorf("report failed: %w", err)
	}
	res.ReportID = info.ID.String()

	if cfg.ChartFile != "" {
		if _, err := writeFile(cfg.ChartFile, func(f *os.File) (report.Info, error) {
			return report.Info{}, svc.Chart(ctx, f, cfg.State, 0)
		}); err != nil {
			return res, fmt.Errorf("chart failed: %w", err)
		}
		res.ChartPath = cfg.ChartFile
	}

	log.Info(ctx, "suburb report written",
		logger.String("report_id", res.ReportID),
		logger.String("pdf", res.PDFPath),
		logger.String("chart", res.ChartPath),
		logger.Duration("elapsed", time.Since(start)),
	)
	return res, nil
}

// writeFile creates path, runs write and removes the file again on failure.
func writeFile(path string, write func(*os.File) (report.Info, error)) (report.Info, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, outputFilePermission)
	if err != nil {
		return report.Info{}, err
	}
	info, err := write(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return report.Info{}, err
	}
	return info, nil
}
