package reportcli_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	service "github.com/okian/socio/internal/app"
	"github.com/okian/socio/internal/dataset"
	"github.com/okian/socio/internal/dataset/datasettest"
	"github.com/okian/socio/internal/reportcli"
)

func TestConfigValidate(t *testing.T) {
	Convey("Given report configs", t, func() {
		valid := reportcli.Config{DataPath: "Socioeconomic.xlsx", State: "NSW", Suburb: "Bondi"}

		Convey("A complete config is valid", func() {
			So(valid.Validate(), ShouldBeNil)
		})

		Convey("Missing flags are usage errors", func() {
			for _, mutate := range []func(*reportcli.Config){
				func(c *reportcli.Config) { c.DataPath = "" },
				func(c *reportcli.Config) { c.State = " " },
				func(c *reportcli.Config) { c.Suburb = "" },
				func(c *reportcli.Config) { c.Limit = -1 },
			} {
				cfg := valid
				mutate(&cfg)
				So(errors.Is(cfg.Validate(), reportcli.ErrUsage), ShouldBeTrue)
			}
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given the sample workbook", t, func() {
		ctx := context.Background()
		dir := t.TempDir()
		logFile := filepath.Join(dir, "report.log")
		closer, err := reportcli.SetupLogging(logFile, true)
		So(err, ShouldBeNil)
		defer func() { _ = closer.Close() }()

		cfg := &reportcli.Config{
			DataPath: datasettest.WriteSample(t),
			State:    "NSW",
			Suburb:   "Bondi",
			OutFile:  filepath.Join(dir, "bondi.pdf"),
		}

		Convey("When writing the report with a chart", func() {
			cfg.ChartFile = filepath.Join(dir, "nsw.png")
			res, err := reportcli.Run(ctx, cfg)

			Convey("Then both files exist", func() {
				So(err, ShouldBeNil)
				So(res.ReportID, ShouldNotBeEmpty)

				pdf, err := os.ReadFile(res.PDFPath)
				So(err, ShouldBeNil)
				So(bytes.HasPrefix(pdf, []byte("%PDF-")), ShouldBeTrue)

				png, err := os.ReadFile(res.ChartPath)
				So(err, ShouldBeNil)
				So(bytes.HasPrefix(png, []byte("\x89PNG")), ShouldBeTrue)
			})

			Convey("And the log file records the run", func() {
				logged, err := os.ReadFile(logFile)
				So(err, ShouldBeNil)
				So(string(logged), ShouldContainSubstring, "suburb report written")
			})
		})

		Convey("When the suburb is not in the state", func() {
			cfg.State = "VIC"
			_, err := reportcli.Run(ctx, cfg)

			Convey("Then no PDF is left behind", func() {
				So(errors.Is(err, service.ErrNoMatch), ShouldBeTrue)
				_, statErr := os.Stat(cfg.OutFile)
				So(os.IsNotExist(statErr), ShouldBeTrue)
			})
		})

		Convey("When the workbook is missing", func() {
			cfg.DataPath = filepath.Join(dir, "missing.xlsx")
			_, err := reportcli.Run(ctx, cfg)
			So(errors.Is(err, dataset.ErrOpen), ShouldBeTrue)
		})

		Convey("When a flag is missing", func() {
			cfg.Suburb = ""
			_, err := reportcli.Run(ctx, cfg)
			So(errors.Is(err, reportcli.ErrUsage), ShouldBeTrue)
		})
	})
}

func TestShowHelp(t *testing.T) {
	Convey("Help lists every flag", t, func() {
		var buf bytes.Buffer
		reportcli.ShowHelp(&buf)
		for _, flag := range []string{"-data", "-sheet", "-state", "-suburb", "-out", "-chart", "-limit", "-log", "-verbose", "-help"} {
			So(buf.String(), ShouldContainSubstring, flag)
		}
	})
}
