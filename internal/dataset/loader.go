// Package dataset reads the suburb ranking workbook into a model.Dataset.
package dataset

import (
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/okian/socio/internal/domain/model"
	"github.com/okian/socio/pkg/logger"
	"github.com/okian/socio/pkg/metrics"
)

type loader struct {
	sheet   string
	columns Columns
	log     logger.Logger
}

func newLoader(opts []Option) *loader {
	l := &loader{columns: DefaultColumns(), log: logger.Nop()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load opens the workbook at path and builds a Dataset from it.
func Load(ctx context.Context, path string, opts ...Option) (*model.Dataset, error) {
	l := newLoader(opts)
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, loadErr(path, ErrOpen, err)
	}
	defer func() { _ = f.Close() }()
	return l.read(ctx, path, f)
}

// LoadReader builds a Dataset from workbook bytes. label names the source in
// errors and logs.
func LoadReader(ctx context.Context, r io.Reader, label string, opts ...Option) (*model.Dataset, error) {
	l := newLoader(opts)
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, loadErr(label, ErrOpen, err)
	}
	defer func() { _ = f.Close() }()
	return l.read(ctx, label, f)
}

// columnIndex maps the required roles to header positions.
type columnIndex struct {
	state, suburb, ranking, coordA, coordB int
}

func (l *loader) read(ctx context.Context, source string, f *excelize.File) (*model.Dataset, error) {
	start := time.Now()

	sheet := l.sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if sheet == "" {
		return nil, loadErr(source, ErrNoSheet, nil)
	}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, loadErr(source, ErrNoSheet, fmt.Errorf("sheet %q", sheet))
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, loadErr(source, ErrOpen, err)
	}
	if len(rows) == 0 {
		return nil, loadErr(source, ErrMissingColumn, fmt.Errorf("sheet %q has no header row", sheet))
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}
	idx, err := l.locate(header)
	if err != nil {
		return nil, loadErr(source, ErrMissingColumn, err)
	}

	var (
		records []model.SuburbRecord
		skipped int
	)
	for i, row := range rows[1:] {
		rowNum := i + 2
		rec, ok, reason := parseRow(rowNum, row, header, idx)
		if !ok {
			if reason != "" {
				skipped++
				l.log.Debug(ctx, "skipping malformed row",
					logger.Int("row", rowNum),
					logger.String("reason", reason),
				)
			}
			continue
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, loadErr(source, ErrNoRows, fmt.Errorf("sheet %q: %d rows skipped", sheet, skipped))
	}

	ds := model.NewDataset(source, sheet, records, skipped)
	outside := OutOfBounds(ds, model.Australia)

	elapsed := time.Since(start)
	metrics.RecordDatasetLoad(ds.Len(), skipped, outside, float64(elapsed.Milliseconds()))

	l.log.Info(ctx, "dataset loaded",
		logger.String("source", source),
		logger.String("sheet", sheet),
		logger.Int("records", ds.Len()),
		logger.Int("skipped", skipped),
		logger.Duration("elapsed", elapsed),
	)
	if outside > 0 {
		l.log.Warn(ctx, "records outside Australia under the fixed coordinate mapping",
			logger.Int("count", outside),
			logger.String("latitude_column", l.columns.CoordinateA),
			logger.String("longitude_column", l.columns.CoordinateB),
		)
	}
	return ds, nil
}

func (l *loader) locate(header []string) (columnIndex, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		if _, dup := pos[h]; !dup && h != "" {
			pos[h] = i
		}
	}

	var missing []string
	find := func(name string) int {
		i, ok := pos[name]
		if !ok {
			missing = append(missing, name)
			return -1
		}
		return i
	}
	idx := columnIndex{
		state:   find(l.columns.State),
		suburb:  find(l.columns.Suburb),
		ranking: find(l.columns.Ranking),
		coordA:  find(l.columns.CoordinateA),
		coordB:  find(l.columns.CoordinateB),
	}
	if len(missing) > 0 {
		return idx, fmt.Errorf("%s", strings.Join(missing, ", "))
	}
	return idx, nil
}

// parseRow converts one data row. Rows with a blank state or suburb are
// dropped silently (reason ""); rows with unparseable numbers are dropped
// with a reason so they count as skipped.
func parseRow(rowNum int, row, header []string, idx columnIndex) (model.SuburbRecord, bool, string) {
	cell := func(i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	if isBlank(row) {
		return model.SuburbRecord{}, false, ""
	}
	state, suburb := cell(idx.state), cell(idx.suburb)
	if state == "" || suburb == "" {
		return model.SuburbRecord{}, false, ""
	}

	ranking, ok := parseNumber(cell(idx.ranking))
	if !ok {
		return model.SuburbRecord{}, false, "ranking is not numeric"
	}
	a, ok := parseNumber(cell(idx.coordA))
	if !ok {
		return model.SuburbRecord{}, false, "coordinate A is not numeric"
	}
	b, ok := parseNumber(cell(idx.coordB))
	if !ok {
		return model.SuburbRecord{}, false, "coordinate B is not numeric"
	}

	var extras []model.Field
	for i, name := range header {
		switch i {
		case idx.state, idx.suburb, idx.ranking, idx.coordA, idx.coordB:
			continue
		}
		if name == "" {
			continue
		}
		extras = append(extras, model.Field{Name: name, Value: cell(i)})
	}

	return model.SuburbRecord{
		Row:         rowNum,
		State:       state,
		Suburb:      suburb,
		Ranking:     ranking,
		CoordinateA: a,
		CoordinateB: b,
		Extras:      extras,
	}, true, ""
}

// parseNumber accepts finite decimal values only. ParseFloat also takes
// "NaN" and "Inf", which are treated as missing.
func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// OutOfBounds counts records whose mapped coordinates fall outside b.
func OutOfBounds(ds *model.Dataset, b model.Bounds) int {
	n := 0
	for _, r := range ds.All() {
		if !b.Contains(r.Latitude(), r.Longitude()) {
			n++
		}
	}
	return n
}
