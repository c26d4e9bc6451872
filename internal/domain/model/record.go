// Package model holds the value types shared by the suburb pipeline.
package model

import (
	"iter"
	"slices"
)

// Field is one extra spreadsheet column carried through untouched.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// SuburbRecord is one valid row of the source spreadsheet.
type SuburbRecord struct {
	// Row is the 1-based spreadsheet row the record came from.
	Row int

	State   string
	Suburb  string
	Ranking float64

	// CoordinateA and CoordinateB hold the raw coordinate cells. Which one is
	// latitude is decided by LatitudeAxis/LongitudeAxis, never by column name.
	CoordinateA float64
	CoordinateB float64

	// Extras are the remaining columns in header order.
	Extras []Field
}

// Latitude returns the coordinate assigned to the latitude role.
func (r SuburbRecord) Latitude() float64 { return r.coordinate(LatitudeAxis) }

// Longitude returns the coordinate assigned to the longitude role.
func (r SuburbRecord) Longitude() float64 { return r.coordinate(LongitudeAxis) }

func (r SuburbRecord) coordinate(a Axis) float64 {
	if a == AxisA {
		return r.CoordinateA
	}
	return r.CoordinateB
}

// Dataset is the ordered, read-only collection of records loaded at start-up.
type Dataset struct {
	source  string
	sheet   string
	records []SuburbRecord
	skipped int
}

// NewDataset builds a Dataset. The records slice is copied.
func NewDataset(source, sheet string, records []SuburbRecord, skipped int) *Dataset {
	return &Dataset{
		source:  source,
		sheet:   sheet,
		records: slices.Clone(records),
		skipped: skipped,
	}
}

// Source returns the path (or label) the dataset was read from.
func (d *Dataset) Source() string { return d.source }

// Sheet returns the worksheet name.
func (d *Dataset) Sheet() string { return d.sheet }

// Skipped returns how many data rows were dropped as malformed.
func (d *Dataset) Skipped() int { return d.skipped }

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// All iterates records in original row order.
func (d *Dataset) All() iter.Seq2[int, SuburbRecord] {
	return func(yield func(int, SuburbRecord) bool) {
		if d == nil {
			return
		}
		for i, r := range d.records {
			if !yield(i, r) {
				return
			}
		}
	}
}

// Records returns a copy of the records in original row order.
func (d *Dataset) Records() []SuburbRecord {
	if d == nil {
		return nil
	}
	return slices.Clone(d.records)
}
