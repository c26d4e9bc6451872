// Package filter resolves a user selection against the loaded dataset.
//
// Matching is exact and case-sensitive on state, and set membership on
// suburb. Results keep the dataset's original row order.
package filter

import (
	"slices"
	"strings"

	"github.com/okian/socio/internal/domain/model"
)

// NoMatchWarning is the message shown when a selection matches nothing.
const NoMatchWarning = "No data available for the selected suburb. Please check the data file."

// Result is the outcome of Resolve.
type Result struct {
	View model.FilteredView
	// NoMatch is set when the selection matched zero records.
	NoMatch bool
}

// Center returns the coordinates of the first record in the view.
func (r Result) Center() (lat, lon float64, ok bool) {
	if len(r.View) == 0 {
		return 0, 0, false
	}
	first := r.View[0]
	return first.Latitude(), first.Longitude(), true
}

// Resolve returns the records of ds whose state equals sel.State and whose
// suburb is one of sel.Suburbs.
func Resolve(ds *model.Dataset, sel model.Selection) Result {
	wanted := make(map[string]struct{}, len(sel.Suburbs))
	for _, s := range sel.Suburbs {
		wanted[s] = struct{}{}
	}

	var view model.FilteredView
	for _, r := range ds.All() {
		if r.State != sel.State {
			continue
		}
		if _, ok := wanted[r.Suburb]; !ok {
			continue
		}
		view = append(view, r)
	}
	return Result{View: view, NoMatch: len(view) == 0}
}

// ByState returns every record of the given state in dataset order.
func ByState(ds *model.Dataset, state string) []model.SuburbRecord {
	var out []model.SuburbRecord
	for _, r := range ds.All() {
		if r.State == state {
			out = append(out, r)
		}
	}
	return out
}

// States returns the distinct states, sorted.
func States(ds *model.Dataset) []string {
	return distinct(ds, func(r model.SuburbRecord) (string, bool) { return r.State, true })
}

// Suburbs returns the distinct suburbs of state, sorted.
func Suburbs(ds *model.Dataset, state string) []string {
	return distinct(ds, func(r model.SuburbRecord) (string, bool) {
		return r.Suburb, r.State == state
	})
}

func distinct(ds *model.Dataset, pick func(model.SuburbRecord) (string, bool)) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, r := range ds.All() {
		v, ok := pick(r)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}
