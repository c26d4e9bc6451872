package model

import (
	"fmt"
	"strconv"
)

// Selection is the user's choice of state and suburbs.
type Selection struct {
	State   string
	Suburbs []string
}

// Single reports whether exactly one distinct suburb is selected.
func (s Selection) Single() bool {
	if len(s.Suburbs) == 0 {
		return false
	}
	for _, sub := range s.Suburbs[1:] {
		if sub != s.Suburbs[0] {
			return false
		}
	}
	return true
}

// FilteredView is the subset of a Dataset matching a Selection, in dataset order.
type FilteredView []SuburbRecord

// RankingRange bounds the ranking over a reference population.
type RankingRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Normalize maps v onto [0,1] relative to the range. A degenerate range maps
// every value to 0.5.
func (r RankingRange) Normalize(v float64) float64 {
	if r.Max == r.Min {
		return 0.5
	}
	n := (v - r.Min) / (r.Max - r.Min)
	switch {
	case n < 0:
		return 0
	case n > 1:
		return 1
	}
	return n
}

// Point is one map marker.
type Point struct {
	Suburb    string  `json:"suburb"`
	State     string  `json:"state"`
	Ranking   float64 `json:"ranking"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	// Scale is the ranking normalised against the reference RankingRange.
	Scale float64 `json:"scale"`
}

// NewPoint projects r onto a map point scaled against rng.
func NewPoint(r SuburbRecord, rng RankingRange) Point {
	return Point{
		Suburb:    r.Suburb,
		State:     r.State,
		Ranking:   r.Ranking,
		Latitude:  r.Latitude(),
		Longitude: r.Longitude(),
		Scale:     rng.Normalize(r.Ranking),
	}
}

// LeaderboardEntry is one bar of the leaderboard chart.
type LeaderboardEntry struct {
	// Position is 1 for the highest ranking.
	Position int     `json:"position"`
	Suburb   string  `json:"suburb"`
	Ranking  float64 `json:"ranking"`
}

// SummaryField is one labelled value of a SummaryRecord.
type SummaryField struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value any    `json:"value"`
}

// Text formats the value for display.
func (f SummaryField) Text() string {
	switch v := f.Value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// SummaryRecord is the flattened single-suburb snapshot.
type SummaryRecord struct {
	Suburb string         `json:"suburb"`
	State  string         `json:"state"`
	Fields []SummaryField `json:"fields"`
}

// Get returns the value stored under key.
func (s SummaryRecord) Get(key string) (any, bool) {
	for _, f := range s.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}
