// Package aggregate computes population statistics for colour scaling and
// leaderboards.
package aggregate

import (
	"math"
	"slices"

	"github.com/okian/socio/internal/domain/model"
)

// Order controls the presentation order of TopN results.
type Order int

const (
	Descending Order = iota
	Ascending
)

// Range returns the min and max ranking over population. Non-finite
// rankings are ignored; a population without a finite ranking is empty.
func Range(population []model.SuburbRecord) (model.RankingRange, error) {
	var (
		rng   model.RankingRange
		found bool
	)
	for _, r := range population {
		if math.IsNaN(r.Ranking) || math.IsInf(r.Ranking, 0) {
			continue
		}
		if !found {
			rng = model.RankingRange{Min: r.Ranking, Max: r.Ranking}
			found = true
			continue
		}
		rng.Min = min(rng.Min, r.Ranking)
		rng.Max = max(rng.Max, r.Ranking)
	}
	if !found {
		return model.RankingRange{}, ErrEmptyPopulation
	}
	return rng, nil
}

// TopN returns the n records with the largest field value. Ties keep the
// population's order in both presentation orders.
func TopN(population []model.SuburbRecord, n int, field model.NumericField, order Order) []model.SuburbRecord {
	if n <= 0 || len(population) == 0 {
		return []model.SuburbRecord{}
	}
	sorted := slices.Clone(population)
	slices.SortStableFunc(sorted, func(a, b model.SuburbRecord) int {
		return cmpFloat(field.Value(b), field.Value(a))
	})
	top := sorted[:min(n, len(sorted))]

	if order == Ascending {
		slices.SortStableFunc(top, func(a, b model.SuburbRecord) int {
			return cmpFloat(field.Value(a), field.Value(b))
		})
	}
	return top
}

// Leaderboard returns the top n rankings of population in ascending order, so
// the highest ranking renders last. Position 1 is the highest ranking. Ties
// keep the population's order, as in TopN.
func Leaderboard(population []model.SuburbRecord, n int) []model.LeaderboardEntry {
	top := TopN(population, n, model.FieldRanking, Ascending)
	out := make([]model.LeaderboardEntry, len(top))
	for i, r := range top {
		out[i] = model.LeaderboardEntry{
			Position: len(top) - i,
			Suburb:   r.Suburb,
			Ranking:  r.Ranking,
		}
	}
	return out
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
