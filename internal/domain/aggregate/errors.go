package aggregate

import "errors"

// ErrEmptyPopulation is returned when a statistic is requested over zero records.
var ErrEmptyPopulation = errors.New("empty population")
