package service

import "errors"

var (
	// ErrNoDataset is returned by New when no records are available.
	ErrNoDataset = errors.New("dataset is empty")
	// ErrInvalidSelection marks a blank state or an empty suburb set.
	ErrInvalidSelection = errors.New("invalid selection")
	// ErrNotSingleSuburb marks a summary or report request for other than
	// exactly one suburb.
	ErrNotSingleSuburb = errors.New("selection must name exactly one suburb")
	// ErrNoMatch marks a selection that matched no records.
	ErrNoMatch = errors.New("no matching records")
	// ErrInvalidLimit marks a leaderboard limit outside 1..max.
	ErrInvalidLimit = errors.New("invalid limit")
)
