package report

import "errors"

var (
	// ErrEmptySummary is returned for a summary without a suburb.
	ErrEmptySummary = errors.New("summary has no suburb")
	// ErrRender wraps failures reported by the PDF writer.
	ErrRender = errors.New("render pdf")
)
