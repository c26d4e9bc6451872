package dataset

import (
	"errors"
	"fmt"
)

// Sentinel kinds for load failures. A *LoadError always wraps one of them.
var (
	ErrOpen          = errors.New("open workbook failed")
	ErrNoSheet       = errors.New("worksheet not found")
	ErrMissingColumn = errors.New("required column missing")
	ErrNoRows        = errors.New("no valid rows")
)

// LoadError reports why a dataset could not be loaded. It is fatal for the
// session: nothing downstream can run without a dataset.
type LoadError struct {
	Source string
	Kind   error
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("load %s: %v", e.Source, e.Kind)
	}
	return fmt.Sprintf("load %s: %v: %v", e.Source, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the underlying cause to errors.Is/As.
func (e *LoadError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func loadErr(source string, kind, err error) *LoadError {
	return &LoadError{Source: source, Kind: kind, Err: err}
}
