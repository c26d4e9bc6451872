package api

import (
	"errors"
	"net/http"

	service "github.com/okian/socio/internal/app"
)

// ErrBadRequest marks a malformed query.
var ErrBadRequest = errors.New("bad request")

// Error codes returned in errorResponse.Code.
const (
	codeBadRequest     = "bad_request"
	codeNoMatch        = "no_match"
	codeNotSingle      = "not_single_suburb"
	codeInternal       = "internal_error"
	codeNotFound       = "not_found"
	codeMethodNotFound = "method_not_allowed"
)

// classify maps a pipeline error onto an HTTP status and error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, service.ErrInvalidSelection),
		errors.Is(err, service.ErrInvalidLimit):
		return http.StatusBadRequest, codeBadRequest
	case errors.Is(err, service.ErrNotSingleSuburb):
		return http.StatusUnprocessableEntity, codeNotSingle
	case errors.Is(err, service.ErrNoMatch):
		return http.StatusNotFound, codeNoMatch
	default:
		return http.StatusInternalServerError, codeInternal
	}
}
