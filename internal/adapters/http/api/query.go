package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/okian/socio/internal/domain/model"
)

// selectionQuery is the ?state=&suburb=... shape shared by map, summary and
// report requests.
type selectionQuery struct {
	State   string   `validate:"required"`
	Suburbs []string `validate:"required,min=1,dive,required"`
}

func (q selectionQuery) selection() model.Selection {
	return model.Selection{State: q.State, Suburbs: q.Suburbs}
}

// leaderboardQuery is the ?state=&limit= shape of leaderboard requests.
type leaderboardQuery struct {
	State string `validate:"required"`
	Limit int    `validate:"gte=0"`
}

func bindSelection(v *validator.Validate, r *http.Request) (selectionQuery, error) {
	q := r.URL.Query()
	sq := selectionQuery{State: exact(q.Get("state"))}
	for _, s := range q["suburb"] {
		sq.Suburbs = append(sq.Suburbs, exact(s))
	}
	if err := v.Struct(sq); err != nil {
		return sq, validationError(err)
	}
	return sq, nil
}

func bindLeaderboard(v *validator.Validate, r *http.Request) (leaderboardQuery, error) {
	q := r.URL.Query()
	lq := leaderboardQuery{State: exact(q.Get("state"))}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return lq, fmt.Errorf("%w: limit must be an integer", ErrBadRequest)
		}
		lq.Limit = n
	}
	if err := v.Struct(lq); err != nil {
		return lq, validationError(err)
	}
	return lq, nil
}

// exact passes a query value through unchanged. Whitespace-only values count
// as missing.
func exact(v string) string {
	if strings.TrimSpace(v) == "" {
		return ""
	}
	return v
}

func validationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required", "min":
			msgs = append(msgs, field+" is required")
		case "gte":
			msgs = append(msgs, field+" must not be negative")
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", field, fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", ErrBadRequest, strings.Join(msgs, "; "))
}
