package report

import (
	"time"

	"github.com/google/uuid"
)

// Option customizes a report.
type Option func(*options)

type options struct {
	title string
	chart []byte
	now   func() time.Time
	newID func() uuid.UUID
}

func defaultOptions() options {
	return options{
		title: DefaultTitle,
		now:   time.Now,
		newID: uuid.New,
	}
}

// WithTitle sets the title prefix; the suburb name is appended.
func WithTitle(title string) Option {
	return func(o *options) {
		if title != "" {
			o.title = title
		}
	}
}

// WithChart embeds a PNG image below the fields.
func WithChart(png []byte) Option {
	return func(o *options) {
		o.chart = png
	}
}

// WithClock overrides the generation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithID fixes the report ID.
func WithID(id uuid.UUID) Option {
	return func(o *options) {
		o.newID = func() uuid.UUID { return id }
	}
}
