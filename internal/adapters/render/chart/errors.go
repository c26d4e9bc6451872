package chart

import "errors"

// ErrNoEntries is returned when asked to chart an empty leaderboard.
var ErrNoEntries = errors.New("no leaderboard entries to chart")
