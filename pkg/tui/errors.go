package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoOptions is returned when a select prompt has nothing to offer.
	ErrNoOptions = errors.New("tui: select prompt has no options")
)
