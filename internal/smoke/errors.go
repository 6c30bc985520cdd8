package smoke

import "errors"

// Sentinel kinds for smoke runs.
var (
	ErrChecksFailed = errors.New("smoke checks failed")
	ErrUnexpected   = errors.New("unexpected response")
)
