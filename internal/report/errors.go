package report

import "errors"

// ErrNoData marks the distinct no-tasks outcome. Callers must check it
// with errors.Is and short-circuit before rendering anything.
var ErrNoData = errors.New("no tasks found for the requested scope")

// ErrInvalidRange marks a date range whose end precedes its start, or
// an unparseable date string. No report is built.
var ErrInvalidRange = errors.New("invalid date range")
