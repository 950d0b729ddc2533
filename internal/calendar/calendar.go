// Package calendar provides business-day arithmetic over naive
// calendar dates. Business days are Monday through Friday; there is no
// holiday or timezone awareness.
package calendar

import (
	"time"

	"github.com/tedhq/ted/pkg/models"
)

// IsBusinessDay reports whether d falls on Monday-Friday.
func IsBusinessDay(d models.Date) bool {
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// CountBusinessDays counts business days in [start, end] inclusive.
// start > end yields 0.
func CountBusinessDays(start, end models.Date) int {
	n := 0
	for d := start; !d.After(end.Time); d = d.Next() {
		if IsBusinessDay(d) {
			n++
		}
	}
	return n
}

// MissedBusinessDays returns every business day in [start, end] whose
// Key is absent from present, in ascending order. Weekend days are
// never reported regardless of presence.
func MissedBusinessDays(start, end models.Date, present map[string]struct{}) []models.Date {
	var missed []models.Date
	for d := start; !d.After(end.Time); d = d.Next() {
		if !IsBusinessDay(d) {
			continue
		}
		if _, ok := present[d.Key()]; !ok {
			missed = append(missed, d)
		}
	}
	return missed
}
