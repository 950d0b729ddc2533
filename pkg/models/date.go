package models

import (
	"fmt"
	"strings"
	"time"
)

// DateFormat is the canonical wire and storage format for calendar dates.
const DateFormat = "2006-01-02"

// Date is a calendar day with no time component. The embedded time.Time
// is always midnight UTC.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t}, nil
}

// Key returns the date in DateFormat, used as a map/group key.
func (d Date) Key() string {
	return d.Format(DateFormat)
}

func (d Date) String() string {
	return d.Key()
}

// Next returns the following calendar day.
func (d Date) Next() Date {
	return Date{d.AddDate(0, 0, 1)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Key() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DateRange is an inclusive span of calendar days. From > To is legal
// and simply matches nothing.
type DateRange struct {
	From Date `json:"from_date"`
	To   Date `json:"to_date"`
}

// ReportScope identifies what a report covers: a single day or a range.
type ReportScope struct {
	// Day is set for single-day reports; Range is ignored when it is.
	Day   *Date
	Range DateRange
}

func ScopeForDay(d Date) ReportScope {
	return ReportScope{Day: &d}
}

func ScopeForRange(from, to Date) ReportScope {
	return ReportScope{Range: DateRange{From: from, To: to}}
}

func (s ReportScope) Single() bool {
	return s.Day != nil
}

// Describe returns the human-readable date descriptor used in report
// titles, e.g. "on 2024-06-03" or "from 2024-06-01 to 2024-06-30".
func (s ReportScope) Describe() string {
	if s.Single() {
		return fmt.Sprintf("on %s", s.Day.Key())
	}
	return fmt.Sprintf("from %s to %s", s.Range.From.Key(), s.Range.To.Key())
}

// Descriptor returns Describe with spaces replaced by underscores and
// colons by hyphens, safe for use in file names.
func (s ReportScope) Descriptor() string {
	r := strings.NewReplacer(" ", "_", ":", "-")
	return r.Replace(s.Describe())
}
