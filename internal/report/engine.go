// Package report derives effort summaries from a user's task log. The
// engine is pure: records in, Report out, no I/O and no shared state.
// Both the report-viewing path and the report-delivery path build their
// Report here, so the two can never diverge.
package report

import (
	"github.com/tedhq/ted/internal/calendar"
	"github.com/tedhq/ted/pkg/models"
)

// DailyThresholdHours is the expected effort per logged business day.
// Days that have records summing below it are flagged.
const DailyThresholdHours = 8.0

// Build computes the full Report for records already scoped to one user
// and to [start, end]. It never fails: malformed durations count as
// zero, and an empty record set yields zero totals with every business
// day missed.
func Build(records []models.TaskRecord, start, end models.Date) *models.Report {
	r := &models.Report{
		TotalEffortHours: sumHours(records),
		TotalWorkingDays: calendar.CountBusinessDays(start, end),
	}

	present := make(map[string]struct{}, len(records))
	for i := range records {
		present[records[i].Date.Key()] = struct{}{}
	}
	r.MissedDates = calendar.MissedBusinessDays(start, end, present)

	// Broad area of work, empty normalized to "Undefined".
	catKeys, catGroups := groupBy(records, func(t models.TaskRecord) string { return t.Category() })
	for _, k := range catKeys {
		r.CategoryHours = append(r.CategoryHours, models.LabelHours{Label: k, Hours: sumHours(catGroups[k])})
	}

	// Only dates that have at least one record qualify; zero-record
	// business days belong to MissedDates instead.
	dayKeys, dayGroups := groupBy(records, func(t models.TaskRecord) string { return t.Date.Key() })
	for _, k := range dayKeys {
		tasks := dayGroups[k]
		if sumHours(tasks) < DailyThresholdHours {
			r.UnderThresholdDates = append(r.UnderThresholdDates, tasks[0].Date)
		}
	}

	for i := range records {
		t := &records[i]
		if t.OutputFile == "" {
			r.MissingArtifacts = append(r.MissingArtifacts, models.MissingArtifact{
				Date:         t.Date,
				AreaOfEffort: t.AreaOfEffort,
			})
		}
	}

	// No normalization here: an empty effort-towards label forms its
	// own group keyed by the empty string.
	towardsKeys, towardsGroups := groupBy(records, func(t models.TaskRecord) string { return t.EffortTowards })
	for _, k := range towardsKeys {
		r.EffortTowardsHours = append(r.EffortTowardsHours, models.LabelHours{Label: k, Hours: sumHours(towardsGroups[k])})
	}

	for i := range records {
		t := &records[i]
		r.Notes = append(r.Notes, models.TaskNote{
			Date:         t.Date,
			AreaOfEffort: t.AreaOfEffort,
			ManagerNote:  t.ManagerNote,
			ReviewerNote: t.ReviewerNote,
		})
	}

	return r
}

// BuildDaily computes the simple single-day Report: only the effort
// total, no gap detection or groupings.
func BuildDaily(records []models.TaskRecord) *models.Report {
	return &models.Report{
		Simple:           true,
		TotalEffortHours: sumHours(records),
	}
}

// ForScope dispatches to Build or BuildDaily depending on the scope.
func ForScope(records []models.TaskRecord, scope models.ReportScope) *models.Report {
	if scope.Single() {
		return BuildDaily(records)
	}
	return Build(records, scope.Range.From, scope.Range.To)
}
