package report

import (
	"testing"
	"time"

	"github.com/tedhq/ted/pkg/models"
)

func sampleRecords() []models.TaskRecord {
	// Monday 2024-06-03: two tasks, 7.5 hours total, one without a file.
	return []models.TaskRecord{
		{
			UserID:        "alice",
			AreaOfEffort:  "API design",
			EffortHours:   4,
			EffortTowards: "Platform",
			BroadArea:     "Engineering",
			OutputFile:    "https://example.com/doc",
			ManagerNote:   "solid",
			Date:          models.NewDate(2024, time.June, 3),
		},
		{
			UserID:        "alice",
			AreaOfEffort:  "Review queue",
			EffortHours:   3,
			EffortMinutes: 30,
			EffortTowards: "Platform",
			Date:          models.NewDate(2024, time.June, 3),
		},
	}
}

func TestBuild(t *testing.T) {
	start := models.NewDate(2024, time.June, 3)
	end := models.NewDate(2024, time.June, 4)

	r := Build(sampleRecords(), start, end)

	if r.Simple {
		t.Errorf("Expected a full report")
	}
	if r.TotalEffortHours != 7.5 {
		t.Errorf("Expected total 7.5 hours, got %v", r.TotalEffortHours)
	}
	if r.TotalWorkingDays != 2 {
		t.Errorf("Expected 2 working days, got %d", r.TotalWorkingDays)
	}

	if len(r.MissedDates) != 1 || r.MissedDates[0].Key() != "2024-06-04" {
		t.Errorf("Expected 2024-06-04 missed, got %v", r.MissedDates)
	}

	if len(r.CategoryHours) != 2 {
		t.Fatalf("Expected 2 categories, got %v", r.CategoryHours)
	}
	if r.CategoryHours[0].Label != "Engineering" || r.CategoryHours[0].Hours != 4.0 {
		t.Errorf("Unexpected first category: %+v", r.CategoryHours[0])
	}
	if r.CategoryHours[1].Label != models.UndefinedCategory || r.CategoryHours[1].Hours != 3.5 {
		t.Errorf("Expected empty broad area grouped as %s with 3.5 hours, got %+v",
			models.UndefinedCategory, r.CategoryHours[1])
	}

	// 7.5 < 8 on a day with records.
	if len(r.UnderThresholdDates) != 1 || r.UnderThresholdDates[0].Key() != "2024-06-03" {
		t.Errorf("Expected 2024-06-03 under threshold, got %v", r.UnderThresholdDates)
	}

	if len(r.MissingArtifacts) != 1 || r.MissingArtifacts[0].AreaOfEffort != "Review queue" {
		t.Errorf("Expected the file-less task flagged, got %v", r.MissingArtifacts)
	}

	if len(r.EffortTowardsHours) != 1 || r.EffortTowardsHours[0].Hours != 7.5 {
		t.Errorf("Expected one effort-towards group with 7.5 hours, got %v", r.EffortTowardsHours)
	}

	if len(r.Notes) != 2 || r.Notes[0].ManagerNote != "solid" {
		t.Errorf("Expected note tuples for every record, got %v", r.Notes)
	}
}

func TestBuildUnderThresholdExcludesEmptyDays(t *testing.T) {
	// A missed business day never shows up in the under-threshold list.
	r := Build(sampleRecords(), models.NewDate(2024, time.June, 3), models.NewDate(2024, time.June, 7))

	for _, d := range r.UnderThresholdDates {
		if d.Key() != "2024-06-03" {
			t.Errorf("Day without records flagged under threshold: %s", d.Key())
		}
	}
	if len(r.MissedDates) != 4 {
		t.Errorf("Expected 4 missed business days, got %v", r.MissedDates)
	}
}

func TestBuildAtThreshold(t *testing.T) {
	records := []models.TaskRecord{
		{UserID: "alice", EffortHours: 8, Date: models.NewDate(2024, time.June, 3)},
	}
	r := Build(records, models.NewDate(2024, time.June, 3), models.NewDate(2024, time.June, 3))
	if len(r.UnderThresholdDates) != 0 {
		t.Errorf("Exactly 8 hours must not be flagged, got %v", r.UnderThresholdDates)
	}
}

func TestBuildEmpty(t *testing.T) {
	r := Build(nil, models.NewDate(2024, time.June, 3), models.NewDate(2024, time.June, 7))

	if r.TotalEffortHours != 0 {
		t.Errorf("Expected zero total, got %v", r.TotalEffortHours)
	}
	if r.TotalWorkingDays != 5 {
		t.Errorf("Expected 5 working days, got %d", r.TotalWorkingDays)
	}
	if len(r.MissedDates) != 5 {
		t.Errorf("Expected every business day missed, got %v", r.MissedDates)
	}
	if len(r.UnderThresholdDates) != 0 || len(r.CategoryHours) != 0 {
		t.Errorf("Expected no groups for an empty record set")
	}
}

func TestBuildEmptyEffortTowardsOwnGroup(t *testing.T) {
	records := []models.TaskRecord{
		{EffortHours: 1, EffortTowards: "Platform", Date: models.NewDate(2024, time.June, 3)},
		{EffortHours: 2, EffortTowards: "", Date: models.NewDate(2024, time.June, 3)},
	}
	r := Build(records, models.NewDate(2024, time.June, 3), models.NewDate(2024, time.June, 3))

	if len(r.EffortTowardsHours) != 2 {
		t.Fatalf("Expected 2 effort-towards groups, got %v", r.EffortTowardsHours)
	}
	if r.EffortTowardsHours[1].Label != "" || r.EffortTowardsHours[1].Hours != 2.0 {
		t.Errorf("Expected empty label as its own group, got %+v", r.EffortTowardsHours[1])
	}
}

func TestBuildGroupSumsMatchTotal(t *testing.T) {
	records := sampleRecords()
	r := Build(records, models.NewDate(2024, time.June, 3), models.NewDate(2024, time.June, 4))

	var catSum, towardsSum float64
	for _, g := range r.CategoryHours {
		catSum += g.Hours
	}
	for _, g := range r.EffortTowardsHours {
		towardsSum += g.Hours
	}
	if catSum != r.TotalEffortHours || towardsSum != r.TotalEffortHours {
		t.Errorf("Group sums %v / %v do not match total %v", catSum, towardsSum, r.TotalEffortHours)
	}
}

func TestBuildDaily(t *testing.T) {
	r := BuildDaily(sampleRecords())

	if !r.Simple {
		t.Errorf("Expected a simple report")
	}
	if r.TotalEffortHours != 7.5 {
		t.Errorf("Expected total 7.5, got %v", r.TotalEffortHours)
	}
	if len(r.MissedDates) != 0 || len(r.CategoryHours) != 0 || r.TotalWorkingDays != 0 {
		t.Errorf("Simple report must not carry range aggregates: %+v", r)
	}
}

func TestForScope(t *testing.T) {
	day := models.NewDate(2024, time.June, 3)
	records := sampleRecords()

	if r := ForScope(records, models.ScopeForDay(day)); !r.Simple {
		t.Errorf("Expected single-day scope to build a simple report")
	}
	if r := ForScope(records, models.ScopeForRange(day, day.Next())); r.Simple {
		t.Errorf("Expected range scope to build a full report")
	}
}
