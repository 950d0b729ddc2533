package models

import "fmt"

// TaskRecord is a single logged unit of daily effort. Nullable columns
// are flattened to zero values; an empty OutputFile means no artifact
// was linked. EffortMinutes is not clamped to 0-59 — the effective
// duration is always EffortHours + EffortMinutes/60.
type TaskRecord struct {
	ID             int64  `json:"id"`
	UserID         string `json:"user_id"`
	AreaOfEffort   string `json:"area_of_effort"`
	EffortHours    int    `json:"effort_hours"`
	EffortMinutes  int    `json:"effort_minutes"`
	EffortTowards  string `json:"effort_towards"`
	TimeLogType    string `json:"time_log_type"`
	ManagerNote    string `json:"manager_note"`
	BroadArea      string `json:"broad_area_of_work"`
	ReviewerNote   string `json:"reviewer_note"`
	OutputFile     string `json:"output_file"`
	OutputLocation string `json:"output_location"`
	Date           Date   `json:"task_date"`
}

// Hours returns the effort duration as fractional hours.
func (t *TaskRecord) Hours() float64 {
	return float64(t.EffortHours) + float64(t.EffortMinutes)/60.0
}

// DurationLabel renders the duration as "4h 30m".
func (t *TaskRecord) DurationLabel() string {
	return fmt.Sprintf("%dh %dm", t.EffortHours, t.EffortMinutes)
}

// UndefinedCategory is the label tasks without a broad area of work are
// grouped under.
const UndefinedCategory = "Undefined"

// Category returns the broad area of work, normalizing the empty value
// to UndefinedCategory.
func (t *TaskRecord) Category() string {
	if t.BroadArea == "" {
		return UndefinedCategory
	}
	return t.BroadArea
}
