package models

// LabelHours is one ordered group entry: a label and its summed
// fractional hours. Slices of LabelHours preserve first-seen order.
type LabelHours struct {
	Label string  `json:"label"`
	Hours float64 `json:"hours"`
}

// MissingArtifact flags a task logged without an output file.
type MissingArtifact struct {
	Date         Date   `json:"task_date"`
	AreaOfEffort string `json:"area_of_effort"`
}

// TaskNote is the raw annotation tuple for a task.
type TaskNote struct {
	Date         Date   `json:"task_date"`
	AreaOfEffort string `json:"area_of_effort"`
	ManagerNote  string `json:"manager_note"`
	ReviewerNote string `json:"reviewer_note"`
}

// Report is the derived effort summary for one user over a scope. It is
// built fresh per request and never persisted.
//
// In simple (single-day) mode only TotalEffortHours is populated and
// Simple is true; the remaining fields stay empty.
type Report struct {
	Simple              bool              `json:"-"`
	MissedDates         []Date            `json:"missed_dates"`
	TotalEffortHours    float64           `json:"total_effort_hours"`
	CategoryHours       []LabelHours      `json:"broad_area_of_work_hours"`
	UnderThresholdDates []Date            `json:"less_than_8_hours_dates"`
	MissingArtifacts    []MissingArtifact `json:"missing_files_tasks"`
	EffortTowardsHours  []LabelHours      `json:"effort_towards_hours"`
	Notes               []TaskNote        `json:"notes,omitempty"`
	TotalWorkingDays    int               `json:"total_working_days"`
}
