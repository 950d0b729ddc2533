package render

import "github.com/tedhq/ted/pkg/models"

// PlainTask mirrors the table columns without presentation formatting.
// The annotation fields are pointers so they disappear from the JSON
// encoding entirely for employees instead of being blanked.
type PlainTask struct {
	ID             int64   `json:"id"`
	AreaOfEffort   string  `json:"area_of_effort"`
	EffortHours    int     `json:"effort_hours"`
	EffortMinutes  int     `json:"effort_minutes"`
	EffortTowards  string  `json:"effort_towards"`
	TimeLogType    string  `json:"time_log_type"`
	OutputFile     string  `json:"output_file"`
	OutputLocation string  `json:"output_location"`
	ManagerNote    *string `json:"manager_note,omitempty"`
	BroadArea      *string `json:"broad_area_of_work,omitempty"`
	ReviewerNote   *string `json:"reviewer_note,omitempty"`
}

type PlainDay struct {
	Date             models.Date `json:"date"`
	TotalEffortHours float64     `json:"total_effort_hours"`
	Tasks            []PlainTask `json:"tasks"`
}

// PlainReport is the programmatic artifact: same information as the
// document and the workbook, numeric values left numeric.
type PlainReport struct {
	UserID           string         `json:"user_id"`
	Email            string         `json:"email"`
	Scope            string         `json:"scope"`
	TotalEffortHours float64        `json:"total_effort_hours"`
	Days             []PlainDay     `json:"days"`
	Summary          *models.Report `json:"summary,omitempty"`
}

func renderPlain(in Input) *PlainReport {
	p := &PlainReport{
		UserID:           in.UserID,
		Email:            in.Email,
		Scope:            in.Scope.Describe(),
		TotalEffortHours: in.Report.TotalEffortHours,
	}

	annotated := in.Role.SeesAnnotations()
	for _, day := range in.Days {
		pd := PlainDay{Date: day.Date, TotalEffortHours: day.TotalHours()}
		for i := range day.Tasks {
			t := &day.Tasks[i]
			pt := PlainTask{
				ID:             t.ID,
				AreaOfEffort:   t.AreaOfEffort,
				EffortHours:    t.EffortHours,
				EffortMinutes:  t.EffortMinutes,
				EffortTowards:  t.EffortTowards,
				TimeLogType:    t.TimeLogType,
				OutputFile:     t.OutputFile,
				OutputLocation: t.OutputLocation,
			}
			if annotated {
				pt.ManagerNote = ptr(t.ManagerNote)
				pt.BroadArea = ptr(t.BroadArea)
				pt.ReviewerNote = ptr(t.ReviewerNote)
			}
			pd.Tasks = append(pd.Tasks, pt)
		}
		p.Days = append(p.Days, pd)
	}

	if !in.Report.Simple {
		// The delivered summary never carries the raw note tuples.
		summary := *in.Report
		summary.Notes = nil
		p.Summary = &summary
	}
	return p
}

func ptr(s string) *string {
	return &s
}
