package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/tedhq/ted/embed/templates"
	"github.com/tedhq/ted/pkg/models"
)

var reportTmpl = template.Must(template.New("report").Parse(templates.ReportHTML))

type htmlTaskRow struct {
	Category       string
	Duration       string
	Towards        string
	LogType        string
	OutputFile     string
	OutputLocation string
	ManagerNote    string
	BroadArea      string
	ReviewerNote   string
}

type htmlDay struct {
	Date  string
	Hours float64
	Rows  []htmlTaskRow
}

type htmlSummary struct {
	TotalWorkingDays    int
	MissedDates         []string
	CategoryHours       []string
	UnderThresholdDates []string
	MissingArtifacts    []models.MissingArtifact
	EffortTowardsHours  []string
}

type htmlData struct {
	UserID     string
	DateInfo   string
	Email      string
	TotalHours float64
	ShowNotes  bool
	Days       []htmlDay
	Summary    *htmlSummary
}

func renderHTML(in Input) ([]byte, error) {
	data := htmlData{
		UserID:     in.UserID,
		DateInfo:   in.Scope.Describe(),
		Email:      in.Email,
		TotalHours: in.Report.TotalEffortHours,
		ShowNotes:  in.Role.SeesAnnotations(),
	}

	for _, day := range in.Days {
		hd := htmlDay{Date: day.Date.Key(), Hours: day.TotalHours()}
		for i := range day.Tasks {
			t := &day.Tasks[i]
			row := htmlTaskRow{
				Category:       t.AreaOfEffort,
				Duration:       t.DurationLabel(),
				Towards:        t.EffortTowards,
				LogType:        t.TimeLogType,
				OutputFile:     t.OutputFile,
				OutputLocation: t.OutputLocation,
			}
			if data.ShowNotes {
				row.ManagerNote = orPlaceholder(t.ManagerNote, "No manager note")
				row.BroadArea = orPlaceholder(t.BroadArea, "No broad area of work")
				row.ReviewerNote = orPlaceholder(t.ReviewerNote, "No reviewer note")
			}
			hd.Rows = append(hd.Rows, row)
		}
		data.Days = append(data.Days, hd)
	}

	if !in.Report.Simple {
		r := in.Report
		s := &htmlSummary{
			TotalWorkingDays: r.TotalWorkingDays,
			MissedDates:      dateKeys(r.MissedDates),
			MissingArtifacts: r.MissingArtifacts,
		}
		for _, g := range r.CategoryHours {
			s.CategoryHours = append(s.CategoryHours, fmt.Sprintf("%s: %s", g.Label, fmtHours(g.Hours)))
		}
		s.UnderThresholdDates = dateKeys(r.UnderThresholdDates)
		for _, g := range r.EffortTowardsHours {
			s.EffortTowardsHours = append(s.EffortTowardsHours, fmt.Sprintf("%s: %s", g.Label, fmtHours(g.Hours)))
		}
		data.Summary = s
	}

	var buf bytes.Buffer
	if err := reportTmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func dateKeys(dates []models.Date) []string {
	keys := make([]string, len(dates))
	for i, d := range dates {
		keys[i] = d.Key()
	}
	return keys
}
