// Package render turns a Report plus its underlying task records into
// the three delivery artifacts: an HTML document, a PDF, and an XLSX
// workbook, together with a plain data structure for programmatic
// consumers. Role gating lives here and only here: the privileged
// columns (manager note, broad area of work, reviewer note) are
// omitted entirely for employees, consistently across all artifacts.
package render

import (
	"fmt"
	"strings"

	"github.com/tedhq/ted/internal/report"
	"github.com/tedhq/ted/pkg/models"
)

// Input carries everything the renderers need. Days must be non-empty:
// callers short-circuit on report.ErrNoData before rendering.
type Input struct {
	UserID string
	Email  string
	Role   models.Role
	Scope  models.ReportScope
	Report *models.Report
	Days   []report.DayGroup
}

// Artifacts is the rendered output of one report request. BaseName is
// the deterministic file stem shared by all on-disk artifacts.
type Artifacts struct {
	BaseName string
	HTML     []byte
	PDF      []byte
	XLSX     []byte
	Plain    *PlainReport
}

// Render produces all artifacts from the same grouped data.
func Render(in Input) (*Artifacts, error) {
	if len(in.Days) == 0 {
		return nil, fmt.Errorf("render: no task records for %s %s", in.UserID, in.Scope.Describe())
	}

	html, err := renderHTML(in)
	if err != nil {
		return nil, fmt.Errorf("html rendering failed: %w", err)
	}
	pdf, err := renderPDF(in)
	if err != nil {
		return nil, fmt.Errorf("pdf rendering failed: %w", err)
	}
	xlsx, err := renderXLSX(in)
	if err != nil {
		return nil, fmt.Errorf("xlsx rendering failed: %w", err)
	}

	return &Artifacts{
		BaseName: fmt.Sprintf("report_%s_%s", in.UserID, in.Scope.Descriptor()),
		HTML:     html,
		PDF:      pdf,
		XLSX:     xlsx,
		Plain:    renderPlain(in),
	}, nil
}

var (
	baseHeaders       = []string{"Area of Effort", "Effort (hours)", "Effort Towards", "Time Log Type", "Output File", "Output Location"}
	annotationHeaders = []string{"Manager Note", "Broad Area of Work", "Reviewer Note"}
)

// taskHeaders returns the tabular column set for the role, optionally
// prefixed with the task date.
func taskHeaders(role models.Role, withDate bool) []string {
	var headers []string
	if withDate {
		headers = append(headers, "Task Date")
	}
	headers = append(headers, baseHeaders...)
	if role.SeesAnnotations() {
		headers = append(headers, annotationHeaders...)
	}
	return headers
}

// taskCells renders one record into cells matching taskHeaders.
func taskCells(t *models.TaskRecord, role models.Role, withDate bool) []string {
	var cells []string
	if withDate {
		cells = append(cells, t.Date.Key())
	}
	cells = append(cells,
		t.AreaOfEffort,
		t.DurationLabel(),
		t.EffortTowards,
		t.TimeLogType,
		orPlaceholder(t.OutputFile, "No output file"),
		orPlaceholder(t.OutputLocation, "No output location"),
	)
	if role.SeesAnnotations() {
		cells = append(cells,
			orPlaceholder(t.ManagerNote, "No manager note"),
			orPlaceholder(t.BroadArea, "No broad area of work"),
			orPlaceholder(t.ReviewerNote, "No reviewer note"),
		)
	}
	return cells
}

func orPlaceholder(s, placeholder string) string {
	if s == "" {
		return placeholder
	}
	return s
}

type summaryRow struct {
	Section string
	Details string
}

// summaryRows builds the Summary-sheet key/value rows. Employees only
// see their email and effort total; other roles get the full summary,
// which is empty in single-day (simple) mode.
func summaryRows(in Input) []summaryRow {
	rows := []summaryRow{
		{"Employee Email", in.Email},
		{"Total Effort Hours", fmtHours(in.Report.TotalEffortHours)},
	}
	if !in.Role.SeesAnnotations() {
		return rows
	}

	r := in.Report
	if r.Simple {
		return append(rows,
			summaryRow{"Total Working Days", ""},
			summaryRow{"Missed TED Dates", ""},
			summaryRow{"Broad Area of Work and Time Effort Hours", ""},
			summaryRow{"Less than 8 hours TED Dates", ""},
			summaryRow{"No Files of TED Link Missing Dates", ""},
			summaryRow{"Effort Towards and Time Effort Hours", ""},
		)
	}
	return append(rows,
		summaryRow{"Total Working Days", fmt.Sprintf("%d", r.TotalWorkingDays)},
		summaryRow{"Missed TED Dates", joinDates(r.MissedDates)},
		summaryRow{"Broad Area of Work and Time Effort Hours", joinLabelHours(r.CategoryHours)},
		summaryRow{"Less than 8 hours TED Dates", joinDates(r.UnderThresholdDates)},
		summaryRow{"No Files of TED Link Missing Dates", joinArtifacts(r.MissingArtifacts)},
		summaryRow{"Effort Towards and Time Effort Hours", joinLabelHours(r.EffortTowardsHours)},
	)
}

func fmtHours(h float64) string {
	return fmt.Sprintf("%.2f hours", h)
}

func joinDates(dates []models.Date) string {
	parts := make([]string, len(dates))
	for i, d := range dates {
		parts[i] = d.Key()
	}
	return strings.Join(parts, ", ")
}

func joinLabelHours(groups []models.LabelHours) string {
	parts := make([]string, len(groups))
	for i, g := range groups {
		parts[i] = fmt.Sprintf("%s: %s", g.Label, fmtHours(g.Hours))
	}
	return strings.Join(parts, ", ")
}

func joinArtifacts(missing []models.MissingArtifact) string {
	parts := make([]string, len(missing))
	for i, m := range missing {
		parts[i] = fmt.Sprintf("%s: %s", m.Date.Key(), m.AreaOfEffort)
	}
	return strings.Join(parts, ", ")
}
