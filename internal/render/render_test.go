package render

import (
	"strings"
	"testing"
	"time"

	"github.com/tedhq/ted/internal/report"
	"github.com/tedhq/ted/pkg/models"
)

func sampleInput(role models.Role, scope models.ReportScope) Input {
	records := []models.TaskRecord{
		{
			ID:            1,
			UserID:        "alice",
			AreaOfEffort:  "API design",
			EffortHours:   4,
			EffortTowards: "Platform",
			TimeLogType:   "project",
			ManagerNote:   "solid work",
			BroadArea:     "Engineering",
			OutputFile:    "https://example.com/doc",
			Date:          models.NewDate(2024, time.June, 3),
		},
		{
			ID:           2,
			UserID:       "alice",
			AreaOfEffort: "Review queue",
			EffortHours:  3,
			Date:         models.NewDate(2024, time.June, 3),
		},
	}
	return Input{
		UserID: "alice",
		Email:  "alice@example.com",
		Role:   role,
		Scope:  scope,
		Report: report.ForScope(records, scope),
		Days:   report.GroupByDay(records),
	}
}

func rangeScope() models.ReportScope {
	return models.ScopeForRange(models.NewDate(2024, time.June, 3), models.NewDate(2024, time.June, 4))
}

func TestRenderBaseName(t *testing.T) {
	a, err := Render(sampleInput(models.RoleManager, rangeScope()))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	want := "report_alice_from_2024-06-03_to_2024-06-04"
	if a.BaseName != want {
		t.Errorf("Expected base name %q, got %q", want, a.BaseName)
	}

	day := models.ScopeForDay(models.NewDate(2024, time.June, 3))
	a, err = Render(sampleInput(models.RoleEmployee, day))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if a.BaseName != "report_alice_on_2024-06-03" {
		t.Errorf("Unexpected single-day base name %q", a.BaseName)
	}
}

func TestRenderRequiresRecords(t *testing.T) {
	in := sampleInput(models.RoleManager, rangeScope())
	in.Days = nil
	if _, err := Render(in); err == nil {
		t.Errorf("Expected error for empty record set")
	}
}

func TestRenderProducesAllArtifacts(t *testing.T) {
	a, err := Render(sampleInput(models.RoleManager, rangeScope()))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if len(a.HTML) == 0 || len(a.PDF) == 0 || len(a.XLSX) == 0 {
		t.Errorf("Expected non-empty HTML/PDF/XLSX artifacts")
	}
	if a.Plain == nil {
		t.Errorf("Expected a plain artifact")
	}
}

func TestTaskHeadersRoleGating(t *testing.T) {
	employee := taskHeaders(models.RoleEmployee, false)
	if len(employee) != len(baseHeaders) {
		t.Errorf("Expected %d employee columns, got %d", len(baseHeaders), len(employee))
	}
	for _, h := range employee {
		if h == "Manager Note" || h == "Reviewer Note" {
			t.Errorf("Employee headers must not include %q", h)
		}
	}

	manager := taskHeaders(models.RoleManager, true)
	if len(manager) != 1+len(baseHeaders)+len(annotationHeaders) {
		t.Errorf("Unexpected manager column count %d", len(manager))
	}
	if manager[0] != "Task Date" {
		t.Errorf("Expected Task Date first, got %q", manager[0])
	}
}

func TestTaskCellsPlaceholders(t *testing.T) {
	task := &models.TaskRecord{
		AreaOfEffort: "thing",
		EffortHours:  2,
		Date:         models.NewDate(2024, time.June, 3),
	}
	cells := taskCells(task, models.RoleReviewer, false)
	joined := strings.Join(cells, "|")
	for _, want := range []string{"2h 0m", "No output file", "No output location", "No manager note", "No reviewer note"} {
		if !strings.Contains(joined, want) {
			t.Errorf("Expected cells to contain %q: %v", want, cells)
		}
	}
}

func TestHTMLRoleGating(t *testing.T) {
	manager, err := renderHTML(sampleInput(models.RoleManager, rangeScope()))
	if err != nil {
		t.Fatalf("renderHTML failed: %v", err)
	}
	if !strings.Contains(string(manager), "solid work") {
		t.Errorf("Expected manager view to contain the manager note")
	}
	if !strings.Contains(string(manager), "Missed TED Dates") {
		t.Errorf("Expected full-mode summary section")
	}

	employee, err := renderHTML(sampleInput(models.RoleEmployee, rangeScope()))
	if err != nil {
		t.Fatalf("renderHTML failed: %v", err)
	}
	if strings.Contains(string(employee), "solid work") {
		t.Errorf("Employee view must not contain manager notes")
	}
	if strings.Contains(string(employee), "Manager Note") {
		t.Errorf("Employee view must not contain the annotation column")
	}
}

func TestHTMLSimpleModeHasNoSummary(t *testing.T) {
	day := models.ScopeForDay(models.NewDate(2024, time.June, 3))
	out, err := renderHTML(sampleInput(models.RoleManager, day))
	if err != nil {
		t.Fatalf("renderHTML failed: %v", err)
	}
	if strings.Contains(string(out), "Missed TED Dates") {
		t.Errorf("Single-day report must not carry the range summary")
	}
}

func TestPlainRoleGating(t *testing.T) {
	p := renderPlain(sampleInput(models.RoleEmployee, rangeScope()))
	if len(p.Days) != 1 {
		t.Fatalf("Expected 1 day, got %d", len(p.Days))
	}
	for _, task := range p.Days[0].Tasks {
		if task.ManagerNote != nil || task.BroadArea != nil || task.ReviewerNote != nil {
			t.Errorf("Employee plain artifact must omit annotations entirely")
		}
	}

	p = renderPlain(sampleInput(models.RoleManager, rangeScope()))
	if p.Days[0].Tasks[0].ManagerNote == nil || *p.Days[0].Tasks[0].ManagerNote != "solid work" {
		t.Errorf("Manager plain artifact must carry the manager note")
	}
	if p.Summary == nil {
		t.Fatalf("Expected a summary for range scope")
	}
	if p.Summary.Notes != nil {
		t.Errorf("Plain summary must not carry raw note tuples")
	}
}

func TestPlainSimpleModeHasNoSummary(t *testing.T) {
	day := models.ScopeForDay(models.NewDate(2024, time.June, 3))
	p := renderPlain(sampleInput(models.RoleManager, day))
	if p.Summary != nil {
		t.Errorf("Single-day plain artifact must not carry a summary")
	}
	if p.TotalEffortHours != 7.0 {
		t.Errorf("Expected total 7.0, got %v", p.TotalEffortHours)
	}
}

func TestSummaryRows(t *testing.T) {
	employee := summaryRows(sampleInput(models.RoleEmployee, rangeScope()))
	if len(employee) != 2 {
		t.Errorf("Expected 2 employee summary rows, got %d", len(employee))
	}

	manager := summaryRows(sampleInput(models.RoleManager, rangeScope()))
	if len(manager) != 8 {
		t.Errorf("Expected 8 manager summary rows, got %d", len(manager))
	}
	if manager[0].Section != "Employee Email" || manager[0].Details != "alice@example.com" {
		t.Errorf("Unexpected first row: %+v", manager[0])
	}
	if manager[1].Details != "7.00 hours" {
		t.Errorf("Expected formatted total, got %q", manager[1].Details)
	}

	// Simple mode keeps the sections but blanks the details.
	day := models.ScopeForDay(models.NewDate(2024, time.June, 3))
	simple := summaryRows(sampleInput(models.RoleManager, day))
	if len(simple) != 8 {
		t.Errorf("Expected 8 rows in simple mode, got %d", len(simple))
	}
	if simple[2].Details != "" {
		t.Errorf("Expected blank details in simple mode, got %q", simple[2].Details)
	}
}
