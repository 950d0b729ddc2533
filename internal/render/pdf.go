package render

import (
	"fmt"

	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"
	"github.com/tedhq/ted/pkg/models"
)

// Grid sizes must sum to 12 and match taskHeaders(role, false).
var (
	pdfGridBase      = []uint{3, 2, 2, 1, 2, 2}
	pdfGridAnnotated = []uint{2, 1, 1, 1, 1, 1, 2, 2, 1}
)

func renderPDF(in Input) ([]byte, error) {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(15, 10, 15)

	m.RegisterHeader(func() {
		m.Row(10, func() {
			m.Col(12, func() {
				m.Text(fmt.Sprintf("Task Report for %s %s", in.UserID, in.Scope.Describe()), props.Text{
					Top:   3,
					Style: consts.Bold,
					Align: consts.Center,
					Size:  14,
				})
			})
		})
	})

	m.Row(8, func() {
		m.Col(12, func() {
			m.Text(fmt.Sprintf("Employee Email: %s", in.Email), props.Text{Top: 2, Size: 10})
		})
	})
	m.Row(8, func() {
		m.Col(12, func() {
			m.Text(fmt.Sprintf("Total Effort Hours: %.2f hours", in.Report.TotalEffortHours), props.Text{Top: 2, Size: 10})
		})
	})

	headers := taskHeaders(in.Role, false)
	grids := pdfGridBase
	if in.Role.SeesAnnotations() {
		grids = pdfGridAnnotated
	}

	for _, day := range in.Days {
		m.Row(8, func() {
			m.Col(12, func() {
				m.Text(fmt.Sprintf("Tasks for %s (%.2f hours)", day.Date.Key(), day.TotalHours()), props.Text{
					Top:   3,
					Style: consts.Bold,
					Size:  11,
				})
			})
		})

		rows := make([][]string, 0, len(day.Tasks))
		for i := range day.Tasks {
			rows = append(rows, taskCells(&day.Tasks[i], in.Role, false))
		}

		m.TableList(headers, rows, props.TableList{
			HeaderProp: props.TableListContent{
				Size:      8,
				GridSizes: grids,
			},
			ContentProp: props.TableListContent{
				Size:      8,
				GridSizes: grids,
			},
			Align:                consts.Left,
			AlternatedBackground: &color.Color{Red: 240, Green: 240, Blue: 240},
			HeaderContentSpace:   1,
			Line:                 false,
		})
	}

	if !in.Report.Simple {
		r := in.Report
		pdfSection(m, "Total Working Days", []string{fmt.Sprintf("%d days", r.TotalWorkingDays)})
		pdfSection(m, "Missed TED Dates", dateKeys(r.MissedDates))
		pdfSection(m, "Broad Area of Work and Time Effort Hours", labelHourLines(r.CategoryHours))
		pdfSection(m, "Less than 8 hours TED Dates", dateKeys(r.UnderThresholdDates))
		pdfSection(m, "No Files of TED Link Missing Dates", artifactLines(r.MissingArtifacts))
		pdfSection(m, "Effort Towards and Time Effort Hours", labelHourLines(r.EffortTowardsHours))
	}

	buf, err := m.Output()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func pdfSection(m pdf.Maroto, title string, lines []string) {
	m.Row(8, func() {
		m.Col(12, func() {
			m.Text(title, props.Text{Top: 3, Style: consts.Bold, Size: 11})
		})
	})
	for _, line := range lines {
		m.Row(6, func() {
			m.Col(12, func() {
				m.Text(line, props.Text{Top: 1, Size: 9})
			})
		})
	}
}

func labelHourLines(groups []models.LabelHours) []string {
	lines := make([]string, len(groups))
	for i, g := range groups {
		lines[i] = fmt.Sprintf("%s: %s", g.Label, fmtHours(g.Hours))
	}
	return lines
}

func artifactLines(missing []models.MissingArtifact) []string {
	lines := make([]string, len(missing))
	for i, m := range missing {
		lines[i] = fmt.Sprintf("%s: %s", m.Date.Key(), m.AreaOfEffort)
	}
	return lines
}
