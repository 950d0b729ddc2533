package render

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Summary"
	tasksSheet   = "Tasks"
)

func renderXLSX(in Input) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(tasksSheet); err != nil {
		return nil, err
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	summary := [][]string{{"Section", "Details"}}
	for _, row := range summaryRows(in) {
		summary = append(summary, []string{row.Section, row.Details})
	}
	if err := writeSheet(f, summarySheet, summary); err != nil {
		return nil, err
	}

	tasks := [][]string{taskHeaders(in.Role, true)}
	for _, day := range in.Days {
		for i := range day.Tasks {
			tasks = append(tasks, taskCells(&day.Tasks[i], in.Role, true))
		}
	}
	if err := writeSheet(f, tasksSheet, tasks); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeSheet fills a sheet, sizes each column to its longest value and
// turns word wrap on for every cell.
func writeSheet(f *excelize.File, sheet string, rows [][]string) error {
	widths := map[int]int{}
	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
			if len(value) > widths[c] {
				widths[c] = len(value)
			}
		}
	}
	if len(rows) == 0 {
		return nil
	}

	for c, width := range widths {
		name, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, float64(width+2)); err != nil {
			return err
		}
	}

	wrap, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(rows[0]), len(rows))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, wrap); err != nil {
		return fmt.Errorf("failed to style sheet %s: %w", sheet, err)
	}
	return nil
}
