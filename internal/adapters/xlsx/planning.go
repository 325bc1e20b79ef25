package xlsx

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"hotel_ops/internal/domain"
)

const sheet = "Planning"

// WritePlanning renders a week grid as a single-sheet workbook: one row per
// employee, one column per day, plus the planned hours of the week.
func WritePlanning(w io.Writer, g domain.WeekGrid) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	header := []any{"Employee", "Department"}
	for _, d := range g.Days {
		header = append(header, d.Time().Format("Mon 02/01"))
	}
	header = append(header, "Hours")
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, row := range g.Rows {
		values := []any{row.Employee.Name, row.Employee.Department}
		minutes := 0
		for _, c := range row.Cells {
			values = append(values, cellText(c))
			// approved leave hides the day's shifts, so they are not worked hours
			if c.Leave != nil {
				continue
			}
			for _, sh := range c.Shifts {
				if start, end, err := sh.Minutes(); err == nil {
					minutes += end - start
				}
			}
		}
		values = append(values, float64(minutes)/60)

		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, axis, &values); err != nil {
			return err
		}
	}

	if err := style(f, len(g.Days), len(g.Rows)); err != nil {
		return err
	}
	_, err := f.WriteTo(w)
	return err
}

func cellText(c domain.GridCell) string {
	if c.Leave != nil {
		return "Leave (" + string(c.Leave.Kind) + ")"
	}
	parts := make([]string, 0, len(c.Shifts))
	for _, sh := range c.Shifts {
		p := sh.Start + "-" + sh.End
		if sh.Position != "" {
			p += " " + sh.Position
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, "\n")
}

func style(f *excelize.File, days, rows int) error {
	lastCol, err := excelize.ColumnNumberToName(days + 3)
	if err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDE7F0"}},
	})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", bold); err != nil {
		return err
	}
	if rows > 0 {
		wrap, err := f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"}})
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "C2", fmt.Sprintf("%s%d", lastCol, rows+1), wrap); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(sheet, "A", "B", 22); err != nil {
		return err
	}
	return f.SetPanes(sheet, &excelize.Panes{Freeze: true, XSplit: 1, YSplit: 1, TopLeftCell: "B2", ActivePane: "bottomRight"})
}
