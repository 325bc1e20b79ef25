package xlsx_test

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"hotel_ops/internal/adapters/xlsx"
	"hotel_ops/internal/domain"
)

func TestWritePlanning(t *testing.T) {
	wk := domain.WeekOf(domain.NewDate(2026, 3, 11))
	days := wk.Days()

	cells := make([]domain.GridCell, len(days))
	for i, d := range days {
		cells[i] = domain.GridCell{Date: d, Shifts: []domain.Shift{}}
	}
	cells[0].Shifts = []domain.Shift{
		{EmployeeID: 1, Date: days[0], Start: "07:00", End: "11:00", Position: "Reception"},
		{EmployeeID: 1, Date: days[0], Start: "15:00", End: "19:00"},
	}
	// published before the leave was approved
	cells[2].Shifts = []domain.Shift{{EmployeeID: 1, Date: days[2], Start: "07:00", End: "11:00"}}
	cells[2].Leave = &domain.LeaveRequest{EmployeeID: 1, Kind: domain.LeaveSick}

	g := domain.WeekGrid{
		Week: wk, View: domain.ViewPublished, Days: days,
		Rows: []domain.GridRow{{Employee: domain.Employee{ID: 1, Name: "Ana Peeters", Department: "Front office", Active: true}, Cells: cells}},
	}

	var buf bytes.Buffer
	if err := xlsx.WritePlanning(&buf, g); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = f.Close() }()

	if name := f.GetSheetName(0); name != "Planning" {
		t.Fatalf("sheet name = %q", name)
	}
	rows, err := f.GetRows("Planning")
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("want header + 1 row, got %d", len(rows))
	}
	if rows[0][0] != "Employee" || rows[0][2] != "Mon 09/03" || rows[0][9] != "Hours" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if rows[1][0] != "Ana Peeters" {
		t.Fatalf("unexpected name: %v", rows[1])
	}
	if rows[1][2] != "07:00-11:00 Reception\n15:00-19:00" {
		t.Fatalf("unexpected monday cell: %q", rows[1][2])
	}
	if rows[1][4] != "Leave (sick)" {
		t.Fatalf("unexpected wednesday cell: %q", rows[1][4])
	}
	if rows[1][9] != "8" {
		t.Fatalf("hours should leave out the day on leave, got %q", rows[1][9])
	}
}
