package domain_test

import (
	"testing"
	"time"

	"hotel_ops/internal/domain"
)

func shift(id, emp int64, day, start, end string, st domain.ShiftStatus, at time.Time) domain.Shift {
	return domain.Shift{ID: id, EmployeeID: emp, Date: d(day), Start: start, End: end, Status: st, UpdatedAt: at}
}

func TestLayerShifts(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)

	in := []domain.Shift{
		// cell 1: draft newer than published -> draft wins
		shift(1, 10, "2026-03-09", "07:00", "15:00", domain.ShiftPublished, t0),
		shift(2, 10, "2026-03-09", "09:00", "17:00", domain.ShiftDraft, t1),
		// cell 2: published only
		shift(3, 10, "2026-03-10", "07:00", "15:00", domain.ShiftPublished, t0),
		// cell 3: published newer than draft -> published wins
		shift(4, 11, "2026-03-09", "15:00", "23:00", domain.ShiftDraft, t0),
		shift(5, 11, "2026-03-09", "14:00", "22:00", domain.ShiftPublished, t1),
		// cell 4: tie -> draft wins
		shift(6, 12, "2026-03-09", "07:00", "11:00", domain.ShiftPublished, t0),
		shift(7, 12, "2026-03-09", "12:00", "16:00", domain.ShiftDraft, t0),
	}
	got := domain.LayerShifts(in)

	var ids []int64
	for _, s := range got {
		ids = append(ids, s.ID)
	}
	want := []int64{2, 5, 7, 3}
	if len(ids) != len(want) {
		t.Fatalf("got ids %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("got ids %v, want %v", ids, want)
		}
	}
}

func TestShift_Minutes(t *testing.T) {
	s := domain.Shift{Start: "07:30", End: "15:00"}
	start, end, err := s.Minutes()
	if err != nil || start != 450 || end != 900 {
		t.Fatalf("Minutes = %d %d %v", start, end, err)
	}
	if _, _, err := (domain.Shift{Start: "15:00", End: "07:00"}).Minutes(); err == nil {
		t.Fatalf("expected error for end before start")
	}
	if _, _, err := (domain.Shift{Start: "7h", End: "15:00"}).Minutes(); err == nil {
		t.Fatalf("expected error for bad clock")
	}
}

func TestShift_OverlapsTime(t *testing.T) {
	a := domain.Shift{Start: "07:00", End: "15:00"}
	if !a.OverlapsTime(domain.Shift{Start: "14:00", End: "18:00"}) {
		t.Fatalf("expected overlap")
	}
	if a.OverlapsTime(domain.Shift{Start: "15:00", End: "23:00"}) {
		t.Fatalf("back to back shifts must not overlap")
	}
}
