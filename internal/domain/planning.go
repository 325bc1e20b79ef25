package domain

import (
	"fmt"
	"sort"
	"time"
)

type Employee struct {
	ID         int64  `json:"id"`
	HotelID    int64  `json:"hotel_id"`
	Name       string `json:"name"`
	Department string `json:"department,omitempty"`
	Active     bool   `json:"active"`
}

type ShiftStatus string

const (
	ShiftDraft     ShiftStatus = "draft"
	ShiftPublished ShiftStatus = "published"
)

type Shift struct {
	ID         int64       `json:"id"`
	HotelID    int64       `json:"hotel_id"`
	EmployeeID int64       `json:"employee_id"`
	Date       Date        `json:"date"`
	Start      string      `json:"start"`
	End        string      `json:"end"`
	Position   string      `json:"position,omitempty"`
	Status     ShiftStatus `json:"status"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// Minutes returns the shift bounds as minutes after midnight.
func (s Shift) Minutes() (start, end int, err error) {
	if start, err = ParseClock(s.Start); err != nil {
		return 0, 0, Invalid("start", err.Error())
	}
	if end, err = ParseClock(s.End); err != nil {
		return 0, 0, Invalid("end", err.Error())
	}
	if end <= start {
		return 0, 0, Invalid("end", "must be after start")
	}
	return start, end, nil
}

// OverlapsTime reports whether two shifts share any minute. Both must be valid.
func (s Shift) OverlapsTime(o Shift) bool {
	as, ae, err1 := s.Minutes()
	bs, be, err2 := o.Minutes()
	if err1 != nil || err2 != nil {
		return false
	}
	return as < be && bs < ae
}

// ParseClock parses "HH:MM" into minutes after midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

type ShiftFilter struct {
	HotelID    int64
	From, To   Date
	EmployeeID *int64
	Status     *ShiftStatus
}

type Cell struct {
	EmployeeID int64
	Date       string
}

func (s Shift) Cell() Cell { return Cell{EmployeeID: s.EmployeeID, Date: s.Date.String()} }

// LayerShifts computes the editor view of a set of shifts. For every
// (employee, day) cell the layer whose newest UpdatedAt is latest wins,
// drafts winning ties. Output is sorted by date, employee and start time.
func LayerShifts(shifts []Shift) []Shift {
	type layers struct {
		draft, pub         []Shift
		draftAt, publishAt time.Time
	}
	cells := map[Cell]*layers{}
	for _, s := range shifts {
		l := cells[s.Cell()]
		if l == nil {
			l = &layers{}
			cells[s.Cell()] = l
		}
		if s.Status == ShiftDraft {
			l.draft = append(l.draft, s)
			if s.UpdatedAt.After(l.draftAt) {
				l.draftAt = s.UpdatedAt
			}
			continue
		}
		l.pub = append(l.pub, s)
		if s.UpdatedAt.After(l.publishAt) {
			l.publishAt = s.UpdatedAt
		}
	}

	out := make([]Shift, 0, len(shifts))
	for _, l := range cells {
		if len(l.draft) > 0 && (len(l.pub) == 0 || !l.draftAt.Before(l.publishAt)) {
			out = append(out, l.draft...)
		} else {
			out = append(out, l.pub...)
		}
	}
	SortShifts(out)
	return out
}

func SortShifts(s []Shift) {
	sort.Slice(s, func(i, j int) bool {
		a, b := s[i], s[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.EmployeeID != b.EmployeeID {
			return a.EmployeeID < b.EmployeeID
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.ID < b.ID
	})
}

type LeaveKind string

const (
	LeaveVacation LeaveKind = "vacation"
	LeaveSick     LeaveKind = "sick"
	LeaveOther    LeaveKind = "other"
)

func (k LeaveKind) Valid() bool {
	return k == LeaveVacation || k == LeaveSick || k == LeaveOther
}

type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

type LeaveRequest struct {
	ID         int64       `json:"id"`
	HotelID    int64       `json:"hotel_id"`
	EmployeeID int64       `json:"employee_id"`
	StartDate  Date        `json:"start_date"`
	EndDate    Date        `json:"end_date"`
	Kind       LeaveKind   `json:"kind"`
	Status     LeaveStatus `json:"status"`
	Comment    string      `json:"comment,omitempty"`
	DecidedAt  *time.Time  `json:"decided_at,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

func (l LeaveRequest) Range() DateRange { return DateRange{Start: l.StartDate, End: l.EndDate} }

type LeaveFilter struct {
	HotelID    int64
	EmployeeID *int64
	Status     *LeaveStatus
	From, To   Date
}

// ShiftBatch is applied atomically: deletes, then updates, then inserts.
type ShiftBatch struct {
	Delete []int64
	Update []Shift
	Insert []Shift
}

func (b ShiftBatch) Empty() bool {
	return len(b.Delete) == 0 && len(b.Update) == 0 && len(b.Insert) == 0
}

type GridView string

const (
	ViewEditor    GridView = "editor"
	ViewPublished GridView = "published"
)

type WeekGrid struct {
	Week DateRange `json:"week"`
	View GridView  `json:"view"`
	Days []Date    `json:"days"`
	Rows []GridRow `json:"rows"`
}

type GridRow struct {
	Employee Employee   `json:"employee"`
	Cells    []GridCell `json:"cells"`
}

type GridCell struct {
	Date   Date          `json:"date"`
	Shifts []Shift       `json:"shifts"`
	Leave  *LeaveRequest `json:"leave,omitempty"`
}
