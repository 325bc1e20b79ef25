package app

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"hotel_ops/internal/domain"
)

type EmployeeInput struct {
	Name       string `json:"name"`
	Department string `json:"department"`
}

type ShiftInput struct {
	EmployeeID int64       `json:"employee_id"`
	Date       domain.Date `json:"date"`
	Start      string      `json:"start"`
	End        string      `json:"end"`
	Position   string      `json:"position"`
}

type MoveInput struct {
	EmployeeID int64       `json:"employee_id"`
	Date       domain.Date `json:"date"`
}

type LeaveInput struct {
	EmployeeID int64            `json:"employee_id"`
	StartDate  domain.Date      `json:"start_date"`
	EndDate    domain.Date      `json:"end_date"`
	Kind       domain.LeaveKind `json:"kind"`
	Comment    string           `json:"comment"`
}

type PublishResult struct {
	Week      domain.DateRange `json:"week"`
	Published int              `json:"published"`
	Replaced  int              `json:"replaced"`
}

type DuplicateResult struct {
	From    domain.DateRange `json:"from"`
	To      domain.DateRange `json:"to"`
	Copied  int              `json:"copied"`
	Skipped int              `json:"skipped"`
}

type PlanningService struct {
	repo domain.PlanningRepository
	ev   *Events
}

func NewPlanningService(r domain.PlanningRepository, ev *Events) *PlanningService {
	return &PlanningService{repo: r, ev: ev}
}

// ---- employees ----

func (s *PlanningService) CreateEmployee(ctx context.Context, hotelID int64, in EmployeeInput) (domain.Employee, error) {
	if err := required("name", in.Name); err != nil {
		return domain.Employee{}, err
	}
	e := domain.Employee{
		HotelID:    hotelID,
		Name:       strings.TrimSpace(in.Name),
		Department: strings.TrimSpace(in.Department),
		Active:     true,
	}
	if err := s.repo.CreateEmployee(ctx, &e); err != nil {
		return domain.Employee{}, err
	}
	return e, nil
}

func (s *PlanningService) ListEmployees(ctx context.Context, hotelID int64, includeInactive bool) ([]domain.Employee, error) {
	return s.repo.ListEmployees(ctx, hotelID, includeInactive)
}

func (s *PlanningService) UpdateEmployee(ctx context.Context, hotelID, id int64, in EmployeeInput) (domain.Employee, error) {
	if err := required("name", in.Name); err != nil {
		return domain.Employee{}, err
	}
	e, err := s.repo.GetEmployee(ctx, hotelID, id)
	if err != nil {
		return domain.Employee{}, err
	}
	e.Name = strings.TrimSpace(in.Name)
	e.Department = strings.TrimSpace(in.Department)
	if err := s.repo.UpdateEmployee(ctx, e); err != nil {
		return domain.Employee{}, err
	}
	return e, nil
}

// DeactivateEmployee hides the employee from new planning. Existing shifts stay.
func (s *PlanningService) DeactivateEmployee(ctx context.Context, hotelID, id int64) (domain.Employee, error) {
	e, err := s.repo.GetEmployee(ctx, hotelID, id)
	if err != nil {
		return domain.Employee{}, err
	}
	if !e.Active {
		return e, nil
	}
	e.Active = false
	if err := s.repo.UpdateEmployee(ctx, e); err != nil {
		return domain.Employee{}, err
	}
	return e, nil
}

// ---- shifts ----

// CreateShift adds a draft shift.
func (s *PlanningService) CreateShift(ctx context.Context, hotelID int64, in ShiftInput) (domain.Shift, error) {
	sh := domain.Shift{
		HotelID:    hotelID,
		EmployeeID: in.EmployeeID,
		Date:       in.Date,
		Start:      strings.TrimSpace(in.Start),
		End:        strings.TrimSpace(in.End),
		Position:   strings.TrimSpace(in.Position),
		Status:     domain.ShiftDraft,
		UpdatedAt:  s.ev.Now(),
	}
	if err := s.checkShift(ctx, sh); err != nil {
		return domain.Shift{}, err
	}
	if err := s.repo.CreateShift(ctx, &sh); err != nil {
		return domain.Shift{}, err
	}
	return sh, nil
}

// UpdateShift edits times and position. Any edit turns the shift back into a draft.
func (s *PlanningService) UpdateShift(ctx context.Context, hotelID, id int64, in ShiftInput) (domain.Shift, error) {
	return s.editShift(ctx, hotelID, id, func(sh *domain.Shift) {
		if in.EmployeeID != 0 {
			sh.EmployeeID = in.EmployeeID
		}
		if !in.Date.IsZero() {
			sh.Date = in.Date
		}
		sh.Start = strings.TrimSpace(in.Start)
		sh.End = strings.TrimSpace(in.End)
		sh.Position = strings.TrimSpace(in.Position)
	})
}

// MoveShift is the drag-and-drop operation: same times, new employee and/or day.
func (s *PlanningService) MoveShift(ctx context.Context, hotelID, id int64, in MoveInput) (domain.Shift, error) {
	if in.EmployeeID == 0 && in.Date.IsZero() {
		return domain.Shift{}, domain.Invalid("", "employee_id or date is required")
	}
	return s.editShift(ctx, hotelID, id, func(sh *domain.Shift) {
		if in.EmployeeID != 0 {
			sh.EmployeeID = in.EmployeeID
		}
		if !in.Date.IsZero() {
			sh.Date = in.Date
		}
	})
}

func (s *PlanningService) editShift(ctx context.Context, hotelID, id int64, apply func(*domain.Shift)) (domain.Shift, error) {
	sh, err := s.repo.GetShift(ctx, hotelID, id)
	if err != nil {
		return domain.Shift{}, err
	}
	apply(&sh)
	sh.Status = domain.ShiftDraft
	sh.UpdatedAt = s.ev.Now()
	if err := s.checkShift(ctx, sh); err != nil {
		return domain.Shift{}, err
	}
	if err := s.repo.UpdateShift(ctx, sh); err != nil {
		return domain.Shift{}, err
	}
	return sh, nil
}

func (s *PlanningService) DeleteShift(ctx context.Context, hotelID, id int64) error {
	return s.repo.DeleteShift(ctx, hotelID, id)
}

// checkShift validates sh against the employee, approved leave and the other
// shifts of the same employee, day and layer.
func (s *PlanningService) checkShift(ctx context.Context, sh domain.Shift) error {
	if sh.Date.IsZero() {
		return domain.Invalid("date", "is required")
	}
	if _, _, err := sh.Minutes(); err != nil {
		return err
	}
	emp, err := s.repo.GetEmployee(ctx, sh.HotelID, sh.EmployeeID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Invalid("employee_id", "unknown employee")
	}
	if err != nil {
		return err
	}
	if !emp.Active {
		return domain.Invalid("employee_id", "employee is inactive")
	}

	approved := domain.LeaveApproved
	leave, err := s.repo.ListLeave(ctx, domain.LeaveFilter{
		HotelID: sh.HotelID, EmployeeID: &sh.EmployeeID, Status: &approved, From: sh.Date, To: sh.Date,
	})
	if err != nil {
		return err
	}
	if len(leave) > 0 {
		return domain.Conflict("employee is on approved leave that day", len(leave))
	}

	same, err := s.repo.ListShifts(ctx, domain.ShiftFilter{
		HotelID: sh.HotelID, From: sh.Date, To: sh.Date, EmployeeID: &sh.EmployeeID, Status: &sh.Status,
	})
	if err != nil {
		return err
	}
	clashes := 0
	for _, o := range same {
		if o.ID != sh.ID && o.OverlapsTime(sh) {
			clashes++
		}
	}
	if clashes > 0 {
		return domain.Conflict("shift overlaps another shift of this employee", clashes)
	}
	return nil
}

// ---- weekly grid ----

// Grid builds the employees x days board for the week containing week.
func (s *PlanningService) Grid(ctx context.Context, hotelID int64, week domain.Date, view domain.GridView) (domain.WeekGrid, error) {
	if view == "" {
		view = domain.ViewEditor
	}
	if view != domain.ViewEditor && view != domain.ViewPublished {
		return domain.WeekGrid{}, domain.Invalid("view", "must be editor or published")
	}
	wk := domain.WeekOf(week)

	f := domain.ShiftFilter{HotelID: hotelID, From: wk.Start, To: wk.End}
	if view == domain.ViewPublished {
		published := domain.ShiftPublished
		f.Status = &published
	}
	shifts, err := s.repo.ListShifts(ctx, f)
	if err != nil {
		return domain.WeekGrid{}, err
	}
	if view == domain.ViewEditor {
		shifts = domain.LayerShifts(shifts)
	}

	employees, err := s.repo.ListEmployees(ctx, hotelID, true)
	if err != nil {
		return domain.WeekGrid{}, err
	}
	approved := domain.LeaveApproved
	leave, err := s.repo.ListLeave(ctx, domain.LeaveFilter{HotelID: hotelID, Status: &approved, From: wk.Start, To: wk.End})
	if err != nil {
		return domain.WeekGrid{}, err
	}
	return buildGrid(wk, view, employees, shifts, leave), nil
}

func buildGrid(wk domain.DateRange, view domain.GridView, employees []domain.Employee, shifts []domain.Shift, leave []domain.LeaveRequest) domain.WeekGrid {
	days := wk.Days()
	byCell := map[domain.Cell][]domain.Shift{}
	planned := map[int64]bool{}
	for _, sh := range shifts {
		byCell[sh.Cell()] = append(byCell[sh.Cell()], sh)
		planned[sh.EmployeeID] = true
	}

	grid := domain.WeekGrid{Week: wk, View: view, Days: days, Rows: []domain.GridRow{}}
	for _, e := range employees {
		// inactive employees only show while they still have shifts that week
		if !e.Active && !planned[e.ID] {
			continue
		}
		row := domain.GridRow{Employee: e, Cells: make([]domain.GridCell, len(days))}
		for i, d := range days {
			cell := domain.GridCell{Date: d, Shifts: byCell[domain.Cell{EmployeeID: e.ID, Date: d.String()}]}
			if cell.Shifts == nil {
				cell.Shifts = []domain.Shift{}
			}
			for j := range leave {
				if leave[j].EmployeeID == e.ID && leave[j].Range().Contains(d) {
					l := leave[j]
					cell.Leave = &l
					break
				}
			}
			row.Cells[i] = cell
		}
		grid.Rows = append(grid.Rows, row)
	}
	return grid
}

// Publish promotes the week's drafts. In every cell holding drafts, the drafts
// replace the published shifts. Replacing published shifts needs force.
func (s *PlanningService) Publish(ctx context.Context, hotelID int64, week domain.Date, force bool) (PublishResult, error) {
	wk := domain.WeekOf(week)
	res := PublishResult{Week: wk}

	all, err := s.repo.ListShifts(ctx, domain.ShiftFilter{HotelID: hotelID, From: wk.Start, To: wk.End})
	if err != nil {
		return res, err
	}
	draftCells := map[domain.Cell]bool{}
	for _, sh := range all {
		if sh.Status == domain.ShiftDraft {
			draftCells[sh.Cell()] = true
		}
	}
	if len(draftCells) == 0 {
		return res, nil
	}

	var batch domain.ShiftBatch
	replacedCells := map[domain.Cell]bool{}
	now := s.ev.Now()
	for _, sh := range all {
		if !draftCells[sh.Cell()] {
			continue
		}
		if sh.Status == domain.ShiftPublished {
			batch.Delete = append(batch.Delete, sh.ID)
			replacedCells[sh.Cell()] = true
			continue
		}
		sh.Status = domain.ShiftPublished
		sh.UpdatedAt = now
		batch.Update = append(batch.Update, sh)
	}
	if len(replacedCells) > 0 && !force {
		return res, domain.Conflict("publishing would replace already published days", len(replacedCells))
	}
	if err := s.repo.ApplyShifts(ctx, hotelID, batch); err != nil {
		return res, err
	}

	res.Published, res.Replaced = len(batch.Update), len(batch.Delete)
	log.Info().Int64("hotel_id", hotelID).Str("week", wk.Start.String()).
		Int("published", res.Published).Int("replaced", res.Replaced).Msg("planning published")
	s.ev.Emit(ctx, hotelID, domain.EventPlanningPublished, res)
	return res, nil
}

// Duplicate copies the editor view of one week into another as drafts.
// A target week that already has shifts needs overwrite; overwriting drops
// the target's drafts and layers the copies over its published shifts.
func (s *PlanningService) Duplicate(ctx context.Context, hotelID int64, from, to domain.Date, overwrite bool) (DuplicateResult, error) {
	src, dst := domain.WeekOf(from), domain.WeekOf(to)
	res := DuplicateResult{From: src, To: dst}
	if src.Start.Equal(dst.Start) {
		return res, domain.Invalid("to_week", "must differ from the source week")
	}

	source, err := s.repo.ListShifts(ctx, domain.ShiftFilter{HotelID: hotelID, From: src.Start, To: src.End})
	if err != nil {
		return res, err
	}
	target, err := s.repo.ListShifts(ctx, domain.ShiftFilter{HotelID: hotelID, From: dst.Start, To: dst.End})
	if err != nil {
		return res, err
	}
	if len(target) > 0 && !overwrite {
		return res, domain.Conflict("target week already has shifts", len(target))
	}

	employees, err := s.repo.ListEmployees(ctx, hotelID, false)
	if err != nil {
		return res, err
	}
	active := make(map[int64]bool, len(employees))
	for _, e := range employees {
		active[e.ID] = true
	}
	approved := domain.LeaveApproved
	leave, err := s.repo.ListLeave(ctx, domain.LeaveFilter{HotelID: hotelID, Status: &approved, From: dst.Start, To: dst.End})
	if err != nil {
		return res, err
	}
	onLeave := func(emp int64, d domain.Date) bool {
		for _, l := range leave {
			if l.EmployeeID == emp && l.Range().Contains(d) {
				return true
			}
		}
		return false
	}

	var batch domain.ShiftBatch
	for _, sh := range target {
		if sh.Status == domain.ShiftDraft {
			batch.Delete = append(batch.Delete, sh.ID)
		}
	}
	offset := src.Start.DaysUntil(dst.Start)
	now := s.ev.Now()
	for _, sh := range domain.LayerShifts(source) {
		day := sh.Date.AddDays(offset)
		if !active[sh.EmployeeID] || onLeave(sh.EmployeeID, day) {
			res.Skipped++
			continue
		}
		batch.Insert = append(batch.Insert, domain.Shift{
			HotelID:    hotelID,
			EmployeeID: sh.EmployeeID,
			Date:       day,
			Start:      sh.Start,
			End:        sh.End,
			Position:   sh.Position,
			Status:     domain.ShiftDraft,
			UpdatedAt:  now,
		})
	}
	if err := s.repo.ApplyShifts(ctx, hotelID, batch); err != nil {
		return res, err
	}
	res.Copied = len(batch.Insert)
	return res, nil
}

// ---- leave ----

func (s *PlanningService) CreateLeave(ctx context.Context, hotelID int64, in LeaveInput) (domain.LeaveRequest, error) {
	rng := domain.DateRange{Start: in.StartDate, End: in.EndDate}
	if err := rng.Validate("dates"); err != nil {
		return domain.LeaveRequest{}, err
	}
	if in.Kind == "" {
		in.Kind = domain.LeaveVacation
	}
	if !in.Kind.Valid() {
		return domain.LeaveRequest{}, domain.Invalid("kind", "unknown leave kind")
	}
	if _, err := s.repo.GetEmployee(ctx, hotelID, in.EmployeeID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.LeaveRequest{}, domain.Invalid("employee_id", "unknown employee")
		}
		return domain.LeaveRequest{}, err
	}

	existing, err := s.repo.ListLeave(ctx, domain.LeaveFilter{
		HotelID: hotelID, EmployeeID: &in.EmployeeID, From: in.StartDate, To: in.EndDate,
	})
	if err != nil {
		return domain.LeaveRequest{}, err
	}
	clashes := 0
	for _, l := range existing {
		if l.Status != domain.LeaveRejected && l.Range().Overlaps(rng) {
			clashes++
		}
	}
	if clashes > 0 {
		return domain.LeaveRequest{}, domain.Conflict("overlaps another leave request", clashes)
	}

	l := domain.LeaveRequest{
		HotelID:    hotelID,
		EmployeeID: in.EmployeeID,
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
		Kind:       in.Kind,
		Status:     domain.LeavePending,
		Comment:    strings.TrimSpace(in.Comment),
	}
	if err := s.repo.CreateLeave(ctx, &l); err != nil {
		return domain.LeaveRequest{}, err
	}
	s.ev.Changed(ctx, hotelID)
	return l, nil
}

func (s *PlanningService) ListLeave(ctx context.Context, f domain.LeaveFilter) ([]domain.LeaveRequest, error) {
	return s.repo.ListLeave(ctx, f)
}

// ApproveLeave approves a pending request and clears the employee's drafts
// inside the leave period.
func (s *PlanningService) ApproveLeave(ctx context.Context, hotelID, id int64) (domain.LeaveRequest, error) {
	l, err := s.decide(ctx, hotelID, id, domain.LeaveApproved, "")
	if err != nil {
		return domain.LeaveRequest{}, err
	}
	draft := domain.ShiftDraft
	drafts, err := s.repo.ListShifts(ctx, domain.ShiftFilter{
		HotelID: hotelID, From: l.StartDate, To: l.EndDate, EmployeeID: &l.EmployeeID, Status: &draft,
	})
	if err != nil {
		return domain.LeaveRequest{}, err
	}
	var batch domain.ShiftBatch
	for _, sh := range drafts {
		batch.Delete = append(batch.Delete, sh.ID)
	}
	if err := s.repo.ApplyShifts(ctx, hotelID, batch); err != nil {
		return domain.LeaveRequest{}, err
	}
	return l, nil
}

func (s *PlanningService) RejectLeave(ctx context.Context, hotelID, id int64, comment string) (domain.LeaveRequest, error) {
	return s.decide(ctx, hotelID, id, domain.LeaveRejected, comment)
}

func (s *PlanningService) decide(ctx context.Context, hotelID, id int64, status domain.LeaveStatus, comment string) (domain.LeaveRequest, error) {
	l, err := s.repo.GetLeave(ctx, hotelID, id)
	if err != nil {
		return domain.LeaveRequest{}, err
	}
	if l.Status != domain.LeavePending {
		return domain.LeaveRequest{}, domain.Invalid("status", "request is already "+string(l.Status))
	}
	now := s.ev.Now()
	l.Status = status
	l.DecidedAt = &now
	if comment = strings.TrimSpace(comment); comment != "" {
		l.Comment = comment
	}
	if err := s.repo.UpdateLeave(ctx, l); err != nil {
		return domain.LeaveRequest{}, err
	}
	log.Info().Int64("hotel_id", hotelID).Int64("leave_id", id).Str("status", string(status)).Msg("leave decided")
	s.ev.Emit(ctx, hotelID, domain.EventLeaveDecided, l)
	return l, nil
}

// DeleteLeave withdraws a request that has not been decided yet.
func (s *PlanningService) DeleteLeave(ctx context.Context, hotelID, id int64) error {
	l, err := s.repo.GetLeave(ctx, hotelID, id)
	if err != nil {
		return err
	}
	if l.Status != domain.LeavePending {
		return domain.Invalid("status", "only pending requests can be withdrawn")
	}
	if err := s.repo.DeleteLeave(ctx, hotelID, id); err != nil {
		return err
	}
	s.ev.Changed(ctx, hotelID)
	return nil
}
