package mysql

import (
	"context"
	"database/sql"
	"strings"

	"hotel_ops/internal/domain"
)

// ---- employees ----

func (r *Repo) CreateEmployee(ctx context.Context, e *domain.Employee) error {
	id, err := r.insert(ctx, `INSERT INTO employees (hotel_id, name, department, active) VALUES (?, ?, ?, ?)`,
		e.HotelID, e.Name, nullStr(e.Department), e.Active)
	if err != nil {
		return err
	}
	e.ID = id
	return nil
}

func (r *Repo) GetEmployee(ctx context.Context, hotelID, id int64) (domain.Employee, error) {
	var e domain.Employee
	var dept sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, hotel_id, name, department, active FROM employees WHERE hotel_id = ? AND id = ?`, hotelID, id).
		Scan(&e.ID, &e.HotelID, &e.Name, &dept, &e.Active)
	e.Department = dept.String
	return e, mapErr(err)
}

func (r *Repo) ListEmployees(ctx context.Context, hotelID int64, includeInactive bool) ([]domain.Employee, error) {
	q := `SELECT id, hotel_id, name, department, active FROM employees WHERE hotel_id = ?`
	if !includeInactive {
		q += ` AND active = TRUE`
	}
	rows, err := r.db.QueryContext(ctx, q+` ORDER BY department, name, id`, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Employee
	for rows.Next() {
		var e domain.Employee
		var dept sql.NullString
		if err := rows.Scan(&e.ID, &e.HotelID, &e.Name, &dept, &e.Active); err != nil {
			return nil, err
		}
		e.Department = dept.String
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *Repo) UpdateEmployee(ctx context.Context, e domain.Employee) error {
	return r.exec(ctx, `UPDATE employees SET name = ?, department = ?, active = ? WHERE hotel_id = ? AND id = ?`,
		e.Name, nullStr(e.Department), e.Active, e.HotelID, e.ID)
}

// ---- shifts ----

const insertShiftSQL = `
INSERT INTO shifts (hotel_id, employee_id, day, start_time, end_time, position, status, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`

const updateShiftSQL = `
UPDATE shifts SET employee_id = ?, day = ?, start_time = ?, end_time = ?, position = ?, status = ?, updated_at = ?
WHERE hotel_id = ? AND id = ?
`

const selectShiftSQL = `
SELECT id, hotel_id, employee_id, day, start_time, end_time, position, status, updated_at
FROM shifts
`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertShift(ctx context.Context, db execer, s *domain.Shift) error {
	res, err := db.ExecContext(ctx, insertShiftSQL,
		s.HotelID, s.EmployeeID, s.Date, s.Start, s.End, nullStr(s.Position), string(s.Status), s.UpdatedAt)
	if err != nil {
		return err
	}
	s.ID, err = res.LastInsertId()
	return err
}

func updateShift(ctx context.Context, db execer, s domain.Shift) error {
	_, err := db.ExecContext(ctx, updateShiftSQL,
		s.EmployeeID, s.Date, s.Start, s.End, nullStr(s.Position), string(s.Status), s.UpdatedAt,
		s.HotelID, s.ID)
	return err
}

func (r *Repo) CreateShift(ctx context.Context, s *domain.Shift) error {
	return mapErr(insertShift(ctx, r.db, s))
}

func (r *Repo) GetShift(ctx context.Context, hotelID, id int64) (domain.Shift, error) {
	s, err := scanShift(r.db.QueryRowContext(ctx, selectShiftSQL+`WHERE hotel_id = ? AND id = ?`, hotelID, id))
	return s, mapErr(err)
}

func (r *Repo) ListShifts(ctx context.Context, f domain.ShiftFilter) ([]domain.Shift, error) {
	where := []string{"hotel_id = ?"}
	args := []any{f.HotelID}
	if !f.From.IsZero() {
		where = append(where, "day >= ?")
		args = append(args, f.From)
	}
	if !f.To.IsZero() {
		where = append(where, "day <= ?")
		args = append(args, f.To)
	}
	if f.EmployeeID != nil {
		where = append(where, "employee_id = ?")
		args = append(args, *f.EmployeeID)
	}
	if f.Status != nil {
		where = append(where, "status = ?")
		args = append(args, string(*f.Status))
	}

	rows, err := r.db.QueryContext(ctx,
		selectShiftSQL+"WHERE "+strings.Join(where, " AND ")+" ORDER BY day, employee_id, start_time, id",
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Shift
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repo) UpdateShift(ctx context.Context, s domain.Shift) error {
	return mapErr(updateShift(ctx, r.db, s))
}

func (r *Repo) DeleteShift(ctx context.Context, hotelID, id int64) error {
	return r.execOne(ctx, `DELETE FROM shifts WHERE hotel_id = ? AND id = ?`, hotelID, id)
}

func (r *Repo) ApplyShifts(ctx context.Context, hotelID int64, b domain.ShiftBatch) error {
	if b.Empty() {
		return nil
	}
	return r.inTx(ctx, func(tx *sql.Tx) error {
		if len(b.Delete) > 0 {
			marks := strings.TrimSuffix(strings.Repeat("?,", len(b.Delete)), ",")
			args := make([]any, 0, len(b.Delete)+1)
			args = append(args, hotelID)
			for _, id := range b.Delete {
				args = append(args, id)
			}
			if _, err := tx.ExecContext(ctx,
				`DELETE FROM shifts WHERE hotel_id = ? AND id IN (`+marks+`)`, args...); err != nil {
				return err
			}
		}
		for _, s := range b.Update {
			s.HotelID = hotelID
			if err := updateShift(ctx, tx, s); err != nil {
				return err
			}
		}
		for i := range b.Insert {
			s := b.Insert[i]
			s.HotelID = hotelID
			if err := insertShift(ctx, tx, &s); err != nil {
				return err
			}
		}
		return nil
	})
}

func scanShift(s scanner) (domain.Shift, error) {
	var sh domain.Shift
	var position sql.NullString
	var status string
	if err := s.Scan(&sh.ID, &sh.HotelID, &sh.EmployeeID, &sh.Date, &sh.Start, &sh.End,
		&position, &status, &sh.UpdatedAt); err != nil {
		return domain.Shift{}, err
	}
	sh.Position = position.String
	sh.Status = domain.ShiftStatus(status)
	return sh, nil
}

// ---- leave ----

const selectLeaveSQL = `
SELECT id, hotel_id, employee_id, start_date, end_date, kind, status, comment, decided_at, created_at
FROM leave_requests
`

func (r *Repo) CreateLeave(ctx context.Context, l *domain.LeaveRequest) error {
	id, err := r.insert(ctx, `
INSERT INTO leave_requests (hotel_id, employee_id, start_date, end_date, kind, status, comment)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		l.HotelID, l.EmployeeID, l.StartDate, l.EndDate, string(l.Kind), string(l.Status), nullStr(l.Comment))
	if err != nil {
		return err
	}
	created, err := r.GetLeave(ctx, l.HotelID, id)
	if err != nil {
		return err
	}
	*l = created
	return nil
}

func (r *Repo) GetLeave(ctx context.Context, hotelID, id int64) (domain.LeaveRequest, error) {
	l, err := scanLeave(r.db.QueryRowContext(ctx, selectLeaveSQL+`WHERE hotel_id = ? AND id = ?`, hotelID, id))
	return l, mapErr(err)
}

func (r *Repo) ListLeave(ctx context.Context, f domain.LeaveFilter) ([]domain.LeaveRequest, error) {
	where := []string{"hotel_id = ?"}
	args := []any{f.HotelID}
	if f.EmployeeID != nil {
		where = append(where, "employee_id = ?")
		args = append(args, *f.EmployeeID)
	}
	if f.Status != nil {
		where = append(where, "status = ?")
		args = append(args, string(*f.Status))
	}
	if !f.From.IsZero() {
		where = append(where, "end_date >= ?")
		args = append(args, f.From)
	}
	if !f.To.IsZero() {
		where = append(where, "start_date <= ?")
		args = append(args, f.To)
	}

	rows, err := r.db.QueryContext(ctx,
		selectLeaveSQL+"WHERE "+strings.Join(where, " AND ")+" ORDER BY start_date, id",
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.LeaveRequest
	for rows.Next() {
		l, err := scanLeave(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *Repo) UpdateLeave(ctx context.Context, l domain.LeaveRequest) error {
	return r.exec(ctx, `
UPDATE leave_requests SET start_date = ?, end_date = ?, kind = ?, status = ?, comment = ?, decided_at = ?
WHERE hotel_id = ? AND id = ?`,
		l.StartDate, l.EndDate, string(l.Kind), string(l.Status), nullStr(l.Comment), nullTime(l.DecidedAt),
		l.HotelID, l.ID)
}

func (r *Repo) DeleteLeave(ctx context.Context, hotelID, id int64) error {
	return r.execOne(ctx, `DELETE FROM leave_requests WHERE hotel_id = ? AND id = ?`, hotelID, id)
}

func scanLeave(s scanner) (domain.LeaveRequest, error) {
	var l domain.LeaveRequest
	var kind, status string
	var comment sql.NullString
	var decided sql.NullTime
	if err := s.Scan(&l.ID, &l.HotelID, &l.EmployeeID, &l.StartDate, &l.EndDate, &kind, &status,
		&comment, &decided, &l.CreatedAt); err != nil {
		return domain.LeaveRequest{}, err
	}
	l.Kind, l.Status = domain.LeaveKind(kind), domain.LeaveStatus(status)
	l.Comment = comment.String
	l.DecidedAt = timePtr(decided)
	return l, nil
}
