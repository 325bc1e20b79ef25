package mysql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	mysqldrv "github.com/go-sql-driver/mysql"

	"hotel_ops/internal/domain"
)

// Repo implements every domain repository on a single *sql.DB.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

var (
	_ domain.HotelRepository    = (*Repo)(nil)
	_ domain.OrderRepository    = (*Repo)(nil)
	_ domain.LostItemRepository = (*Repo)(nil)
	_ domain.LoyaltyRepository  = (*Repo)(nil)
	_ domain.ParkingRepository  = (*Repo)(nil)
	_ domain.LeadRepository     = (*Repo)(nil)
	_ domain.DocumentRepository = (*Repo)(nil)
	_ domain.PlanningRepository = (*Repo)(nil)
)

func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

// mapErr translates driver errors into domain errors.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	var me *mysqldrv.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case 1062: // ER_DUP_ENTRY
			return domain.Conflict("duplicate entry", 0)
		case 1451: // ER_ROW_IS_REFERENCED_2
			return domain.Conflict("record is still referenced", 0)
		case 1452: // ER_NO_REFERENCED_ROW_2
			return domain.Invalid("", "referenced record does not exist")
		}
	}
	return err
}

// insert runs an INSERT and returns the generated id.
func (r *Repo) insert(ctx context.Context, q string, args ...any) (int64, error) {
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, mapErr(err)
	}
	return res.LastInsertId()
}

// execOne runs a statement that must touch exactly one row.
func (r *Repo) execOne(ctx context.Context, q string, args ...any) error {
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return mapErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repo) exec(ctx context.Context, q string, args ...any) error {
	_, err := r.db.ExecContext(ctx, q, args...)
	return mapErr(err)
}

// inTx runs fn inside a transaction, rolling back on error.
func (r *Repo) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return mapErr(err)
	}
	return mapErr(tx.Commit())
}

// pageArgs appends LIMIT and OFFSET values for a " LIMIT ? OFFSET ?" suffix.
func pageArgs(args []any, p domain.Page) []any {
	p = p.Normalized()
	return append(args, p.Limit, p.Offset)
}

// count runs a single-value COUNT query.
func (r *Repo) count(ctx context.Context, q string, args ...any) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// ---- hotels ----

const insertHotelSQL = `INSERT INTO hotels (code, name, timezone) VALUES (?, ?, ?)`

const selectHotelSQL = `SELECT id, code, name, timezone, created_at FROM hotels`

func (r *Repo) CreateHotel(ctx context.Context, h *domain.Hotel) error {
	id, err := r.insert(ctx, insertHotelSQL, h.Code, h.Name, h.Timezone)
	if err != nil {
		return err
	}
	created, err := r.GetHotel(ctx, id)
	if err != nil {
		return err
	}
	*h = created
	return nil
}

func (r *Repo) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	var h domain.Hotel
	err := r.db.QueryRowContext(ctx, selectHotelSQL+` WHERE id = ?`, id).
		Scan(&h.ID, &h.Code, &h.Name, &h.Timezone, &h.CreatedAt)
	return h, mapErr(err)
}

func (r *Repo) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	rows, err := r.db.QueryContext(ctx, selectHotelSQL+` ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Hotel
	for rows.Next() {
		var h domain.Hotel
		if err := rows.Scan(&h.ID, &h.Code, &h.Name, &h.Timezone, &h.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
