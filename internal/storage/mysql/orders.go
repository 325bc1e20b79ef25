package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"hotel_ops/internal/domain"
)

const insertOrderSQL = `
INSERT INTO orders
  (hotel_id, supplier, reference, items, status, expected_on, received_at, notes, created_by)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const updateOrderSQL = `
UPDATE orders SET
  supplier    = ?,
  reference   = ?,
  items       = ?,
  status      = ?,
  expected_on = ?,
  received_at = ?,
  notes       = ?
WHERE hotel_id = ? AND id = ?
`

const selectOrderSQL = `
SELECT id, hotel_id, supplier, reference, items, status, expected_on,
       received_at, notes, created_by, created_at, updated_at
FROM orders
`

func (r *Repo) CreateOrder(ctx context.Context, o *domain.Order) error {
	items, err := json.Marshal(o.Lines)
	if err != nil {
		return err
	}
	id, err := r.insert(ctx, insertOrderSQL,
		o.HotelID,
		o.Supplier,
		nullStr(o.Reference),
		string(items),
		string(o.Status),
		o.ExpectedOn,
		nullTime(o.ReceivedAt),
		nullStr(o.Notes),
		nullStr(o.CreatedBy),
	)
	if err != nil {
		return err
	}
	created, err := r.GetOrder(ctx, o.HotelID, id)
	if err != nil {
		return err
	}
	*o = created
	return nil
}

func (r *Repo) GetOrder(ctx context.Context, hotelID, id int64) (domain.Order, error) {
	row := r.db.QueryRowContext(ctx, selectOrderSQL+`WHERE hotel_id = ? AND id = ?`, hotelID, id)
	o, err := scanOrder(row)
	return o, mapErr(err)
}

func (r *Repo) ListOrders(ctx context.Context, f domain.OrderFilter) ([]domain.Order, error) {
	where := []string{"hotel_id = ?"}
	args := []any{f.HotelID}
	if f.Status != nil {
		where = append(where, "status = ?")
		args = append(args, string(*f.Status))
	}
	args = pageArgs(args, f.Page)

	rows, err := r.db.QueryContext(ctx,
		selectOrderSQL+"WHERE "+strings.Join(where, " AND ")+" ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?",
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *Repo) CountOrders(ctx context.Context, hotelID int64, status domain.OrderStatus) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM orders WHERE hotel_id = ? AND status = ?`, hotelID, string(status))
}

func (r *Repo) UpdateOrder(ctx context.Context, o domain.Order) error {
	items, err := json.Marshal(o.Lines)
	if err != nil {
		return err
	}
	return r.exec(ctx, updateOrderSQL,
		o.Supplier,
		nullStr(o.Reference),
		string(items),
		string(o.Status),
		o.ExpectedOn,
		nullTime(o.ReceivedAt),
		nullStr(o.Notes),
		o.HotelID, o.ID,
	)
}

func (r *Repo) DeleteOrder(ctx context.Context, hotelID, id int64) error {
	return r.execOne(ctx, `DELETE FROM orders WHERE hotel_id = ? AND id = ?`, hotelID, id)
}

type scanner interface{ Scan(dest ...any) error }

func scanOrder(s scanner) (domain.Order, error) {
	var (
		o                         domain.Order
		reference, notes, creator sql.NullString
		items                     []byte
		status                    string
		receivedAt                sql.NullTime
	)
	if err := s.Scan(
		&o.ID, &o.HotelID, &o.Supplier, &reference, &items, &status, &o.ExpectedOn,
		&receivedAt, &notes, &creator, &o.CreatedAt, &o.UpdatedAt,
	); err != nil {
		return domain.Order{}, err
	}
	o.Reference = reference.String
	o.Notes = notes.String
	o.CreatedBy = creator.String
	o.Status = domain.OrderStatus(status)
	o.ReceivedAt = timePtr(receivedAt)
	_ = json.Unmarshal(items, &o.Lines)
	return o, nil
}
