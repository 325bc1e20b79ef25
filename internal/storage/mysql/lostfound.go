package mysql

import (
	"context"
	"database/sql"
	"strings"

	"hotel_ops/internal/domain"
)

const selectLostItemSQL = `
SELECT id, hotel_id, description, location, room, found_on, found_by, status,
       claimed_by, claimed_at, notes, created_at, updated_at
FROM lost_items
`

func (r *Repo) CreateLostItem(ctx context.Context, it *domain.LostItem) error {
	id, err := r.insert(ctx, `
INSERT INTO lost_items
  (hotel_id, description, location, room, found_on, found_by, status, claimed_by, claimed_at, notes)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		it.HotelID, it.Description, nullStr(it.Location), nullStr(it.Room), it.FoundOn,
		nullStr(it.FoundBy), string(it.Status), nullStr(it.ClaimedBy), nullTime(it.ClaimedAt), nullStr(it.Notes),
	)
	if err != nil {
		return err
	}
	created, err := r.GetLostItem(ctx, it.HotelID, id)
	if err != nil {
		return err
	}
	*it = created
	return nil
}

func (r *Repo) CountLostItems(ctx context.Context, hotelID int64, status domain.LostItemStatus) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM lost_items WHERE hotel_id = ? AND status = ?`, hotelID, string(status))
}

func (r *Repo) GetLostItem(ctx context.Context, hotelID, id int64) (domain.LostItem, error) {
	it, err := scanLostItem(r.db.QueryRowContext(ctx, selectLostItemSQL+`WHERE hotel_id = ? AND id = ?`, hotelID, id))
	return it, mapErr(err)
}

func (r *Repo) ListLostItems(ctx context.Context, f domain.LostItemFilter) ([]domain.LostItem, error) {
	where := []string{"hotel_id = ?"}
	args := []any{f.HotelID}
	if f.Status != nil {
		where = append(where, "status = ?")
		args = append(args, string(*f.Status))
	}
	if q := strings.TrimSpace(f.Q); q != "" {
		like := "%" + escapeLike(q) + "%"
		where = append(where, "(description LIKE ? OR location LIKE ? OR room LIKE ?)")
		args = append(args, like, like, like)
	}
	args = pageArgs(args, f.Page)

	rows, err := r.db.QueryContext(ctx,
		selectLostItemSQL+"WHERE "+strings.Join(where, " AND ")+" ORDER BY found_on DESC, id DESC LIMIT ? OFFSET ?",
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.LostItem
	for rows.Next() {
		it, err := scanLostItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *Repo) UpdateLostItem(ctx context.Context, it domain.LostItem) error {
	return r.exec(ctx, `
UPDATE lost_items SET
  description = ?, location = ?, room = ?, found_on = ?, found_by = ?,
  status = ?, claimed_by = ?, claimed_at = ?, notes = ?
WHERE hotel_id = ? AND id = ?`,
		it.Description, nullStr(it.Location), nullStr(it.Room), it.FoundOn, nullStr(it.FoundBy),
		string(it.Status), nullStr(it.ClaimedBy), nullTime(it.ClaimedAt), nullStr(it.Notes),
		it.HotelID, it.ID,
	)
}

func (r *Repo) DeleteLostItem(ctx context.Context, hotelID, id int64) error {
	return r.execOne(ctx, `DELETE FROM lost_items WHERE hotel_id = ? AND id = ?`, hotelID, id)
}

func scanLostItem(s scanner) (domain.LostItem, error) {
	var (
		it                                 domain.LostItem
		location, room, foundBy, claimedBy sql.NullString
		notes                              sql.NullString
		status                             string
		claimedAt                          sql.NullTime
	)
	if err := s.Scan(
		&it.ID, &it.HotelID, &it.Description, &location, &room, &it.FoundOn, &foundBy, &status,
		&claimedBy, &claimedAt, &notes, &it.CreatedAt, &it.UpdatedAt,
	); err != nil {
		return domain.LostItem{}, err
	}
	it.Location, it.Room, it.FoundBy = location.String, room.String, foundBy.String
	it.ClaimedBy, it.Notes = claimedBy.String, notes.String
	it.Status = domain.LostItemStatus(status)
	it.ClaimedAt = timePtr(claimedAt)
	return it, nil
}

// escapeLike escapes LIKE wildcards in user input.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
