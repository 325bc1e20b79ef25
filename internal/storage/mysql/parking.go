package mysql

import (
	"context"
	"database/sql"
	"strings"

	"hotel_ops/internal/domain"
)

func (r *Repo) CreateSpot(ctx context.Context, s *domain.ParkingSpot) error {
	id, err := r.insert(ctx, `INSERT INTO parking_spots (hotel_id, label, notes) VALUES (?, ?, ?)`,
		s.HotelID, s.Label, nullStr(s.Notes))
	if err != nil {
		return err
	}
	s.ID = id
	return nil
}

func (r *Repo) GetSpot(ctx context.Context, hotelID, id int64) (domain.ParkingSpot, error) {
	var s domain.ParkingSpot
	var notes sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, hotel_id, label, notes FROM parking_spots WHERE hotel_id = ? AND id = ?`, hotelID, id).
		Scan(&s.ID, &s.HotelID, &s.Label, &notes)
	s.Notes = notes.String
	return s, mapErr(err)
}

func (r *Repo) ListSpots(ctx context.Context, hotelID int64) ([]domain.ParkingSpot, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, hotel_id, label, notes FROM parking_spots WHERE hotel_id = ? ORDER BY label`, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ParkingSpot
	for rows.Next() {
		var s domain.ParkingSpot
		var notes sql.NullString
		if err := rows.Scan(&s.ID, &s.HotelID, &s.Label, &notes); err != nil {
			return nil, err
		}
		s.Notes = notes.String
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repo) DeleteSpot(ctx context.Context, hotelID, id int64) error {
	return r.execOne(ctx, `DELETE FROM parking_spots WHERE hotel_id = ? AND id = ?`, hotelID, id)
}

const selectReservationSQL = `
SELECT id, hotel_id, spot_id, code, guest_name, plate, room, start_date, end_date, notes, created_at, updated_at
FROM parking_reservations
`

func (r *Repo) CreateReservation(ctx context.Context, res *domain.ParkingReservation) error {
	id, err := r.insert(ctx, `
INSERT INTO parking_reservations
  (hotel_id, spot_id, code, guest_name, plate, room, start_date, end_date, notes)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		res.HotelID, res.SpotID, res.Code, res.GuestName, nullStr(res.Plate), nullStr(res.Room),
		res.StartDate, res.EndDate, nullStr(res.Notes),
	)
	if err != nil {
		return err
	}
	created, err := r.GetReservation(ctx, res.HotelID, id)
	if err != nil {
		return err
	}
	*res = created
	return nil
}

func (r *Repo) GetReservation(ctx context.Context, hotelID, id int64) (domain.ParkingReservation, error) {
	res, err := scanReservation(r.db.QueryRowContext(ctx,
		selectReservationSQL+`WHERE hotel_id = ? AND id = ?`, hotelID, id))
	return res, mapErr(err)
}

func (r *Repo) ListReservations(ctx context.Context, f domain.ParkingFilter) ([]domain.ParkingReservation, error) {
	where := []string{"hotel_id = ?"}
	args := []any{f.HotelID}
	if f.SpotID != nil {
		where = append(where, "spot_id = ?")
		args = append(args, *f.SpotID)
	}
	// inclusive range intersection
	if !f.From.IsZero() {
		where = append(where, "end_date >= ?")
		args = append(args, f.From)
	}
	if !f.To.IsZero() {
		where = append(where, "start_date <= ?")
		args = append(args, f.To)
	}

	rows, err := r.db.QueryContext(ctx,
		selectReservationSQL+"WHERE "+strings.Join(where, " AND ")+" ORDER BY start_date, spot_id, id",
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ParkingReservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *Repo) UpdateReservation(ctx context.Context, res domain.ParkingReservation) error {
	return r.exec(ctx, `
UPDATE parking_reservations SET
  spot_id = ?, guest_name = ?, plate = ?, room = ?, start_date = ?, end_date = ?, notes = ?
WHERE hotel_id = ? AND id = ?`,
		res.SpotID, res.GuestName, nullStr(res.Plate), nullStr(res.Room),
		res.StartDate, res.EndDate, nullStr(res.Notes),
		res.HotelID, res.ID,
	)
}

func (r *Repo) DeleteReservation(ctx context.Context, hotelID, id int64) error {
	return r.execOne(ctx, `DELETE FROM parking_reservations WHERE hotel_id = ? AND id = ?`, hotelID, id)
}

func scanReservation(s scanner) (domain.ParkingReservation, error) {
	var res domain.ParkingReservation
	var plate, room, notes sql.NullString
	if err := s.Scan(&res.ID, &res.HotelID, &res.SpotID, &res.Code, &res.GuestName, &plate, &room,
		&res.StartDate, &res.EndDate, &notes, &res.CreatedAt, &res.UpdatedAt); err != nil {
		return domain.ParkingReservation{}, err
	}
	res.Plate, res.Room, res.Notes = plate.String, room.String, notes.String
	return res, nil
}
