package mysql

import (
	"context"
	"database/sql"
	"strings"

	"hotel_ops/internal/domain"
)

const selectLeadSQL = `
SELECT id, hotel_id, company, contact_name, email, phone, stage, value_cents, owner,
       next_action_on, notes, created_at, updated_at
FROM leads
`

func (r *Repo) CreateLead(ctx context.Context, l *domain.Lead) error {
	id, err := r.insert(ctx, `
INSERT INTO leads
  (hotel_id, company, contact_name, email, phone, stage, value_cents, owner, next_action_on, notes)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.HotelID, l.Company, nullStr(l.ContactName), nullStr(l.Email), nullStr(l.Phone),
		string(l.Stage), l.ValueCents, nullStr(l.Owner), l.NextActionOn, nullStr(l.Notes),
	)
	if err != nil {
		return err
	}
	created, err := r.GetLead(ctx, l.HotelID, id)
	if err != nil {
		return err
	}
	*l = created
	return nil
}

func (r *Repo) GetLead(ctx context.Context, hotelID, id int64) (domain.Lead, error) {
	l, err := scanLead(r.db.QueryRowContext(ctx, selectLeadSQL+`WHERE hotel_id = ? AND id = ?`, hotelID, id))
	return l, mapErr(err)
}

func (r *Repo) ListLeads(ctx context.Context, f domain.LeadFilter) ([]domain.Lead, error) {
	where := []string{"hotel_id = ?"}
	args := []any{f.HotelID}
	if f.Stage != nil {
		where = append(where, "stage = ?")
		args = append(args, string(*f.Stage))
	}
	if f.Owner != "" {
		where = append(where, "owner = ?")
		args = append(args, f.Owner)
	}
	args = pageArgs(args, f.Page)

	rows, err := r.db.QueryContext(ctx,
		selectLeadSQL+"WHERE "+strings.Join(where, " AND ")+" ORDER BY updated_at DESC, id DESC LIMIT ? OFFSET ?",
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *Repo) StageTotals(ctx context.Context, hotelID int64) ([]domain.StageSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT stage, COUNT(*), COALESCE(SUM(value_cents), 0)
FROM leads
WHERE hotel_id = ?
GROUP BY stage`, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.StageSummary
	for rows.Next() {
		var (
			s     domain.StageSummary
			stage string
		)
		if err := rows.Scan(&stage, &s.Count, &s.ValueCents); err != nil {
			return nil, err
		}
		s.Stage = domain.LeadStage(stage)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repo) UpdateLead(ctx context.Context, l domain.Lead) error {
	return r.exec(ctx, `
UPDATE leads SET
  company = ?, contact_name = ?, email = ?, phone = ?, stage = ?, value_cents = ?,
  owner = ?, next_action_on = ?, notes = ?
WHERE hotel_id = ? AND id = ?`,
		l.Company, nullStr(l.ContactName), nullStr(l.Email), nullStr(l.Phone), string(l.Stage), l.ValueCents,
		nullStr(l.Owner), l.NextActionOn, nullStr(l.Notes),
		l.HotelID, l.ID,
	)
}

func (r *Repo) DeleteLead(ctx context.Context, hotelID, id int64) error {
	return r.execOne(ctx, `DELETE FROM leads WHERE hotel_id = ? AND id = ?`, hotelID, id)
}

func (r *Repo) AddActivity(ctx context.Context, a *domain.LeadActivity) error {
	id, err := r.insert(ctx, `INSERT INTO lead_activities (lead_id, kind, body) VALUES (?, ?, ?)`,
		a.LeadID, string(a.Kind), a.Body)
	if err != nil {
		return err
	}
	var kind string
	err = r.db.QueryRowContext(ctx,
		`SELECT id, lead_id, kind, body, created_at FROM lead_activities WHERE id = ?`, id).
		Scan(&a.ID, &a.LeadID, &kind, &a.Body, &a.CreatedAt)
	a.Kind = domain.ActivityKind(kind)
	return mapErr(err)
}

func (r *Repo) ListActivities(ctx context.Context, hotelID, leadID int64) ([]domain.LeadActivity, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT a.id, a.lead_id, a.kind, a.body, a.created_at
FROM lead_activities a
JOIN leads l ON l.id = a.lead_id
WHERE l.hotel_id = ? AND a.lead_id = ?
ORDER BY a.created_at DESC, a.id DESC`, hotelID, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.LeadActivity
	for rows.Next() {
		var a domain.LeadActivity
		var kind string
		if err := rows.Scan(&a.ID, &a.LeadID, &kind, &a.Body, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.Kind = domain.ActivityKind(kind)
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanLead(s scanner) (domain.Lead, error) {
	var (
		l                                   domain.Lead
		contact, email, phone, owner, notes sql.NullString
		stage                               string
	)
	if err := s.Scan(&l.ID, &l.HotelID, &l.Company, &contact, &email, &phone, &stage, &l.ValueCents,
		&owner, &l.NextActionOn, &notes, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return domain.Lead{}, err
	}
	l.ContactName, l.Email, l.Phone = contact.String, email.String, phone.String
	l.Owner, l.Notes = owner.String, notes.String
	l.Stage = domain.LeadStage(stage)
	return l, nil
}
