package mysql

import (
	"context"
	"database/sql"
	"strings"

	"hotel_ops/internal/domain"
)

const selectDocumentSQL = `
SELECT id, hotel_id, slug, title, category, body, version, updated_by, created_at, updated_at
FROM documents
`

func (r *Repo) CreateDocument(ctx context.Context, d *domain.Document) error {
	_, err := r.insert(ctx, `
INSERT INTO documents (hotel_id, slug, title, category, body, version, updated_by)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		d.HotelID, d.Slug, d.Title, nullStr(d.Category), d.Body, d.Version, nullStr(d.UpdatedBy),
	)
	if err != nil {
		return err
	}
	created, err := r.GetDocument(ctx, d.HotelID, d.Slug)
	if err != nil {
		return err
	}
	*d = created
	return nil
}

func (r *Repo) GetDocument(ctx context.Context, hotelID int64, slug string) (domain.Document, error) {
	d, err := scanDocument(r.db.QueryRowContext(ctx, selectDocumentSQL+`WHERE hotel_id = ? AND slug = ?`, hotelID, slug))
	return d, mapErr(err)
}

func (r *Repo) ListDocuments(ctx context.Context, f domain.DocumentFilter) ([]domain.Document, error) {
	where := []string{"hotel_id = ?"}
	args := []any{f.HotelID}
	if f.Category != "" {
		where = append(where, "category = ?")
		args = append(args, f.Category)
	}
	if q := strings.TrimSpace(f.Q); q != "" {
		like := "%" + escapeLike(q) + "%"
		where = append(where, "(title LIKE ? OR body LIKE ?)")
		args = append(args, like, like)
	}
	args = pageArgs(args, f.Page)

	rows, err := r.db.QueryContext(ctx,
		selectDocumentSQL+"WHERE "+strings.Join(where, " AND ")+" ORDER BY category, title, id LIMIT ? OFFSET ?",
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *Repo) SlugsWithPrefix(ctx context.Context, hotelID int64, base string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT slug FROM documents WHERE hotel_id = ? AND (slug = ? OR slug LIKE ?)`,
		hotelID, base, escapeLike(base)+"-%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repo) UpdateDocument(ctx context.Context, d domain.Document, prev domain.Revision) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO document_revisions (document_id, version, title, body, updated_by)
VALUES (?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE title = VALUES(title), body = VALUES(body), updated_by = VALUES(updated_by)`,
			prev.DocumentID, prev.Version, prev.Title, prev.Body, nullStr(prev.UpdatedBy)); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `
UPDATE documents SET title = ?, category = ?, body = ?, version = ?, updated_by = ?
WHERE hotel_id = ? AND id = ?`,
			d.Title, nullStr(d.Category), d.Body, d.Version, nullStr(d.UpdatedBy), d.HotelID, d.ID)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (r *Repo) ListRevisions(ctx context.Context, hotelID, documentID int64) ([]domain.Revision, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT v.document_id, v.version, v.title, v.body, v.updated_by, v.created_at
FROM document_revisions v
JOIN documents d ON d.id = v.document_id
WHERE d.hotel_id = ? AND v.document_id = ?
ORDER BY v.version DESC`, hotelID, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Revision
	for rows.Next() {
		var v domain.Revision
		var by sql.NullString
		if err := rows.Scan(&v.DocumentID, &v.Version, &v.Title, &v.Body, &by, &v.CreatedAt); err != nil {
			return nil, err
		}
		v.UpdatedBy = by.String
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *Repo) DeleteDocument(ctx context.Context, hotelID, id int64) error {
	return r.execOne(ctx, `DELETE FROM documents WHERE hotel_id = ? AND id = ?`, hotelID, id)
}

func scanDocument(s scanner) (domain.Document, error) {
	var d domain.Document
	var category, by sql.NullString
	if err := s.Scan(&d.ID, &d.HotelID, &d.Slug, &d.Title, &category, &d.Body, &d.Version, &by,
		&d.CreatedAt, &d.UpdatedAt); err != nil {
		return domain.Document{}, err
	}
	d.Category, d.UpdatedBy = category.String, by.String
	return d, nil
}
