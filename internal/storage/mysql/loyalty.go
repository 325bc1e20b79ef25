package mysql

import (
	"context"
	"database/sql"
	"strings"

	"hotel_ops/internal/domain"
)

const selectCardSQL = `
SELECT id, hotel_id, number, holder_name, email, phone, points, created_at, updated_at
FROM loyalty_cards
`

func (r *Repo) CreateCard(ctx context.Context, c *domain.LoyaltyCard) error {
	id, err := r.insert(ctx,
		`INSERT INTO loyalty_cards (hotel_id, number, holder_name, email, phone, points) VALUES (?, ?, ?, ?, ?, ?)`,
		c.HotelID, c.Number, c.HolderName, nullStr(c.Email), nullStr(c.Phone), c.Points,
	)
	if err != nil {
		return err
	}
	created, err := r.GetCard(ctx, c.HotelID, id)
	if err != nil {
		return err
	}
	*c = created
	return nil
}

func (r *Repo) GetCard(ctx context.Context, hotelID, id int64) (domain.LoyaltyCard, error) {
	c, err := scanCard(r.db.QueryRowContext(ctx, selectCardSQL+`WHERE hotel_id = ? AND id = ?`, hotelID, id))
	return c, mapErr(err)
}

func (r *Repo) ListCards(ctx context.Context, hotelID int64, q string, p domain.Page) ([]domain.LoyaltyCard, error) {
	query := selectCardSQL + `WHERE hotel_id = ?`
	args := []any{hotelID}
	if q = strings.TrimSpace(q); q != "" {
		like := "%" + escapeLike(q) + "%"
		query += ` AND (number LIKE ? OR holder_name LIKE ? OR email LIKE ?)`
		args = append(args, like, like, like)
	}
	query += ` ORDER BY holder_name, id LIMIT ? OFFSET ?`
	args = pageArgs(args, p)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.LoyaltyCard
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repo) UpdateCard(ctx context.Context, c domain.LoyaltyCard) error {
	return r.exec(ctx,
		`UPDATE loyalty_cards SET holder_name = ?, email = ?, phone = ? WHERE hotel_id = ? AND id = ?`,
		c.HolderName, nullStr(c.Email), nullStr(c.Phone), c.HotelID, c.ID,
	)
}

func (r *Repo) DeleteCard(ctx context.Context, hotelID, id int64) error {
	return r.execOne(ctx, `DELETE FROM loyalty_cards WHERE hotel_id = ? AND id = ?`, hotelID, id)
}

func (r *Repo) AddPoints(ctx context.Context, hotelID, cardID int64, delta int, reason string) (domain.LoyaltyCard, domain.LoyaltyTransaction, error) {
	var txn domain.LoyaltyTransaction
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		var points int
		err := tx.QueryRowContext(ctx,
			`SELECT points FROM loyalty_cards WHERE hotel_id = ? AND id = ? FOR UPDATE`, hotelID, cardID).
			Scan(&points)
		if err != nil {
			return err
		}
		balance := points + delta
		if balance < 0 {
			return domain.Invalid("delta", "balance cannot go below zero")
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE loyalty_cards SET points = ? WHERE id = ?`, balance, cardID); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx,
			`INSERT INTO loyalty_transactions (card_id, delta, reason, balance) VALUES (?, ?, ?, ?)`,
			cardID, delta, reason, balance)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		return tx.QueryRowContext(ctx,
			`SELECT id, card_id, delta, reason, balance, created_at FROM loyalty_transactions WHERE id = ?`, id).
			Scan(&txn.ID, &txn.CardID, &txn.Delta, &txn.Reason, &txn.Balance, &txn.CreatedAt)
	})
	if err != nil {
		return domain.LoyaltyCard{}, domain.LoyaltyTransaction{}, err
	}
	card, err := r.GetCard(ctx, hotelID, cardID)
	return card, txn, err
}

func (r *Repo) ListTransactions(ctx context.Context, hotelID, cardID int64) ([]domain.LoyaltyTransaction, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT t.id, t.card_id, t.delta, t.reason, t.balance, t.created_at
FROM loyalty_transactions t
JOIN loyalty_cards c ON c.id = t.card_id
WHERE c.hotel_id = ? AND t.card_id = ?
ORDER BY t.created_at DESC, t.id DESC`, hotelID, cardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.LoyaltyTransaction
	for rows.Next() {
		var t domain.LoyaltyTransaction
		if err := rows.Scan(&t.ID, &t.CardID, &t.Delta, &t.Reason, &t.Balance, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func scanCard(s scanner) (domain.LoyaltyCard, error) {
	var c domain.LoyaltyCard
	var email, phone sql.NullString
	if err := s.Scan(&c.ID, &c.HotelID, &c.Number, &c.HolderName, &email, &phone,
		&c.Points, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return domain.LoyaltyCard{}, err
	}
	c.Email, c.Phone = email.String, phone.String
	c.Tier = domain.TierFor(c.Points)
	return c, nil
}
