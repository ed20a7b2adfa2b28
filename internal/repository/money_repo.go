package repository

import (
	"context"

	"taskledger/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type MoneyRepository struct {
	db *pgxpool.Pool
}

func NewMoneyRepository(db *pgxpool.Pool) *MoneyRepository {
	return &MoneyRepository{db: db}
}

func (r *MoneyRepository) Insert(ctx context.Context, e *domain.MoneyEntry) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO money_entries (user_id, kind, counterparty, amount_cents, note)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, e.UserID, e.Kind, e.Counterparty, e.AmountCents, e.Note).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

func (r *MoneyRepository) ListByOwner(ctx context.Context, userID int64) ([]*domain.MoneyEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, kind, counterparty, amount_cents, note, settled, created_at, updated_at
		FROM money_entries
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.MoneyEntry
	for rows.Next() {
		var e domain.MoneyEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Kind, &e.Counterparty, &e.AmountCents, &e.Note, &e.Settled, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		res = append(res, &e)
	}
	return res, rows.Err()
}

// SetSettled flips the settled flag. ErrNotFound if the entry does not exist
// for this owner.
func (r *MoneyRepository) SetSettled(ctx context.Context, id, userID int64, settled bool) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE money_entries SET settled = $3, updated_at = now()
		WHERE id = $1 AND user_id = $2
	`, id, userID, settled)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MoneyRepository) Delete(ctx context.Context, id, userID int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM money_entries WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Summary totals the owner's unsettled entries per kind.
func (r *MoneyRepository) Summary(ctx context.Context, userID int64) (*domain.MoneySummary, error) {
	var s domain.MoneySummary
	err := r.db.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(amount_cents) FILTER (WHERE kind = 'debt'), 0),
			COALESCE(SUM(amount_cents) FILTER (WHERE kind = 'credit'), 0)
		FROM money_entries
		WHERE user_id = $1 AND NOT settled
	`, userID).Scan(&s.DebtCents, &s.CreditCents)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
