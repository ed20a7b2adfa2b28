package repository

import (
	"context"
	"encoding/json"
	"time"

	"taskledger/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PendingOpRepository struct {
	db *pgxpool.Pool
}

func NewPendingOpRepository(db *pgxpool.Pool) *PendingOpRepository {
	return &PendingOpRepository{db: db}
}

// Enqueue buffers an operation for later replay. The snapshot is stored as
// JSONB so the replay worker can rebuild the exact mutation.
func (r *PendingOpRepository) Enqueue(ctx context.Context, op *domain.PendingOp) error {
	snapshot, err := json.Marshal(op.Snapshot)
	if err != nil {
		return err
	}

	if op.ID == uuid.Nil {
		op.ID = uuid.New()
	}
	if op.NextRetryAt.IsZero() {
		op.NextRetryAt = time.Now()
	}

	return r.db.QueryRow(ctx, `
		INSERT INTO pending_operations (id, user_id, op, task_id, snapshot, retry_count, next_retry_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`, op.ID, op.UserID, op.Op, op.TaskID, snapshot, op.RetryCount, op.NextRetryAt).Scan(&op.CreatedAt)
}

// Due returns operations whose retry time has come, oldest first.
func (r *PendingOpRepository) Due(ctx context.Context, now time.Time, limit int) ([]*domain.PendingOp, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, op, task_id, snapshot, retry_count, next_retry_at, created_at
		FROM pending_operations
		WHERE next_retry_at <= $1
		ORDER BY created_at ASC
		LIMIT $2
	`, now, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.PendingOp
	for rows.Next() {
		var (
			op       domain.PendingOp
			snapshot []byte
		)
		if err := rows.Scan(&op.ID, &op.UserID, &op.Op, &op.TaskID, &snapshot, &op.RetryCount, &op.NextRetryAt, &op.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(snapshot, &op.Snapshot); err != nil {
			return nil, err
		}
		res = append(res, &op)
	}
	return res, rows.Err()
}

// Delete discards a confirmed (or poisoned) operation.
func (r *PendingOpRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM pending_operations WHERE id = $1`, id)
	return err
}

// Reschedule bumps the retry counter and pushes the next attempt out.
func (r *PendingOpRepository) Reschedule(ctx context.Context, id uuid.UUID, nextRetryAt time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE pending_operations
		SET retry_count = retry_count + 1, next_retry_at = $2
		WHERE id = $1
	`, id, nextRetryAt)
	return err
}
