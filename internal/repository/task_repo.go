package repository

import (
	"context"

	"taskledger/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

// Insert stores a new task. The store assigns id and created_at; both are
// written back into t.
func (r *TaskRepository) Insert(ctx context.Context, t *domain.Task) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO todos (user_id, text, completed, priority, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, t.UserID, t.Text, t.Completed, t.Priority, t.UpdatedAt).Scan(&t.ID, &t.CreatedAt)
}

// ListByOwner returns the owner's tasks, most recent first.
func (r *TaskRepository) ListByOwner(ctx context.Context, userID int64) ([]*domain.Task, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, text, completed, priority, created_at, updated_at
		FROM todos
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Task
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.Text, &t.Completed, &t.Priority, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		res = append(res, &t)
	}
	return res, rows.Err()
}

// GetByID fetches one task by id and owner. A missing row is (nil, nil), not
// an error.
func (r *TaskRepository) GetByID(ctx context.Context, id, userID int64) (*domain.Task, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, user_id, text, completed, priority, created_at, updated_at
		FROM todos
		WHERE id = $1 AND user_id = $2
	`, id, userID)

	var t domain.Task
	if err := row.Scan(&t.ID, &t.UserID, &t.Text, &t.Completed, &t.Priority, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

// Update applies the non-nil patch fields and refreshes updated_at. Zero rows
// matched means the task is gone or belongs to someone else: ErrNotFound.
func (r *TaskRepository) Update(ctx context.Context, id, userID int64, patch domain.TaskPatch) (*domain.Task, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE todos
		SET text      = COALESCE($3, text),
		    completed = COALESCE($4, completed),
		    priority  = COALESCE($5, priority),
		    updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, text, completed, priority, created_at, updated_at
	`, id, userID, patch.Text, patch.Completed, (*string)(patch.Priority))

	var t domain.Task
	if err := row.Scan(&t.ID, &t.UserID, &t.Text, &t.Completed, &t.Priority, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Delete removes the task filtered by id and owner. Deleting a row that is
// already gone is not an error.
func (r *TaskRepository) Delete(ctx context.Context, id, userID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM todos WHERE id = $1 AND user_id = $2`, id, userID)
	return err
}

// Ping reports whether the store is reachable.
func (r *TaskRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
