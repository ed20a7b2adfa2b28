package domain

import (
	"fmt"
	"time"
)

// Priority of a task. Stored as text in the todos table.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority validates a priority value coming from the wire or the store.
// Unknown values are rejected rather than defaulted to medium.
func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(s), nil
	}
	return "", fmt.Errorf("unknown priority %q", s)
}

type Task struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Text      string    `db:"text"`
	Completed bool      `db:"completed"`
	Priority  Priority  `db:"priority"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// TaskPatch carries a partial update. Nil fields are left untouched;
// updated_at is always refreshed by the store.
type TaskPatch struct {
	Text      *string   `json:"text,omitempty"`
	Completed *bool     `json:"completed,omitempty"`
	Priority  *Priority `json:"priority,omitempty"`
}

// IsEmpty reports whether the patch would change nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Text == nil && p.Completed == nil && p.Priority == nil
}

// TaskRow is the wire form of a task: snake_case keys, RFC 3339 timestamp
// strings. updated_at may be absent on rows written before the column existed.
type TaskRow struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	Priority  string `json:"priority"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// ToRow converts a task to its wire form.
func (t *Task) ToRow() TaskRow {
	row := TaskRow{
		ID:        t.ID,
		UserID:    t.UserID,
		Text:      t.Text,
		Completed: t.Completed,
		Priority:  string(t.Priority),
		CreatedAt: t.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	if !t.UpdatedAt.IsZero() {
		row.UpdatedAt = t.UpdatedAt.UTC().Format(time.RFC3339Nano)
	}
	return row
}

// TaskFromRow converts a wire row back to a task. The mapping is total: an
// invalid priority or timestamp is an error, not a silent default.
func TaskFromRow(row TaskRow) (*Task, error) {
	prio, err := ParsePriority(row.Priority)
	if err != nil {
		return nil, err
	}

	createdAt, err := time.Parse(time.RFC3339Nano, row.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}

	t := &Task{
		ID:        row.ID,
		UserID:    row.UserID,
		Text:      row.Text,
		Completed: row.Completed,
		Priority:  prio,
		CreatedAt: createdAt,
	}

	if row.UpdatedAt != "" {
		updatedAt, err := time.Parse(time.RFC3339Nano, row.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("parse updated_at: %w", err)
		}
		t.UpdatedAt = updatedAt
	}

	return t, nil
}
