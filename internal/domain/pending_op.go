package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// OpType tags a queued mutation awaiting replay against the store.
type OpType string

const (
	OpCreate OpType = "create"
	OpUpdate OpType = "update"
	OpDelete OpType = "delete"
)

func ParseOpType(s string) (OpType, error) {
	switch OpType(s) {
	case OpCreate, OpUpdate, OpDelete:
		return OpType(s), nil
	}
	return "", fmt.Errorf("unknown operation type %q", s)
}

// PendingOp is a mutation buffered while the store was unreachable (or
// speculatively before the remote write confirmed). It is deleted once a
// replay confirms success; on failure the retry counter grows and the next
// attempt is pushed out by the replay worker's backoff.
type PendingOp struct {
	ID          uuid.UUID `db:"id"`
	UserID      int64     `db:"user_id"`
	Op          OpType    `db:"op"`
	TaskID      int64     `db:"task_id"`
	Snapshot    TaskRow   `db:"snapshot"`
	RetryCount  int       `db:"retry_count"`
	NextRetryAt time.Time `db:"next_retry_at"`
	CreatedAt   time.Time `db:"created_at"`
}
