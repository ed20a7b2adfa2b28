package service

import (
	"errors"
	"fmt"
	"strings"

	"taskledger/internal/domain"
)

var (
	// ErrNotAuthenticated means no owner identity could be resolved from the
	// calling context.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNotFound means the target row is missing or owned by someone else.
	ErrNotFound = errors.New("not found")

	// ErrEmptyText rejects tasks whose text trims to nothing.
	ErrEmptyText = errors.New("task text is empty")
)

// PersistenceError wraps a failure of the underlying store, keeping the
// store's own message reachable via Unwrap.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure in %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// BatchFailure records one failed operation of a batch, attributed by its
// position in the submitted sequence and its operation type.
type BatchFailure struct {
	Index int
	Op    domain.OpType
	Err   error
}

// BatchError reports a partially failed batch. Operations that succeeded are
// not rolled back; the caller re-queues the failures it finds here.
type BatchError struct {
	Total    int
	Failures []BatchFailure
}

func (e *BatchError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "batch sync: %d of %d operations failed:", len(e.Failures), e.Total)
	for _, f := range e.Failures {
		fmt.Fprintf(&b, " [%d %s: %v]", f.Index, f.Op, f.Err)
	}
	return b.String()
}
