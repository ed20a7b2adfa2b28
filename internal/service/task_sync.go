package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"taskledger/internal/domain"
	"taskledger/internal/feed"
	"taskledger/internal/logger"
	"taskledger/internal/repository"
)

// TaskStore is the persistence contract the sync layer drives. Every method
// filters by owner id so one user can never touch another's rows.
type TaskStore interface {
	Insert(ctx context.Context, t *domain.Task) error
	ListByOwner(ctx context.Context, userID int64) ([]*domain.Task, error)
	GetByID(ctx context.Context, id, userID int64) (*domain.Task, error)
	Update(ctx context.Context, id, userID int64, patch domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, id, userID int64) error
	Ping(ctx context.Context) error
}

// TaskDraft is what a caller supplies when creating a task.
type TaskDraft struct {
	Text      string
	Completed bool
	Priority  domain.Priority
}

// SyncService bridges callers (HTTP handlers, the replay worker) and the task
// store, and publishes confirmed mutations to the change feed.
type SyncService struct {
	store TaskStore
	feed  *feed.Broker
}

func NewSyncService(store TaskStore, broker *feed.Broker) *SyncService {
	return &SyncService{store: store, feed: broker}
}

// Create inserts a task for the authenticated owner. The store assigns the id
// and creation time; the returned record is rebuilt from the persisted row.
func (s *SyncService) Create(ctx context.Context, draft TaskDraft) (*domain.Task, error) {
	owner, ok := OwnerFromContext(ctx)
	if !ok {
		return nil, ErrNotAuthenticated
	}

	text := strings.TrimSpace(draft.Text)
	if text == "" {
		return nil, ErrEmptyText
	}

	prio := draft.Priority
	if prio == "" {
		prio = domain.PriorityMedium
	}
	if _, err := domain.ParsePriority(string(prio)); err != nil {
		return nil, err
	}

	t := &domain.Task{
		UserID:    owner,
		Text:      text,
		Completed: draft.Completed,
		Priority:  prio,
		UpdatedAt: time.Now(),
	}

	if err := s.store.Insert(ctx, t); err != nil {
		return nil, &PersistenceError{Op: "insert", Err: err}
	}

	s.feed.Publish(owner, feed.Event{Type: feed.EventInsert, Task: t.ToRow()})
	return t, nil
}

// List returns the authenticated owner's tasks, most recent first.
func (s *SyncService) List(ctx context.Context) ([]*domain.Task, error) {
	owner, ok := OwnerFromContext(ctx)
	if !ok {
		return nil, ErrNotAuthenticated
	}
	return s.ListOwner(ctx, owner)
}

// ListOwner is List for an explicit owner id.
func (s *SyncService) ListOwner(ctx context.Context, owner int64) ([]*domain.Task, error) {
	tasks, err := s.store.ListByOwner(ctx, owner)
	if err != nil {
		return nil, &PersistenceError{Op: "list", Err: err}
	}
	return tasks, nil
}

// Get fetches one of the owner's tasks. A missing row is (nil, nil), not an
// error.
func (s *SyncService) Get(ctx context.Context, id int64) (*domain.Task, error) {
	owner, ok := OwnerFromContext(ctx)
	if !ok {
		return nil, ErrNotAuthenticated
	}

	t, err := s.store.GetByID(ctx, id, owner)
	if err != nil {
		return nil, &PersistenceError{Op: "get", Err: err}
	}
	return t, nil
}

// Update applies the patch fields that are set and refreshes updated_at. A
// row that does not exist for this owner is ErrNotFound, never a silent
// no-op.
func (s *SyncService) Update(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	owner, ok := OwnerFromContext(ctx)
	if !ok {
		return nil, ErrNotAuthenticated
	}

	if patch.Priority != nil {
		if _, err := domain.ParsePriority(string(*patch.Priority)); err != nil {
			return nil, err
		}
	}

	t, err := s.store.Update(ctx, id, owner, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, &PersistenceError{Op: "update", Err: err}
	}

	s.feed.Publish(owner, feed.Event{Type: feed.EventUpdate, Task: t.ToRow()})
	return t, nil
}

// Delete removes the owner's task. Deleting an id that is already gone
// succeeds; the operation is idempotent.
func (s *SyncService) Delete(ctx context.Context, id int64) error {
	owner, ok := OwnerFromContext(ctx)
	if !ok {
		return ErrNotAuthenticated
	}

	if err := s.store.Delete(ctx, id, owner); err != nil {
		return &PersistenceError{Op: "delete", Err: err}
	}

	s.feed.Publish(owner, feed.Event{Type: feed.EventDelete, Task: domain.TaskRow{ID: id, UserID: owner}})
	return nil
}

// BatchSync replays queued operations against the store. All operations are
// dispatched concurrently with no ordering between them, so two operations on
// the same task id can land in either order. Successes are not rolled back
// when siblings fail: the returned BatchError attributes every failure by
// batch index and operation type so the caller can re-queue exactly those.
func (s *SyncService) BatchSync(ctx context.Context, ops []domain.PendingOp) error {
	if _, ok := OwnerFromContext(ctx); !ok {
		return ErrNotAuthenticated
	}
	if len(ops) == 0 {
		return nil
	}

	results := make([]error, len(ops))
	var wg sync.WaitGroup
	for i := range ops {
		wg.Add(1)
		go func(i int, op domain.PendingOp) {
			defer wg.Done()
			results[i] = s.apply(ctx, op)
		}(i, ops[i])
	}
	wg.Wait()

	batchErr := &BatchError{Total: len(ops)}
	for i, err := range results {
		if err != nil {
			batchErr.Failures = append(batchErr.Failures, BatchFailure{Index: i, Op: ops[i].Op, Err: err})
		}
	}
	if len(batchErr.Failures) > 0 {
		logger.Warn("batch sync partially failed", "total", batchErr.Total, "failed", len(batchErr.Failures))
		return batchErr
	}
	return nil
}

func (s *SyncService) apply(ctx context.Context, op domain.PendingOp) error {
	switch op.Op {
	case domain.OpCreate:
		prio, err := domain.ParsePriority(op.Snapshot.Priority)
		if err != nil {
			return err
		}
		_, err = s.Create(ctx, TaskDraft{
			Text:      op.Snapshot.Text,
			Completed: op.Snapshot.Completed,
			Priority:  prio,
		})
		return err
	case domain.OpUpdate:
		prio, err := domain.ParsePriority(op.Snapshot.Priority)
		if err != nil {
			return err
		}
		patch := domain.TaskPatch{
			Text:      &op.Snapshot.Text,
			Completed: &op.Snapshot.Completed,
			Priority:  &prio,
		}
		_, err = s.Update(ctx, op.TaskID, patch)
		return err
	case domain.OpDelete:
		return s.Delete(ctx, op.TaskID)
	default:
		_, err := domain.ParseOpType(string(op.Op))
		return err
	}
}

// IsAvailable probes whether syncing can be attempted: an owner identity must
// resolve and the store must answer a ping. It never returns an error;
// anything that goes wrong is just false.
func (s *SyncService) IsAvailable(ctx context.Context) bool {
	if _, ok := OwnerFromContext(ctx); !ok {
		return false
	}
	if err := s.store.Ping(ctx); err != nil {
		return false
	}
	return true
}
