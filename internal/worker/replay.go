// Package worker replays queued offline mutations against the task store on
// a fixed schedule.
package worker

import (
	"context"
	"errors"
	"time"

	"taskledger/internal/domain"
	"taskledger/internal/logger"
	"taskledger/internal/service"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
)

var (
	opsReplayed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "replay_operations_total",
		Help: "Queued operations confirmed and discarded by the replay worker",
	})
	opsRescheduled = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "replay_operations_rescheduled_total",
		Help: "Queued operations that failed replay and were pushed out for retry",
	})
)

func init() {
	prometheus.MustRegister(opsReplayed)
	prometheus.MustRegister(opsRescheduled)
}

const (
	retryBase = 30 * time.Second
	retryCap  = time.Hour
)

// Queue is the slice of the pending-operation repository the worker needs.
type Queue interface {
	Due(ctx context.Context, now time.Time, limit int) ([]*domain.PendingOp, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Reschedule(ctx context.Context, id uuid.UUID, nextRetryAt time.Time) error
}

// Syncer is the replay surface of the sync service.
type Syncer interface {
	BatchSync(ctx context.Context, ops []domain.PendingOp) error
}

type ReplayWorker struct {
	queue Queue
	sync  Syncer
	every time.Duration
	batch int
	cron  *cron.Cron
}

func NewReplayWorker(queue Queue, sync Syncer, every time.Duration, batch int) *ReplayWorker {
	return &ReplayWorker{queue: queue, sync: sync, every: every, batch: batch}
}

// Start schedules the replay loop. Stop with Stop.
func (w *ReplayWorker) Start() error {
	w.cron = cron.New()
	_, err := w.cron.AddFunc("@every "+w.every.String(), func() {
		if err := w.RunOnce(context.Background()); err != nil {
			logger.Error("replay run failed", "error", err)
		}
	})
	if err != nil {
		return err
	}
	w.cron.Start()
	logger.Info("replay worker started", "every", w.every.String())
	return nil
}

func (w *ReplayWorker) Stop() {
	if w.cron != nil {
		<-w.cron.Stop().Done()
	}
}

// RunOnce replays all due operations, grouped per owner so each batch runs
// under that owner's identity. Confirmed operations are discarded; failed
// ones get their retry pushed out with doubling backoff.
func (w *ReplayWorker) RunOnce(ctx context.Context) error {
	due, err := w.queue.Due(ctx, time.Now(), w.batch)
	if err != nil {
		return err
	}
	if len(due) == 0 {
		return nil
	}

	byOwner := make(map[int64][]*domain.PendingOp)
	var owners []int64
	for _, op := range due {
		if byOwner[op.UserID] == nil {
			owners = append(owners, op.UserID)
		}
		byOwner[op.UserID] = append(byOwner[op.UserID], op)
	}

	for _, owner := range owners {
		w.replayOwner(service.WithOwner(ctx, owner), byOwner[owner])
	}
	return nil
}

func (w *ReplayWorker) replayOwner(ctx context.Context, queued []*domain.PendingOp) {
	ops := make([]domain.PendingOp, len(queued))
	for i, op := range queued {
		ops[i] = *op
	}

	err := w.sync.BatchSync(ctx, ops)

	failed := make(map[int]bool)
	if err != nil {
		var be *service.BatchError
		if errors.As(err, &be) {
			for _, f := range be.Failures {
				failed[f.Index] = true
			}
		} else {
			// whole batch unusable, retry everything
			for i := range queued {
				failed[i] = true
			}
		}
	}

	for i, op := range queued {
		if failed[i] {
			next := time.Now().Add(Backoff(op.RetryCount))
			if rerr := w.queue.Reschedule(ctx, op.ID, next); rerr != nil {
				logger.Error("reschedule failed", "op", op.ID, "error", rerr)
			}
			opsRescheduled.Inc()
			continue
		}
		if derr := w.queue.Delete(ctx, op.ID); derr != nil {
			logger.Error("dequeue failed", "op", op.ID, "error", derr)
			continue
		}
		opsReplayed.Inc()
	}
}

// Backoff doubles per failed attempt: 30s, 1m, 2m, ... capped at an hour.
func Backoff(retryCount int) time.Duration {
	d := retryBase
	for i := 0; i < retryCount; i++ {
		d *= 2
		if d >= retryCap {
			return retryCap
		}
	}
	return d
}
