package worker

import (
	"context"
	"testing"
	"time"

	"taskledger/internal/domain"
	"taskledger/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockQueue struct {
	mock.Mock
}

func (m *mockQueue) Due(ctx context.Context, now time.Time, limit int) ([]*domain.PendingOp, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PendingOp), args.Error(1)
}

func (m *mockQueue) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockQueue) Reschedule(ctx context.Context, id uuid.UUID, nextRetryAt time.Time) error {
	args := m.Called(ctx, id, nextRetryAt)
	return args.Error(0)
}

type mockSyncer struct {
	mock.Mock
}

func (m *mockSyncer) BatchSync(ctx context.Context, ops []domain.PendingOp) error {
	args := m.Called(ctx, ops)
	return args.Error(0)
}

func TestRunOnceConfirmedOpsAreDiscarded(t *testing.T) {
	opA := &domain.PendingOp{ID: uuid.New(), UserID: 1, Op: domain.OpDelete, TaskID: 5}
	opB := &domain.PendingOp{ID: uuid.New(), UserID: 1, Op: domain.OpDelete, TaskID: 6}

	queue := new(mockQueue)
	queue.On("Due", mock.Anything, mock.Anything, 100).Return([]*domain.PendingOp{opA, opB}, nil)
	queue.On("Delete", mock.Anything, opA.ID).Return(nil)
	queue.On("Delete", mock.Anything, opB.ID).Return(nil)

	syncer := new(mockSyncer)
	syncer.On("BatchSync", mock.Anything, mock.Anything).Return(nil)

	w := NewReplayWorker(queue, syncer, time.Minute, 100)
	require.NoError(t, w.RunOnce(context.Background()))

	queue.AssertExpectations(t)
	syncer.AssertExpectations(t)
}

func TestRunOncePartialFailureReschedulesOnlyFailures(t *testing.T) {
	opOK := &domain.PendingOp{ID: uuid.New(), UserID: 1, Op: domain.OpDelete, TaskID: 5}
	opBad := &domain.PendingOp{ID: uuid.New(), UserID: 1, Op: domain.OpUpdate, TaskID: 6, RetryCount: 2}

	queue := new(mockQueue)
	queue.On("Due", mock.Anything, mock.Anything, 100).Return([]*domain.PendingOp{opOK, opBad}, nil)
	queue.On("Delete", mock.Anything, opOK.ID).Return(nil)
	queue.On("Reschedule", mock.Anything, opBad.ID, mock.AnythingOfType("time.Time")).Return(nil)

	syncer := new(mockSyncer)
	syncer.On("BatchSync", mock.Anything, mock.Anything).Return(&service.BatchError{
		Total:    2,
		Failures: []service.BatchFailure{{Index: 1, Op: domain.OpUpdate, Err: assert.AnError}},
	})

	w := NewReplayWorker(queue, syncer, time.Minute, 100)
	require.NoError(t, w.RunOnce(context.Background()))

	queue.AssertExpectations(t)
	queue.AssertNotCalled(t, "Delete", mock.Anything, opBad.ID)
}

func TestRunOnceGroupsByOwner(t *testing.T) {
	opA := &domain.PendingOp{ID: uuid.New(), UserID: 1, Op: domain.OpDelete, TaskID: 5}
	opB := &domain.PendingOp{ID: uuid.New(), UserID: 2, Op: domain.OpDelete, TaskID: 6}

	queue := new(mockQueue)
	queue.On("Due", mock.Anything, mock.Anything, 100).Return([]*domain.PendingOp{opA, opB}, nil)
	queue.On("Delete", mock.Anything, mock.Anything).Return(nil)

	var owners []int64
	syncer := new(mockSyncer)
	syncer.On("BatchSync", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			owner, ok := service.OwnerFromContext(args.Get(0).(context.Context))
			require.True(t, ok)
			owners = append(owners, owner)
		}).
		Return(nil)

	w := NewReplayWorker(queue, syncer, time.Minute, 100)
	require.NoError(t, w.RunOnce(context.Background()))

	assert.Equal(t, []int64{1, 2}, owners)
	syncer.AssertNumberOfCalls(t, "BatchSync", 2)
}

func TestBackoffDoublesAndCaps(t *testing.T) {
	assert.Equal(t, 30*time.Second, Backoff(0))
	assert.Equal(t, time.Minute, Backoff(1))
	assert.Equal(t, 2*time.Minute, Backoff(2))
	assert.Equal(t, time.Hour, Backoff(10))
	assert.Equal(t, time.Hour, Backoff(100))
}
