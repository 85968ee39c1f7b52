package relay

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/bountylab/reconciler/internal/domain"
	"github.com/bountylab/reconciler/internal/dto"
)

type mocks struct {
	outboxRepo *MockOutboxRepo
	dispatcher *MockDispatcher
	workerPool *MockWorkerPoolI
}

func NewMock(t *testing.T) (*Service, *mocks) {
	ctrl := gomock.NewController(t)
	m := &mocks{
		outboxRepo: NewMockOutboxRepo(ctrl),
		dispatcher: NewMockDispatcher(ctrl),
		workerPool: NewMockWorkerPoolI(ctrl),
	}
	service := &Service{
		outboxRepo:      m.outboxRepo,
		dispatcher:      m.dispatcher,
		limit:           1000,
		workerPool:      m.workerPool,
		sweepInterval:   time.Second,
		attemptTimeout:  time.Second * 5,
		maxRetries:      5,
		staleClaimAfter: time.Minute * 5,
	}
	defer ctrl.Finish()
	return service, m
}

func outboxEvent(retryCount int) domain.OutboxEvent {
	return domain.OutboxEvent{
		ID:         uuid.New(),
		Type:       domain.EventBountyAccepted,
		Payload:    []byte(`{"bounty_id":"b1"}`),
		Status:     domain.OutboxStatusPending,
		RetryCount: retryCount,
	}
}

func TestHandleEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("Delivered event is marked completed", func(t *testing.T) {
		service, m := NewMock(t)
		event := outboxEvent(0)

		m.dispatcher.EXPECT().Process(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, dispatched dto.PaymentEventDTO) error {
				assert.Equal(t, "outbox:"+event.ID.String(), dispatched.ID)
				assert.Equal(t, event.Type, dispatched.Type)
				assert.JSONEq(t, string(event.Payload), string(dispatched.Payload))
				return nil
			})
		m.outboxRepo.EXPECT().MarkCompleted(gomock.Any(), event.ID).Return(nil)

		assert.NoError(t, service.handleEvent(ctx, event))
	})

	t.Run("Failed attempt schedules a backed-off retry", func(t *testing.T) {
		service, m := NewMock(t)
		event := outboxEvent(2)
		processErr := errors.New("database error")

		m.dispatcher.EXPECT().Process(gomock.Any(), gomock.Any()).Return(processErr)
		m.outboxRepo.EXPECT().MarkFailed(gomock.Any(), event.ID, processErr.Error(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, _ string, nextAttemptAt time.Time) error {
				assert.WithinDuration(t, time.Now().Add(time.Second*8), nextAttemptAt, time.Second)
				return nil
			})

		assert.ErrorIs(t, service.handleEvent(ctx, event), processErr)
	})

	t.Run("MarkFailed error is surfaced", func(t *testing.T) {
		service, m := NewMock(t)
		event := outboxEvent(0)
		markErr := errors.New("database error")

		m.dispatcher.EXPECT().Process(gomock.Any(), gomock.Any()).Return(errors.New("dispatch error"))
		m.outboxRepo.EXPECT().MarkFailed(gomock.Any(), event.ID, gomock.Any(), gomock.Any()).Return(markErr)

		assert.ErrorIs(t, service.handleEvent(ctx, event), markErr)
	})
}

func TestProcessBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("Claim failure skips the sweep", func(t *testing.T) {
		service, m := NewMock(t)
		m.outboxRepo.EXPECT().ClaimBatch(gomock.Any(), 1000, 5, time.Minute*5).Return(nil, errors.New("database error"))
		service.processBatch(ctx)
	})

	t.Run("Claimed events run through the worker pool", func(t *testing.T) {
		service, m := NewMock(t)
		events := []domain.OutboxEvent{outboxEvent(0), outboxEvent(1)}

		m.outboxRepo.EXPECT().ClaimBatch(gomock.Any(), 1000, 5, time.Minute*5).Return(events, nil)
		m.workerPool.EXPECT().AddTask(gomock.Any(), gomock.Any()).Times(2).
			DoAndReturn(func(_ context.Context, task Task) error {
				return task()
			})
		m.dispatcher.EXPECT().Process(gomock.Any(), gomock.Any()).Times(2).Return(nil)
		m.outboxRepo.EXPECT().MarkCompleted(gomock.Any(), events[0].ID).Return(nil)
		m.outboxRepo.EXPECT().MarkCompleted(gomock.Any(), events[1].ID).Return(nil)

		service.processBatch(ctx)

		for _, event := range events {
			_, inflight := inflightEvents.Load(event.ID)
			assert.False(t, inflight)
		}
	})

	t.Run("In-flight events are not claimed twice", func(t *testing.T) {
		service, m := NewMock(t)
		event := outboxEvent(0)
		inflightEvents.Store(event.ID, struct{}{})
		defer inflightEvents.Delete(event.ID)

		m.outboxRepo.EXPECT().ClaimBatch(gomock.Any(), 1000, 5, time.Minute*5).Return([]domain.OutboxEvent{event}, nil)

		service.processBatch(ctx)
	})
}

func TestRunStopsWorkerPoolOnCancel(t *testing.T) {
	service, m := NewMock(t)
	m.workerPool.EXPECT().Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	service.run(ctx)
}

func TestBackoff(t *testing.T) {
	service, _ := NewMock(t)

	assert.Equal(t, time.Second*2, service.backoff(0))
	assert.Equal(t, time.Second*4, service.backoff(1))
	assert.Equal(t, time.Second*16, service.backoff(3))
}
