package relay

import (
	"context"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bountylab/reconciler/internal/config"
	"github.com/bountylab/reconciler/internal/domain"
	"github.com/bountylab/reconciler/internal/dto"
	"github.com/bountylab/reconciler/internal/metrics"
)

const backoffBase = time.Second * 2

var inflightEvents sync.Map

type OutboxRepo interface {
	ClaimBatch(ctx context.Context, limit, maxRetries int, staleClaimAfter time.Duration) ([]domain.OutboxEvent, error)
	MarkCompleted(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, reason string, nextAttemptAt time.Time) error
}

type Dispatcher interface {
	Process(ctx context.Context, event dto.PaymentEventDTO) error
}

type Service struct {
	outboxRepo      OutboxRepo
	dispatcher      Dispatcher
	limit           uint32
	workerPool      WorkerPoolI
	sweepInterval   time.Duration
	attemptTimeout  time.Duration
	maxRetries      int
	staleClaimAfter time.Duration
}

func New(cfg *config.Config, outboxRepo OutboxRepo, dispatcher Dispatcher) *Service {
	return &Service{
		outboxRepo:      outboxRepo,
		dispatcher:      dispatcher,
		limit:           1000,
		workerPool:      NewWorkerPool(10),
		sweepInterval:   cfg.RelayInterval,
		attemptTimeout:  cfg.RelayAttemptTimeout,
		maxRetries:      cfg.RelayMaxRetries,
		staleClaimAfter: cfg.RelayStaleClaimAfter,
	}
}

func (s *Service) Start(ctx context.Context) {
	zap.L().Info("Outbox relay started")
	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping relay")
			s.workerPool.Close()
			return
		case <-ticker.C:
			s.processBatch(ctx)
		}
	}
}

func (s *Service) processBatch(ctx context.Context) {
	events, err := s.outboxRepo.ClaimBatch(ctx, int(atomic.LoadUint32(&s.limit)), s.maxRetries, s.staleClaimAfter)
	if err != nil {
		zap.L().Error("Failed to claim outbox batch", zap.Error(err))
		return
	}

	var g errgroup.Group
	for _, event := range events {
		event := event

		if _, loaded := inflightEvents.LoadOrStore(event.ID, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			err := s.workerPool.AddTask(ctx, func() error {
				defer inflightEvents.Delete(event.ID)
				return s.handleEvent(ctx, event)
			})
			if err != nil {
				inflightEvents.Delete(event.ID)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("Error relaying outbox events", zap.Error(err))
	}
}

// handleEvent replays one outbox row through the same dispatch pipeline the
// webhook uses. The synthetic event id is derived from the row id, so the
// event ledger dedupes replays exactly like processor redeliveries.
func (s *Service) handleEvent(ctx context.Context, event domain.OutboxEvent) error {
	attemptCtx, cancel := context.WithTimeout(ctx, s.attemptTimeout)
	defer cancel()

	err := s.dispatcher.Process(attemptCtx, dto.PaymentEventDTO{
		ID:      "outbox:" + event.ID.String(),
		Type:    event.Type,
		Payload: event.Payload,
	})
	if err != nil {
		metrics.RelayAttempts.WithLabelValues("failed").Inc()
		nextAttempt := time.Now().Add(s.backoff(event.RetryCount))
		if event.RetryCount+1 >= s.maxRetries {
			metrics.RelayExhausted.Inc()
			zap.L().Error("Outbox event exhausted its retries",
				zap.String("id", event.ID.String()),
				zap.String("type", event.Type),
				zap.Error(err),
			)
		}
		if markErr := s.outboxRepo.MarkFailed(ctx, event.ID, err.Error(), nextAttempt); markErr != nil {
			return markErr
		}
		return err
	}

	metrics.RelayAttempts.WithLabelValues("completed").Inc()
	return s.outboxRepo.MarkCompleted(ctx, event.ID)
}

func (s *Service) backoff(retryCount int) time.Duration {
	return backoffBase * time.Duration(math.Pow(2, float64(retryCount)))
}
