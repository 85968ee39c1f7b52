package audit

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"

	"github.com/bountylab/reconciler/internal/domain"
	"github.com/bountylab/reconciler/internal/metrics"
)

type LedgerRepo interface {
	FindDrift(ctx context.Context) ([]domain.BalanceDrift, error)
}

// Auditor periodically re-derives every balance from its ledger entries and
// alarms on drift. It never repairs anything: the ledger is append-only and a
// diverged balance means a bug worth a human.
type Auditor struct {
	ledgerRepo LedgerRepo
	interval   time.Duration
	scheduler  gocron.Scheduler
}

func New(ledgerRepo LedgerRepo, interval time.Duration) *Auditor {
	return &Auditor{
		ledgerRepo: ledgerRepo,
		interval:   interval,
	}
}

func (a *Auditor) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	a.scheduler = scheduler

	_, err = scheduler.NewJob(
		gocron.DurationJob(a.interval),
		gocron.NewTask(func() {
			a.Check(ctx)
		}),
	)
	if err != nil {
		return err
	}

	scheduler.Start()
	zap.L().Info("Reconciliation auditor started", zap.Duration("interval", a.interval))
	return nil
}

func (a *Auditor) Stop() error {
	if a.scheduler == nil {
		return nil
	}
	return a.scheduler.Shutdown()
}

func (a *Auditor) Check(ctx context.Context) {
	drifts, err := a.ledgerRepo.FindDrift(ctx)
	if err != nil {
		zap.L().Error("Balance audit sweep failed", zap.Error(err))
		return
	}

	metrics.BalanceDrift.Set(float64(len(drifts)))
	for _, drift := range drifts {
		zap.L().Error("Balance diverged from its ledger",
			zap.Int("userID", drift.UserID),
			zap.Int64("balance", drift.CurrentBalance),
			zap.Int64("ledgerSum", drift.LedgerSum),
		)
	}
}
