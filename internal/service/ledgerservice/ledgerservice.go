package ledgerservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"

	"github.com/bountylab/reconciler/internal/domain"
	"github.com/bountylab/reconciler/internal/metrics"
	"github.com/bountylab/reconciler/internal/pg"
)

type LedgerRepo interface {
	GetUserBalance(ctx context.Context, userID int) (*domain.Balance, error)
	CreateUserBalance(ctx context.Context, userID int) (*domain.Balance, error)
	ApplyDelta(ctx context.Context, userID int, delta int64) (int64, error)
	ApplyDeltaLocked(ctx context.Context, userID int, delta int64) (int64, error)
	ApplyEscrowDelta(ctx context.Context, userID int, delta int64) error
	ApplyWithdrawnDelta(ctx context.Context, userID int, delta int64) error
	CreateEntry(ctx context.Context, entry *domain.LedgerEntry) (*domain.LedgerEntry, error)
	CompleteEntryByRef(ctx context.Context, ref string) (*domain.LedgerEntry, error)
	FailEntryByRef(ctx context.Context, ref string) (*domain.LedgerEntry, error)
	ListEntriesByUserID(ctx context.Context, userID int) ([]domain.LedgerEntry, error)
}

type Service struct {
	ledgerRepo LedgerRepo
	txManager  pg.TXManager
}

func New(ledgerRepo LedgerRepo, txManager pg.TXManager) *Service {
	return &Service{
		ledgerRepo: ledgerRepo,
		txManager:  txManager,
	}
}

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrBalanceNotFound     = errors.New("balance not found")
	ErrEntryNotFound       = errors.New("ledger entry not found")
	ErrInvalidAmount       = errors.New("amount must be positive")
)

const retryInterval = 50 * time.Millisecond

// deltaFunc is the balance-changing path an operation was handed for the
// current transaction attempt.
type deltaFunc func(ctx context.Context, userID int, delta int64) (int64, error)

// applyDelta is the single code path that changes a user's balance on the
// happy path: the storage engine's atomic increment.
func (s *Service) applyDelta(ctx context.Context, userID int, delta int64) (int64, error) {
	balance, err := s.ledgerRepo.ApplyDelta(ctx, userID, delta)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, s.mapNoRows(ctx, userID)
		}
		return 0, err
	}
	return balance, nil
}

// applyDeltaLocked is the degraded path: a row-locked read-modify-write,
// slow but still correct.
func (s *Service) applyDeltaLocked(ctx context.Context, userID int, delta int64) (int64, error) {
	balance, err := s.ledgerRepo.ApplyDeltaLocked(ctx, userID, delta)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, s.mapNoRows(ctx, userID)
		}
		zap.L().Error("locked balance update failed", zap.Int("userID", userID), zap.Error(err))
		return 0, err
	}
	return balance, nil
}

// mutate runs op once per transaction attempt, handing it the delta path for
// that attempt. A failure aborts the whole transaction, so the retry and the
// locked fallback each rerun op from the top on a fresh one; the degraded
// path never executes inside a transaction the failure already poisoned.
// Joined to an enclosing transaction we don't own, op runs exactly once and
// the retry belongs to whoever redelivers the triggering event.
func (s *Service) mutate(ctx context.Context, op func(ctx context.Context, apply deltaFunc) error) error {
	run := func(ctx context.Context, apply deltaFunc) error {
		return s.txManager.Begin(ctx, func(ctx context.Context) error {
			return op(ctx, apply)
		})
	}

	if pg.InTransaction(ctx) {
		return run(ctx, s.applyDelta)
	}

	err := retry.Do(ctx, retry.WithMaxRetries(1, retry.NewConstant(retryInterval)), func(ctx context.Context) error {
		if err := run(ctx, s.applyDelta); err != nil {
			if isTerminal(err) {
				return err
			}
			return retry.RetryableError(err)
		}
		return nil
	})
	if err == nil || isTerminal(err) {
		return err
	}

	zap.L().Warn("atomic balance update failed twice, rerunning on the locked read-modify-write",
		zap.Error(err),
	)
	metrics.DegradedBalanceWrites.Inc()
	return run(ctx, s.applyDeltaLocked)
}

// isTerminal separates domain outcomes no retry can change from transient
// storage failures.
func isTerminal(err error) bool {
	return errors.Is(err, ErrInsufficientBalance) ||
		errors.Is(err, ErrBalanceNotFound) ||
		errors.Is(err, ErrEntryNotFound)
}

// The atomic update reports no rows both for a missing balance and for a
// delta that would go negative; one extra read tells them apart.
func (s *Service) mapNoRows(ctx context.Context, userID int) error {
	balance, err := s.ledgerRepo.GetUserBalance(ctx, userID)
	if err != nil {
		return err
	}
	if balance == nil {
		return ErrBalanceNotFound
	}
	return ErrInsufficientBalance
}

func (s *Service) GetBalance(ctx context.Context, userID int) (*domain.Balance, error) {
	balance, err := s.ledgerRepo.GetUserBalance(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get balance", zap.Error(err))
		return nil, err
	}
	if balance == nil {
		return nil, ErrBalanceNotFound
	}
	return balance, nil
}

func (s *Service) CreateBalance(ctx context.Context, userID int) (*domain.Balance, error) {
	balance, err := s.ledgerRepo.CreateUserBalance(ctx, userID)
	if err != nil {
		zap.L().Error("failed to create balance", zap.Error(err))
		return nil, err
	}
	return balance, nil
}

func (s *Service) GetLedger(ctx context.Context, userID int) ([]domain.LedgerEntry, error) {
	entries, err := s.ledgerRepo.ListEntriesByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to fetch ledger entries", zap.Error(err))
		return nil, err
	}
	return entries, nil
}

// Deposit credits a settled funds movement and records the completed entry
// in the same transaction.
func (s *Service) Deposit(ctx context.Context, userID int, amount int64, sourceEventID string) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	return s.mutate(ctx, func(ctx context.Context, apply deltaFunc) error {
		if _, err := apply(ctx, userID, amount); err != nil {
			return err
		}
		_, err := s.ledgerRepo.CreateEntry(ctx, &domain.LedgerEntry{
			ID:            uuid.New(),
			UserID:        userID,
			Kind:          domain.EntryKindDeposit,
			Amount:        amount,
			SourceEventID: &sourceEventID,
			Status:        domain.EntryStatusCompleted,
		})
		return err
	})
}

// RefundDeposit debits a processor-issued refund through the same delta
// path the credit took.
func (s *Service) RefundDeposit(ctx context.Context, userID int, amount int64, sourceEventID string) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	return s.mutate(ctx, func(ctx context.Context, apply deltaFunc) error {
		if _, err := apply(ctx, userID, -amount); err != nil {
			return err
		}
		_, err := s.ledgerRepo.CreateEntry(ctx, &domain.LedgerEntry{
			ID:            uuid.New(),
			UserID:        userID,
			Kind:          domain.EntryKindEscrowRefund,
			Amount:        -amount,
			SourceEventID: &sourceEventID,
			Status:        domain.EntryStatusCompleted,
		})
		return err
	})
}

// Withdraw debits the balance immediately and records a pending withdrawal
// entry. The returned entry's external reference is handed to the processor
// as the transfer idempotency key; transfer events settle or reverse it.
func (s *Service) Withdraw(ctx context.Context, userID int, amount int64) (*domain.LedgerEntry, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	ref := uuid.NewString()
	var entry *domain.LedgerEntry
	err := s.mutate(ctx, func(ctx context.Context, apply deltaFunc) error {
		if _, err := apply(ctx, userID, -amount); err != nil {
			return err
		}
		if err := s.ledgerRepo.ApplyWithdrawnDelta(ctx, userID, amount); err != nil {
			return err
		}
		created, err := s.ledgerRepo.CreateEntry(ctx, &domain.LedgerEntry{
			ID:          uuid.New(),
			UserID:      userID,
			Kind:        domain.EntryKindWithdrawal,
			Amount:      -amount,
			ExternalRef: &ref,
			Status:      domain.EntryStatusPending,
		})
		entry = created
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// SettleTransfer completes the pending entry matched by the processor's
// transfer reference. The money already moved when the entry was created.
func (s *Service) SettleTransfer(ctx context.Context, ref string) (*domain.LedgerEntry, error) {
	entry, err := s.ledgerRepo.CompleteEntryByRef(ctx, ref)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, fmt.Errorf("%w: no pending entry for transfer %s", ErrEntryNotFound, ref)
	}
	return entry, nil
}

// FailTransfer marks the pending entry failed and reverses its balance
// effect with the inverse-signed delta.
func (s *Service) FailTransfer(ctx context.Context, ref string) (*domain.LedgerEntry, error) {
	var entry *domain.LedgerEntry
	err := s.mutate(ctx, func(ctx context.Context, apply deltaFunc) error {
		failed, err := s.ledgerRepo.FailEntryByRef(ctx, ref)
		if err != nil {
			return err
		}
		if failed == nil {
			return fmt.Errorf("%w: no pending entry for transfer %s", ErrEntryNotFound, ref)
		}
		if _, err := apply(ctx, failed.UserID, -failed.Amount); err != nil {
			return err
		}
		if failed.Kind == domain.EntryKindWithdrawal {
			if err := s.ledgerRepo.ApplyWithdrawnDelta(ctx, failed.UserID, failed.Amount); err != nil {
				return err
			}
		}
		entry = failed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// EscrowHold moves the bounty amount from the poster's available balance
// into escrow.
func (s *Service) EscrowHold(ctx context.Context, posterID int, amount int64, bountyID uuid.UUID) error {
	return s.mutate(ctx, func(ctx context.Context, apply deltaFunc) error {
		if _, err := apply(ctx, posterID, -amount); err != nil {
			return err
		}
		if err := s.ledgerRepo.ApplyEscrowDelta(ctx, posterID, amount); err != nil {
			return err
		}
		_, err := s.ledgerRepo.CreateEntry(ctx, &domain.LedgerEntry{
			ID:              uuid.New(),
			UserID:          posterID,
			Kind:            domain.EntryKindEscrowHold,
			Amount:          -amount,
			RelatedBountyID: &bountyID,
			Status:          domain.EntryStatusCompleted,
		})
		return err
	})
}

// EscrowRelease pays the held amount out to the worker.
func (s *Service) EscrowRelease(ctx context.Context, posterID, workerID int, amount int64, bountyID uuid.UUID) error {
	return s.mutate(ctx, func(ctx context.Context, apply deltaFunc) error {
		if _, err := apply(ctx, workerID, amount); err != nil {
			return err
		}
		if err := s.ledgerRepo.ApplyEscrowDelta(ctx, posterID, -amount); err != nil {
			return err
		}
		_, err := s.ledgerRepo.CreateEntry(ctx, &domain.LedgerEntry{
			ID:              uuid.New(),
			UserID:          workerID,
			Kind:            domain.EntryKindEscrowRelease,
			Amount:          amount,
			RelatedBountyID: &bountyID,
			Status:          domain.EntryStatusCompleted,
		})
		return err
	})
}

// EscrowRefund returns the held amount to the poster.
func (s *Service) EscrowRefund(ctx context.Context, posterID int, amount int64, bountyID uuid.UUID) error {
	return s.mutate(ctx, func(ctx context.Context, apply deltaFunc) error {
		if _, err := apply(ctx, posterID, amount); err != nil {
			return err
		}
		if err := s.ledgerRepo.ApplyEscrowDelta(ctx, posterID, -amount); err != nil {
			return err
		}
		_, err := s.ledgerRepo.CreateEntry(ctx, &domain.LedgerEntry{
			ID:              uuid.New(),
			UserID:          posterID,
			Kind:            domain.EntryKindEscrowRefund,
			Amount:          amount,
			RelatedBountyID: &bountyID,
			Status:          domain.EntryStatusCompleted,
		})
		return err
	})
}
