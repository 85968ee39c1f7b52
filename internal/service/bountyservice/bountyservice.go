package bountyservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bountylab/reconciler/internal/domain"
	"github.com/bountylab/reconciler/internal/dto"
	"github.com/bountylab/reconciler/internal/pg"
)

type BountyRepo interface {
	Create(ctx context.Context, bounty *domain.Bounty) (*domain.Bounty, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Bounty, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to string) (bool, error)
	AssignWorker(ctx context.Context, id uuid.UUID, workerID int, from, to string) (bool, error)
	HoldEscrow(ctx context.Context, id uuid.UUID) (bool, error)
	TransitionEscrow(ctx context.Context, id uuid.UUID, from, to string) (bool, error)
}

type OutboxRepo interface {
	Create(ctx context.Context, id uuid.UUID, eventType string, payload json.RawMessage) (*domain.OutboxEvent, error)
}

type LedgerService interface {
	EscrowHold(ctx context.Context, posterID int, amount int64, bountyID uuid.UUID) error
	EscrowRelease(ctx context.Context, posterID, workerID int, amount int64, bountyID uuid.UUID) error
	EscrowRefund(ctx context.Context, posterID int, amount int64, bountyID uuid.UUID) error
}

type Service struct {
	bountyRepo BountyRepo
	outboxRepo OutboxRepo
	ledger     LedgerService
	txManager  pg.TXManager
}

func New(bountyRepo BountyRepo, outboxRepo OutboxRepo, ledger LedgerService, txManager pg.TXManager) *Service {
	return &Service{
		bountyRepo: bountyRepo,
		outboxRepo: outboxRepo,
		ledger:     ledger,
		txManager:  txManager,
	}
}

var (
	ErrBountyNotFound      = errors.New("bounty not found")
	ErrInvalidBountyStatus = errors.New("invalid bounty status")
	ErrEscrowStateConflict = errors.New("illegal escrow state transition")
	ErrEscrowNotHeld       = errors.New("escrow hold not yet applied")
	ErrWorkerNotAssigned   = errors.New("bounty has no assigned worker")
	ErrInvalidAmount       = errors.New("amount must be positive")
)

func (s *Service) CreateBounty(ctx context.Context, posterID int, amount int64) (*domain.Bounty, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	bounty := &domain.Bounty{
		ID:          uuid.New(),
		PosterID:    posterID,
		Amount:      amount,
		Status:      domain.BountyStatusOpen,
		EscrowState: domain.EscrowStateNone,
	}
	created, err := s.bountyRepo.Create(ctx, bounty)
	if err != nil {
		zap.L().Error("failed to create bounty", zap.Error(err))
		return nil, err
	}
	return created, nil
}

func (s *Service) GetBounty(ctx context.Context, id uuid.UUID) (*domain.Bounty, error) {
	bounty, err := s.bountyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bounty == nil {
		return nil, ErrBountyNotFound
	}
	return bounty, nil
}

// AcceptBounty assigns the worker and publishes bounty-accepted in one
// transaction: either the status flips and the outbox row exists, or neither.
func (s *Service) AcceptBounty(ctx context.Context, id uuid.UUID, workerID int) error {
	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		ok, err := s.bountyRepo.AssignWorker(ctx, id, workerID, domain.BountyStatusOpen, domain.BountyStatusInProgress)
		if err != nil {
			return err
		}
		if !ok {
			return s.explainRejectedTransition(ctx, id)
		}
		return s.publish(ctx, domain.EventBountyAccepted, id)
	})
}

// CompleteBounty marks the work verified and publishes bounty-completed,
// which the relay turns into an escrow release.
func (s *Service) CompleteBounty(ctx context.Context, id uuid.UUID) error {
	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		ok, err := s.bountyRepo.UpdateStatus(ctx, id, domain.BountyStatusInProgress, domain.BountyStatusCompleted)
		if err != nil {
			return err
		}
		if !ok {
			return s.explainRejectedTransition(ctx, id)
		}
		return s.publish(ctx, domain.EventBountyCompleted, id)
	})
}

// CancelBounty withdraws an open posting outright; an in-progress one also
// publishes bounty-cancelled so any held escrow gets refunded.
func (s *Service) CancelBounty(ctx context.Context, id uuid.UUID) error {
	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		ok, err := s.bountyRepo.UpdateStatus(ctx, id, domain.BountyStatusOpen, domain.BountyStatusCancelled)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		ok, err = s.bountyRepo.UpdateStatus(ctx, id, domain.BountyStatusInProgress, domain.BountyStatusCancelled)
		if err != nil {
			return err
		}
		if !ok {
			return s.explainRejectedTransition(ctx, id)
		}
		return s.publish(ctx, domain.EventBountyCancelled, id)
	})
}

func (s *Service) explainRejectedTransition(ctx context.Context, id uuid.UUID) error {
	bounty, err := s.bountyRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if bounty == nil {
		return ErrBountyNotFound
	}
	return fmt.Errorf("%w: bounty %s is %s", ErrInvalidBountyStatus, id, bounty.Status)
}

func (s *Service) publish(ctx context.Context, eventType string, bountyID uuid.UUID) error {
	payload, err := json.Marshal(dto.BountyPayloadDTO{BountyID: bountyID.String()})
	if err != nil {
		return err
	}
	if _, err := s.outboxRepo.Create(ctx, uuid.New(), eventType, payload); err != nil {
		return err
	}
	return nil
}

// HoldEscrow runs when a bounty-accepted event is relayed: none -> held plus
// the poster-side ledger movement, atomically. Redelivery of an already-held
// bounty is a no-op; a hold against a terminal state is a consistency
// violation.
func (s *Service) HoldEscrow(ctx context.Context, bountyID uuid.UUID) error {
	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		bounty, err := s.bountyRepo.FindByID(ctx, bountyID)
		if err != nil {
			return err
		}
		if bounty == nil {
			return fmt.Errorf("%w: %s", ErrBountyNotFound, bountyID)
		}
		ok, err := s.bountyRepo.HoldEscrow(ctx, bountyID)
		if err != nil {
			return err
		}
		if !ok {
			switch bounty.EscrowState {
			case domain.EscrowStateHeld:
				return nil
			case domain.EscrowStateReleased, domain.EscrowStateRefunded:
				return fmt.Errorf("%w: hold on %s bounty %s", ErrEscrowStateConflict, bounty.EscrowState, bountyID)
			default:
				// Only cancellation voids the hold; its refund sibling is a
				// matching no-op, so the poster is never debited.
				zap.L().Warn("escrow hold skipped, bounty cancelled before the hold applied",
					zap.String("bountyID", bountyID.String()),
					zap.String("status", bounty.Status),
				)
				return nil
			}
		}
		return s.ledger.EscrowHold(ctx, bounty.PosterID, bounty.Amount, bountyID)
	})
}

// ReleaseEscrow runs when a bounty-completed event is relayed: held ->
// released and the worker gets paid. A release that arrives before its
// sibling hold (the two outbox rows carry no ordering) is retryable, not a
// conflict: the row goes back to failed and the sweep picks it up again
// once the hold has landed.
func (s *Service) ReleaseEscrow(ctx context.Context, bountyID uuid.UUID) error {
	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		bounty, err := s.bountyRepo.FindByID(ctx, bountyID)
		if err != nil {
			return err
		}
		if bounty == nil {
			return fmt.Errorf("%w: %s", ErrBountyNotFound, bountyID)
		}
		if bounty.WorkerID == nil {
			return fmt.Errorf("%w: bounty %s", ErrWorkerNotAssigned, bountyID)
		}
		ok, err := s.bountyRepo.TransitionEscrow(ctx, bountyID, domain.EscrowStateHeld, domain.EscrowStateReleased)
		if err != nil {
			return err
		}
		if !ok {
			switch bounty.EscrowState {
			case domain.EscrowStateReleased:
				return nil
			case domain.EscrowStateNone:
				return fmt.Errorf("%w: release before hold on bounty %s", ErrEscrowNotHeld, bountyID)
			default:
				return fmt.Errorf("%w: release from %s on bounty %s", ErrEscrowStateConflict, bounty.EscrowState, bountyID)
			}
		}
		return s.ledger.EscrowRelease(ctx, bounty.PosterID, *bounty.WorkerID, bounty.Amount, bountyID)
	})
}

// RefundEscrow runs when a bounty-cancelled event is relayed: held ->
// refunded and the poster gets the hold back. Cancellation before the hold
// was ever applied has nothing to refund.
func (s *Service) RefundEscrow(ctx context.Context, bountyID uuid.UUID) error {
	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		bounty, err := s.bountyRepo.FindByID(ctx, bountyID)
		if err != nil {
			return err
		}
		if bounty == nil {
			return fmt.Errorf("%w: %s", ErrBountyNotFound, bountyID)
		}
		ok, err := s.bountyRepo.TransitionEscrow(ctx, bountyID, domain.EscrowStateHeld, domain.EscrowStateRefunded)
		if err != nil {
			return err
		}
		if !ok {
			switch bounty.EscrowState {
			case domain.EscrowStateRefunded:
				return nil
			case domain.EscrowStateNone:
				zap.L().Info("escrow refund skipped, hold was never applied",
					zap.String("bountyID", bountyID.String()),
				)
				return nil
			default:
				return fmt.Errorf("%w: refund from %s on bounty %s", ErrEscrowStateConflict, bounty.EscrowState, bountyID)
			}
		}
		return s.ledger.EscrowRefund(ctx, bounty.PosterID, bounty.Amount, bountyID)
	})
}
