package eventservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bountylab/reconciler/internal/domain"
	"github.com/bountylab/reconciler/internal/dto"
	"github.com/bountylab/reconciler/internal/metrics"
	"github.com/bountylab/reconciler/internal/service/bountyservice"
	"github.com/bountylab/reconciler/internal/service/ledgerservice"
)

type EventRepo interface {
	RecordIfNew(ctx context.Context, eventID, eventType string, payload json.RawMessage) (bool, error)
	ClaimProcessing(ctx context.Context, eventID string) (bool, error)
	MarkProcessed(ctx context.Context, eventID string) error
	MarkFailed(ctx context.Context, eventID, reason string) error
}

type LedgerService interface {
	Deposit(ctx context.Context, userID int, amount int64, sourceEventID string) error
	RefundDeposit(ctx context.Context, userID int, amount int64, sourceEventID string) error
	SettleTransfer(ctx context.Context, ref string) (*domain.LedgerEntry, error)
	FailTransfer(ctx context.Context, ref string) (*domain.LedgerEntry, error)
}

type EscrowService interface {
	HoldEscrow(ctx context.Context, bountyID uuid.UUID) error
	ReleaseEscrow(ctx context.Context, bountyID uuid.UUID) error
	RefundEscrow(ctx context.Context, bountyID uuid.UUID) error
}

type UserRepo interface {
	SetPayoutsEnabled(ctx context.Context, processorAccountID string, enabled bool) (bool, error)
}

type Service struct {
	eventRepo EventRepo
	ledger    LedgerService
	escrow    EscrowService
	userRepo  UserRepo
}

func New(eventRepo EventRepo, ledger LedgerService, escrow EscrowService, userRepo UserRepo) *Service {
	return &Service{
		eventRepo: eventRepo,
		ledger:    ledger,
		escrow:    escrow,
		userRepo:  userRepo,
	}
}

var (
	ErrEventMalformed = errors.New("malformed event payload")
	ErrUnknownAccount = errors.New("unknown processor account")
)

// Process drives one event through unprocessed -> processing -> terminal.
// The insert against the event_id uniqueness constraint plus the conditional
// claim are the only serialization points: duplicates and concurrent
// deliveries collapse into exactly one execution, and a failed event can be
// claimed again when the source redelivers it.
func (s *Service) Process(ctx context.Context, event dto.PaymentEventDTO) error {
	isNew, err := s.eventRepo.RecordIfNew(ctx, event.ID, event.Type, event.Payload)
	if err != nil {
		// Fail closed: without the ledger we can't rule out double-application.
		return fmt.Errorf("can't record event %s: %w", event.ID, err)
	}
	if !isNew {
		metrics.DuplicateDeliveries.Inc()
	}

	claimed, err := s.eventRepo.ClaimProcessing(ctx, event.ID)
	if err != nil {
		return fmt.Errorf("can't claim event %s: %w", event.ID, err)
	}
	if !claimed {
		zap.L().Debug("event already handled or in flight", zap.String("eventID", event.ID))
		return nil
	}

	err = s.dispatch(ctx, event)
	switch {
	case err == nil:
		if markErr := s.eventRepo.MarkProcessed(ctx, event.ID); markErr != nil {
			return fmt.Errorf("can't mark event %s processed: %w", event.ID, markErr)
		}
		metrics.EventsProcessed.WithLabelValues(event.Type, "processed").Inc()
		return nil

	case isConsistencyViolation(err):
		// The event is valid and durably stored; the state it met is not.
		// Record the failure for operators but do not trigger a redelivery
		// storm over something redelivery cannot fix.
		zap.L().Error("consistency violation while handling event",
			zap.String("eventID", event.ID),
			zap.String("type", event.Type),
			zap.Error(err),
		)
		metrics.ConsistencyViolations.Inc()
		metrics.EventsProcessed.WithLabelValues(event.Type, "violation").Inc()
		if markErr := s.eventRepo.MarkFailed(ctx, event.ID, err.Error()); markErr != nil {
			return fmt.Errorf("can't mark event %s failed: %w", event.ID, markErr)
		}
		return nil

	default:
		metrics.EventsProcessed.WithLabelValues(event.Type, "failed").Inc()
		if markErr := s.eventRepo.MarkFailed(ctx, event.ID, err.Error()); markErr != nil {
			zap.L().Error("failed to mark event failed", zap.String("eventID", event.ID), zap.Error(markErr))
		}
		return err
	}
}

func (s *Service) dispatch(ctx context.Context, event dto.PaymentEventDTO) error {
	switch event.Type {
	case domain.EventFundsSettled:
		payload, err := fundsPayload(event)
		if err != nil {
			return err
		}
		return s.ledger.Deposit(ctx, payload.UserID, payload.Amount, event.ID)

	case domain.EventFundsFailed:
		payload, err := fundsPayload(event)
		if err != nil {
			return err
		}
		// No balance changed at the processor; keep the trail for alerting.
		zap.L().Warn("funds movement failed at the processor",
			zap.String("eventID", event.ID),
			zap.Int("userID", payload.UserID),
			zap.Int64("amount", payload.Amount),
		)
		return nil

	case domain.EventRefundIssued:
		payload, err := fundsPayload(event)
		if err != nil {
			return err
		}
		return s.ledger.RefundDeposit(ctx, payload.UserID, payload.Amount, event.ID)

	case domain.EventTransferSettled:
		ref, err := transferRef(event)
		if err != nil {
			return err
		}
		_, err = s.ledger.SettleTransfer(ctx, ref)
		return err

	case domain.EventTransferFailed:
		ref, err := transferRef(event)
		if err != nil {
			return err
		}
		entry, err := s.ledger.FailTransfer(ctx, ref)
		if err != nil {
			return err
		}
		zap.L().Info("reversed failed transfer",
			zap.String("eventID", event.ID),
			zap.String("transferID", ref),
			zap.Int64("amount", -entry.Amount),
		)
		return nil

	case domain.EventPayoutSettled, domain.EventPayoutFailed:
		// Payouts debited the balance when they were requested; these are
		// audit-only.
		zap.L().Info("payout event acknowledged", zap.String("eventID", event.ID), zap.String("type", event.Type))
		return nil

	case domain.EventAccountUpdated:
		var payload dto.AccountPayloadDTO
		if err := json.Unmarshal(event.Payload, &payload); err != nil || payload.AccountID == "" {
			return fmt.Errorf("%w: account payload of %s", ErrEventMalformed, event.ID)
		}
		ok, err := s.userRepo.SetPayoutsEnabled(ctx, payload.AccountID, payload.PayoutsEnabled)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownAccount, payload.AccountID)
		}
		return nil

	case domain.EventBountyAccepted:
		bountyID, err := bountyID(event)
		if err != nil {
			return err
		}
		return s.escrow.HoldEscrow(ctx, bountyID)

	case domain.EventBountyCompleted:
		bountyID, err := bountyID(event)
		if err != nil {
			return err
		}
		return s.escrow.ReleaseEscrow(ctx, bountyID)

	case domain.EventBountyCancelled:
		bountyID, err := bountyID(event)
		if err != nil {
			return err
		}
		return s.escrow.RefundEscrow(ctx, bountyID)

	default:
		// Acknowledge processor features we don't support yet instead of
		// turning them into poison messages.
		zap.L().Warn("unknown event type acknowledged without dispatch",
			zap.String("eventID", event.ID),
			zap.String("type", event.Type),
		)
		return nil
	}
}

func fundsPayload(event dto.PaymentEventDTO) (*dto.FundsPayloadDTO, error) {
	var payload dto.FundsPayloadDTO
	if err := json.Unmarshal(event.Payload, &payload); err != nil || payload.UserID == 0 || payload.Amount <= 0 {
		return nil, fmt.Errorf("%w: funds payload of %s", ErrEventMalformed, event.ID)
	}
	return &payload, nil
}

func transferRef(event dto.PaymentEventDTO) (string, error) {
	var payload dto.TransferPayloadDTO
	if err := json.Unmarshal(event.Payload, &payload); err != nil || payload.TransferID == "" {
		return "", fmt.Errorf("%w: transfer payload of %s", ErrEventMalformed, event.ID)
	}
	return payload.TransferID, nil
}

func bountyID(event dto.PaymentEventDTO) (uuid.UUID, error) {
	var payload dto.BountyPayloadDTO
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		return uuid.Nil, fmt.Errorf("%w: bounty payload of %s", ErrEventMalformed, event.ID)
	}
	id, err := uuid.Parse(payload.BountyID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: bounty id in %s", ErrEventMalformed, event.ID)
	}
	return id, nil
}

func isConsistencyViolation(err error) bool {
	return errors.Is(err, ErrEventMalformed) ||
		errors.Is(err, ErrUnknownAccount) ||
		errors.Is(err, ledgerservice.ErrEntryNotFound) ||
		errors.Is(err, ledgerservice.ErrBalanceNotFound) ||
		errors.Is(err, bountyservice.ErrBountyNotFound) ||
		errors.Is(err, bountyservice.ErrEscrowStateConflict) ||
		errors.Is(err, bountyservice.ErrWorkerNotAssigned)
}
