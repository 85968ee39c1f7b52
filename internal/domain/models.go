package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types delivered by the payment processor.
const (
	EventFundsSettled    = "funds-settled"
	EventFundsFailed     = "funds-failed"
	EventRefundIssued    = "refund-issued"
	EventTransferSettled = "transfer-settled"
	EventTransferFailed  = "transfer-failed"
	EventPayoutSettled   = "payout-settled"
	EventPayoutFailed    = "payout-failed"
	EventAccountUpdated  = "account-updated"
)

// Event types produced by the bounty lifecycle and relayed from the outbox.
const (
	EventBountyAccepted  = "bounty-accepted"
	EventBountyCompleted = "bounty-completed"
	EventBountyCancelled = "bounty-cancelled"
)

const (
	EventStatusUnprocessed = "unprocessed"
	EventStatusProcessing  = "processing"
	EventStatusProcessed   = "processed"
	EventStatusFailed      = "failed"
)

const (
	EntryKindDeposit       = "deposit"
	EntryKindEscrowHold    = "escrow-hold"
	EntryKindEscrowRelease = "escrow-release"
	EntryKindEscrowRefund  = "escrow-refund"
	EntryKindWithdrawal    = "withdrawal"
)

const (
	EntryStatusPending   = "pending"
	EntryStatusCompleted = "completed"
	EntryStatusFailed    = "failed"
)

const (
	OutboxStatusPending    = "pending"
	OutboxStatusProcessing = "processing"
	OutboxStatusCompleted  = "completed"
	OutboxStatusFailed     = "failed"
)

const (
	BountyStatusOpen       = "open"
	BountyStatusInProgress = "in_progress"
	BountyStatusCompleted  = "completed"
	BountyStatusCancelled  = "cancelled"
)

// Escrow states. Released and refunded are terminal.
const (
	EscrowStateNone     = "none"
	EscrowStateHeld     = "held"
	EscrowStateReleased = "released"
	EscrowStateRefunded = "refunded"
)

type User struct {
	ID                 int       `db:"id"`
	ProcessorAccountID string    `db:"processor_account_id"`
	PayoutsEnabled     bool      `db:"payouts_enabled"`
	CreatedAt          time.Time `db:"created_at"`
}

// Balance is a reconciled projection of the ledger, never mutated outside
// the ledger service. Amounts are in the smallest currency unit.
type Balance struct {
	ID             int   `db:"id"`
	UserID         int   `db:"user_id"`
	CurrentBalance int64 `db:"current_balance"`
	EscrowedTotal  int64 `db:"escrowed_total"`
	WithdrawnTotal int64 `db:"withdrawn_total"`
}

// PaymentEvent is the idempotency ledger row for one inbound notification.
// Rows are never deleted.
type PaymentEvent struct {
	ID            int             `db:"id"`
	EventID       string          `db:"event_id"`
	Type          string          `db:"type"`
	Payload       json.RawMessage `db:"payload"`
	Status        string          `db:"status"`
	FailureReason string          `db:"failure_reason"`
	ReceivedAt    time.Time       `db:"received_at"`
	ProcessedAt   *time.Time      `db:"processed_at"`
}

// LedgerEntry is one signed monetary movement against one user. Entries are
// immutable once completed; failed entries have had their balance effect
// reversed.
type LedgerEntry struct {
	ID              uuid.UUID  `db:"id"`
	UserID          int        `db:"user_id"`
	Kind            string     `db:"kind"`
	Amount          int64      `db:"amount"`
	RelatedBountyID *uuid.UUID `db:"related_bounty_id"`
	SourceEventID   *string    `db:"source_event_id"`
	ExternalRef     *string    `db:"external_ref"`
	Status          string     `db:"status"`
	CreatedAt       time.Time  `db:"created_at"`
}

// OutboxEvent is written in the same transaction as the domain change it
// describes and delivered later by the relay.
type OutboxEvent struct {
	ID            uuid.UUID       `db:"id"`
	Type          string          `db:"type"`
	Payload       json.RawMessage `db:"payload"`
	Status        string          `db:"status"`
	RetryCount    int             `db:"retry_count"`
	NextAttemptAt time.Time       `db:"next_attempt_at"`
	LastError     string          `db:"last_error"`
	CreatedAt     time.Time       `db:"created_at"`
	ProcessedAt   *time.Time      `db:"processed_at"`
}

type Bounty struct {
	ID          uuid.UUID `db:"id"`
	PosterID    int       `db:"poster_id"`
	WorkerID    *int      `db:"worker_id"`
	Amount      int64     `db:"amount"`
	Status      string    `db:"status"`
	EscrowState string    `db:"escrow_state"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// BalanceDrift is one row of the reconciliation audit: a balance whose value
// diverged from the ledger sum.
type BalanceDrift struct {
	UserID         int   `db:"user_id"`
	CurrentBalance int64 `db:"current_balance"`
	LedgerSum      int64 `db:"ledger_sum"`
}
