package ledgerservice

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/bountylab/reconciler/internal/domain"
	"github.com/bountylab/reconciler/internal/pg"
)

func NewMock(t *testing.T) (*Service, *MockLedgerRepo, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	repo := NewMockLedgerRepo(ctrl)
	txManager := pg.NewMockTXManager(ctrl)
	service := New(repo, txManager)
	defer ctrl.Finish()
	return service, repo, txManager
}

func passThroughTx(txManager *pg.MockTXManager) *gomock.Call {
	return txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		})
}

func TestApplyDelta(t *testing.T) {
	tests := []struct {
		name          string
		delta         int64
		prepareMock   func(repo *MockLedgerRepo)
		expectedValue int64
		expectedError error
	}{
		{
			name:  "Atomic increment returns the new balance",
			delta: 500,
			prepareMock: func(repo *MockLedgerRepo) {
				repo.EXPECT().ApplyDelta(gomock.Any(), 1, int64(500)).Return(int64(1500), nil)
			},
			expectedValue: 1500,
		},
		{
			name:  "Insufficient balance",
			delta: -2000,
			prepareMock: func(repo *MockLedgerRepo) {
				repo.EXPECT().ApplyDelta(gomock.Any(), 1, int64(-2000)).Return(int64(0), pgx.ErrNoRows)
				repo.EXPECT().GetUserBalance(gomock.Any(), 1).Return(&domain.Balance{UserID: 1, CurrentBalance: 1000}, nil)
			},
			expectedError: ErrInsufficientBalance,
		},
		{
			name:  "Missing balance row",
			delta: 500,
			prepareMock: func(repo *MockLedgerRepo) {
				repo.EXPECT().ApplyDelta(gomock.Any(), 1, int64(500)).Return(int64(0), pgx.ErrNoRows)
				repo.EXPECT().GetUserBalance(gomock.Any(), 1).Return(nil, nil)
			},
			expectedError: ErrBalanceNotFound,
		},
		{
			name:  "Transient failure surfaces to the caller",
			delta: 500,
			prepareMock: func(repo *MockLedgerRepo) {
				repo.EXPECT().ApplyDelta(gomock.Any(), 1, int64(500)).Return(int64(0), errors.New("connection reset"))
			},
			expectedError: errors.New("connection reset"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo, _ := NewMock(t)
			tt.prepareMock(repo)

			value, err := service.applyDelta(context.Background(), 1, tt.delta)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError.Error())
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedValue, value)
			}
		})
	}
}

// Interleaved credits and debits through the delta path must sum exactly,
// whatever order they land in.
func TestApplyDelta_ConcurrentSum(t *testing.T) {
	service, repo, _ := NewMock(t)

	var balance int64 = 100000
	repo.EXPECT().ApplyDelta(gomock.Any(), 1, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int, delta int64) (int64, error) {
			return atomic.AddInt64(&balance, delta), nil
		}).AnyTimes()

	deltas := []int64{250, -100, 4000, -2500, 75, 75, -800, 1000}
	var expected int64 = 100000
	for _, d := range deltas {
		expected += d
	}

	var wg sync.WaitGroup
	for _, d := range deltas {
		d := d
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.applyDelta(context.Background(), 1, d)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, expected, atomic.LoadInt64(&balance))
}

func TestDeposit(t *testing.T) {
	tests := []struct {
		name          string
		amount        int64
		prepareMock   func(repo *MockLedgerRepo, txManager *pg.MockTXManager)
		expectedError error
	}{
		{
			name:   "Credits balance and writes a completed entry",
			amount: 500,
			prepareMock: func(repo *MockLedgerRepo, txManager *pg.MockTXManager) {
				passThroughTx(txManager)
				repo.EXPECT().ApplyDelta(gomock.Any(), 1, int64(500)).Return(int64(1500), nil)
				repo.EXPECT().CreateEntry(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, entry *domain.LedgerEntry) (*domain.LedgerEntry, error) {
						assert.Equal(t, domain.EntryKindDeposit, entry.Kind)
						assert.Equal(t, int64(500), entry.Amount)
						assert.Equal(t, domain.EntryStatusCompleted, entry.Status)
						assert.Equal(t, "evt_1", *entry.SourceEventID)
						return entry, nil
					})
			},
		},
		{
			name:          "Non-positive amount rejected",
			amount:        0,
			prepareMock:   func(repo *MockLedgerRepo, txManager *pg.MockTXManager) {},
			expectedError: ErrInvalidAmount,
		},
		{
			name:   "Transient failure retried on a fresh transaction",
			amount: 500,
			prepareMock: func(repo *MockLedgerRepo, txManager *pg.MockTXManager) {
				passThroughTx(txManager).Times(2)
				repo.EXPECT().ApplyDelta(gomock.Any(), 1, int64(500)).Return(int64(0), errors.New("connection reset"))
				repo.EXPECT().ApplyDelta(gomock.Any(), 1, int64(500)).Return(int64(1500), nil)
				repo.EXPECT().CreateEntry(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, entry *domain.LedgerEntry) (*domain.LedgerEntry, error) {
						return entry, nil
					})
			},
		},
		{
			// The locked fallback reruns the whole deposit, entry included,
			// on a transaction the earlier failures never touched.
			name:   "Degraded path writes both the balance and the entry",
			amount: 500,
			prepareMock: func(repo *MockLedgerRepo, txManager *pg.MockTXManager) {
				passThroughTx(txManager).Times(3)
				repo.EXPECT().ApplyDelta(gomock.Any(), 1, int64(500)).Return(int64(0), errors.New("connection reset")).Times(2)
				repo.EXPECT().ApplyDeltaLocked(gomock.Any(), 1, int64(500)).Return(int64(1500), nil)
				repo.EXPECT().CreateEntry(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, entry *domain.LedgerEntry) (*domain.LedgerEntry, error) {
						assert.Equal(t, domain.EntryKindDeposit, entry.Kind)
						assert.Equal(t, int64(500), entry.Amount)
						return entry, nil
					})
			},
		},
		{
			name:   "Missing balance is terminal, not retried",
			amount: 500,
			prepareMock: func(repo *MockLedgerRepo, txManager *pg.MockTXManager) {
				passThroughTx(txManager)
				repo.EXPECT().ApplyDelta(gomock.Any(), 1, int64(500)).Return(int64(0), pgx.ErrNoRows)
				repo.EXPECT().GetUserBalance(gomock.Any(), 1).Return(nil, nil)
			},
			expectedError: ErrBalanceNotFound,
		},
		{
			name:   "Entry failure rolls every attempt back",
			amount: 500,
			prepareMock: func(repo *MockLedgerRepo, txManager *pg.MockTXManager) {
				passThroughTx(txManager).Times(3)
				repo.EXPECT().ApplyDelta(gomock.Any(), 1, int64(500)).Return(int64(1500), nil).Times(2)
				repo.EXPECT().ApplyDeltaLocked(gomock.Any(), 1, int64(500)).Return(int64(1500), nil)
				repo.EXPECT().CreateEntry(gomock.Any(), gomock.Any()).Return(nil, errors.New("database error")).Times(3)
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo, txManager := NewMock(t)
			tt.prepareMock(repo, txManager)

			err := service.Deposit(context.Background(), 1, tt.amount, "evt_1")

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWithdraw(t *testing.T) {
	tests := []struct {
		name          string
		amount        int64
		prepareMock   func(repo *MockLedgerRepo, txManager *pg.MockTXManager)
		expectedError error
	}{
		{
			name:   "Debits immediately and records a pending entry",
			amount: 500,
			prepareMock: func(repo *MockLedgerRepo, txManager *pg.MockTXManager) {
				passThroughTx(txManager)
				repo.EXPECT().ApplyDelta(gomock.Any(), 1, int64(-500)).Return(int64(500), nil)
				repo.EXPECT().ApplyWithdrawnDelta(gomock.Any(), 1, int64(500)).Return(nil)
				repo.EXPECT().CreateEntry(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, entry *domain.LedgerEntry) (*domain.LedgerEntry, error) {
						assert.Equal(t, domain.EntryKindWithdrawal, entry.Kind)
						assert.Equal(t, int64(-500), entry.Amount)
						assert.Equal(t, domain.EntryStatusPending, entry.Status)
						assert.NotNil(t, entry.ExternalRef)
						_, err := uuid.Parse(*entry.ExternalRef)
						assert.NoError(t, err)
						return entry, nil
					})
			},
		},
		{
			name:   "Insufficient balance aborts before any write",
			amount: 5000,
			prepareMock: func(repo *MockLedgerRepo, txManager *pg.MockTXManager) {
				passThroughTx(txManager)
				repo.EXPECT().ApplyDelta(gomock.Any(), 1, int64(-5000)).Return(int64(0), pgx.ErrNoRows)
				repo.EXPECT().GetUserBalance(gomock.Any(), 1).Return(&domain.Balance{UserID: 1, CurrentBalance: 100}, nil)
			},
			expectedError: ErrInsufficientBalance,
		},
		{
			name:          "Non-positive amount rejected",
			amount:        -1,
			prepareMock:   func(repo *MockLedgerRepo, txManager *pg.MockTXManager) {},
			expectedError: ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo, txManager := NewMock(t)
			tt.prepareMock(repo, txManager)

			entry, err := service.Withdraw(context.Background(), 1, tt.amount)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError.Error())
				assert.Nil(t, entry)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, entry)
			}
		})
	}
}

func TestSettleTransfer(t *testing.T) {
	ref := "transfer_ref_1"
	tests := []struct {
		name          string
		prepareMock   func(repo *MockLedgerRepo)
		expectedError error
	}{
		{
			name: "Pending entry completed",
			prepareMock: func(repo *MockLedgerRepo) {
				repo.EXPECT().CompleteEntryByRef(gomock.Any(), ref).
					Return(&domain.LedgerEntry{UserID: 1, Amount: -500, Status: domain.EntryStatusCompleted}, nil)
			},
		},
		{
			name: "No pending entry matches the reference",
			prepareMock: func(repo *MockLedgerRepo) {
				repo.EXPECT().CompleteEntryByRef(gomock.Any(), ref).Return(nil, nil)
			},
			expectedError: ErrEntryNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo, _ := NewMock(t)
			tt.prepareMock(repo)

			entry, err := service.SettleTransfer(context.Background(), ref)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, entry)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, entry)
			}
		})
	}
}

// A withdrawal of 1500 that the processor later rejects must be fully
// reversed: the entry flips to failed, the balance gets 1500 back and the
// withdrawn total gives 1500 up. No new entry is created.
func TestFailTransfer(t *testing.T) {
	ref := "transfer_ref_1"
	tests := []struct {
		name          string
		prepareMock   func(repo *MockLedgerRepo, txManager *pg.MockTXManager)
		expectedError error
	}{
		{
			name: "Failed withdrawal reversed in full",
			prepareMock: func(repo *MockLedgerRepo, txManager *pg.MockTXManager) {
				passThroughTx(txManager)
				repo.EXPECT().FailEntryByRef(gomock.Any(), ref).
					Return(&domain.LedgerEntry{UserID: 1, Kind: domain.EntryKindWithdrawal, Amount: -1500, Status: domain.EntryStatusFailed}, nil)
				repo.EXPECT().ApplyDelta(gomock.Any(), 1, int64(1500)).Return(int64(2000), nil)
				repo.EXPECT().ApplyWithdrawnDelta(gomock.Any(), 1, int64(-1500)).Return(nil)
			},
		},
		{
			name: "Unknown reference is a consistency violation",
			prepareMock: func(repo *MockLedgerRepo, txManager *pg.MockTXManager) {
				passThroughTx(txManager)
				repo.EXPECT().FailEntryByRef(gomock.Any(), ref).Return(nil, nil)
			},
			expectedError: ErrEntryNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo, txManager := NewMock(t)
			tt.prepareMock(repo, txManager)

			entry, err := service.FailTransfer(context.Background(), ref)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, entry)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, entry)
				assert.Equal(t, domain.EntryStatusFailed, entry.Status)
			}
		})
	}
}

func TestEscrowFlows(t *testing.T) {
	bountyID := uuid.New()

	t.Run("Hold moves funds from available into escrow", func(t *testing.T) {
		service, repo, txManager := NewMock(t)
		passThroughTx(txManager)
		repo.EXPECT().ApplyDelta(gomock.Any(), 1, int64(-5000)).Return(int64(0), nil)
		repo.EXPECT().ApplyEscrowDelta(gomock.Any(), 1, int64(5000)).Return(nil)
		repo.EXPECT().CreateEntry(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, entry *domain.LedgerEntry) (*domain.LedgerEntry, error) {
				assert.Equal(t, domain.EntryKindEscrowHold, entry.Kind)
				assert.Equal(t, int64(-5000), entry.Amount)
				assert.Equal(t, bountyID, *entry.RelatedBountyID)
				return entry, nil
			})

		assert.NoError(t, service.EscrowHold(context.Background(), 1, 5000, bountyID))
	})

	t.Run("Release credits the worker and drains the poster's escrow", func(t *testing.T) {
		service, repo, txManager := NewMock(t)
		passThroughTx(txManager)
		repo.EXPECT().ApplyDelta(gomock.Any(), 2, int64(5000)).Return(int64(5000), nil)
		repo.EXPECT().ApplyEscrowDelta(gomock.Any(), 1, int64(-5000)).Return(nil)
		repo.EXPECT().CreateEntry(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, entry *domain.LedgerEntry) (*domain.LedgerEntry, error) {
				assert.Equal(t, domain.EntryKindEscrowRelease, entry.Kind)
				assert.Equal(t, 2, entry.UserID)
				assert.Equal(t, int64(5000), entry.Amount)
				return entry, nil
			})

		assert.NoError(t, service.EscrowRelease(context.Background(), 1, 2, 5000, bountyID))
	})

	t.Run("Refund returns held funds to the poster", func(t *testing.T) {
		service, repo, txManager := NewMock(t)
		passThroughTx(txManager)
		repo.EXPECT().ApplyDelta(gomock.Any(), 1, int64(5000)).Return(int64(5000), nil)
		repo.EXPECT().ApplyEscrowDelta(gomock.Any(), 1, int64(-5000)).Return(nil)
		repo.EXPECT().CreateEntry(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, entry *domain.LedgerEntry) (*domain.LedgerEntry, error) {
				assert.Equal(t, domain.EntryKindEscrowRefund, entry.Kind)
				assert.Equal(t, int64(5000), entry.Amount)
				return entry, nil
			})

		assert.NoError(t, service.EscrowRefund(context.Background(), 1, 5000, bountyID))
	})

	t.Run("Escrow delta failure aborts every attempt of the hold", func(t *testing.T) {
		service, repo, txManager := NewMock(t)
		passThroughTx(txManager).Times(3)
		repo.EXPECT().ApplyDelta(gomock.Any(), 1, int64(-5000)).Return(int64(0), nil).Times(2)
		repo.EXPECT().ApplyDeltaLocked(gomock.Any(), 1, int64(-5000)).Return(int64(0), nil)
		repo.EXPECT().ApplyEscrowDelta(gomock.Any(), 1, int64(5000)).Return(errors.New("database error")).Times(3)

		assert.Error(t, service.EscrowHold(context.Background(), 1, 5000, bountyID))
	})
}

func TestGetBalance(t *testing.T) {
	tests := []struct {
		name          string
		prepareMock   func(repo *MockLedgerRepo)
		expectedError error
	}{
		{
			name: "Balance returned",
			prepareMock: func(repo *MockLedgerRepo) {
				repo.EXPECT().GetUserBalance(gomock.Any(), 1).Return(&domain.Balance{UserID: 1, CurrentBalance: 1000}, nil)
			},
		},
		{
			name: "Missing balance",
			prepareMock: func(repo *MockLedgerRepo) {
				repo.EXPECT().GetUserBalance(gomock.Any(), 1).Return(nil, nil)
			},
			expectedError: ErrBalanceNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo, _ := NewMock(t)
			tt.prepareMock(repo)

			balance, err := service.GetBalance(context.Background(), 1)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, balance)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, balance)
			}
		})
	}
}
