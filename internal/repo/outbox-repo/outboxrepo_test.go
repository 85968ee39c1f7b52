package outboxrepo

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"

	"github.com/bountylab/reconciler/internal/domain"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	id := uuid.New()
	payload := json.RawMessage(`{"bounty_id":"x"}`)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Outbox row written",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "type", "payload", "status", "retry_count", "next_attempt_at", "last_error", "created_at", "processed_at"}).
					AddRow(id, domain.EventBountyAccepted, payload, domain.OutboxStatusPending, 0, time.Now(), "", time.Now(), nil)
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO outbox_events`)).
					WithArgs(id, domain.EventBountyAccepted, payload).
					WillReturnRows(rows)
			},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO outbox_events`)).
					WithArgs(id, domain.EventBountyAccepted, payload).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			event, err := repo.Create(context.Background(), id, domain.EventBountyAccepted, payload)

			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, event)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, event)
				assert.Equal(t, id, event.ID)
				assert.Equal(t, domain.OutboxStatusPending, event.Status)
			}
		})
	}
}

func TestRepository_ClaimBatch(t *testing.T) {
	repo, mock := NewMock(t)
	id := uuid.New()
	payload := json.RawMessage(`{}`)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		count     int
	}{
		{
			name: "Due rows claimed",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "type", "payload", "status", "retry_count", "next_attempt_at", "last_error", "created_at", "processed_at"}).
					AddRow(id, domain.EventBountyAccepted, payload, domain.OutboxStatusProcessing, 0, time.Now(), "", time.Now(), nil)
				mock.ExpectQuery(regexp.QuoteMeta(`UPDATE outbox_events`)).
					WithArgs(100, 5, float64(300)).
					WillReturnRows(rows)
			},
			count: 1,
		},
		{
			name: "Row stranded by a dead relay is claimed again",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "type", "payload", "status", "retry_count", "next_attempt_at", "last_error", "created_at", "processed_at"}).
					AddRow(id, domain.EventBountyCompleted, payload, domain.OutboxStatusProcessing, 1, time.Now().Add(-10*time.Minute), "", time.Now().Add(-10*time.Minute), nil)
				mock.ExpectQuery(regexp.QuoteMeta(`UPDATE outbox_events`)).
					WithArgs(100, 5, float64(300)).
					WillReturnRows(rows)
			},
			count: 1,
		},
		{
			name: "Nothing due",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "type", "payload", "status", "retry_count", "next_attempt_at", "last_error", "created_at", "processed_at"})
				mock.ExpectQuery(regexp.QuoteMeta(`UPDATE outbox_events`)).
					WithArgs(100, 5, float64(300)).
					WillReturnRows(rows)
			},
			count: 0,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`UPDATE outbox_events`)).
					WithArgs(100, 5, float64(300)).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			events, err := repo.ClaimBatch(context.Background(), 100, 5, 5*time.Minute)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Len(t, events, tt.count)
			}
		})
	}
}

func TestRepository_MarkCompleted(t *testing.T) {
	repo, mock := NewMock(t)
	id := uuid.New()

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Row marked completed",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(`UPDATE outbox_events`)).
					WithArgs(id).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(`UPDATE outbox_events`)).
					WithArgs(id).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := repo.MarkCompleted(context.Background(), id)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRepository_MarkFailed(t *testing.T) {
	repo, mock := NewMock(t)
	id := uuid.New()
	nextAttempt := time.Now().Add(4 * time.Second)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Failure recorded with the next attempt time",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(`UPDATE outbox_events`)).
					WithArgs(id, "dispatch failed", nextAttempt).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(`UPDATE outbox_events`)).
					WithArgs(id, "dispatch failed", nextAttempt).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := repo.MarkFailed(context.Background(), id, "dispatch failed", nextAttempt)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
