package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	_ "github.com/bountylab/reconciler/docs"
	"github.com/bountylab/reconciler/internal/handlers/balance"
	"github.com/bountylab/reconciler/internal/handlers/bounty"
	"github.com/bountylab/reconciler/internal/handlers/webhook"
	"github.com/bountylab/reconciler/internal/service"
	"github.com/bountylab/reconciler/pkg/signature"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	services := &service.Services{
		EventService:   webhook.NewMockService(ctrl),
		BountyService:  bounty.NewMockService(ctrl),
		BalanceService: balance.NewMockService(ctrl),
	}

	h := New(services, signature.NewVerifier("whsec_test"))
	assert.NotNil(t, h, "Handlers should not be nil")
}

func TestInitRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWebhookHandler := NewMockWebhookHandler(ctrl)
	mockBountyHandler := NewMockBountyHandler(ctrl)
	mockBalanceHandler := NewMockBalanceHandler(ctrl)

	mockWebhookHandler.EXPECT().HandleEvent(gomock.Any(), gomock.Any()).AnyTimes()
	mockBountyHandler.EXPECT().Create(gomock.Any(), gomock.Any()).AnyTimes()
	mockBountyHandler.EXPECT().Get(gomock.Any(), gomock.Any()).AnyTimes()
	mockBountyHandler.EXPECT().Accept(gomock.Any(), gomock.Any()).AnyTimes()
	mockBountyHandler.EXPECT().Complete(gomock.Any(), gomock.Any()).AnyTimes()
	mockBountyHandler.EXPECT().Cancel(gomock.Any(), gomock.Any()).AnyTimes()
	mockBalanceHandler.EXPECT().GetBalance(gomock.Any(), gomock.Any()).AnyTimes()
	mockBalanceHandler.EXPECT().Withdraw(gomock.Any(), gomock.Any()).AnyTimes()
	mockBalanceHandler.EXPECT().GetLedger(gomock.Any(), gomock.Any()).AnyTimes()

	h := &Handlers{
		WebhookHandler: mockWebhookHandler,
		BountyHandler:  mockBountyHandler,
		BalanceHandler: mockBalanceHandler,
	}

	router := chi.NewRouter()
	h.InitRoutes(router, time.Second*15)

	tests := []struct {
		method string
		url    string
		status int
	}{
		{"POST", "/api/webhook/payments", http.StatusOK},
		{"POST", "/api/bounty", http.StatusUnauthorized},
		{"GET", "/api/bounty/5c9f0f3e-9d3c-4a52-8a4e-2f9b1a6d7c10", http.StatusUnauthorized},
		{"POST", "/api/bounty/5c9f0f3e-9d3c-4a52-8a4e-2f9b1a6d7c10/accept", http.StatusUnauthorized},
		{"POST", "/api/bounty/5c9f0f3e-9d3c-4a52-8a4e-2f9b1a6d7c10/complete", http.StatusUnauthorized},
		{"POST", "/api/bounty/5c9f0f3e-9d3c-4a52-8a4e-2f9b1a6d7c10/cancel", http.StatusUnauthorized},
		{"GET", "/api/user/balance", http.StatusUnauthorized},
		{"POST", "/api/user/balance/withdraw", http.StatusUnauthorized},
		{"GET", "/api/user/ledger", http.StatusUnauthorized},
		{"GET", "/metrics", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.url, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
