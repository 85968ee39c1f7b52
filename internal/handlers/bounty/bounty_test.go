package bounty

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/bountylab/reconciler/internal/domain"
	"github.com/bountylab/reconciler/internal/dto"
	"github.com/bountylab/reconciler/internal/service/bountyservice"
	"github.com/bountylab/reconciler/pkg/auth"
)

func NewMock(t *testing.T) (*BountyHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func request(method, target, body, pathID string) *http.Request {
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, target, bytes.NewBufferString(body))
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	ctx := context.WithValue(context.Background(), auth.UserIDKey, 1)
	if pathID != "" {
		routeCtx := chi.NewRouteContext()
		routeCtx.URLParams.Add("id", pathID)
		ctx = context.WithValue(ctx, chi.RouteCtxKey, routeCtx)
	}
	return r.WithContext(ctx)
}

func TestCreateHandler(t *testing.T) {
	handler, service := NewMock(t)
	bountyID := uuid.New()

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Bounty created",
			body: `{"amount":5000}`,
			prepareMock: func() {
				service.EXPECT().CreateBounty(gomock.Any(), 1, int64(5000)).
					Return(&domain.Bounty{ID: bountyID, PosterID: 1, Amount: 5000, Status: domain.BountyStatusOpen, EscrowState: domain.EscrowStateNone}, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "Invalid request body",
			body:         `{"amount":}`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Non-positive amount",
			body: `{"amount":0}`,
			prepareMock: func() {
				service.EXPECT().CreateBounty(gomock.Any(), 1, int64(0)).
					Return(nil, bountyservice.ErrInvalidAmount)
			},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name: "Internal server error",
			body: `{"amount":5000}`,
			prepareMock: func() {
				service.EXPECT().CreateBounty(gomock.Any(), 1, int64(5000)).
					Return(nil, errors.New("error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := request(http.MethodPost, "/api/bounty", tt.body, "")
			w := httptest.NewRecorder()
			handler.Create(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusCreated {
				var body dto.BountyResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Equal(t, bountyID.String(), body.ID)
				assert.Equal(t, domain.BountyStatusOpen, body.Status)
			}
		})
	}
}

func TestGetHandler(t *testing.T) {
	handler, service := NewMock(t)
	bountyID := uuid.New()

	tests := []struct {
		name         string
		pathID       string
		prepareMock  func()
		expectedCode int
	}{
		{
			name:   "Bounty found",
			pathID: bountyID.String(),
			prepareMock: func() {
				service.EXPECT().GetBounty(gomock.Any(), bountyID).
					Return(&domain.Bounty{ID: bountyID, PosterID: 1, Amount: 5000, Status: domain.BountyStatusOpen, EscrowState: domain.EscrowStateNone}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:   "Bounty not found",
			pathID: bountyID.String(),
			prepareMock: func() {
				service.EXPECT().GetBounty(gomock.Any(), bountyID).
					Return(nil, bountyservice.ErrBountyNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "Malformed bounty id",
			pathID:       "not-a-uuid",
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := request(http.MethodGet, "/api/bounty/"+tt.pathID, "", tt.pathID)
			w := httptest.NewRecorder()
			handler.Get(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestTransitionHandlers(t *testing.T) {
	handler, service := NewMock(t)
	bountyID := uuid.New()

	tests := []struct {
		name         string
		handlerFunc  func(http.ResponseWriter, *http.Request)
		pathID       string
		prepareMock  func()
		expectedCode int
	}{
		{
			name:        "Accept assigns the worker",
			handlerFunc: handler.Accept,
			pathID:      bountyID.String(),
			prepareMock: func() {
				service.EXPECT().AcceptBounty(gomock.Any(), bountyID, 1).Return(nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:        "Accept on a non-open bounty",
			handlerFunc: handler.Accept,
			pathID:      bountyID.String(),
			prepareMock: func() {
				service.EXPECT().AcceptBounty(gomock.Any(), bountyID, 1).
					Return(bountyservice.ErrInvalidBountyStatus)
			},
			expectedCode: http.StatusConflict,
		},
		{
			name:        "Complete releases escrow",
			handlerFunc: handler.Complete,
			pathID:      bountyID.String(),
			prepareMock: func() {
				service.EXPECT().CompleteBounty(gomock.Any(), bountyID).Return(nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:        "Complete on an unknown bounty",
			handlerFunc: handler.Complete,
			pathID:      bountyID.String(),
			prepareMock: func() {
				service.EXPECT().CompleteBounty(gomock.Any(), bountyID).
					Return(bountyservice.ErrBountyNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:        "Cancel an open bounty",
			handlerFunc: handler.Cancel,
			pathID:      bountyID.String(),
			prepareMock: func() {
				service.EXPECT().CancelBounty(gomock.Any(), bountyID).Return(nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:        "Cancel a finished bounty",
			handlerFunc: handler.Cancel,
			pathID:      bountyID.String(),
			prepareMock: func() {
				service.EXPECT().CancelBounty(gomock.Any(), bountyID).
					Return(bountyservice.ErrInvalidBountyStatus)
			},
			expectedCode: http.StatusConflict,
		},
		{
			name:         "Malformed bounty id",
			handlerFunc:  handler.Accept,
			pathID:       "42",
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := request(http.MethodPost, "/api/bounty/"+tt.pathID+"/accept", "", tt.pathID)
			w := httptest.NewRecorder()
			tt.handlerFunc(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}
