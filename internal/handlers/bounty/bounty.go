package bounty

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bountylab/reconciler/internal/domain"
	"github.com/bountylab/reconciler/internal/dto"
	"github.com/bountylab/reconciler/internal/service/bountyservice"
	"github.com/bountylab/reconciler/pkg/auth"
	"github.com/bountylab/reconciler/pkg/utils"
)

type Service interface {
	CreateBounty(ctx context.Context, posterID int, amount int64) (*domain.Bounty, error)
	GetBounty(ctx context.Context, id uuid.UUID) (*domain.Bounty, error)
	AcceptBounty(ctx context.Context, id uuid.UUID, workerID int) error
	CompleteBounty(ctx context.Context, id uuid.UUID) error
	CancelBounty(ctx context.Context, id uuid.UUID) error
}

type BountyHandler struct {
	bountyService Service
}

func New(bountyService Service) *BountyHandler {
	return &BountyHandler{
		bountyService: bountyService,
	}
}

// Create godoc
//
//	@Summary		Post a new bounty
//	@Tags			Bounty
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateBountyRequestDTO	true	"Bounty amount in the smallest currency unit"
//	@Success		201		{object}	dto.BountyResponseDTO		"Created bounty"
//	@Failure		401		{object}	utils.Response				"User not authorized"
//	@Failure		422		{object}	utils.Response				"Invalid amount"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/bounty [post]
func (h *BountyHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.CreateBountyRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	bounty, err := h.bountyService.CreateBounty(r.Context(), userID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, bountyservice.ErrInvalidAmount):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, toResponse(bounty))
}

// Get godoc
//
//	@Summary	Get a bounty
//	@Tags		Bounty
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string					true	"Bounty id"
//	@Success	200	{object}	dto.BountyResponseDTO	"Bounty"
//	@Failure	404	{object}	utils.Response			"Bounty not found"
//	@Router		/api/bounty/{id} [get]
func (h *BountyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := bountyID(w, r)
	if !ok {
		return
	}
	bounty, err := h.bountyService.GetBounty(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toResponse(bounty))
}

// Accept godoc
//
//	@Summary		Accept a bounty
//	@Description	Assign the authenticated user as the worker and transactionally publish a bounty-accepted outbox event that will place the poster's funds in escrow.
//	@Tags			Bounty
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string			true	"Bounty id"
//	@Success		200	{string}	string			"Bounty accepted"
//	@Failure		404	{object}	utils.Response	"Bounty not found"
//	@Failure		409	{object}	utils.Response	"Bounty not open"
//	@Router			/api/bounty/{id}/accept [post]
func (h *BountyHandler) Accept(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)
	id, ok := bountyID(w, r)
	if !ok {
		return
	}
	if err := h.bountyService.AcceptBounty(r.Context(), id, userID); err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, "bounty accepted")
}

// Complete godoc
//
//	@Summary		Complete a bounty
//	@Description	Mark the work verified and transactionally publish a bounty-completed outbox event that will release escrow to the worker.
//	@Tags			Bounty
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string			true	"Bounty id"
//	@Success		200	{string}	string			"Bounty completed"
//	@Failure		404	{object}	utils.Response	"Bounty not found"
//	@Failure		409	{object}	utils.Response	"Bounty not in progress"
//	@Router			/api/bounty/{id}/complete [post]
func (h *BountyHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, ok := bountyID(w, r)
	if !ok {
		return
	}
	if err := h.bountyService.CompleteBounty(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, "bounty completed")
}

// Cancel godoc
//
//	@Summary		Cancel a bounty
//	@Description	Cancel the posting; if escrow is held a bounty-cancelled outbox event refunds it to the poster.
//	@Tags			Bounty
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string			true	"Bounty id"
//	@Success		200	{string}	string			"Bounty cancelled"
//	@Failure		404	{object}	utils.Response	"Bounty not found"
//	@Failure		409	{object}	utils.Response	"Bounty already finished"
//	@Router			/api/bounty/{id}/cancel [post]
func (h *BountyHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := bountyID(w, r)
	if !ok {
		return
	}
	if err := h.bountyService.CancelBounty(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, "bounty cancelled")
}

func bountyID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid bounty id")
		return uuid.Nil, false
	}
	return id, true
}

func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, bountyservice.ErrBountyNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "bounty not found")
	case errors.Is(err, bountyservice.ErrInvalidBountyStatus):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func toResponse(bounty *domain.Bounty) dto.BountyResponseDTO {
	return dto.BountyResponseDTO{
		ID:          bounty.ID.String(),
		PosterID:    bounty.PosterID,
		WorkerID:    bounty.WorkerID,
		Amount:      bounty.Amount,
		Status:      bounty.Status,
		EscrowState: bounty.EscrowState,
		CreatedAt:   bounty.CreatedAt,
	}
}
