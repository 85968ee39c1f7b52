package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/bountylab/reconciler/internal/dto"
	"github.com/bountylab/reconciler/internal/metrics"
	"github.com/bountylab/reconciler/pkg/signature"
	"github.com/bountylab/reconciler/pkg/utils"
)

type Service interface {
	Process(ctx context.Context, event dto.PaymentEventDTO) error
}

type WebhookHandler struct {
	eventService Service
	verifier     *signature.Verifier
}

func New(eventService Service, verifier *signature.Verifier) *WebhookHandler {
	return &WebhookHandler{
		eventService: eventService,
		verifier:     verifier,
	}
}

// HandleEvent godoc
//
//	@Summary		Receive a payment processor event
//	@Description	Verify the signature over the raw body, store the event idempotently and dispatch it. Duplicate deliveries and unknown event types are acknowledged with 200.
//	@Tags			Webhook
//	@Accept			json
//	@Produce		json
//	@Param			X-Payment-Signature	header		string				true	"t=<unix>,v1=<hex> signature header"
//	@Param			request				body		dto.PaymentEventDTO	true	"Signed event payload"
//	@Success		200					{string}	string				"Event processed or acknowledged"
//	@Failure		400					{object}	utils.Response		"Signature or envelope invalid"
//	@Failure		500					{object}	utils.Response		"Transient failure, please redeliver"
//	@Router			/api/webhook/payments [post]
func (h *WebhookHandler) HandleEvent(w http.ResponseWriter, r *http.Request) {
	// The signature covers the raw bytes; nothing may be parsed before the
	// body is verified.
	body, err := io.ReadAll(r.Body)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "can't read request body")
		return
	}

	if err := h.verifier.Verify(body, r.Header.Get(signature.Header)); err != nil {
		metrics.SignatureRejections.Inc()
		// Log without payload detail: the body is untrusted and the secret
		// must not leak into logs through error chains.
		zap.L().Warn("rejected webhook delivery", zap.Error(err))
		utils.RespondWithError(w, http.StatusBadRequest, "invalid signature")
		return
	}

	var event dto.PaymentEventDTO
	if err := json.Unmarshal(body, &event); err != nil || event.ID == "" || event.Type == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid event envelope")
		return
	}

	if err := h.eventService.Process(r.Context(), event); err != nil {
		// 5xx signals the processor to redeliver later.
		utils.RespondWithError(w, http.StatusInternalServerError, "event processing failed")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, "accepted")
}
