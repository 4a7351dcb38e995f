package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/elevate-careers-api/internal/service"
	appErrors "github.com/noah-isme/elevate-careers-api/pkg/errors"
	"github.com/noah-isme/elevate-careers-api/pkg/paystack"
	"github.com/noah-isme/elevate-careers-api/pkg/response"
)

// WebhookHandler receives gateway webhook deliveries. The signature is
// verified over the exact raw body bytes before anything is parsed; an
// unauthenticated delivery gets a bare 401 with no detail.
type WebhookHandler struct {
	payments *service.PaymentService
	secret   string
	logger   *zap.Logger
}

// NewWebhookHandler constructs WebhookHandler.
func NewWebhookHandler(payments *service.PaymentService, secret string, logger *zap.Logger) *WebhookHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookHandler{payments: payments, secret: secret, logger: logger}
}

// Handle godoc
// @Summary Gateway webhook receiver
// @Tags Payments
// @Accept json
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /payments/webhook [post]
func (h *WebhookHandler) Handle(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "failed to read request body"))
		return
	}

	signature := c.GetHeader(paystack.SignatureHeader)
	if !paystack.VerifySignature(h.secret, body, signature) {
		h.logger.Warn("webhook signature rejected", zap.Int("body_bytes", len(body)))
		c.Status(http.StatusUnauthorized)
		return
	}

	event, err := paystack.ParseEvent(body)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid webhook payload"))
		return
	}

	if err := h.payments.HandleWebhookEvent(c.Request.Context(), event); err != nil {
		// A non-nil error asks the gateway to redeliver.
		h.logger.Error("webhook processing failed", zap.String("event", event.Type), zap.Error(err))
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "webhook processing failed"))
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"status": "processed", "event": event.Type}, nil)
}
