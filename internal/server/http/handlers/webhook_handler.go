package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/andinaft/bakeryd/internal/server/http/dto"
)

// WebhookHandler receives payment gateway notifications.
type WebhookHandler struct {
	facade WebhookFacade
}

// NewWebhookHandler constructs WebhookHandler.
func NewWebhookHandler(facade WebhookFacade) *WebhookHandler {
	return &WebhookHandler{facade: facade}
}

// Notify handles POST /api/payments/notifications. The gateway retries on
// anything but 2xx, so ignored notifications still answer 200.
func (h *WebhookHandler) Notify(c *gin.Context) {
	var req dto.PaymentNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.ProcessPaymentNotification(c.Request.Context(), req.ToModel()); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
