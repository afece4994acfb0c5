package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/session"
)

// WebhookHandler receives session-change notifications from the auth backend
type WebhookHandler struct {
	sessions SessionProvider
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(sessions SessionProvider) *WebhookHandler {
	return &WebhookHandler{sessions: sessions}
}

// AuthEvent handles a session-change notification
// @Summary     Auth session event
// @Description SIGNED_IN opens a session, SIGNED_OUT and USER_DELETED close it, other events are ignored
// @Tags        webhooks
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       request body session.AuthEvent true "Event"
// @Success     202 {object} MessageResponse "Accepted"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Router      /webhooks/auth [post]
func (h *WebhookHandler) AuthEvent(c *gin.Context) {
	var event session.AuthEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.sessions.HandleAuthEvent(c.Request.Context(), event); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "Event accepted"})
}
