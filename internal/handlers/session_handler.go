package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/session"
)

// SessionHandler handles sign-in, sign-out and session preferences
type SessionHandler struct {
	sessions SessionProvider
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(sessions SessionProvider) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// SessionResponse describes an open session
type SessionResponse struct {
	UserID               string    `json:"user_id"`
	DisplayCurrency      string    `json:"display_currency"`
	OpenedAt             time.Time `json:"opened_at"`
	Loaded               bool      `json:"loaded"`
	TransactionCount     int       `json:"transaction_count"`
	Categories           []string  `json:"categories"`
	PendingNotifications int       `json:"pending_notifications"`
}

// UpdateCurrencyRequest represents the request payload for changing the display currency
type UpdateCurrencyRequest struct {
	Currency string `json:"currency" binding:"required,currency_code" example:"OMR"`
}

func newSessionResponse(s *session.Session, loaded bool) SessionResponse {
	return SessionResponse{
		UserID:               s.UserID,
		DisplayCurrency:      s.DisplayCurrency(),
		OpenedAt:             s.OpenedAt,
		Loaded:               loaded,
		TransactionCount:     len(s.Store.Transactions()),
		Categories:           s.Store.Categories(),
		PendingNotifications: s.Inbox.Len(),
	}
}

// OpenSession handles sign-in
// @Summary     Open a session
// @Description Sign in: load the caller's transactions and categories. A session that is already open is returned as is.
// @Tags        session
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} SessionResponse "Open session"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /session [post]
func (h *SessionHandler) OpenSession(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	s, err := h.sessions.Open(c.Request.Context(), userID)
	if s == nil {
		respondWithError(c, err)
		return
	}

	// A failed load leaves the session open with partial data.
	c.JSON(http.StatusOK, gin.H{"session": newSessionResponse(s, err == nil)})
}

// CloseSession handles sign-out
// @Summary     Close the session
// @Description Sign out and discard the in-memory session state
// @Tags        session
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} MessageResponse "Signed out"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /session [delete]
func (h *SessionHandler) CloseSession(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.sessions.Close(c.Request.Context(), userID); err != nil && !errors.Is(err, apperrors.ErrSessionNotFound) {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Signed out successfully"})
}

// UpdateDisplayCurrency handles changing the session's display currency
// @Summary     Set display currency
// @Tags        session
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UpdateCurrencyRequest true "Currency code"
// @Success     200 {object} SessionResponse "Updated session"
// @Failure     400 {object} ErrorResponse "Unknown currency"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /session/currency [put]
func (h *SessionHandler) UpdateDisplayCurrency(c *gin.Context) {
	s, err := sessionFor(c, h.sessions)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := s.SetDisplayCurrency(req.Currency); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": newSessionResponse(s, true)})
}
