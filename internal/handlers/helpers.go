package handlers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/ledger"
	"expensetracker/internal/logger"
	"expensetracker/internal/middleware"
	"expensetracker/internal/session"
	"expensetracker/internal/uuid"
)

// SessionProvider opens, looks up and closes per-user sessions.
type SessionProvider interface {
	Open(ctx context.Context, userID string) (*session.Session, error)
	Ensure(ctx context.Context, userID string) (*session.Session, error)
	Close(ctx context.Context, userID string) error
	HandleAuthEvent(ctx context.Context, e session.AuthEvent) error
}

var _ SessionProvider = (*session.Manager)(nil)

// Converter converts amounts into the display currency and formats them.
type Converter interface {
	ledger.Converter
	Format(amount decimal.Decimal, code string) string
}

// Clock returns the current time. Date-range windows are computed against it.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (string, error) {
	userID := c.GetString(middleware.UserIDKey)
	if userID == "" {
		return "", apperrors.ErrUnauthorized
	}
	return userID, nil
}

// sessionFor returns the caller's session, opening it on first use.
func sessionFor(c *gin.Context, sessions SessionProvider) (*session.Session, error) {
	userID, err := getUserID(c)
	if err != nil {
		return nil, err
	}
	return sessions.Ensure(c.Request.Context(), userID)
}

// parsePathID reads a transaction id path parameter. Temporary ids are
// accepted so the store can report them as pending.
func parsePathID(c *gin.Context, param string) (string, error) {
	id := strings.TrimSpace(c.Param(param))
	if id == "" || (!uuid.IsValid(id) && !uuid.IsTemporary(id)) {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return id, nil
}

// displayCurrency picks the requested currency, falling back to the
// session's selection.
func displayCurrency(requested string, s *session.Session) string {
	if code := strings.ToUpper(strings.TrimSpace(requested)); code != "" {
		return code
	}
	return s.DisplayCurrency()
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrInternalServer.Code,
			"message": apperrors.ErrInternalServer.Message,
		},
	})
}

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// MessageResponse represents a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}
