package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"expensetracker/internal/store"
)

// NotificationHandler hands pending user-visible notifications to the client
type NotificationHandler struct {
	sessions SessionProvider
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(sessions SessionProvider) *NotificationHandler {
	return &NotificationHandler{sessions: sessions}
}

// NotificationListResponse lists drained notifications, oldest first
type NotificationListResponse struct {
	Notifications []store.Notification `json:"notifications"`
}

// DrainNotifications handles fetching and clearing pending notifications
// @Summary     Drain notifications
// @Description Return pending notifications about failed operations and clear them
// @Tags        notifications
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} NotificationListResponse "Notifications"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /notifications [get]
func (h *NotificationHandler) DrainNotifications(c *gin.Context) {
	s, err := sessionFor(c, h.sessions)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, NotificationListResponse{Notifications: s.Inbox.Drain()})
}
