// README: Actor notification handlers: list and mark read.
package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AdityaBS04/GrabHackProper-sub001/internal/modules/updates"
)

type NotificationReader interface {
	NotificationsFor(ctx context.Context, targetType, username string, unreadOnly bool) ([]*updates.Notification, error)
	MarkRead(ctx context.Context, id int64) error
}

type NotificationHandler struct {
	updates NotificationReader
}

func NewNotificationHandler(svc NotificationReader) *NotificationHandler {
	return &NotificationHandler{updates: svc}
}

type notificationEntry struct {
	ID        int64  `json:"id"`
	OrderID   string `json:"order_id"`
	Type      string `json:"type"`
	Message   string `json:"message"`
	Read      bool   `json:"is_read"`
	CreatedAt string `json:"created_at"`
}

func (h *NotificationHandler) List(c *gin.Context) {
	actorType := c.Param("actor_type")
	username := c.Param("username")
	unreadOnly := c.Query("unread") == "1"

	notifs, err := h.updates.NotificationsFor(c.Request.Context(), actorType, username, unreadOnly)
	if err != nil {
		writeUpdateError(c, err)
		return
	}

	out := make([]notificationEntry, 0, len(notifs))
	for _, n := range notifs {
		out = append(out, notificationEntry{
			ID:        n.ID,
			OrderID:   n.OrderID,
			Type:      n.Type,
			Message:   n.Message,
			Read:      n.Read,
			CreatedAt: n.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}
	c.JSON(http.StatusOK, gin.H{"notifications": out, "unread_only": unreadOnly})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid notification id")
		return
	}
	if err := h.updates.MarkRead(c.Request.Context(), id); err != nil {
		writeUpdateError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "read"})
}
