// README: Cross-actor update handlers: post update, order timeline, known types.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AdityaBS04/GrabHackProper-sub001/internal/modules/updates"
)

type UpdatePoster interface {
	Post(ctx context.Context, req updates.Request) (*updates.Update, error)
	Timeline(ctx context.Context, orderID string) ([]*updates.Update, error)
}

type UpdateHandler struct {
	updates UpdatePoster
}

func NewUpdateHandler(svc UpdatePoster) *UpdateHandler {
	return &UpdateHandler{updates: svc}
}

type postUpdateReq struct {
	OrderID       string         `json:"order_id"`
	ActorType     string         `json:"actor_type"`
	ActorUsername string         `json:"actor_username"`
	UpdateType    string         `json:"update_type"`
	Details       map[string]any `json:"details"`
}

func (h *UpdateHandler) Post(c *gin.Context) {
	var req postUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.OrderID == "" || req.ActorType == "" || req.ActorUsername == "" || req.UpdateType == "" {
		writeError(c, http.StatusBadRequest, "missing fields")
		return
	}

	u, err := h.updates.Post(c.Request.Context(), updates.Request{
		OrderID:       req.OrderID,
		ActorType:     req.ActorType,
		ActorUsername: req.ActorUsername,
		UpdateType:    req.UpdateType,
		Details:       req.Details,
	})
	if err != nil {
		writeUpdateError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"update_id":       u.ID,
		"description":     u.Description,
		"affected_actors": u.AffectedActors,
	})
}

type timelineEntry struct {
	ActorType     string         `json:"actor_type"`
	ActorUsername string         `json:"actor_username"`
	UpdateType    string         `json:"update_type"`
	Description   string         `json:"description"`
	Details       map[string]any `json:"details"`
	Timestamp     string         `json:"timestamp"`
}

func (h *UpdateHandler) Timeline(c *gin.Context) {
	orderID := c.Param("order_id")
	if orderID == "" {
		writeError(c, http.StatusBadRequest, "missing order id")
		return
	}

	timeline, err := h.updates.Timeline(c.Request.Context(), orderID)
	if err != nil {
		writeUpdateError(c, err)
		return
	}

	out := make([]timelineEntry, 0, len(timeline))
	for _, u := range timeline {
		out = append(out, timelineEntry{
			ActorType:     u.ActorType,
			ActorUsername: u.ActorUsername,
			UpdateType:    u.UpdateType,
			Description:   u.Description,
			Details:       u.Details,
			Timestamp:     u.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}
	c.JSON(http.StatusOK, gin.H{"order_id": orderID, "timeline": out})
}

func (h *UpdateHandler) Types(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"update_types": updates.KnownTypes()})
}
