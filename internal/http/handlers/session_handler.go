// README: Conversation session handlers.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AdityaBS04/GrabHackProper-sub001/internal/modules/session"
	"github.com/AdityaBS04/GrabHackProper-sub001/internal/types"
)

type SessionStore interface {
	Create(ctx context.Context, sc session.Context) (string, error)
	Get(ctx context.Context, token string) (*session.Context, error)
	Update(ctx context.Context, token string, sc session.Context) error
	Delete(ctx context.Context, token string) error
}

type SessionHandler struct {
	sessions SessionStore
}

func NewSessionHandler(store SessionStore) *SessionHandler {
	return &SessionHandler{sessions: store}
}

type sessionReq struct {
	Username string `json:"username"`
	Service  string `json:"service"`
	UserType string `json:"user_type"`
	SubIssue string `json:"sub_issue"`
	OrderID  string `json:"order_id"`
}

func (r sessionReq) toContext() session.Context {
	return session.Context{
		Username: r.Username,
		Service:  types.Service(r.Service),
		Role:     types.ActorRole(r.UserType),
		SubIssue: r.SubIssue,
		OrderID:  r.OrderID,
	}
}

func (h *SessionHandler) Create(c *gin.Context) {
	var req sessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Username == "" || req.Service == "" || req.UserType == "" {
		writeError(c, http.StatusBadRequest, "missing fields")
		return
	}

	token, err := h.sessions.Create(c.Request.Context(), req.toContext())
	if err != nil {
		writeSessionError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"session_token": token})
}

func (h *SessionHandler) Get(c *gin.Context) {
	sc, err := h.sessions.Get(c.Request.Context(), c.Param("token"))
	if err != nil {
		writeSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"username":  sc.Username,
		"service":   sc.Service,
		"user_type": sc.Role,
		"sub_issue": sc.SubIssue,
		"order_id":  sc.OrderID,
	})
}

func (h *SessionHandler) Update(c *gin.Context) {
	var req sessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.sessions.Update(c.Request.Context(), c.Param("token"), req.toContext()); err != nil {
		writeSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func (h *SessionHandler) Delete(c *gin.Context) {
	if err := h.sessions.Delete(c.Request.Context(), c.Param("token")); err != nil {
		writeSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
