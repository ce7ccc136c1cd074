// README: Login handler with role auto-detection.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AdityaBS04/GrabHackProper-sub001/internal/modules/user"
)

type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*user.User, error)
}

type AuthHandler struct {
	users Authenticator
}

func NewAuthHandler(users Authenticator) *AuthHandler {
	return &AuthHandler{users: users}
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(c, http.StatusBadRequest, "missing credentials")
		return
	}

	u, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username":          u.Username,
		"user_type":         u.UserType,
		"credibility_score": u.CredibilityScore,
		"services":          user.ServicesFor(u.UserType),
	})
}
