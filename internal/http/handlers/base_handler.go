// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AdityaBS04/GrabHackProper-sub001/internal/modules/complaint"
	"github.com/AdityaBS04/GrabHackProper-sub001/internal/modules/order"
	"github.com/AdityaBS04/GrabHackProper-sub001/internal/modules/session"
	"github.com/AdityaBS04/GrabHackProper-sub001/internal/modules/updates"
	"github.com/AdityaBS04/GrabHackProper-sub001/internal/modules/user"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(c *gin.Context, status int, msg string) {
	c.JSON(status, errorResponse{Error: msg})
}

func writeComplaintError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, complaint.ErrValidation), errors.Is(err, complaint.ErrUnknownRoute):
		writeError(c, http.StatusBadRequest, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func writeUpdateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, updates.ErrUnknownType):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, updates.ErrRateLimited), errors.Is(err, updates.ErrDuplicate):
		writeError(c, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, updates.ErrOrderMissing), errors.Is(err, updates.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func writeOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, order.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, order.ErrInvalidTransition):
		writeError(c, http.StatusConflict, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func writeSessionError(c *gin.Context, err error) {
	if errors.Is(err, session.ErrNotFound) {
		writeError(c, http.StatusNotFound, err.Error())
		return
	}
	writeError(c, http.StatusInternalServerError, "internal error")
}

func writeAuthError(c *gin.Context, err error) {
	if errors.Is(err, user.ErrInvalidCredentials) {
		writeError(c, http.StatusUnauthorized, err.Error())
		return
	}
	writeError(c, http.StatusInternalServerError, "internal error")
}
