// README: Complaint submission handler.
package handlers

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/AdityaBS04/GrabHackProper-sub001/internal/modules/complaint"
	"github.com/AdityaBS04/GrabHackProper-sub001/internal/types"
)

type ComplaintSubmitter interface {
	Submit(ctx context.Context, sub complaint.Submission) (*complaint.Resolution, error)
}

type ComplaintHandler struct {
	complaints ComplaintSubmitter
}

func NewComplaintHandler(svc ComplaintSubmitter) *ComplaintHandler {
	return &ComplaintHandler{complaints: svc}
}

type complaintReq struct {
	Service     string `json:"service"`
	UserType    string `json:"user_type"`
	Username    string `json:"username"`
	Category    string `json:"category"`
	SubIssue    string `json:"sub_issue"`
	Description string `json:"description"`
	// ImageData is base64, with or without a data-URL prefix.
	ImageData    string `json:"image_data"`
	OrderID      string `json:"order_id"`
	SessionToken string `json:"session_token"`
}

type complaintResp struct {
	Outcome     string  `json:"outcome"`
	Message     string  `json:"message"`
	Tier        string  `json:"tier,omitempty"`
	Amount      float64 `json:"amount,omitempty"`
	Currency    string  `json:"currency,omitempty"`
	Credibility int     `json:"credibility_score,omitempty"`
	ComplaintID int64   `json:"complaint_id,omitempty"`
	Reference   string  `json:"reference,omitempty"`
	Recorded    bool    `json:"recorded"`
}

func (h *ComplaintHandler) Submit(c *gin.Context) {
	var req complaintReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	image, err := decodeImage(req.ImageData)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid image data")
		return
	}

	if req.SessionToken == "" {
		req.SessionToken = c.GetHeader("X-Session-Token")
	}

	res, err := h.complaints.Submit(c.Request.Context(), complaint.Submission{
		Service:      types.Service(req.Service),
		Role:         types.ActorRole(req.UserType),
		Username:     req.Username,
		Category:     req.Category,
		SubIssue:     req.SubIssue,
		Description:  req.Description,
		ImageData:    image,
		OrderID:      req.OrderID,
		SessionToken: req.SessionToken,
	})
	recorded := true
	if err != nil {
		if !errors.Is(err, complaint.ErrNotRecorded) {
			writeComplaintError(c, err)
			return
		}
		recorded = false
	}

	resp := complaintResp{
		Outcome:     string(res.Kind),
		Message:     res.Message,
		Tier:        string(res.Tier),
		Credibility: res.Credibility,
		ComplaintID: res.ComplaintID,
		Reference:   res.Reference,
		Recorded:    recorded,
	}
	if res.Compensation.Amount > 0 {
		resp.Amount = float64(res.Compensation.Amount) / 100
		resp.Currency = res.Compensation.Currency
	}
	c.JSON(http.StatusOK, resp)
}

// decodeImage accepts raw base64 or a data URL; empty input means no image.
func decodeImage(data string) ([]byte, error) {
	if data == "" {
		return nil, nil
	}
	if i := strings.Index(data, "base64,"); i >= 0 {
		data = data[i+len("base64,"):]
	}
	return base64.StdEncoding.DecodeString(data)
}
