// README: Order handlers: list per actor, get, status transition.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AdityaBS04/GrabHackProper-sub001/internal/modules/order"
)

type OrderReader interface {
	Get(ctx context.Context, id string) (*order.Order, error)
	ListFor(ctx context.Context, userType, username string) ([]*order.Order, error)
	UpdateStatus(ctx context.Context, id string, from, to order.Status) error
}

type OrderHandler struct {
	orders OrderReader
}

func NewOrderHandler(store OrderReader) *OrderHandler {
	return &OrderHandler{orders: store}
}

type orderEntry struct {
	ID             string  `json:"id"`
	Service        string  `json:"service"`
	Status         string  `json:"status"`
	Price          float64 `json:"price"`
	StartAddress   string  `json:"start_address,omitempty"`
	EndAddress     string  `json:"end_address,omitempty"`
	RestaurantName string  `json:"restaurant_name,omitempty"`
	Items          string  `json:"items,omitempty"`
	PaymentMethod  string  `json:"payment_method,omitempty"`
	UpdateCount    int     `json:"update_count"`
	LastRemarks    string  `json:"current_status_remarks,omitempty"`
}

func toEntry(o *order.Order) orderEntry {
	return orderEntry{
		ID:             o.ID,
		Service:        o.Service,
		Status:         string(o.Status),
		Price:          o.Price,
		StartAddress:   o.StartAddress,
		EndAddress:     o.EndAddress,
		RestaurantName: o.RestaurantName,
		Items:          o.Items,
		PaymentMethod:  o.PaymentMethod,
		UpdateCount:    o.UpdateCount,
		LastRemarks:    o.CurrentStatusRemarks,
	}
}

func (h *OrderHandler) List(c *gin.Context) {
	userType := c.Param("user_type")
	username := c.Param("username")

	orders, err := h.orders.ListFor(c.Request.Context(), userType, username)
	if err != nil {
		writeOrderError(c, err)
		return
	}

	out := make([]orderEntry, 0, len(orders))
	for _, o := range orders {
		out = append(out, toEntry(o))
	}
	c.JSON(http.StatusOK, gin.H{"orders": out})
}

func (h *OrderHandler) Get(c *gin.Context) {
	o, err := h.orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, toEntry(o))
}

type statusReq struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req statusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.From == "" || req.To == "" {
		writeError(c, http.StatusBadRequest, "missing fields")
		return
	}
	err := h.orders.UpdateStatus(c.Request.Context(), c.Param("id"), order.Status(req.From), order.Status(req.To))
	if err != nil {
		writeOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": req.To})
}
