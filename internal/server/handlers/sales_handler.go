package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/butcher/internal/domain/models"
)

// SalesService is the part of the core used by the order endpoints.
type SalesService interface {
	RecordSale(ctx context.Context, customerName string, cart []models.CartLine) (models.SaleOrder, error)
	ListOrders(ctx context.Context) ([]models.SaleOrder, error)
}

// SalesHandler serves the order endpoints.
type SalesHandler struct {
	svc    SalesService
	logger *zap.Logger
}

// NewSalesHandler constructs the HTTP handler adapter.
func NewSalesHandler(svc SalesService, logger *zap.Logger) *SalesHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SalesHandler{svc: svc, logger: logger}
}

type orderRequest struct {
	CustomerName string            `json:"customerName" binding:"required"`
	Items        []models.CartLine `json:"items" binding:"required,min=1,dive"`
}

// CreateOrder records a sale and decrements the stock of its cuts.
func (h *SalesHandler) CreateOrder(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, h.logger, err)
		return
	}

	order, err := h.svc.RecordSale(c.Request.Context(), req.CustomerName, req.Items)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// ListOrders returns the sales history, newest first.
func (h *SalesHandler) ListOrders(c *gin.Context) {
	orders, err := h.svc.ListOrders(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}
