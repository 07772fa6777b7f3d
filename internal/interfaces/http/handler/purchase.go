package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	ledgerapp "github.com/stockroom/backoffice/internal/application/ledger"
)

type purchaseService interface {
	resourceReader[ledgerapp.PurchaseResponse]
	Create(ctx context.Context, tenantID, userID uuid.UUID, req ledgerapp.PurchaseRequest) (*ledgerapp.PurchaseResponse, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, req ledgerapp.PurchaseRequest) (*ledgerapp.PurchaseResponse, error)
}

// PurchaseHandler serves /api/purchases. Create records the caller as the purchaser.
type PurchaseHandler struct {
	ReadHandler[ledgerapp.PurchaseResponse]
	service purchaseService
}

// NewPurchaseHandler creates a new PurchaseHandler
func NewPurchaseHandler(service purchaseService) *PurchaseHandler {
	return &PurchaseHandler{
		ReadHandler: ReadHandler[ledgerapp.PurchaseResponse]{reader: service},
		service:     service,
	}
}

// Create handles POST /api/purchases
func (h *PurchaseHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	userID, err := getUserID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req ledgerapp.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	purchase, err := h.service.Create(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, purchase)
}

// Update handles PUT /api/purchases/:id
func (h *PurchaseHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	id, err := pathID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req ledgerapp.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	purchase, err := h.service.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, purchase)
}
