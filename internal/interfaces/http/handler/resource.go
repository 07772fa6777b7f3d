package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stockroom/backoffice/internal/domain/shared"
	"github.com/stockroom/backoffice/internal/interfaces/http/dto"
)

// resourceReader is the read side shared by every tenant-scoped service
type resourceReader[Resp any] interface {
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*Resp, error)
	List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Resp, int64, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// resourceService is a CRUD service whose create and update take the same body
type resourceService[Req, Resp any] interface {
	resourceReader[Resp]
	Create(ctx context.Context, tenantID uuid.UUID, req Req) (*Resp, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, req Req) (*Resp, error)
}

// ReadHandler serves list, get and delete for one resource
type ReadHandler[Resp any] struct {
	BaseHandler
	reader resourceReader[Resp]
}

// List handles GET /<resource>
func (h *ReadHandler[Resp]) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindError(c, err)
		return
	}
	filter := q.ToFilter(c)

	items, total, err := h.reader.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if items == nil {
		items = []Resp{}
	}
	h.SuccessList(c, items, total, filter)
}

// GetByID handles GET /<resource>/:id
func (h *ReadHandler[Resp]) GetByID(c *gin.Context) {
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

	item, err := h.reader.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Delete handles DELETE /<resource>/:id
func (h *ReadHandler[Resp]) Delete(c *gin.Context) {
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

	if err := h.reader.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"_id": id})
}

// ResourceHandler serves the full CRUD surface of one resource
type ResourceHandler[Req, Resp any] struct {
	ReadHandler[Resp]
	service resourceService[Req, Resp]
}

// NewResourceHandler creates a CRUD handler over service
func NewResourceHandler[Req, Resp any](service resourceService[Req, Resp]) *ResourceHandler[Req, Resp] {
	return &ResourceHandler[Req, Resp]{
		ReadHandler: ReadHandler[Resp]{reader: service},
		service:     service,
	}
}

// Create handles POST /<resource>
func (h *ResourceHandler[Req, Resp]) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req Req
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	item, err := h.service.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// Update handles PUT /<resource>/:id
func (h *ResourceHandler[Req, Resp]) Update(c *gin.Context) {
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

	var req Req
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	item, err := h.service.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}
