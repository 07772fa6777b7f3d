package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	identityapp "github.com/stockroom/backoffice/internal/application/identity"
)

type userService interface {
	resourceReader[identityapp.UserResponse]
	Create(ctx context.Context, tenantID uuid.UUID, req identityapp.CreateUserRequest) (*identityapp.UserResponse, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, req identityapp.UpdateUserRequest) (*identityapp.UserResponse, error)
}

// UserHandler serves /api/users, the team members of a tenant
type UserHandler struct {
	ReadHandler[identityapp.UserResponse]
	service userService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(service userService) *UserHandler {
	return &UserHandler{
		ReadHandler: ReadHandler[identityapp.UserResponse]{reader: service},
		service:     service,
	}
}

// Create handles POST /api/users
func (h *UserHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req identityapp.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	user, err := h.service.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, user)
}

// Update handles PUT /api/users/:id
func (h *UserHandler) Update(c *gin.Context) {
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

	var req identityapp.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	user, err := h.service.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}
