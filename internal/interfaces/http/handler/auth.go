package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	identityapp "github.com/stockroom/backoffice/internal/application/identity"
	"github.com/stockroom/backoffice/internal/interfaces/http/middleware"
)

type authService interface {
	Login(ctx context.Context, input identityapp.LoginInput) (*identityapp.LoginResult, error)
	Logout(ctx context.Context, input identityapp.LogoutInput) error
	CurrentUser(ctx context.Context, tenantID, userID uuid.UUID) (*identityapp.UserResponse, error)
}

// LoginRequest is the body of POST /api/auth/login.
// Login accepts a username or an email address.
type LoginRequest struct {
	Login    string `json:"login" binding:"required,max=200"`
	Password string `json:"password" binding:"required,max=128"`
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService authService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService authService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), identityapp.LoginInput{
		Login:    req.Login,
		Password: req.Password,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Logout handles POST /api/auth/logout by revoking the presented token
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.HandleError(c, errMissingTenant)
		return
	}
	tenantID, err := claims.GetTenantUUID()
	if err != nil {
		h.HandleError(c, errMissingTenant)
		return
	}
	userID, err := claims.GetUserUUID()
	if err != nil {
		h.HandleError(c, errMissingTenant)
		return
	}

	err = h.authService.Logout(c.Request.Context(), identityapp.LogoutInput{
		TenantID: tenantID,
		UserID:   userID,
		JTI:      claims.ID,
		TTL:      claims.GetRemainingTTL(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, nil)
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
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

	user, err := h.authService.CurrentUser(c.Request.Context(), tenantID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}
