// Package handler contains the Gin handlers of the back-office API.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stockroom/backoffice/internal/domain/shared"
	"github.com/stockroom/backoffice/internal/infrastructure/logger"
	"github.com/stockroom/backoffice/internal/interfaces/http/dto"
	"github.com/stockroom/backoffice/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

var (
	errMissingTenant = shared.NewDomainError(shared.CodeUnauthorized, "Authentication required")
	errInvalidID     = shared.Validation("Invalid id")
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getTenantID extracts the tenant ID from JWT claims
func getTenantID(c *gin.Context) (uuid.UUID, error) {
	raw := middleware.GetJWTTenantID(c)
	if raw == "" {
		return uuid.Nil, errMissingTenant
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errMissingTenant
	}
	return id, nil
}

// getUserID extracts the user ID from JWT claims
func getUserID(c *gin.Context) (uuid.UUID, error) {
	raw := middleware.GetJWTUserID(c)
	if raw == "" {
		return uuid.Nil, errMissingTenant
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errMissingTenant
	}
	return id, nil
}

// pathID parses the :id path parameter
func pathID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errInvalidID
	}
	return id, nil
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessList sends a page of results with pagination details
func (h *BaseHandler) SuccessList(c *gin.Context, data any, count int64, filter shared.Filter) {
	c.JSON(http.StatusOK, dto.NewListResponse(data, count, filter.Page, filter.PageSize))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Error sends an error response with the status derived from code
func (h *BaseHandler) Error(c *gin.Context, code, message string) {
	c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

// BindError answers a request whose body or query failed to bind
func (h *BaseHandler) BindError(c *gin.Context, err error) {
	if fields := middleware.ValidationFields(err); len(fields) > 0 {
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
			"Request validation failed", middleware.GetRequestID(c), fields))
		return
	}
	h.Error(c, dto.ErrCodeBadRequest, "Invalid request body")
}

// HandleError converts domain errors to HTTP responses.
// Anything that is not a domain error is logged and reported as "Server error".
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		message := domainErr.Message
		if code == dto.ErrCodeInternal {
			message = dto.ServerErrorMessage
		}
		h.Error(c, code, message)
		return
	}

	logger.L(c.Request.Context()).Error("request failed",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	_ = c.Error(err)
	h.Error(c, dto.ErrCodeInternal, dto.ServerErrorMessage)
}
