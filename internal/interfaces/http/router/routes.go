package router

import (
	"github.com/gin-gonic/gin"
	"github.com/stockroom/backoffice/internal/interfaces/http/handler"
)

// crudHandler is the handler surface of one CRUD resource
type crudHandler interface {
	List(c *gin.Context)
	GetByID(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

// Handlers bundles every API handler
type Handlers struct {
	Auth       *handler.AuthHandler
	Categories crudHandler
	Brands     crudHandler
	Firms      crudHandler
	Products   crudHandler
	Sells      crudHandler
	Purchases  crudHandler
	Users      crudHandler
	Reports    *handler.ReportHandler
}

// resource registers the five CRUD routes of h under prefix
func resource(name, prefix string, h crudHandler, write ...gin.HandlerFunc) *DomainGroup {
	with := func(fn gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, write...), fn)
	}
	return NewDomainGroup(name, prefix).
		GET("", h.List).
		POST("", with(h.Create)...).
		GET("/:id", h.GetByID).
		PUT("/:id", with(h.Update)...).
		DELETE("/:id", with(h.Delete)...)
}

// APIGroups builds the route groups of the back-office API.
// adminOnly guards user management writes.
func APIGroups(h Handlers, adminOnly gin.HandlerFunc) []RouteRegistrar {
	auth := NewDomainGroup("auth", "/auth").
		POST("/login", h.Auth.Login).
		POST("/logout", h.Auth.Logout).
		GET("/me", h.Auth.Me)

	categories := resource("categories", "/categories", h.Categories)
	categories.GET("/:id/summary", h.Reports.CategorySummary)

	// the literal /rollup segment takes precedence over /:id in gin's tree
	sells := resource("sells", "/sells", h.Sells)
	sells.GET("/rollup", h.Reports.SellRollup)

	var adminMiddleware []gin.HandlerFunc
	if adminOnly != nil {
		adminMiddleware = append(adminMiddleware, adminOnly)
	}

	return []RouteRegistrar{
		auth,
		categories,
		resource("brands", "/brands", h.Brands),
		resource("firms", "/firms", h.Firms),
		resource("products", "/products", h.Products),
		sells,
		resource("purchases", "/purchases", h.Purchases),
		resource("users", "/users", h.Users, adminMiddleware...),
	}
}
