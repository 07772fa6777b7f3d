// Package app assembles the back-office HTTP API: repositories, services,
// handlers and the middleware chain, in the order the server runs them.
package app

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/stockroom/backoffice/internal/application/catalog"
	identityapp "github.com/stockroom/backoffice/internal/application/identity"
	ledgerapp "github.com/stockroom/backoffice/internal/application/ledger"
	reportapp "github.com/stockroom/backoffice/internal/application/report"
	"github.com/stockroom/backoffice/internal/infrastructure/auth"
	"github.com/stockroom/backoffice/internal/infrastructure/config"
	"github.com/stockroom/backoffice/internal/infrastructure/logger"
	"github.com/stockroom/backoffice/internal/infrastructure/persistence"
	"github.com/stockroom/backoffice/internal/infrastructure/telemetry"
	"github.com/stockroom/backoffice/internal/interfaces/http/handler"
	"github.com/stockroom/backoffice/internal/interfaces/http/middleware"
	"github.com/stockroom/backoffice/internal/interfaces/http/router"
	"go.uber.org/zap"
)

// Deps are the long-lived collaborators the API is built from.
// Telemetry fields are optional.
type Deps struct {
	Database  *persistence.Database
	JWT       *auth.JWTService
	Blacklist auth.TokenBlacklist
	Logger    *zap.Logger
	HTTP      config.HTTPConfig
	Version   string

	Tracing     middleware.TracingConfig
	HTTPMetrics *telemetry.HTTPMetrics
	Ledger      ledgerapp.Observer
}

// Server is the assembled API
type Server struct {
	Engine  *gin.Engine
	limiter *middleware.RateLimiter
}

// New wires every layer and returns a ready engine
func New(d Deps) *Server {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Blacklist == nil {
		d.Blacklist = auth.NewInMemoryTokenBlacklist()
	}
	middleware.SetupValidator()

	db := d.Database.DB

	// Repositories
	categoryRepo := persistence.NewGormCategoryRepository(db)
	brandRepo := persistence.NewGormBrandRepository(db)
	firmRepo := persistence.NewGormFirmRepository(db)
	productRepo := persistence.NewGormProductRepository(db)
	sellRepo := persistence.NewGormSellRepository(db)
	purchaseRepo := persistence.NewGormPurchaseRepository(db)
	userRepo := persistence.NewGormUserRepository(db)
	summaryRepo := persistence.NewGormSummaryRepository(db)
	scope := persistence.NewGormTransactionScope(db)

	// Services
	categoryService := catalogapp.NewCategoryService(categoryRepo, productRepo)
	brandService := catalogapp.NewBrandService(brandRepo, productRepo)
	firmService := catalogapp.NewFirmService(firmRepo)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, brandRepo, sellRepo, purchaseRepo)
	sellService := ledgerapp.NewSellService(scope, sellRepo, productRepo, userRepo)
	purchaseService := ledgerapp.NewPurchaseService(scope, purchaseRepo, productRepo, firmRepo, userRepo)
	if d.Ledger != nil {
		sellService.WithObserver(d.Ledger)
		purchaseService.WithObserver(d.Ledger)
	}
	rollupService := reportapp.NewRollupService(sellRepo, purchaseRepo, productRepo, userRepo)
	summaryService := reportapp.NewSummaryService(categoryRepo, productRepo, summaryRepo)
	userService := identityapp.NewUserService(userRepo, d.Blacklist, d.JWT.Expiration(), d.Logger)
	authService := identityapp.NewAuthService(userRepo, d.JWT, d.Blacklist, d.Logger)

	handlers := router.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Categories: handler.NewResourceHandler[catalogapp.CategoryRequest, catalogapp.CategoryResponse](categoryService),
		Brands:     handler.NewResourceHandler[catalogapp.BrandRequest, catalogapp.BrandResponse](brandService),
		Firms:      handler.NewResourceHandler[catalogapp.FirmRequest, catalogapp.FirmResponse](firmService),
		Products:   handler.NewResourceHandler[catalogapp.ProductRequest, catalogapp.ProductResponse](productService),
		Sells:      handler.NewResourceHandler[ledgerapp.SellRequest, ledgerapp.SellResponse](sellService),
		Purchases:  handler.NewPurchaseHandler(purchaseService),
		Users:      handler.NewUserHandler(userService),
		Reports:    handler.NewReportHandler(summaryService, rollupService),
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(d.HTTP.TrustedProxies); err != nil {
		d.Logger.Warn("Invalid trusted proxies, trusting none", zap.Error(err))
		_ = engine.SetTrustedProxies(nil)
	}

	engine.Use(middleware.RequestID())
	engine.Use(middleware.TracingWithConfig(d.Tracing))
	engine.Use(logger.Recovery(d.Logger))
	engine.Use(logger.GinMiddleware(d.Logger))
	engine.Use(middleware.Metrics(d.HTTPMetrics))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(corsConfig(d.HTTP)))
	if d.HTTP.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(d.HTTP.MaxBodySize))
	}

	s := &Server{Engine: engine}
	if d.HTTP.RateLimitEnabled && d.HTTP.RateLimitRequests > 0 {
		s.limiter = middleware.NewRateLimiter(d.HTTP.RateLimitRequests, d.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(s.limiter))
	}

	engine.GET("/health", handler.NewHealthHandler(d.Database, d.Version).Health)

	jwtConfig := middleware.DefaultJWTConfig(d.JWT)
	jwtConfig.TokenBlacklist = d.Blacklist

	r := router.NewRouter(engine).
		Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig)).
		Use(middleware.TracingAttributeInjector())
	for _, g := range router.APIGroups(handlers, middleware.RequireAdmin()) {
		r.Register(g)
	}
	r.Setup()

	return s
}

// Close releases background workers started by New
func (s *Server) Close() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
}

func corsConfig(cfg config.HTTPConfig) middleware.CORSConfig {
	c := middleware.DefaultCORSConfig()
	if len(cfg.CORSAllowOrigins) > 0 {
		c.AllowOrigins = cfg.CORSAllowOrigins
	}
	if len(cfg.CORSAllowMethods) > 0 {
		c.AllowMethods = cfg.CORSAllowMethods
	}
	if len(cfg.CORSAllowHeaders) > 0 {
		c.AllowHeaders = cfg.CORSAllowHeaders
	}
	return c
}
