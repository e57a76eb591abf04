package v1

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"kanam-academy-backend/config"
	"kanam-academy-backend/internal/delivery/http/middleware"
	"kanam-academy-backend/internal/domain"
	"kanam-academy-backend/internal/usecase"
	"kanam-academy-backend/pkg/apperror"
	"kanam-academy-backend/pkg/logger"
)

type RouterDeps struct {
	ContactUC domain.ContactUsecase
	HealthUC  usecase.HealthUsecase
	Config    *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	r := gin.New()

	// ClientIP keys the rate limiter, so forwarded headers are only honored from known proxies.
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Log.Warn("Invalid TRUSTED_PROXIES, trusting no proxies", zap.Error(err))
		_ = r.SetTrustedProxies(nil)
	}

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.SecurityHeadersMiddleware(cfg.IsProduction()))
	r.Use(middleware.ErrorHandler())

	r.NoRoute(func(c *gin.Context) {
		c.Error(apperror.NotFound("Not found."))
	})

	v1 := r.Group("/v1")

	NewHealthHandler(v1, deps.HealthUC)

	// Public routes
	contactLimit := middleware.ContactRateLimitConfig(cfg.ContactRateLimit, cfg.RateLimitWindow())
	NewContactHandler(v1, deps.ContactUC, middleware.RateLimitMiddleware(contactLimit))

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
