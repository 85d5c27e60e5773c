package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/NovaAI-innovation/backend12/internal/config"
	"github.com/NovaAI-innovation/backend12/internal/http/handler"
	"github.com/NovaAI-innovation/backend12/internal/http/middleware"
	"github.com/NovaAI-innovation/backend12/internal/ratelimit"
)

// RouterLimiters carries the rate limiter backends for the route groups.
// Login always counts against the in-process limiter so a broken Redis
// connection can never disable the brute-force guard. The shared limiter
// backs the remaining write actions and may be the same instance.
type RouterLimiters struct {
	Login  ratelimit.Limiter
	Shared ratelimit.Limiter
}

// NewRouter wires Gin routes and middleware.
func NewRouter(
	cfg config.Config,
	healthHandler *handler.HealthHandler,
	authHandler *handler.AuthHandler,
	galleryHandler *handler.GalleryHandler,
	cmsHandler *handler.CMSHandler,
	bookingHandler *handler.BookingHandler,
	authMiddleware *middleware.Auth,
	limiters RouterLimiters,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(nil))
	r.Use(middleware.CORS(cfg))
	r.Use(otelgin.Middleware(cfg.ServiceName))

	r.GET("/", healthHandler.Root)
	r.GET("/health", healthHandler.Health)
	r.GET("/health/db", healthHandler.HealthDB)
	r.GET("/health/storage", healthHandler.HealthStorage)

	api := r.Group("/api")
	{
		api.GET("/gallery-images", galleryHandler.List)

		api.POST("/bookings",
			middleware.RateLimit(limiters.Shared, middleware.ActionBooking, cfg.RateLimit.BookingPolicy()),
			bookingHandler.Submit,
		)

		cms := api.Group("/cms")
		{
			cms.POST("/login",
				middleware.RateLimit(limiters.Login, middleware.ActionLogin, cfg.RateLimit.LoginPolicy()),
				authHandler.Login,
			)

			protected := cms.Group("", authMiddleware.RequireAdmin)
			{
				protected.GET("/gallery-images", cmsHandler.ListImages)
				protected.POST("/gallery-images",
					middleware.RateLimit(limiters.Shared, middleware.ActionUpload, cfg.RateLimit.UploadPolicy()),
					cmsHandler.UploadImages,
				)
				protected.PUT("/gallery-images/reorder", cmsHandler.Reorder)
				protected.PUT("/gallery-images/:id", cmsHandler.UpdateImage)
				protected.DELETE("/gallery-images/bulk",
					middleware.RateLimit(limiters.Shared, middleware.ActionDelete, cfg.RateLimit.DeletePolicy()),
					cmsHandler.BulkDelete,
				)
				protected.DELETE("/gallery-images/:id",
					middleware.RateLimit(limiters.Shared, middleware.ActionDelete, cfg.RateLimit.DeletePolicy()),
					cmsHandler.DeleteImage,
				)
			}
		}
	}

	return r
}
