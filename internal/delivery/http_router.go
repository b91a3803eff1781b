package delivery

import (
	"time"

	"trackerdash/internal/delivery/middleware"
	"trackerdash/pkg/logger"
	"trackerdash/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

type HTTPRouter struct {
	handlers *HTTPHandlers
	logger   *logger.Logger
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
	timeout  time.Duration
}

func NewHTTPRouter(handlers *HTTPHandlers, logger *logger.Logger, metrics *metrics.Metrics, gatherer prometheus.Gatherer, timeout time.Duration) *HTTPRouter {
	return &HTTPRouter{
		handlers: handlers,
		logger:   logger,
		metrics:  metrics,
		gatherer: gatherer,
		timeout:  timeout,
	}
}

func (r *HTTPRouter) SetupRoutes() *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(r.logger))
	router.Use(middleware.Recovery(r.logger))
	router.Use(middleware.Metrics(r.metrics))
	router.Use(middleware.Timeout(r.timeout))

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Content-Type", middleware.RequestIDHeader}
	config.ExposeHeaders = []string{middleware.RequestIDHeader}

	router.Use(cors.New(config))

	// Health endpoint
	router.GET("/health", r.handlers.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/", r.handlers.GetAPIInfo)
		v1.GET("", r.handlers.GetAPIInfo)

		v1.GET("/trackers", r.handlers.ListTrackers)
		v1.POST("/refresh", r.handlers.RefreshAll)

		tracker := v1.Group("/trackers/:trackerID")
		{
			tracker.POST("/refresh", r.handlers.RefreshTracker)
			tracker.DELETE("/snapshot", r.handlers.InvalidateSnapshot)

			tracker.GET("/overview", r.handlers.GetOverview)
			tracker.GET("/installs/stats", r.handlers.GetInstallStats)
			tracker.GET("/subscriptions/stats", r.handlers.GetSubscriptionStats)
			tracker.GET("/trend", r.handlers.GetTrend)
			tracker.GET("/rankings/:type", r.handlers.GetRanking)
			tracker.GET("/distributions/:kind", r.handlers.GetDistribution)

			tracker.GET("/links", r.handlers.ListLinks)
			tracker.POST("/links", r.handlers.CreateLink)
		}

		links := v1.Group("/links")
		{
			links.PATCH("/:linkID", r.handlers.UpdateLink)
			links.DELETE("/:linkID", r.handlers.DeleteLink)
		}
	}

	// Prometheus metrics endpoint
	router.GET("/metrics", middleware.PrometheusHandler(r.gatherer))

	return router
}
