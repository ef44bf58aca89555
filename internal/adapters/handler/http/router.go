package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/comitanigiacomo/kanso-habits/docs"
	"github.com/comitanigiacomo/kanso-habits/internal/adapters/handler/http/middleware"
)

// Pinger is any backend the health check can probe.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type RateLimit struct {
	Requests int
	Window   time.Duration
}

type RouterDependencies struct {
	AuthHandler    *AuthHandler
	HabitHandler   *HabitHandler
	StatsHandler   *StatsHandler
	CatalogHandler *CatalogHandler
	TokenValidator middleware.TokenValidator
	Metrics        MetricsExporter
	DB             Pinger
	Redis          *redis.Client
	RateLimit      RateLimit
	Logger         *logrus.Logger
	StartTime      time.Time
}

// MetricsExporter provides the request middleware and the scrape endpoint.
type MetricsExporter interface {
	Middleware() gin.HandlerFunc
	Handler() http.Handler
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	log := deps.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(log))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization"},
		ExposeHeaders:    []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware())
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	router.GET("/health", healthHandler(deps))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	apiV1 := router.Group("/api/v1")

	limited := func(g *gin.RouterGroup) {
		if deps.Redis != nil && deps.RateLimit.Requests > 0 {
			g.Use(middleware.RateLimiterMiddleware(deps.Redis, deps.RateLimit.Requests, deps.RateLimit.Window, log))
		}
	}

	public := apiV1.Group("")
	limited(public)
	deps.AuthHandler.RegisterRoutes(public)
	if deps.CatalogHandler != nil {
		deps.CatalogHandler.RegisterRoutes(public)
	}

	protected := apiV1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.TokenValidator))
	limited(protected)
	{
		deps.HabitHandler.RegisterRoutes(protected)
		deps.StatsHandler.RegisterRoutes(protected)
	}

	return router
}

func healthHandler(deps RouterDependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		statusCode := http.StatusOK
		body := gin.H{
			"status": "ok",
			"uptime": time.Since(deps.StartTime).String(),
		}

		if deps.DB != nil {
			body["database"] = "connected"
			if err := deps.DB.PingContext(ctx); err != nil {
				body["database"] = "unreachable"
				statusCode = http.StatusServiceUnavailable
			}
		} else {
			body["database"] = "memory"
		}

		if deps.Redis != nil {
			body["redis"] = "connected"
			if err := deps.Redis.Ping(ctx).Err(); err != nil {
				body["redis"] = "unreachable"
				statusCode = http.StatusServiceUnavailable
			}
		} else {
			body["redis"] = "disabled"
		}

		if statusCode != http.StatusOK {
			body["status"] = "degraded"
		}

		c.JSON(statusCode, body)
	}
}
