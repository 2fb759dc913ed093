package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"contract-backend/internal/consult"
	"contract-backend/internal/documents"
	"contract-backend/internal/shared/config"
	"contract-backend/internal/shared/metrics"
	"contract-backend/internal/shared/server/middleware"
	"contract-backend/internal/shared/server/respond"
	"contract-backend/internal/users"
)

// RouterDeps carries the handlers the router mounts.
type RouterDeps struct {
	Config          config.Config
	UserHandler     *users.Handler
	DocumentHandler *documents.Handler
	ConsultHandler  *consult.Handler
	RateLimiter     middleware.Limiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"UPLOAD":  {Rate: 0.2, Burst: 3},
				"CHAT":    {Rate: 1, Burst: 10},
				"DEFAULT": {Rate: 5, Burst: 20},
			},
			GroupFor: func(c *gin.Context) string {
				switch {
				case c.Request.Method == http.MethodPost && c.FullPath() == "/api/v1/documents":
					return "UPLOAD"
				case c.FullPath() == "/api/v1/chats":
					return "CHAT"
				default:
					return "DEFAULT"
				}
			},
			Limiter: deps.RateLimiter,
		}),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())

	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(api)
	}
	if deps.DocumentHandler != nil {
		deps.DocumentHandler.RegisterRoutes(api)
	}
	if deps.ConsultHandler != nil {
		deps.ConsultHandler.RegisterRoutes(api)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
