package router

import (
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cookduck/backend/internal/api"
	"github.com/cookduck/backend/internal/middleware"
)

// Handlers is everything the router mounts.
type Handlers struct {
	Chat      *api.ChatHandler
	Recommend *api.RecommendHandler
	User      *api.UserHandler
	Voice     *api.VoiceHandler
	Health    *api.HealthHandler
}

// Setup builds the gin engine, wires middleware, and mounts every handler
// under /api/v1.
func Setup(h Handlers, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New())
	router.Use(middleware.CORS())
	router.Use(requestLogger(logger))

	h.Health.RegisterRoutes(router)

	v1 := router.Group("/api/v1")
	{
		h.Chat.RegisterRoutes(v1)
		h.Recommend.RegisterRoutes(v1)
		h.User.RegisterRoutes(v1)
		h.Voice.RegisterRoutes(v1)
	}

	return router
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request",
			zap.String("request_id", requestid.Get(c)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
