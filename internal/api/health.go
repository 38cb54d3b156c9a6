package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cookduck/backend/internal/search"
	"github.com/cookduck/backend/internal/session"
)

// HealthHandler reports liveness and the readiness of the search index.
type HealthHandler struct {
	index search.ReadyChecker
	store *session.Store
}

func NewHealthHandler(index search.ReadyChecker, store *session.Store) *HealthHandler {
	return &HealthHandler{index: index, store: store}
}

func (h *HealthHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.Health)
}

func (h *HealthHandler) Health(c *gin.Context) {
	indexStatus := "ready"
	status := http.StatusOK
	if err := h.index.Ready(c.Request.Context()); err != nil {
		indexStatus = "unavailable"
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{
		"status":          "ok",
		"search_index":    indexStatus,
		"active_sessions": h.store.Count(),
	})
}
