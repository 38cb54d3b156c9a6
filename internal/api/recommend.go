package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cookduck/backend/internal/middleware"
	"github.com/cookduck/backend/internal/service"
)

// RecommendHandler exposes ingredient-based recipe recommendation.
type RecommendHandler struct {
	recommender *service.RecommendService
	pantry      *service.PantryService
	auth        middleware.TokenValidator
}

func NewRecommendHandler(recommender *service.RecommendService, pantry *service.PantryService, auth middleware.TokenValidator) *RecommendHandler {
	return &RecommendHandler{recommender: recommender, pantry: pantry, auth: auth}
}

func (h *RecommendHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/recommend", h.Recommend)
	router.POST("/recommend/pantry", middleware.Auth(h.auth), h.RecommendFromPantry)
}

func (h *RecommendHandler) Recommend(c *gin.Context) {
	var req RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results, err := h.recommender.Recommend(c.Request.Context(), service.RecommendRequest{
		Ingredients: req.Ingredients,
		Main:        req.Main,
		Sub:         req.Sub,
		MainWeight:  req.MainWeight,
		TopK:        req.TopK,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmptyIngredients) {
			c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrEmptyIngredients.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "recommendation backend unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": results})
}

// RecommendFromPantry runs a recommendation seeded by the caller's stored
// pantry ingredients.
func (h *RecommendHandler) RecommendFromPantry(c *gin.Context) {
	userID, ok := c.MustGet("user_id").(uuid.UUID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	req, err := h.pantry.PantryRequest(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load pantry"})
		return
	}

	results, err := h.recommender.Recommend(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrEmptyIngredients) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "pantry is empty"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "recommendation backend unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": results})
}
