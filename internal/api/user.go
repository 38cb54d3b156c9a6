package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cookduck/backend/internal/middleware"
	"github.com/cookduck/backend/internal/service"
)

// UserHandler exposes authentication, bookmarks, and pantry management.
type UserHandler struct {
	auth   *service.AuthService
	pantry *service.PantryService
}

func NewUserHandler(auth *service.AuthService, pantry *service.PantryService) *UserHandler {
	return &UserHandler{auth: auth, pantry: pantry}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}

	users := router.Group("/users/me", middleware.Auth(h.auth))
	{
		users.GET("/bookmarks", h.ListBookmarks)
		users.POST("/bookmarks/:recipe_id", h.AddBookmark)
		users.DELETE("/bookmarks/:recipe_id", h.RemoveBookmark)
		users.GET("/pantry", h.ListPantry)
		users.PUT("/pantry", h.SetPantry)
	}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.auth.Register(req.Email, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			c.JSON(http.StatusConflict, gin.H{"error": service.ErrUserExists.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": token})
}

func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": service.ErrInvalidCredentials.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *UserHandler) ListBookmarks(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)
	recipes, err := h.pantry.ListBookmarks(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list bookmarks"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *UserHandler) AddBookmark(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)
	recipeID, err := uuid.Parse(c.Param("recipe_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	if err := h.pantry.AddBookmark(c.Request.Context(), userID, recipeID); err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": service.ErrRecipeNotFound.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add bookmark"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) RemoveBookmark(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)
	recipeID, err := uuid.Parse(c.Param("recipe_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	if err := h.pantry.RemoveBookmark(c.Request.Context(), userID, recipeID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove bookmark"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) ListPantry(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)
	rows, err := h.pantry.ListIngredients(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list pantry"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingredients": rows})
}

func (h *UserHandler) SetPantry(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)
	var req PantryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows, err := h.pantry.SetIngredients(c.Request.Context(), userID, req.Ingredients)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update pantry"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingredients": rows})
}
