package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cookduck/backend/internal/service"
)

// ChatHandler exposes the cooking-session surface: recipe intake, step
// navigation, and free-form questions.
type ChatHandler struct {
	chat *service.ChatService
}

func NewChatHandler(chat *service.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

func (h *ChatHandler) RegisterRoutes(router *gin.RouterGroup) {
	sessions := router.Group("/chat/sessions")
	{
		sessions.POST("", h.SubmitRecipe)
		sessions.POST("/:id/next", h.NextStep)
		sessions.POST("/:id/ask", h.Ask)
		sessions.DELETE("/:id", h.EndSession)
	}
}

func (h *ChatHandler) SubmitRecipe(c *gin.Context) {
	var req SubmitRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.chat.SubmitRecipe(c.Request.Context(), req.Title, req.Content, req.Ingredients)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingRecipeData):
			c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrMissingRecipeData.Error()})
		case errors.Is(err, service.ErrSegmentationFailed):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": service.ErrSegmentationFailed.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start session"})
		}
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *ChatHandler) NextStep(c *gin.Context) {
	result, err := h.chat.NextStep(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": service.ErrSessionNotFound.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ChatHandler) Ask(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.chat.Ask(c.Request.Context(), c.Param("id"), req.Utterance)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": service.ErrSessionNotFound.Error()})
			return
		}
		// The turn failed after the utterance was accepted; the failure
		// notice goes out on the same channel a success would have used,
		// and the session survives for the next turn.
		body := gin.H{"error": "Sorry, something went wrong while answering. Please try again."}
		if result != nil && len(result.Constraints) > 0 {
			body["detected_constraints"] = result.Constraints
		}
		c.JSON(http.StatusBadGateway, body)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ChatHandler) EndSession(c *gin.Context) {
	h.chat.EndSession(c.Param("id"))
	c.Status(http.StatusNoContent)
}
