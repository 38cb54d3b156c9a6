package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/cookduck/backend/config"
	"github.com/cookduck/backend/internal/mocks"
	"github.com/cookduck/backend/internal/service"
)

func newRecommendRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	recommender := service.NewRecommendService(
		nil, &mocks.MockIndex{}, &mocks.MockEmbedder{},
		config.RecommendConfig{SearchK: 500, MainWeight: 2.0, Workers: 2},
		zap.NewNop(),
	)
	router := gin.New()
	handler := NewRecommendHandler(recommender, service.NewPantryService(nil), &mocks.MockTokenValidator{})
	handler.RegisterRoutes(router.Group("/api/v1"))
	return router
}

func TestRecommendEndpointEmptyIngredients(t *testing.T) {
	router := newRecommendRouter()

	w := postJSON(t, router, "/api/v1/recommend", gin.H{"ingredients": []string{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecommendEndpointMalformedBody(t *testing.T) {
	router := newRecommendRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommend", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecommendPantryEndpointRequiresAuth(t *testing.T) {
	router := newRecommendRouter()

	w := postJSON(t, router, "/api/v1/recommend/pantry", gin.H{})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
