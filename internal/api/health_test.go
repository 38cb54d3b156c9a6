package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/cookduck/backend/internal/mocks"
	"github.com/cookduck/backend/internal/session"
)

func TestHealthEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	index := &mocks.MockIndex{}
	index.On("Ready", mock.Anything).Return(nil)

	router := gin.New()
	NewHealthHandler(index, session.NewStore(zap.NewNop())).RegisterRoutes(router)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"search_index":"ready"`)
}

func TestHealthEndpointIndexUnavailable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	index := &mocks.MockIndex{}
	index.On("Ready", mock.Anything).Return(fmt.Errorf("no embedded recipes"))

	router := gin.New()
	NewHealthHandler(index, session.NewStore(zap.NewNop())).RegisterRoutes(router)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"search_index":"unavailable"`)
}
