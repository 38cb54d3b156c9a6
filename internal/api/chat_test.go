package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cookduck/backend/internal/mocks"
	"github.com/cookduck/backend/internal/service"
	"github.com/cookduck/backend/internal/session"
)

func newChatRouter(llm service.Completer) (*gin.Engine, *session.Store) {
	gin.SetMode(gin.TestMode)
	store := session.NewStore(zap.NewNop())
	chat := service.NewChatService(store, llm, nil, zap.NewNop())

	router := gin.New()
	NewChatHandler(chat).RegisterRoutes(router.Group("/api/v1"))
	return router, store
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSubmitRecipeEndpoint(t *testing.T) {
	router, _ := newChatRouter(&mocks.MockCompleter{})

	w := postJSON(t, router, "/api/v1/chat/sessions", gin.H{
		"title":   "Kimchi Stew",
		"content": "1. Chop the kimchi. 2. Boil the broth.",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp service.SubmitResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, 2, resp.StepCount)
	assert.Contains(t, resp.Greeting, "Kimchi Stew")
}

func TestSubmitRecipeEndpointRejectsMissingFields(t *testing.T) {
	router, _ := newChatRouter(&mocks.MockCompleter{})

	w := postJSON(t, router, "/api/v1/chat/sessions", gin.H{"title": "Stew"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNextStepEndpoint(t *testing.T) {
	router, store := newChatRouter(&mocks.MockCompleter{})
	sess := store.Create(session.Recipe{Title: "Stew", Steps: []string{"Chop.", "Boil."}})

	w := postJSON(t, router, "/api/v1/chat/sessions/"+sess.ID+"/next", gin.H{})
	require.Equal(t, http.StatusOK, w.Code)

	var step session.StepResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &step))
	assert.Equal(t, "1. Chop.", step.Text)
	assert.False(t, step.Completed)
}

func TestNextStepEndpointUnknownSession(t *testing.T) {
	router, _ := newChatRouter(&mocks.MockCompleter{})

	w := postJSON(t, router, "/api/v1/chat/sessions/unknown/next", gin.H{})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAskEndpoint(t *testing.T) {
	llm := &mocks.MockCompleter{}
	llm.On("Complete", mock.Anything, mock.Anything).Return("Add it after the broth boils.", nil)
	router, store := newChatRouter(llm)
	sess := store.Create(session.Recipe{Title: "Stew", Steps: []string{"Chop.", "Boil."}})

	w := postJSON(t, router, fmt.Sprintf("/api/v1/chat/sessions/%s/ask", sess.ID), gin.H{
		"utterance": "when do I add the tofu?",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp service.AskResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Add it after the broth boils.", resp.Response)
	llm.AssertExpectations(t)
}

func TestAskEndpointLLMFailure(t *testing.T) {
	llm := &mocks.MockCompleter{}
	llm.On("Complete", mock.Anything, mock.Anything).Return("", fmt.Errorf("model server down"))
	router, store := newChatRouter(llm)
	sess := store.Create(session.Recipe{Title: "Stew", Steps: []string{"Chop."}})

	w := postJSON(t, router, fmt.Sprintf("/api/v1/chat/sessions/%s/ask", sess.ID), gin.H{
		"utterance": "make it vegan",
	})
	assert.Equal(t, http.StatusBadGateway, w.Code)

	// The session must survive a failed turn.
	_, ok := store.Get(sess.ID)
	assert.True(t, ok)
}

func TestEndSessionEndpoint(t *testing.T) {
	router, store := newChatRouter(&mocks.MockCompleter{})
	sess := store.Create(session.Recipe{Title: "Stew", Steps: []string{"Chop."}})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/chat/sessions/"+sess.ID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 0, store.Count())
}
