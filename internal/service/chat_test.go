package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cookduck/backend/internal/session"
)

type fakeCompleter struct {
	answer     string
	err        error
	lastPrompt string
	calls      int
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	f.calls++
	f.lastPrompt = prompt
	return f.answer, f.err
}

type mapCache struct {
	entries map[string]string
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string]string)}
}

func (c *mapCache) Get(ctx context.Context, key string) (string, bool) {
	v, ok := c.entries[key]
	return v, ok
}

func (c *mapCache) Set(ctx context.Context, key, answer string) {
	c.entries[key] = answer
}

func newTestChat(llm Completer, cache AnswerCache) (*ChatService, *session.Store) {
	store := session.NewStore(zap.NewNop())
	return NewChatService(store, llm, cache, zap.NewNop()), store
}

const stewContent = "1. Chop the kimchi. 2. Boil the broth. 3. Simmer together."

func TestSubmitRecipe(t *testing.T) {
	svc, store := newTestChat(&fakeCompleter{}, nil)

	result, err := svc.SubmitRecipe(context.Background(), "Kimchi Stew", stewContent, "kimchi, pork")
	require.NoError(t, err)
	assert.NotEmpty(t, result.SessionID)
	assert.Equal(t, 3, result.StepCount)
	assert.Contains(t, result.Greeting, "Kimchi Stew")

	sess, ok := store.Get(result.SessionID)
	require.True(t, ok)
	assert.Equal(t, 0, sess.CurrentStep)
}

func TestSubmitRecipeValidation(t *testing.T) {
	svc, _ := newTestChat(&fakeCompleter{}, nil)

	_, err := svc.SubmitRecipe(context.Background(), "", stewContent, "")
	assert.ErrorIs(t, err, ErrMissingRecipeData)

	_, err = svc.SubmitRecipe(context.Background(), "Stew", "   ", "")
	assert.ErrorIs(t, err, ErrMissingRecipeData)
}

func TestNextStepSequence(t *testing.T) {
	svc, _ := newTestChat(&fakeCompleter{}, nil)
	submitted, err := svc.SubmitRecipe(context.Background(), "Stew", stewContent, "")
	require.NoError(t, err)

	want := []string{"1. Chop the kimchi.", "2. Boil the broth.", "3. Simmer together."}
	for _, text := range want {
		res, err := svc.NextStep(context.Background(), submitted.SessionID)
		require.NoError(t, err)
		assert.False(t, res.Completed)
		assert.Equal(t, text, res.Text)
	}

	res, err := svc.NextStep(context.Background(), submitted.SessionID)
	require.NoError(t, err)
	assert.True(t, res.Completed)
}

func TestNextStepUnknownSession(t *testing.T) {
	svc, _ := newTestChat(&fakeCompleter{}, nil)
	_, err := svc.NextStep(context.Background(), "no-such-session")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestAskRoutesNextCommand(t *testing.T) {
	llm := &fakeCompleter{answer: "should not be called"}
	svc, _ := newTestChat(llm, nil)
	submitted, err := svc.SubmitRecipe(context.Background(), "Stew", stewContent, "")
	require.NoError(t, err)

	result, err := svc.Ask(context.Background(), submitted.SessionID, "다음")
	require.NoError(t, err)
	require.NotNil(t, result.StepResult)
	assert.Equal(t, "1. Chop the kimchi.", result.Response)
	assert.Zero(t, llm.calls)
}

func TestAskDetectsConstraintsAndCallsLLM(t *testing.T) {
	llm := &fakeCompleter{answer: "Use less chili paste."}
	svc, store := newTestChat(llm, nil)
	submitted, err := svc.SubmitRecipe(context.Background(), "Stew", stewContent, "kimchi, pork")
	require.NoError(t, err)

	result, err := svc.Ask(context.Background(), submitted.SessionID, "can you make it less spicy?")
	require.NoError(t, err)
	assert.Equal(t, "Use less chili paste.", result.Response)
	require.NotEmpty(t, result.Constraints)
	assert.Equal(t, "spice_level", result.Constraints[0].Type)

	sess, _ := store.Get(submitted.SessionID)
	assert.NotEmpty(t, sess.ActiveConstraints())

	assert.Contains(t, llm.lastPrompt, "Title: Stew")
	assert.Contains(t, llm.lastPrompt, "reduce the spice level")
	assert.Contains(t, llm.lastPrompt, "can you make it less spicy?")
}

func TestAskUsesCache(t *testing.T) {
	llm := &fakeCompleter{answer: "fresh answer"}
	cache := newMapCache()
	svc, _ := newTestChat(llm, cache)
	submitted, err := svc.SubmitRecipe(context.Background(), "Stew", stewContent, "")
	require.NoError(t, err)

	first, err := svc.Ask(context.Background(), submitted.SessionID, "what goes in first?")
	require.NoError(t, err)
	assert.Equal(t, "fresh answer", first.Response)
	assert.Equal(t, 1, llm.calls)

	second, err := svc.Ask(context.Background(), submitted.SessionID, "what goes in first?")
	require.NoError(t, err)
	assert.Equal(t, "fresh answer", second.Response)
	assert.Equal(t, 1, llm.calls, "repeat question should be served from cache")
}

func TestAskLLMFailureKeepsSession(t *testing.T) {
	llm := &fakeCompleter{err: errors.New("model server down")}
	svc, store := newTestChat(llm, nil)
	submitted, err := svc.SubmitRecipe(context.Background(), "Stew", stewContent, "")
	require.NoError(t, err)

	result, err := svc.Ask(context.Background(), submitted.SessionID, "make it vegan please")
	require.Error(t, err)
	require.NotNil(t, result)
	assert.NotEmpty(t, result.Constraints)

	// The failed turn must not tear down the session or lose the constraint.
	sess, ok := store.Get(submitted.SessionID)
	require.True(t, ok)
	assert.NotEmpty(t, sess.ActiveConstraints())
}

func TestAskUnknownSession(t *testing.T) {
	svc, _ := newTestChat(&fakeCompleter{}, nil)
	_, err := svc.Ask(context.Background(), "missing", "hello")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestEndSession(t *testing.T) {
	svc, store := newTestChat(&fakeCompleter{}, nil)
	submitted, err := svc.SubmitRecipe(context.Background(), "Stew", stewContent, "")
	require.NoError(t, err)

	svc.EndSession(submitted.SessionID)
	assert.Equal(t, 0, store.Count())

	// Ending twice is harmless.
	svc.EndSession(submitted.SessionID)
}
