package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cookduck/backend/internal/segment"
	"github.com/cookduck/backend/internal/session"
)

// ChatService orchestrates a cooking session: recipe intake, step navigation,
// and free-form questions answered by the LLM within the recipe's context.
type ChatService struct {
	store  *session.Store
	llm    Completer
	cache  AnswerCache
	logger *zap.Logger
}

// NewChatService wires the session store, the completion backend, and an
// optional answer cache (nil disables caching).
func NewChatService(store *session.Store, llm Completer, cache AnswerCache, logger *zap.Logger) *ChatService {
	return &ChatService{store: store, llm: llm, cache: cache, logger: logger}
}

// SubmitResult is the outcome of starting a session from a recipe payload.
type SubmitResult struct {
	SessionID string `json:"session_id"`
	Greeting  string `json:"greeting"`
	StepCount int    `json:"step_count"`
}

// AskResult is the outcome of a free-form turn.
type AskResult struct {
	Response    string               `json:"response_text"`
	Constraints []session.Constraint `json:"detected_constraints,omitempty"`
	StepResult  *session.StepResult  `json:"step,omitempty"`
}

// SubmitRecipe validates and segments a recipe, creates a session, and
// returns the greeting for the first turn.
func (s *ChatService) SubmitRecipe(ctx context.Context, title, content, ingredients string) (*SubmitResult, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return nil, ErrMissingRecipeData
	}

	steps, err := segment.Segment(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSegmentationFailed, err)
	}

	sess := s.store.Create(session.Recipe{
		Title:       title,
		Content:     content,
		Ingredients: ingredients,
		Steps:       steps,
	})

	greeting := fmt.Sprintf(
		"Hello, this is CookDuck! Let's cook %q together. Say \"next\" whenever you are ready for the following step.",
		title,
	)
	return &SubmitResult{
		SessionID: sess.ID,
		Greeting:  greeting,
		StepCount: len(steps),
	}, nil
}

// NextStep advances the session and formats the step announcement.
func (s *ChatService) NextStep(ctx context.Context, sessionID string) (session.StepResult, error) {
	sess, ok := s.store.Get(sessionID)
	if !ok {
		return session.StepResult{}, ErrSessionNotFound
	}
	res := sess.Advance()
	if !res.Completed {
		res.Text = fmt.Sprintf("%d. %s", res.Number, res.Text)
	}
	return res, nil
}

// Ask handles a free-form utterance. Navigation commands are routed to step
// advancement; everything else is scanned for constraints and answered by the
// LLM scoped to the session's recipe. An LLM failure fails only this turn:
// the error is returned for the caller to surface, the session stays alive.
func (s *ChatService) Ask(ctx context.Context, sessionID, utterance string) (*AskResult, error) {
	sess, ok := s.store.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}

	if session.IsNextCommand(utterance) {
		res := sess.Advance()
		if !res.Completed {
			res.Text = fmt.Sprintf("%d. %s", res.Number, res.Text)
		}
		return &AskResult{Response: res.Text, StepResult: &res}, nil
	}

	detected := session.ParseConstraints(utterance)
	for _, c := range detected {
		sess.Upsert(c)
	}
	constraints := sess.ActiveConstraints()

	key := AnswerKey(sess.Recipe.Title, utterance, fingerprint(constraints))
	if s.cache != nil {
		if answer, ok := s.cache.Get(ctx, key); ok {
			return &AskResult{Response: answer, Constraints: detected}, nil
		}
	}

	prompt := BuildChatPrompt(RecipeSystemPrompt(sess.Recipe, constraints), utterance, nil)
	answer, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		s.logger.Error("llm turn failed",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		return &AskResult{Constraints: detected}, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, answer)
	}
	return &AskResult{Response: answer, Constraints: detected}, nil
}

// EndSession tears down a session; unknown ids are not an error.
func (s *ChatService) EndSession(sessionID string) {
	s.store.Delete(sessionID)
}

func fingerprint(constraints []session.Constraint) string {
	var b strings.Builder
	for _, c := range constraints {
		fmt.Fprintf(&b, "%s:%s:%s:%s;", c.Type, c.Action, c.Degree, c.Value)
	}
	return b.String()
}
