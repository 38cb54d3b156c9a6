// Package session owns per-user cooking session state: the selected recipe,
// the current step cursor, and accumulated dietary constraints.
//
// Sessions are reached only through the Store. Each session's state is owned
// by its own turn; turns within one session arrive strictly in order, and
// sessions share nothing mutable with each other.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Recipe is the recipe a session is cooking through.
type Recipe struct {
	Title       string
	Content     string
	Ingredients string
	Steps       []string
}

// Session tracks one user's progress through a recipe. CurrentStep is the
// 0-based index of the next step to announce; it only ever grows.
type Session struct {
	ID          string
	Recipe      Recipe
	CurrentStep int
	Constraints []Constraint
	CreatedAt   time.Time

	mu sync.Mutex
}

// StepResult is the outcome of advancing a session by one step.
type StepResult struct {
	Number    int    `json:"step_number,omitempty"`
	Text      string `json:"step_text,omitempty"`
	Completed bool   `json:"completed"`
}

const (
	completedMessage        = "That was the last step. Enjoy your meal!"
	alreadyCompletedMessage = "The recipe is already finished. There is no next step."
)

// Advance moves the cursor to the next step. The call that walks past the
// last step reports completion once; every later call is an idempotent
// "already completed" result and leaves the cursor alone.
func (s *Session) Advance() StepResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.CurrentStep < len(s.Recipe.Steps):
		res := StepResult{
			Number: s.CurrentStep + 1,
			Text:   s.Recipe.Steps[s.CurrentStep],
		}
		s.CurrentStep++
		return res
	case s.CurrentStep == len(s.Recipe.Steps):
		s.CurrentStep++
		return StepResult{Completed: true, Text: completedMessage}
	default:
		return StepResult{Completed: true, Text: alreadyCompletedMessage}
	}
}

// Upsert records a constraint, replacing any existing constraint of the same
// type. The newest constraint of a type always wins.
func (s *Session) Upsert(c Constraint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.Constraints[:0]
	for _, existing := range s.Constraints {
		if existing.Type != c.Type {
			kept = append(kept, existing)
		}
	}
	s.Constraints = append(kept, c)
}

// ActiveConstraints returns a snapshot of the session's constraints.
func (s *Session) ActiveConstraints() []Constraint {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Constraint, len(s.Constraints))
	copy(out, s.Constraints)
	return out
}

// Store is the process-owned session registry. All access to live sessions
// goes through it; there is no global session map.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	logger   *zap.Logger
}

// NewStore creates an empty session store.
func NewStore(logger *zap.Logger) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		logger:   logger,
	}
}

// Create registers a new session for the given recipe and returns it.
func (st *Store) Create(recipe Recipe) *Session {
	s := &Session{
		ID:        uuid.NewString(),
		Recipe:    recipe,
		CreatedAt: time.Now(),
	}

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()

	st.logger.Info("session created",
		zap.String("session_id", s.ID),
		zap.String("recipe", recipe.Title),
		zap.Int("steps", len(recipe.Steps)),
	)
	return s
}

// Get returns the session with the given id.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

// Delete removes a session, reporting whether it existed.
func (st *Store) Delete(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return false
	}
	delete(st.sessions, id)
	st.logger.Info("session deleted", zap.String("session_id", id))
	return true
}

// Count returns the number of live sessions.
func (st *Store) Count() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
