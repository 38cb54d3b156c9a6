package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/cookduck/backend/internal/search"
	"github.com/cookduck/backend/internal/service"
)

// MockIndex is a mock implementation of the search.Index interface
type MockIndex struct {
	mock.Mock
}

func (m *MockIndex) Search(ctx context.Context, vec []float32, k int) ([]search.Hit, error) {
	args := m.Called(ctx, vec, k)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]search.Hit), args.Error(1)
}

func (m *MockIndex) Ready(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockEmbedder is a mock implementation of the Embedder interface
type MockEmbedder struct {
	mock.Mock
}

func (m *MockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float32), args.Error(1)
}

func (m *MockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	args := m.Called(ctx, texts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]float32), args.Error(1)
}

// MockCompleter is a mock implementation of the Completer interface
type MockCompleter struct {
	mock.Mock
}

func (m *MockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// MockTranscriber is a mock implementation of the Transcriber interface
type MockTranscriber struct {
	mock.Mock
}

func (m *MockTranscriber) Transcribe(ctx context.Context, wav []byte) (string, error) {
	args := m.Called(ctx, wav)
	return args.String(0), args.Error(1)
}

// MockSynthesizer is a mock implementation of the Synthesizer interface
type MockSynthesizer struct {
	mock.Mock
}

func (m *MockSynthesizer) Synthesize(ctx context.Context, text string, w io.Writer) error {
	args := m.Called(ctx, text, w)
	return args.Error(0)
}

// MockTranscoder is a mock implementation of the Transcoder interface
type MockTranscoder struct {
	mock.Mock
}

func (m *MockTranscoder) ToWAV(ctx context.Context, pcm []byte, sampleRate, channels int) ([]byte, error) {
	args := m.Called(ctx, pcm, sampleRate, channels)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockAnswerCache is a mock implementation of the AnswerCache interface
type MockAnswerCache struct {
	mock.Mock
}

func (m *MockAnswerCache) Get(ctx context.Context, key string) (string, bool) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1)
}

func (m *MockAnswerCache) Set(ctx context.Context, key, answer string) {
	m.Called(ctx, key, answer)
}

// MockTokenValidator is a mock implementation of the TokenValidator interface
type MockTokenValidator struct {
	mock.Mock
}

func (m *MockTokenValidator) ValidateToken(token string) (*service.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TokenClaims), args.Error(1)
}
