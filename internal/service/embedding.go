package service

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/cookduck/backend/config"
)

// EmbeddingService calls the remote text encoder.
type EmbeddingService struct {
	client *resty.Client
	logger *zap.Logger
}

// NewEmbeddingService creates a client for the embedding endpoint.
func NewEmbeddingService(cfg config.AIConfig, logger *zap.Logger) *EmbeddingService {
	client := resty.New().
		SetBaseURL(cfg.EmbeddingURL).
		SetTimeout(cfg.Timeout)
	return &EmbeddingService{client: client, logger: logger}
}

type embedRequest struct {
	Texts []string `json:"texts"`
}

type embedResponse struct {
	Vectors [][]float32 `json:"vectors"`
}

// Embed returns the embedding vector for a single text.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := s.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// EmbedBatch returns embedding vectors for multiple texts. Returns nil (not
// an error) for empty input.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	var out embedResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(embedRequest{Texts: texts}).
		SetResult(&out).
		Post("/embed")
	if err != nil {
		return nil, fmt.Errorf("%w: embedding request: %v", ErrExternalService, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: embedding service returned %s", ErrExternalService, resp.Status())
	}
	if len(out.Vectors) != len(texts) {
		return nil, fmt.Errorf("%w: embedding service returned %d vectors for %d texts",
			ErrExternalService, len(out.Vectors), len(texts))
	}
	return out.Vectors, nil
}
