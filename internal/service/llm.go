package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/cookduck/backend/config"
)

// LLMService calls the remote completion endpoint.
type LLMService struct {
	client *resty.Client
	cfg    config.AIConfig
	logger *zap.Logger
}

// NewLLMService creates a client for the LLM generation endpoint.
func NewLLMService(cfg config.AIConfig, logger *zap.Logger) *LLMService {
	client := resty.New().
		SetBaseURL(cfg.LLMURL).
		SetTimeout(cfg.Timeout)
	return &LLMService{client: client, cfg: cfg, logger: logger}
}

type generateRequest struct {
	Prompt            string  `json:"prompt"`
	MaxNewTokens      int     `json:"max_new_tokens"`
	Temperature       float64 `json:"temperature,omitempty"`
	TopP              float64 `json:"top_p,omitempty"`
	RepetitionPenalty float64 `json:"repetition_penalty,omitempty"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Complete sends a formatted prompt and returns the model's response text.
func (s *LLMService) Complete(ctx context.Context, prompt string) (string, error) {
	var out generateResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(generateRequest{
			Prompt:            prompt,
			MaxNewTokens:      s.cfg.MaxNewTokens,
			Temperature:       s.cfg.Temperature,
			TopP:              s.cfg.TopP,
			RepetitionPenalty: s.cfg.RepetitionPenalty,
		}).
		SetResult(&out).
		Post("/llm-generate")
	if err != nil {
		return "", fmt.Errorf("%w: llm request: %v", ErrExternalService, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("%w: llm service returned %s", ErrExternalService, resp.Status())
	}
	return out.Response, nil
}

// RedisAnswerCache caches LLM answers in redis with a TTL. Cache failures are
// logged and swallowed; a broken cache only costs latency.
type RedisAnswerCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisAnswerCache creates an answer cache on the given redis client.
func NewRedisAnswerCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisAnswerCache {
	return &RedisAnswerCache{client: client, ttl: ttl, logger: logger}
}

func (c *RedisAnswerCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := c.client.Get(ctx, "answer:"+key).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("answer cache read failed", zap.Error(err))
		}
		return "", false
	}
	return val, true
}

func (c *RedisAnswerCache) Set(ctx context.Context, key, answer string) {
	if err := c.client.Set(ctx, "answer:"+key, answer, c.ttl).Err(); err != nil {
		c.logger.Warn("answer cache write failed", zap.Error(err))
	}
}

// AnswerKey fingerprints a turn for caching: same recipe, same utterance,
// same active constraints means the same answer can be replayed.
func AnswerKey(recipeTitle, utterance string, constraintFingerprint string) string {
	sum := sha256.Sum256([]byte(recipeTitle + "\x00" + utterance + "\x00" + constraintFingerprint))
	return hex.EncodeToString(sum[:])
}
