package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("COOKDUCK_AI_LLM_URL", "http://llm.local:8000")
	t.Setenv("COOKDUCK_AI_EMBEDDING_URL", "http://embed.local:8001")
	t.Setenv("COOKDUCK_JWT_SECRET", "test-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 500, cfg.Recommend.SearchK)
	assert.Equal(t, 2.0, cfg.Recommend.MainWeight)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, "http://llm.local:8000", cfg.AI.LLMURL)
}

func TestLoadEnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("COOKDUCK_SERVER_PORT", "9090")
	t.Setenv("COOKDUCK_DB_NAME", "cookduck_test")
	t.Setenv("COOKDUCK_RECOMMEND_SEARCH_K", "100")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "cookduck_test", cfg.DB.Name)
	assert.Equal(t, 100, cfg.Recommend.SearchK)
}

func TestLoadRequiresLLMURL(t *testing.T) {
	t.Setenv("COOKDUCK_AI_EMBEDDING_URL", "http://embed.local:8001")
	t.Setenv("COOKDUCK_JWT_SECRET", "test-secret")
	t.Setenv("COOKDUCK_AI_LLM_URL", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("COOKDUCK_AI_LLM_URL", "http://llm.local:8000")
	t.Setenv("COOKDUCK_AI_EMBEDDING_URL", "http://embed.local:8001")
	t.Setenv("COOKDUCK_JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	cfg := DBConfig{
		Host: "db.local", Port: "5433", User: "cook",
		Password: "secret", Name: "cookduck", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=db.local port=5433 user=cook password=secret dbname=cookduck sslmode=disable",
		cfg.DSN(),
	)
}

func TestRedisAddr(t *testing.T) {
	cfg := RedisConfig{Host: "cache.local", Port: "6380"}
	assert.Equal(t, "cache.local:6380", cfg.Addr())
}
