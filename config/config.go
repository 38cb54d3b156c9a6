// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	DB        DBConfig        `mapstructure:"db"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	AI        AIConfig        `mapstructure:"ai"`
	Recommend RecommendConfig `mapstructure:"recommend"`
}

type AppConfig struct {
	Env      string `mapstructure:"env"`
	LogLevel string `mapstructure:"log_level"`
}

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

// DSN builds the postgres connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	TTL    time.Duration `mapstructure:"ttl"`
}

// AIConfig points at the remote model servers: STT/LLM on the AI server, TTS
// on its own host, embeddings on the encoder service.
type AIConfig struct {
	LLMURL            string        `mapstructure:"llm_url"`
	TTSURL            string        `mapstructure:"tts_url"`
	EmbeddingURL      string        `mapstructure:"embedding_url"`
	Timeout           time.Duration `mapstructure:"timeout"`
	MaxNewTokens      int           `mapstructure:"max_new_tokens"`
	Temperature       float64       `mapstructure:"temperature"`
	TopP              float64       `mapstructure:"top_p"`
	RepetitionPenalty float64       `mapstructure:"repetition_penalty"`
	CacheTTL          time.Duration `mapstructure:"cache_ttl"`
}

type RecommendConfig struct {
	SearchK    int     `mapstructure:"search_k"`
	MainWeight float64 `mapstructure:"main_weight"`
	Workers    int     `mapstructure:"workers"`
}

// Load reads configuration from the environment (and a .env file when
// present), applies defaults, and validates the result.
func Load() (*Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("COOKDUCK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 120*time.Second)

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "cookduck")
	v.SetDefault("db.ssl_mode", "disable")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.ttl", 24*time.Hour)

	// Empty defaults register the keys so AutomaticEnv can fill them.
	v.SetDefault("ai.llm_url", "")
	v.SetDefault("ai.tts_url", "")
	v.SetDefault("ai.embedding_url", "")
	v.SetDefault("ai.timeout", 300*time.Second)
	v.SetDefault("ai.max_new_tokens", 100)
	v.SetDefault("ai.temperature", 0.7)
	v.SetDefault("ai.top_p", 0.9)
	v.SetDefault("ai.repetition_penalty", 1.1)
	v.SetDefault("ai.cache_ttl", 10*time.Minute)

	v.SetDefault("recommend.search_k", 500)
	v.SetDefault("recommend.main_weight", 2.0)
	v.SetDefault("recommend.workers", 8)
}

// Validate rejects configurations that cannot produce a working process.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.AI.LLMURL == "" {
		return fmt.Errorf("ai.llm_url is required")
	}
	if c.AI.EmbeddingURL == "" {
		return fmt.Errorf("ai.embedding_url is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt.secret is required")
	}
	if c.Recommend.SearchK <= 0 {
		return fmt.Errorf("recommend.search_k must be positive")
	}
	if c.Recommend.MainWeight <= 0 {
		return fmt.Errorf("recommend.main_weight must be positive")
	}
	return nil
}
