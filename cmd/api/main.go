package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cookduck/backend/config"
	"github.com/cookduck/backend/internal/api"
	"github.com/cookduck/backend/internal/database"
	"github.com/cookduck/backend/internal/pkg/logging"
	"github.com/cookduck/backend/internal/router"
	"github.com/cookduck/backend/internal/search"
	"github.com/cookduck/backend/internal/server"
	"github.com/cookduck/backend/internal/service"
	"github.com/cookduck/backend/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(cfg.App.Env, cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.New(cfg.DB, logger)
	if err != nil {
		logger.Fatal("database init failed", zap.Error(err))
	}

	redisClient, err := database.NewRedisClient(cfg.Redis, logger)
	if err != nil {
		logger.Fatal("redis init failed", zap.Error(err))
	}

	index := search.NewPgVector(db, logger)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := index.Ready(ctx); err != nil {
		cancel()
		logger.Fatal("search index not ready, refusing to start", zap.Error(err))
	}
	cancel()

	embedder := service.NewEmbeddingService(cfg.AI, logger)
	llm := service.NewLLMService(cfg.AI, logger)
	cache := service.NewRedisAnswerCache(redisClient, cfg.AI.CacheTTL, logger)
	speech := service.NewSpeechService(cfg.AI, logger)

	store := session.NewStore(logger)
	chat := service.NewChatService(store, llm, cache, logger)
	recommender := service.NewRecommendService(db, index, embedder, cfg.Recommend, logger)
	auth := service.NewAuthService(db, cfg.JWT.Secret, cfg.JWT.TTL)
	pantry := service.NewPantryService(db)

	engine := router.Setup(router.Handlers{
		Chat:      api.NewChatHandler(chat),
		Recommend: api.NewRecommendHandler(recommender, pantry, auth),
		User:      api.NewUserHandler(auth, pantry),
		Voice:     api.NewVoiceHandler(speech, speech, &service.FFmpegTranscoder{}),
		Health:    api.NewHealthHandler(index, store),
	}, logger)

	srv := server.New(engine, cfg.Server, logger)
	if err := srv.Run(); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
