// Command indexer builds recipe embeddings offline. It embeds every recipe
// missing a vector (or all of them with -rebuild) so the API's similarity
// index has something to search before it accepts traffic.
package main

import (
	"context"
	"flag"
	"log"

	pgvector "github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cookduck/backend/config"
	"github.com/cookduck/backend/internal/database"
	"github.com/cookduck/backend/internal/ingredient"
	"github.com/cookduck/backend/internal/model"
	"github.com/cookduck/backend/internal/pkg/logging"
	"github.com/cookduck/backend/internal/service"
)

func main() {
	rebuild := flag.Bool("rebuild", false, "re-embed every recipe, not just the unembedded ones")
	batchSize := flag.Int("batch", 32, "texts per embedding request")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger, err := logging.New(cfg.App.Env, cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.New(cfg.DB, logger)
	if err != nil {
		logger.Fatal("database init failed", zap.Error(err))
	}
	embedder := service.NewEmbeddingService(cfg.AI, logger)

	ctx := context.Background()

	query := db.WithContext(ctx).Model(&model.Recipe{})
	if !*rebuild {
		query = query.Where("embedding IS NULL")
	}
	var recipes []model.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		logger.Fatal("load recipes", zap.Error(err))
	}
	if len(recipes) == 0 {
		logger.Info("nothing to embed")
		return
	}
	logger.Info("embedding recipes", zap.Int("count", len(recipes)), zap.Int("batch", *batchSize))

	g, gCtx := errgroup.WithContext(ctx)
	workers := cfg.Recommend.Workers
	if workers <= 0 {
		workers = 8
	}
	g.SetLimit(workers)

	for start := 0; start < len(recipes); start += *batchSize {
		end := start + *batchSize
		if end > len(recipes) {
			end = len(recipes)
		}
		batch := recipes[start:end]

		g.Go(func() error {
			texts := make([]string, len(batch))
			for i := range batch {
				texts[i] = embeddingText(&batch[i])
			}
			vecs, err := embedder.EmbedBatch(gCtx, texts)
			if err != nil {
				return err
			}
			for i := range batch {
				err := db.WithContext(gCtx).
					Model(&model.Recipe{}).
					Where("id = ?", batch[i].ID).
					Update("embedding", pgvector.NewVector(vecs[i])).Error
				if err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Fatal("embedding build failed", zap.Error(err))
	}
	logger.Info("embedding build complete", zap.Int("embedded", len(recipes)))
}

// embeddingText mirrors the query-side phrasing so recipe vectors and query
// vectors live in the same region of the embedding space.
func embeddingText(rec *model.Recipe) string {
	main, sub := rec.MainList(), rec.SubList()
	if len(main) == 0 && len(sub) == 0 {
		main, sub = ingredient.Classify(rec.AllList())
	}
	return service.RecommendQuery(main, sub)
}
