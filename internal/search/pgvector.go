package search

import (
	"context"
	"errors"
	"fmt"

	pgvector "github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrIndexUnavailable means the similarity index has no usable vectors, so
// similarity queries would silently return nothing.
var ErrIndexUnavailable = errors.New("search: similarity index unavailable")

// PgVector serves nearest-neighbor queries from the recipes.embedding column.
// The vectors are written offline by cmd/indexer; at query time the table is
// read-only.
type PgVector struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewPgVector creates a pgvector-backed index over the recipes table.
func NewPgVector(db *gorm.DB, logger *zap.Logger) *PgVector {
	return &PgVector{db: db, logger: logger}
}

// Ready probes the index at startup. It fails when no recipe has an embedding
// yet, which would make every search come back empty.
func (ix *PgVector) Ready(ctx context.Context) error {
	var count int64
	err := ix.db.WithContext(ctx).
		Table("recipes").
		Where("embedding IS NOT NULL AND deleted_at IS NULL").
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIndexUnavailable, err)
	}
	if count == 0 {
		return fmt.Errorf("%w: no embedded recipes, run the indexer first", ErrIndexUnavailable)
	}
	ix.logger.Info("similarity index ready", zap.Int64("embedded_recipes", count))
	return nil
}

// Search returns the k nearest recipes to the query vector by L2 distance.
func (ix *PgVector) Search(ctx context.Context, vec []float32, k int) ([]Hit, error) {
	var hits []Hit
	err := ix.db.WithContext(ctx).Raw(
		`SELECT id, embedding <-> ? AS distance
		 FROM recipes
		 WHERE embedding IS NOT NULL AND deleted_at IS NULL
		 ORDER BY distance ASC
		 LIMIT ?`,
		pgvector.NewVector(vec), k,
	).Scan(&hits).Error
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	return hits, nil
}
