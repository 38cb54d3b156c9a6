// Package search defines the similarity index consumed by the recommender.
package search

import (
	"context"

	"github.com/google/uuid"
)

// Hit is one nearest-neighbor result: a candidate recipe id and its vector
// distance to the query. Raw hits may repeat an id; deduplication is the
// caller's concern.
type Hit struct {
	RecipeID uuid.UUID `gorm:"column:id"`
	Distance float64   `gorm:"column:distance"`
}

// Index is a read-only nearest-neighbor structure over recipe embeddings.
// Implementations must be safe for concurrent use; the index is built offline
// and never mutated at query time.
type Index interface {
	// Search returns up to k nearest neighbors for the query vector,
	// ordered by ascending distance.
	Search(ctx context.Context, vec []float32, k int) ([]Hit, error)
}

// ReadyChecker is implemented by indexes that can probe their own health at
// startup. A failing probe means the recommender must refuse to start rather
// than silently serve empty results.
type ReadyChecker interface {
	Ready(ctx context.Context) error
}
