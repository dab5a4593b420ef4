package domain

import (
	"context"
)

// RunnerPort is what the cli and the scheduler call
type RunnerPort interface {
	Run(ctx context.Context, opts RunOptions) (Report, error)
}

// StorageRepo is the backfill storage contract
type StorageRepo interface {
	// Pending returns up to limit entries without an embedding after cur, oldest first
	Pending(ctx context.Context, cur Cursor, limit int) ([]Pending, error)

	// SetEmbedding stores vec only if the entry still has none
	// it returns store.ErrNoRowsAffected when the entry was filled or removed meanwhile
	SetEmbedding(ctx context.Context, id string, vec []float32) error
}

// Embedder is the slice of the llm capabilities backfill needs
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimension() int
}
