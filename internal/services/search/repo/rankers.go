package repo

import (
	"context"
	"sync/atomic"

	"inkwell/internal/core/similarity"
	perr "inkwell/internal/platform/errors"
	"inkwell/internal/platform/logger"
	"inkwell/internal/services/search/domain"
)

// VectorRanker ranks inside postgres with the pgvector <=> operator
type VectorRanker struct {
	repo Repo
	dim  int

	// missing latches once postgres reports the vector type or operator absent
	missing atomic.Bool
}

// NewVectorRanker returns the primary strategy
func NewVectorRanker(r Repo, dim int) *VectorRanker { return &VectorRanker{repo: r, dim: dim} }

// Name implements similarity.Ranker
func (v *VectorRanker) Name() string { return "pgvector" }

// Available is false after the extension was found missing, until restart
func (v *VectorRanker) Available(context.Context) bool { return !v.missing.Load() }

// Rank implements similarity.Ranker
func (v *VectorRanker) Rank(ctx context.Context, q similarity.Query) ([]similarity.Scored[domain.Entry], error) {
	hits, err := v.repo.Nearest(ctx, q, v.dim)
	if perr.IsMissingExtension(err) {
		v.missing.Store(true)
	}
	return hits, err
}

// CosineRanker loads the candidates and ranks them in process
type CosineRanker struct {
	repo Repo
	dim  int
}

// NewCosineRanker returns the fallback strategy
func NewCosineRanker(r Repo, dim int) *CosineRanker { return &CosineRanker{repo: r, dim: dim} }

// Name implements similarity.Ranker
func (c *CosineRanker) Name() string { return "cosine" }

// Available implements similarity.Ranker
func (c *CosineRanker) Available(context.Context) bool { return true }

// Rank implements similarity.Ranker; vectors of the wrong shape are skipped
func (c *CosineRanker) Rank(ctx context.Context, q similarity.Query) ([]similarity.Scored[domain.Entry], error) {
	cands, err := c.repo.Candidates(ctx, q.UserID, q.Window)
	if err != nil {
		return nil, err
	}
	hits, skipped := similarity.RankInMemory(q.Vector, c.dim, cands, q.Limit)
	if len(skipped) > 0 {
		log := logger.C(ctx)
		for _, e := range skipped {
			log.Debug().Err(e).Msg("skipped entry embedding")
		}
	}
	return hits, nil
}

// NewChain builds the similarity engine: pgvector first, in process cosine on any failure
func NewChain(r Repo, dim int) *similarity.Chain[domain.Entry] {
	return similarity.NewChain[domain.Entry](func(name string, err error) {
		logger.Named("search").Warn().Str("ranker", name).Err(err).Msg("similarity strategy failed")
	}, NewVectorRanker(r, dim), NewCosineRanker(r, dim))
}
