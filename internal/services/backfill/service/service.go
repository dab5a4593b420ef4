// Package service provides the embedding backfill: entries stored while the embedding
// provider was down get their vectors, oldest first, one runner at a time
package service

import (
	"context"
	"errors"
	"time"

	"inkwell/internal/core/similarity"
	"inkwell/internal/modkit/repokit"
	"inkwell/internal/platform/logger"
	"inkwell/internal/platform/store"
	"inkwell/internal/services/backfill/domain"
	"inkwell/internal/services/backfill/guardrails"
)

// Config holds configuration options for the backfill service
type Config struct {
	Batch int // entries per batch; <=0 -> 100
	Max   int // entries per run; 0 = unlimited

	// DryRun only counts what would be embedded
	DryRun bool

	// Delay is an optional pause between batches
	Delay time.Duration

	Timeouts guardrails.Timeouts
}

// Service implements domain.RunnerPort
type Service struct {
	DB     repokit.TxRunner
	Binder repokit.Binder[domain.StorageRepo]
	Emb    domain.Embedder
	Cfg    Config

	// Lease, when set, must be held for the whole run
	Lease guardrails.LeaseFunc

	now func() time.Time
}

// New constructs the backfill service
func New(db repokit.TxRunner, binder repokit.Binder[domain.StorageRepo], emb domain.Embedder, cfg Config, lease guardrails.LeaseFunc) *Service {
	if db == nil {
		panic("backfill.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("backfill.Service requires a non nil Repo binder")
	}
	if emb == nil {
		panic("backfill.Service requires an Embedder")
	}
	if cfg.Batch <= 0 {
		cfg.Batch = 100
	}
	return &Service{DB: db, Binder: binder, Emb: emb, Cfg: cfg, Lease: lease, now: time.Now}
}

// Run embeds pending entries until none are left, opts.Max is reached or the run budget ends
// a held lease returns domain.ErrLeaseHeld and an empty report
func (s *Service) Run(ctx context.Context, opts domain.RunOptions) (domain.Report, error) {
	opts = s.merge(opts)
	rep := domain.Report{DryRun: opts.DryRun}
	start := s.now()
	log := logger.Named("backfill")

	// the budget wraps the lease so its transaction is bounded too
	ctx, cancel := guardrails.WithRun(ctx, s.Cfg.Timeouts)
	defer cancel()

	work := func(ctx context.Context) error { return s.drain(ctx, opts, &rep) }
	var err error
	if s.Lease != nil {
		err = s.Lease(ctx, work)
	} else {
		err = work(ctx)
	}
	rep.Elapsed = s.now().Sub(start)

	switch {
	case errors.Is(err, domain.ErrLeaseHeld):
		log.Info().Msg("another backfill holds the lease, skipping")
	case err != nil:
		log.Error().Err(err).Int("embedded", rep.Embedded).Int("failed", rep.Failed).Msg("backfill stopped")
	default:
		log.Info().
			Int("batches", rep.Batches).
			Int("scanned", rep.Scanned).
			Int("embedded", rep.Embedded).
			Int("failed", rep.Failed).
			Int("skipped", rep.Skipped).
			Bool("dry_run", rep.DryRun).
			Dur("elapsed", rep.Elapsed).
			Msg("backfill finished")
	}
	return rep, err
}

func (s *Service) merge(o domain.RunOptions) domain.RunOptions {
	if o.Batch <= 0 {
		o.Batch = s.Cfg.Batch
	}
	if o.Max <= 0 {
		o.Max = s.Cfg.Max
	}
	o.DryRun = o.DryRun || s.Cfg.DryRun
	return o
}

func (s *Service) drain(ctx context.Context, opts domain.RunOptions, rep *domain.Report) error {
	r := s.Binder.Bind(s.DB)

	var cur domain.Cursor
	for {
		limit := opts.Batch
		if opts.Max > 0 {
			if rep.Scanned >= opts.Max {
				return nil
			}
			limit = min(limit, opts.Max-rep.Scanned)
		}

		n, next, err := s.batch(ctx, r, cur, limit, opts.DryRun, rep)
		if err != nil {
			return err
		}
		if n < limit {
			return nil
		}
		cur = next
		if err := sleep(ctx, s.Cfg.Delay); err != nil {
			return err
		}
	}
}

// batch embeds one page and returns its size and the cursor after it
func (s *Service) batch(ctx context.Context, r domain.StorageRepo, cur domain.Cursor, limit int, dry bool, rep *domain.Report) (int, domain.Cursor, error) {
	ctx, cancel := guardrails.ForBatch(ctx, s.Cfg.Timeouts)
	defer cancel()

	rows, err := r.Pending(ctx, cur, limit)
	if err != nil {
		return 0, cur, err
	}
	if len(rows) == 0 {
		return 0, cur, nil
	}
	rep.Batches++
	log := logger.Named("backfill")

	for _, p := range rows {
		if err := ctx.Err(); err != nil {
			return 0, cur, err
		}
		rep.Scanned++
		cur = domain.Cursor{CreatedAt: p.CreatedAt, ID: p.ID}
		if dry {
			rep.Skipped++
			continue
		}

		vec, err := s.embed(ctx, p.Content)
		if err != nil {
			rep.Failed++
			log.Debug().Err(err).Str("entry_id", p.ID).Msg("embedding failed, entry left for the next run")
			continue
		}
		switch err := r.SetEmbedding(ctx, p.ID, vec); {
		case errors.Is(err, store.ErrNoRowsAffected):
			rep.Skipped++
		case err != nil:
			return 0, cur, err
		default:
			rep.Embedded++
		}
	}
	return len(rows), cur, nil
}

func (s *Service) embed(ctx context.Context, text string) ([]float32, error) {
	ctx, cancel := guardrails.ForEmbed(ctx, s.Cfg.Timeouts)
	defer cancel()
	vec, err := s.Emb.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	return vec, similarity.CheckDimension(vec, s.Emb.Dimension())
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
