package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"inkwell/internal/adapters/llm"
	"inkwell/internal/modkit"
	"inkwell/internal/modkit/repokit"
	"inkwell/internal/platform/config"
	"inkwell/internal/platform/logger"
	"inkwell/internal/platform/store"

	backfilldom "inkwell/internal/services/backfill/domain"
	backfillmod "inkwell/internal/services/backfill/module"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	logger.Init(logger.FromEnv())
	l := logger.Get()

	root := config.New()
	opts := backfillmod.FromConfig(root)

	var (
		fBatch  = flag.Int("batch", opts.Batch, "rows per batch")
		fMax    = flag.Int("max", opts.Max, "stop after this many rows, 0 drains everything")
		fDryRun = flag.Bool("dry-run", opts.DryRun, "scan and count without embedding or writing")
		fLease  = flag.Bool("lease", opts.EnableLease, "hold the advisory lock so only one backfill runs")
	)
	flag.Parse()

	if *fBatch <= 0 {
		l.Panic().Int("batch", *fBatch).Msg("-batch must be positive")
	}
	if *fMax < 0 {
		l.Panic().Int("max", *fMax).Msg("-max must not be negative")
	}
	opts.Batch, opts.Max, opts.DryRun, opts.EnableLease = *fBatch, *fMax, *fDryRun, *fLease

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// redis caches repeated texts, clickhouse is never needed here
	cfg := store.ConfigFrom(root, "backfill")
	cfg.CH.Enabled = false
	st, err := store.Open(ctx, cfg, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(ctx, st)

	var llmOpts []llm.Option
	if st.RDS != nil {
		llmOpts = append(llmOpts, llm.WithCache(st.RDS))
	}
	caps, err := llm.New(llm.ConfigFrom(root), llmOpts...)
	if err != nil {
		l.Panic().Err(err).Msg("llm.New failed")
	}

	mod := backfillmod.NewWithOptions(modkit.FromStore(root, st), caps, opts)
	rep, err := mod.Runner().Run(ctx, backfilldom.RunOptions{})
	if err != nil {
		l.Error().Err(err).Msg("backfill failed")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(rep)

	if err != nil || rep.Failed > 0 {
		stop()
		os.Exit(1)
	}
}
