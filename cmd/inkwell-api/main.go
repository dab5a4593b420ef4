// @title         Inkwell API
// @version       0.1.0
// @description   Journal entries with semantic and date aware search
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"inkwell/internal/adapters/llm"
	"inkwell/internal/modkit"
	"inkwell/internal/modkit/repokit"
	"inkwell/internal/platform/config"
	"inkwell/internal/platform/logger"
	phttp "inkwell/internal/platform/net/http"
	"inkwell/internal/platform/store"

	"inkwell/internal/services/api"
	backfillmod "inkwell/internal/services/backfill/module"

	"github.com/joho/godotenv"
)

func main() {
	// a missing .env is fine, real deployments set the environment directly
	_ = godotenv.Load()

	logger.Init(logger.FromEnv())
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := config.New()

	st, err := store.Open(ctx, store.ConfigFrom(root, "api"), store.WithLogger(*l))
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
	if caps.Offline() {
		l.Warn().Msg("llm offline, embeddings are hashed and generation is unavailable")
	}

	// optional in process embedding backfill
	bf := backfillmod.New(modkit.FromStore(root, st), caps)
	sched, err := bf.Scheduler()
	if err != nil {
		l.Panic().Err(err).Msg("backfill schedule invalid")
	}
	if sched != nil {
		sched.Start()
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := sched.Stop(sctx); err != nil {
				l.Warn().Err(err).Msg("backfill scheduler did not stop cleanly")
			}
		}()
	}

	// http server (reads INKWELL_API_PORT and the timeouts)
	srv := phttp.NewServer(root.Prefix("INKWELL_API_"))

	opt := api.OptionsFrom(root)
	opt.Store = st
	opt.Logger = l
	opt.LLM = caps
	api.Mount(srv.Router(), opt)

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
