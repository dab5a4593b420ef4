package service

import (
	"context"
	"errors"
	"time"

	"inkwell/internal/platform/logger"
	"inkwell/internal/services/backfill/domain"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the backfill on a cron spec inside a long lived process
type Scheduler struct {
	cron   *cron.Cron
	runner domain.RunnerPort

	ctx    context.Context
	cancel context.CancelFunc
}

// NewScheduler parses spec (standard five fields or a descriptor such as @hourly)
// overlapping runs are skipped
func NewScheduler(runner domain.RunnerPort, spec string, loc *time.Location) (*Scheduler, error) {
	if loc == nil {
		loc = time.Local
	}
	log := cronLogger{}
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithLogger(log),
		cron.WithChain(cron.Recover(log), cron.SkipIfStillRunning(log)),
	)
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{cron: c, runner: runner, ctx: ctx, cancel: cancel}
	if _, err := c.AddFunc(spec, s.tick); err != nil {
		cancel()
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) tick() {
	if _, err := s.runner.Run(s.ctx, domain.RunOptions{}); err != nil && !errors.Is(err, domain.ErrLeaseHeld) {
		logger.Named("backfill").Warn().Err(err).Msg("scheduled backfill failed")
	}
}

// Start begins scheduling in the background
func (s *Scheduler) Start() { s.cron.Start() }

// Stop cancels a running backfill and waits for it, bounded by ctx
func (s *Scheduler) Stop(ctx context.Context) error {
	s.cancel()
	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// cronLogger routes cron's own logging through zerolog
type cronLogger struct{}

func (cronLogger) Info(msg string, kv ...any) {
	logger.Named("cron").Debug().Fields(kv).Msg(msg)
}

func (cronLogger) Error(err error, msg string, kv ...any) {
	logger.Named("cron").Error().Err(err).Fields(kv).Msg(msg)
}
