// Package module provides the backfill module implementation
package module

import (
	"inkwell/internal/modkit"
	"inkwell/internal/modkit/httpkit"
	"inkwell/internal/services/backfill/domain"
	"inkwell/internal/services/backfill/guardrails"
	"inkwell/internal/services/backfill/repo"
	"inkwell/internal/services/backfill/service"
)

// Ports defines the backfill module ports
type Ports struct {
	Runner domain.RunnerPort
}

// Module implements the backfill module
type Module struct {
	deps  modkit.Deps
	opts  Options
	ports Ports
}

// New constructs the backfill module from INKWELL_BACKFILL_* settings
// It does not mount any routes
func New(deps modkit.Deps, emb domain.Embedder) *Module {
	return NewWithOptions(deps, emb, FromConfig(deps.Cfg))
}

// NewWithOptions is New with explicit options, the cli overrides them from flags
func NewWithOptions(deps modkit.Deps, emb domain.Embedder, opts Options) *Module {
	var lease guardrails.LeaseFunc
	if opts.EnableLease {
		lease = guardrails.MakeAdvisoryLease(deps.PG, opts.LockKey)
	}
	svc := service.New(deps.PG, repo.NewPG(), emb, service.Config{
		Batch:  opts.Batch,
		Max:    opts.Max,
		DryRun: opts.DryRun,
		Delay:  opts.Delay,
		Timeouts: guardrails.Timeouts{
			Run:   opts.RunTimeout,
			Batch: opts.BatchTimeout,
			Embed: opts.EmbedTimeout,
		},
	}, lease)
	return &Module{deps: deps, opts: opts, ports: Ports{Runner: svc}}
}

// Scheduler returns the cron scheduler, nil when INKWELL_BACKFILL_CRON is unset
func (m *Module) Scheduler() (*service.Scheduler, error) {
	if m.opts.Cron == "" {
		return nil, nil
	}
	return service.NewScheduler(m.ports.Runner, m.opts.Cron, nil)
}

// Runner returns the backfill runner
func (m *Module) Runner() domain.RunnerPort { return m.ports.Runner }

// Name returns the module name
func (m *Module) Name() string { return "backfill" }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Prefix returns the module prefix (none)
func (m *Module) Prefix() string { return "" }

// MountRoutes is a no-op as backfill has no routes
func (m *Module) MountRoutes(httpkit.Router) {}
