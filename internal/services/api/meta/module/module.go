// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	modkit "inkwell/internal/modkit"
	"inkwell/internal/modkit/httpkit"
	str "inkwell/internal/platform/strings"

	metahttp "inkwell/internal/services/api/meta/http"
)

// Module implements the modkit.Module interface
type Module struct {
	deps      modkit.Deps
	b         modkit.Built
	checks    map[string]metahttp.Pinger
	startedAt time.Time
}

// New constructs a meta module; readiness pings every backend present in deps
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	checks := map[string]metahttp.Pinger{}
	if p, ok := deps.PG.(metahttp.Pinger); ok {
		checks["pg"] = p
	}
	if deps.RDS != nil {
		checks["redis"] = deps.RDS
	}
	if deps.CH != nil {
		checks["ch"] = deps.CH
	}

	return &Module{deps: deps, b: b, checks: checks, startedAt: deps.Now()()}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) {
		metahttp.Register(rr, metahttp.Deps{
			ServiceName: "inkwell-api",
			StartedAt:   m.startedAt,
			Checks:      m.checks,
			Clock:       m.deps.Now(),
		})
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.b.Name, "meta") }

// Prefix implements the modkit.Module interface
func (m *Module) Prefix() string { return str.MustPrefix(m.b.Prefix) }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
