// Package module wires journal search into the API using modkit
package module

import (
	"inkwell/internal/adapters/llm"
	modkit "inkwell/internal/modkit"
	"inkwell/internal/modkit/httpkit"
	"inkwell/internal/platform/net/middleware"
	str "inkwell/internal/platform/strings"
	searchhttp "inkwell/internal/services/search/http"
	searchrepo "inkwell/internal/services/search/repo"
	searchsvc "inkwell/internal/services/search/service"
)

// Ports are injected with modkit.WithPorts, both are required
type Ports struct {
	Auth middleware.AuthPort
	LLM  llm.Capabilities
}

// Module implements modkit.Module for search
type Module struct {
	deps modkit.Deps
	b    modkit.Built
	in   Ports

	svc searchsvc.Service
}

// New constructs the search module; analytics go to clickhouse when deps.CH is set
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("search"), modkit.WithPrefix("/search")}, opts...)...)
	in, _ := b.Ports.(Ports)
	if in.Auth == nil || in.LLM == nil {
		panic("search module requires Auth and LLM ports")
	}
	svc := searchsvc.New(deps.PG, searchrepo.NewPG(), in.LLM,
		searchsvc.WithClock(deps.Clock),
		searchsvc.WithEvents(searchrepo.NewEvents(deps.CH)),
	)
	return &Module{deps: deps, b: b, in: in, svc: svc}
}

// MountRoutes implements modkit.Module, every route is bearer protected
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) {
		httpkit.Protected(rr, m.in.Auth, func(pr httpkit.Router) { searchhttp.Register(pr, m.svc) })
	})
}

// Ports exposes the search service
func (m *Module) Ports() any { return m.svc }

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.b.Name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.b.Prefix) }
