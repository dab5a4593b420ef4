// Package module wires journal entries into the API using modkit
package module

import (
	modkit "inkwell/internal/modkit"
	"inkwell/internal/modkit/httpkit"
	"inkwell/internal/platform/net/middleware"
	str "inkwell/internal/platform/strings"
	entrieshttp "inkwell/internal/services/entries/http"
	entriesrepo "inkwell/internal/services/entries/repo"
	entriessvc "inkwell/internal/services/entries/service"
)

// Ports are injected with modkit.WithPorts; Auth is required, Embedder may be nil
type Ports struct {
	Auth     middleware.AuthPort
	Embedder entriessvc.Embedder
}

// Module implements modkit.Module for entries
type Module struct {
	deps modkit.Deps
	b    modkit.Built
	in   Ports

	svc entriessvc.Service
}

// New constructs the entries module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("entries"), modkit.WithPrefix("/entries")}, opts...)...)
	in, _ := b.Ports.(Ports)
	if in.Auth == nil {
		panic("entries module requires an Auth port")
	}
	svc := entriessvc.New(deps.PG, entriesrepo.NewPG(), in.Embedder, entriessvc.WithClock(deps.Clock))
	return &Module{deps: deps, b: b, in: in, svc: svc}
}

// MountRoutes implements modkit.Module, every route is bearer protected
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) {
		httpkit.Protected(rr, m.in.Auth, func(pr httpkit.Router) { entrieshttp.Register(pr, m.svc) })
	})
}

// Ports exposes the entries service
func (m *Module) Ports() any { return m.svc }

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.b.Name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.b.Prefix) }
