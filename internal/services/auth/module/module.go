// Package module wires auth into the API using modkit
package module

import (
	"inkwell/internal/adapters/mail"
	modkit "inkwell/internal/modkit"
	"inkwell/internal/modkit/httpkit"
	"inkwell/internal/platform/logger"
	str "inkwell/internal/platform/strings"
	authhttp "inkwell/internal/services/auth/http"
	authrepo "inkwell/internal/services/auth/repo"
	authsvc "inkwell/internal/services/auth/service"
)

// Module implements modkit.Module for auth
type Module struct {
	deps  modkit.Deps
	b     modkit.Built
	ports Ports

	svc authsvc.Service
}

// New constructs the auth module, INKWELL_AUTH_JWT_SECRET must be set
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	return NewWithConfig(deps, authsvc.ConfigFrom(deps.Cfg), opts...)
}

// NewWithConfig is New with explicit auth settings
func NewWithConfig(deps modkit.Deps, cfg authsvc.Config, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("auth"), modkit.WithPrefix("/auth")}, opts...)...)

	mcfg := mail.ConfigFrom(deps.Cfg)
	mailer, err := mail.New(mcfg)
	if err != nil {
		logger.Named("auth").Warn().Err(err).Msg("smtp unavailable, mail will only be logged")
		mailer = mail.LogMailer{}
	}

	svcOpts := []authsvc.Option{authsvc.WithMailer(mailer, mcfg), authsvc.WithClock(deps.Clock)}
	if deps.RDS != nil {
		svcOpts = append(svcOpts, authsvc.WithKV(deps.RDS))
	}
	svc := authsvc.New(deps.PG, authrepo.NewPG(), cfg, svcOpts...)

	m := &Module{deps: deps, b: b, svc: svc}
	m.ports = Ports{
		Auth:     httpkit.NewPortFunc(svc.VerifyToken),
		Verifier: svc,
	}
	return m
}

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { authhttp.Register(rr, m.svc, m.ports.Auth) })
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.b.Name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.b.Prefix) }
