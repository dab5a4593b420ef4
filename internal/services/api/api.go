// Package api composes the HTTP API for the application
package api

import (
	"time"

	"inkwell/internal/adapters/llm"
	"inkwell/internal/platform/config"
	"inkwell/internal/platform/logger"
	phttp "inkwell/internal/platform/net/http"
	"inkwell/internal/platform/net/middleware"
	"inkwell/internal/platform/store"
	ptime "inkwell/internal/platform/time"

	"inkwell/internal/modkit"
	"inkwell/internal/modkit/httpkit"
	"inkwell/internal/modkit/module"
	"inkwell/internal/modkit/swaggerkit"

	metamod "inkwell/internal/services/api/meta/module"
	authmod "inkwell/internal/services/auth/module"
	entriesmod "inkwell/internal/services/entries/module"
	searchmod "inkwell/internal/services/search/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	LLM            llm.Capabilities
	Clock          ptime.Clock
	CORS           middleware.CORSOptions
	MaxInFlight    int
	RequestTimeout time.Duration
	EnableSwagger  bool
	EnableProfiler bool
}

// OptionsFrom reads INKWELL_API_* for the router level switches
func OptionsFrom(root config.Conf) Options {
	c := root.Prefix("INKWELL_API_")
	return Options{
		Config: root,
		CORS: middleware.CORSOptions{
			AllowedOrigins:   c.MayCSV("CORS_ORIGINS", []string{"http://localhost:3000"}),
			AllowCredentials: c.MayBool("CORS_CREDENTIALS", true),
			MaxAge:           c.MayInt("CORS_MAX_AGE", 300),
		},
		MaxInFlight:    c.MayInt("MAX_IN_FLIGHT", 64),
		RequestTimeout: c.MayDuration("REQUEST_TIMEOUT", 60*time.Second),
		EnableSwagger:  c.MayBool("SWAGGER", true),
		EnableProfiler: c.MayBool("PROFILER", false),
	}
}

// Modules builds the API modules in dependency order; auth first so its port can guard the rest
func Modules(deps modkit.Deps, caps llm.Capabilities) []module.Module {
	auth := authmod.New(deps)
	guard := module.MustPortsOf[authmod.Ports](auth).Auth

	return []module.Module{
		metamod.New(deps),
		auth,
		entriesmod.New(deps, modkit.WithPorts(entriesmod.Ports{Auth: guard, Embedder: caps})),
		searchmod.New(deps, modkit.WithPorts(searchmod.Ports{Auth: guard, LLM: caps})),
	}
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	deps := modkit.FromStore(opt.Config, opt.Store)
	deps.Clock = opt.Clock
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	mods := Modules(deps, opt.LLM)

	// chi requires mux wide middleware before the first route
	timeout := opt.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	r.Use(middleware.Defaults(timeout)...)

	swaggerkit.Mount(r, opt.Config, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	httpkit.MountAPIV1(r, httpkit.CommonStack(opt.CORS, opt.MaxInFlight), func(api httpkit.Router) {
		for _, m := range mods {
			m.MountRoutes(api)
		}
	})
}
