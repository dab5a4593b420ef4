package modkit

import "inkwell/internal/modkit/module"

// Module is the surface the api composes: routes, ports and a name
type Module = module.Module

// Builder constructs a Module from shared deps and options
// modules expose New(deps Deps, opts ...Option) Module in this shape
type Builder func(Deps, ...Option) Module
