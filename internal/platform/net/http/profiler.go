package http

import (
	mw "github.com/go-chi/chi/v5/middleware"
)

// MountProfiler mounts chi's pprof router under prefix when enabled
func MountProfiler(r Router, prefix string, enabled bool) {
	if !enabled {
		return
	}
	r.Mount(prefix, mw.Profiler())
}
