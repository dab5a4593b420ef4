// Package modkit provides module wiring and core deps
package modkit

import (
	"inkwell/internal/modkit/repokit"
	"inkwell/internal/platform/config"
	"inkwell/internal/platform/logger"
	"inkwell/internal/platform/store"
	ptime "inkwell/internal/platform/time"
)

// Deps holds core dependencies passed to modules
// RDS and CH are optional and nil when disabled
type Deps struct {
	Log   logger.Logger
	Cfg   config.Conf
	PG    repokit.TxRunner
	RDS   store.KV
	CH    store.Clickhouse
	Clock ptime.Clock
}

// FromStore copies the enabled backends of st into Deps
func FromStore(cfg config.Conf, st *store.Store) Deps {
	d := Deps{Cfg: cfg}
	if st == nil {
		return d
	}
	d.Log = st.Log
	d.PG = st.PG
	d.RDS = st.RDS
	d.CH = st.CH
	return d
}

// Now returns the configured clock or the wall clock
func (d Deps) Now() ptime.Clock {
	if d.Clock == nil {
		return ptime.System
	}
	return d.Clock
}
