package module

import (
	"time"

	"inkwell/internal/platform/config"
	"inkwell/internal/services/backfill/guardrails"
)

// Options holds configuration options for the backfill service
type Options struct {
	Batch        int
	Max          int
	DryRun       bool
	Delay        time.Duration
	RunTimeout   time.Duration
	BatchTimeout time.Duration
	EmbedTimeout time.Duration
	EnableLease  bool
	LockKey      int64

	// Cron is empty when the in process schedule is off
	Cron string
}

// FromConfig reads the backfill options from config with INKWELL_BACKFILL_ prefix
func FromConfig(cfg config.Conf) Options {
	bf := cfg.Prefix("INKWELL_BACKFILL_")
	return Options{
		Batch:        bf.MayInt("BATCH", 100),
		Max:          bf.MayInt("MAX", 0),
		DryRun:       bf.MayBool("DRY_RUN", false),
		Delay:        bf.MayDuration("DELAY", 0),
		RunTimeout:   bf.MayDuration("RUN_TIMEOUT", 30*time.Minute),
		BatchTimeout: bf.MayDuration("BATCH_TIMEOUT", 5*time.Minute),
		EmbedTimeout: bf.MayDuration("EMBED_TIMEOUT", 0),
		EnableLease:  bf.MayBool("LEASE", true),
		LockKey:      int64(bf.MayInt("LOCK_KEY", int(guardrails.DefaultLockKey))),
		Cron:         bf.MayString("CRON", ""),
	}
}
