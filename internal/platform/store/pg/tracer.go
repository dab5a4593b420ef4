package pg

import (
	"context"
	"strings"
	"time"

	"inkwell/internal/platform/logger"

	"github.com/rs/zerolog"
)

// QueryEvent describes one finished statement
type QueryEvent struct {
	SQL     string
	Args    []any
	Elapsed time.Duration
	Err     error
	Slow    bool
}

// QueryTracer receives every statement the store runs
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// Tracer logs statements on its own debug level logger so SQL logging does not
// depend on the process level; slow statements are warnings
func Tracer(root logger.Logger) QueryTracer {
	return &zlTracer{log: root.Level(zerolog.DebugLevel).With().Str("component", "pg").Logger()}
}

type zlTracer struct{ log logger.Logger }

func (z *zlTracer) OnQuery(ctx context.Context, ev QueryEvent) {
	evt := z.log.Debug()
	switch {
	case ev.Err != nil:
		evt = z.log.Error().Err(ev.Err)
	case ev.Slow:
		evt = z.log.Warn().Bool("slow", true)
	}
	// args hold embedding vectors, only their count is logged
	evt.Str("sql", Compact(ev.SQL)).
		Int("args", len(ev.Args)).
		Dur("elapsed", ev.Elapsed).
		Msg("pg query")
}

// Compact collapses runs of whitespace into single spaces
func Compact(sql string) string { return strings.Join(strings.Fields(sql), " ") }
