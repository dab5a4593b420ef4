package repo

import (
	"context"
	"time"

	"inkwell/internal/platform/logger"
	"inkwell/internal/platform/store"
	"inkwell/internal/services/search/domain"
)

// EventsTable is the clickhouse table answered searches land in
//
//	create table search_events (
//		at DateTime64(3), user_id String, query_length UInt32, strategy LowCardinality(String),
//		results UInt32, ai_available Bool, latency_ms UInt32
//	) engine = MergeTree order by (user_id, at)
const EventsTable = "search_events"

const eventTimeout = 2 * time.Second

// CHEvents writes events to clickhouse one row per search
type CHEvents struct {
	ch      store.Clickhouse
	timeout time.Duration
}

// NewEvents returns the clickhouse sink, or a sink that drops everything when ch is nil
func NewEvents(ch store.Clickhouse) domain.EventSink {
	if ch == nil {
		return NopEvents{}
	}
	return &CHEvents{ch: ch, timeout: eventTimeout}
}

// Record inserts ev under its own timeout, detached from the request; failures are logged
func (s *CHEvents) Record(ctx context.Context, ev domain.Event) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()
	row := []any{
		ev.At.UTC(),
		ev.UserID,
		uint32(max(ev.QueryLength, 0)),
		string(ev.Strategy),
		uint32(max(ev.Count, 0)),
		ev.AIAvailable,
		uint32(max(ev.Latency.Milliseconds(), 0)),
	}
	if err := s.ch.Insert(ctx, EventsTable, [][]any{row}); err != nil {
		logger.C(ctx).Warn().Err(err).Msg("search event dropped")
	}
}

// NopEvents discards events
type NopEvents struct{}

// Record implements domain.EventSink
func (NopEvents) Record(context.Context, domain.Event) {}
