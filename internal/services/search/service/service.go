// Package service is journal search: the orchestrator that picks similarity or
// date only retrieval, and the synthesizer that turns entries into an answer
package service

import (
	"context"
	"strings"
	"time"

	"inkwell/internal/adapters/llm"
	"inkwell/internal/core/dates"
	"inkwell/internal/core/similarity"
	"inkwell/internal/modkit/repokit"
	"inkwell/internal/platform/logger"
	ptime "inkwell/internal/platform/time"
	"inkwell/internal/services/search/domain"
	"inkwell/internal/services/search/repo"
)

// Service is the search contract
type Service interface{ domain.ServicePort }

// ranker is satisfied by *similarity.Chain
type ranker interface {
	Rank(ctx context.Context, q similarity.Query) ([]similarity.Scored[domain.Entry], string, error)
}

// Svc implements Service
type Svc struct {
	Repo   repo.Repo
	caps   llm.Capabilities
	rank   ranker
	arb    *dates.Arbiter
	events domain.EventSink

	now        ptime.Clock
	loc        *time.Location
	maxEntries int
	maxChars   int
}

// Option configures Svc
type Option func(*Svc)

// WithClock overrides the wall clock, relative dates resolve against it
func WithClock(c ptime.Clock) Option {
	return func(s *Svc) {
		if c != nil {
			s.now = c
		}
	}
}

// WithLocation sets the calendar dates are resolved in
func WithLocation(loc *time.Location) Option {
	return func(s *Svc) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithEvents sets the analytics sink
func WithEvents(e domain.EventSink) Option {
	return func(s *Svc) {
		if e != nil {
			s.events = e
		}
	}
}

// WithContextBounds caps how many entries and characters reach the prompt
func WithContextBounds(entries, chars int) Option {
	return func(s *Svc) {
		if entries > 0 {
			s.maxEntries = entries
		}
		if chars > 0 {
			s.maxChars = chars
		}
	}
}

// New creates the search service over the caller supplied capabilities
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], caps llm.Capabilities, opts ...Option) *Svc {
	if db == nil {
		panic("search.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("search.Service requires a non nil Repo binder")
	}
	if caps == nil {
		panic("search.Service requires llm capabilities")
	}
	s := &Svc{
		Repo:       binder.Bind(db),
		caps:       caps,
		events:     repo.NopEvents{},
		now:        ptime.System,
		loc:        time.Local,
		maxEntries: MaxContextEntries,
		maxChars:   MaxContextChars,
	}
	for _, o := range opts {
		o(s)
	}
	s.arb = dates.NewArbiter(dates.NewResolver(dates.WithClock(s.now), dates.WithLocation(s.loc)))
	s.rank = repo.NewChain(s.Repo, caps.Dimension())
	return s
}

// Search resolves the date constraint and runs one engine, scoped to req.UserID
// engine failures are logged and read as no results
func (s *Svc) Search(ctx context.Context, req domain.SearchRequest) (domain.Result, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return domain.Result{}, domain.ErrUnauthorized
	}
	limit := clampLimit(req.Limit)
	c := s.arb.Arbitrate(req.Query, req.DateFilter, req.StartDate, req.EndDate)
	res := domain.Result{Entries: []domain.Entry{}, Strategy: domain.StrategyNone, Constraint: c}
	log := logger.C(ctx).With().Str("date_source", string(c.Source)).Logger()

	if len(req.Embedding) > 0 {
		res.Strategy = domain.StrategySimilarity
		q := similarity.Query{UserID: req.UserID, Vector: req.Embedding, Limit: limit}
		if c.Ok() {
			w := c.Range
			q.Window = &w
		}
		hits, name, err := s.rank.Rank(ctx, q)
		if err != nil {
			log.Warn().Err(err).Msg("similarity search failed")
			return res, nil
		}
		res.Ranker = name
		for _, h := range hits {
			res.Entries = append(res.Entries, h.Item)
		}
		return res, nil
	}

	// re-resolving the query here would repeat the arbiter's query tier, so no range means no date search
	if !c.Ok() {
		return res, nil
	}
	res.Strategy = domain.StrategyDate
	rows, err := s.RangeQuery(ctx, req.UserID, &c.Range, limit)
	if err != nil {
		log.Warn().Err(err).Msg("date search failed")
		return res, nil
	}
	res.Entries = rows
	return res, nil
}

// RangeQuery returns entries dated inside rg; only when none are, entries created
// inside rg. A nil range is empty
func (s *Svc) RangeQuery(ctx context.Context, userID string, rg *dates.Range, limit int) ([]domain.Entry, error) {
	if rg == nil || rg.IsZero() {
		return []domain.Entry{}, nil
	}
	limit = clampLimit(limit)
	rows, err := s.Repo.ByEntryDate(ctx, userID, *rg, limit)
	if err != nil || len(rows) > 0 {
		return rows, err
	}
	rows, err = s.Repo.ByCreatedDate(ctx, userID, *rg, limit)
	if rows == nil && err == nil {
		rows = []domain.Entry{}
	}
	return rows, err
}

func clampLimit(n int) int {
	switch {
	case n <= 0:
		return domain.DefaultLimit
	case n > domain.MaxLimit:
		return domain.MaxLimit
	}
	return n
}
