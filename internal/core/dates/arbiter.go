package dates

import (
	"time"

	ptime "inkwell/internal/platform/time"
)

// Source names the tier a constraint came from
type Source string

// Arbitration tiers in priority order
const (
	SourceExplicit Source = "explicit"
	SourceFilter   Source = "filter"
	SourceQuery    Source = "query"
	SourceNone     Source = "none"
)

// Constraint is the arbitrated date window, Source is SourceNone when unconstrained
type Constraint struct {
	Range
	Source Source
}

// Ok reports whether the constraint filters by date at all
func (c Constraint) Ok() bool { return c.Source != SourceNone && !c.Range.IsZero() }

// Arbiter merges the three date sources into one constraint
type Arbiter struct {
	res *Resolver
}

// NewArbiter builds an arbiter over res, which also supplies the calendar location
func NewArbiter(res *Resolver) *Arbiter {
	if res == nil {
		res = NewResolver()
	}
	return &Arbiter{res: res}
}

// Resolver returns the resolver consulted for the query tier
func (a *Arbiter) Resolver() *Resolver { return a.res }

// Arbitrate short circuits at the first satisfied tier:
// explicit bounds, then a well formed structured filter, then the query text
// a malformed filter is skipped, not reported
func (a *Arbiter) Arbitrate(query string, filter *Filter, start, end *time.Time) Constraint {
	if start != nil && end != nil && !start.IsZero() && !end.IsZero() {
		loc := a.res.Location()
		return Constraint{
			Range:  Range{Start: ptime.Day(start.In(loc)), End: ptime.Day(end.In(loc))},
			Source: SourceExplicit,
		}
	}
	if filter != nil && filter.HasDateFilter {
		if rg, err := filter.Range(a.res.Location()); err == nil {
			return Constraint{Range: rg, Source: SourceFilter}
		}
	}
	if rg, ok := a.res.Resolve(query); ok {
		return Constraint{Range: rg, Source: SourceQuery}
	}
	return Constraint{Source: SourceNone}
}
