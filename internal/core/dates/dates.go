// Package dates turns date intent into calendar day ranges
//
// A Resolver reads free text ("last week", "August 2025", "2025-08-15") and an
// Arbiter picks one range out of the explicit bounds, the structured filter the
// model extracted and the resolver's reading of the query. Ranges are whole
// days in the server's calendar, inclusive on both ends.
package dates

import (
	"errors"
	"time"

	ptime "inkwell/internal/platform/time"
)

// ErrMalformedDateFilter marks a structured filter that claims a range but
// does not carry two valid dates
var ErrMalformedDateFilter = errors.New("dates: malformed date filter")

// Range is an inclusive span of calendar days
type Range struct {
	Start time.Time
	End   time.Time
}

// Day builds a single day range
func Day(t time.Time) Range {
	d := ptime.Day(t)
	return Range{Start: d, End: d}
}

// IsZero reports an unset range
func (r Range) IsZero() bool { return r.Start.IsZero() && r.End.IsZero() }

// Contains reports whether t's calendar day falls inside r
func (r Range) Contains(t time.Time) bool {
	d := ptime.Day(t.In(r.Start.Location()))
	return !d.Before(r.Start) && !d.After(r.End)
}

// String renders the range as start..end in YYYY-MM-DD form
func (r Range) String() string {
	return r.Start.Format(time.DateOnly) + ".." + r.End.Format(time.DateOnly)
}

// FilterType tells how a structured filter was derived
type FilterType string

// Filter types, as produced by the model
const (
	FilterSpecificDate FilterType = "specific_date"
	FilterDateRange    FilterType = "date_range"
	FilterRelative     FilterType = "relative"
	FilterNone         FilterType = "none"
)

// Filter is the structured date filter extracted from a question
type Filter struct {
	HasDateFilter bool       `json:"has_date_filter"`
	StartDate     string     `json:"start_date,omitempty"`
	EndDate       string     `json:"end_date,omitempty"`
	FilterType    FilterType `json:"filter_type"`
}

// NoFilter is the filter returned when nothing date like was found
func NoFilter() Filter { return Filter{FilterType: FilterNone} }

// Range parses both dates in loc
// it fails with ErrMalformedDateFilter for a missing, unparseable or inverted pair
func (f Filter) Range(loc *time.Location) (Range, error) {
	if !f.HasDateFilter {
		return Range{}, ErrMalformedDateFilter
	}
	start, err := ptime.ParseDate(f.StartDate, loc)
	if err != nil {
		return Range{}, errors.Join(ErrMalformedDateFilter, err)
	}
	end, err := ptime.ParseDate(f.EndDate, loc)
	if err != nil {
		return Range{}, errors.Join(ErrMalformedDateFilter, err)
	}
	if end.Before(start) {
		return Range{}, ErrMalformedDateFilter
	}
	return Range{Start: start, End: end}, nil
}
