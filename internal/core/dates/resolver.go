package dates

import (
	"regexp"
	"strconv"
	"time"

	ptime "inkwell/internal/platform/time"
)

// rule reads one kind of date expression out of a normalized query
type rule struct {
	name  string
	match func(q string, today time.Time) (Range, bool)
}

// Resolver maps free text to a Range, first matching rule wins
// safe for concurrent use
type Resolver struct {
	now   ptime.Clock
	loc   *time.Location
	rules []rule
}

// Option configures a Resolver
type Option func(*Resolver)

// WithClock pins "now", tests use it to fix the current day
func WithClock(c ptime.Clock) Option {
	return func(r *Resolver) {
		if c != nil {
			r.now = c
		}
	}
}

// WithLocation sets the calendar days are computed in, time.Local by default
func WithLocation(loc *time.Location) Option {
	return func(r *Resolver) {
		if loc != nil {
			r.loc = loc
		}
	}
}

// NewResolver builds a resolver with the standard rule order:
// relative periods, then specific dates, then month and year
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{now: ptime.System, loc: time.Local}
	for _, o := range opts {
		o(r)
	}
	r.rules = append(r.rules, relativeRules...)
	r.rules = append(r.rules, specificDateRules...)
	r.rules = append(r.rules, rule{name: "month_year", match: matchMonthYear})
	return r
}

// Location returns the calendar the resolver works in
func (r *Resolver) Location() *time.Location { return r.loc }

// Today returns the current calendar day in the resolver's location
func (r *Resolver) Today() time.Time { return ptime.Day(r.now().In(r.loc)) }

// Resolve returns the range the query names, ok is false when nothing matched
func (r *Resolver) Resolve(query string) (Range, bool) {
	rg, _, ok := r.resolve(query)
	return rg, ok
}

// Explain is Resolve that also names the rule that fired
func (r *Resolver) Explain(query string) (Range, string, bool) {
	return r.resolve(query)
}

func (r *Resolver) resolve(query string) (Range, string, bool) {
	q := normalize(query)
	if q == "" {
		return Range{}, "", false
	}
	today := r.Today()
	for _, rl := range r.rules {
		if rg, ok := rl.match(q, today); ok {
			return rg, rl.name, true
		}
	}
	return Range{}, "", false
}

func phrase(re *regexp.Regexp, span func(today time.Time) Range) func(string, time.Time) (Range, bool) {
	return func(q string, today time.Time) (Range, bool) {
		if !re.MatchString(q) {
			return Range{}, false
		}
		return span(today), true
	}
}

var relativeRules = []rule{
	{"this_month", phrase(regexp.MustCompile(`\b(?:current|this) month\b`), func(t time.Time) Range {
		return monthOf(t)
	})},
	{"last_month", phrase(regexp.MustCompile(`\b(?:last|previous) month\b`), func(t time.Time) Range {
		first, _ := ptime.MonthBounds(t)
		return monthOf(first.AddDate(0, 0, -1))
	})},
	{"this_week", phrase(regexp.MustCompile(`\b(?:this|current) week\b`), func(t time.Time) Range {
		mon, sun := ptime.WeekBounds(t)
		return Range{Start: mon, End: sun}
	})},
	{"last_week", phrase(regexp.MustCompile(`\b(?:last|previous) week\b`), func(t time.Time) Range {
		mon, sun := ptime.WeekBounds(t)
		return Range{Start: mon.AddDate(0, 0, -7), End: sun.AddDate(0, 0, -7)}
	})},
}

func monthOf(t time.Time) Range {
	first, last := ptime.MonthBounds(t)
	return Range{Start: first, End: last}
}

const monthAlt = `(january|february|march|april|may|june|july|august|september|october|november|december|` +
	`jan|feb|mar|apr|jun|jul|aug|sept|sep|oct|nov|dec)`

var months = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "sept": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

// dmy field positions per pattern, 0 means the month is named
type dmy struct{ day, month, year, name int }

func specific(name, pattern string, pos dmy) rule {
	re := regexp.MustCompile(pattern)
	return rule{name: name, match: func(q string, today time.Time) (Range, bool) {
		for _, m := range re.FindAllStringSubmatch(q, -1) {
			var month time.Month
			if pos.name > 0 {
				month = months[m[pos.name]]
			} else {
				n, _ := strconv.Atoi(m[pos.month])
				month = time.Month(n)
			}
			day, _ := strconv.Atoi(m[pos.day])
			year, _ := strconv.Atoi(m[pos.year])
			if d, ok := calendarDate(year, month, day, today.Location()); ok {
				return Day(d), true
			}
		}
		return Range{}, false
	}}
}

var specificDateRules = []rule{
	specific("day_month_year", `\b(\d{1,2})(?:st|nd|rd|th)? (?:of )?`+monthAlt+`\.?,? (\d{4})\b`, dmy{day: 1, name: 2, year: 3}),
	specific("month_day_year", `\b`+monthAlt+`\.? (\d{1,2})(?:st|nd|rd|th)?,? ?(\d{4})\b`, dmy{name: 1, day: 2, year: 3}),
	specific("iso", `\b(\d{4})-(\d{1,2})-(\d{1,2})\b`, dmy{year: 1, month: 2, day: 3}),
	specific("us_slash", `\b(\d{1,2})/(\d{1,2})/(\d{4})\b`, dmy{month: 1, day: 2, year: 3}),
	specific("us_dash", `\b(\d{1,2})-(\d{1,2})-(\d{4})\b`, dmy{month: 1, day: 2, year: 3}),
}

var monthYearRe = regexp.MustCompile(`\b` + monthAlt + `\.?,? (\d{4})\b`)

func matchMonthYear(q string, today time.Time) (Range, bool) {
	m := monthYearRe.FindStringSubmatch(q)
	if m == nil {
		return Range{}, false
	}
	year, _ := strconv.Atoi(m[2])
	return monthOf(time.Date(year, months[m[1]], 1, 0, 0, 0, 0, today.Location())), true
}

// calendarDate rejects days time.Date would silently roll over, like 02/30
func calendarDate(year int, month time.Month, day int, loc *time.Location) (time.Time, bool) {
	if month < time.January || month > time.December || day < 1 || year < 1 {
		return time.Time{}, false
	}
	d := time.Date(year, month, day, 0, 0, 0, 0, loc)
	if d.Month() != month || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}
