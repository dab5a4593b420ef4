package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"inkwell/internal/core/dates"
)

func dateFilterPrompt(query string, today time.Time) string {
	return fmt.Sprintf(`Today is %s (%s). Decide whether the question below restricts journal entries to dates.
Reply with JSON only, no prose, in this shape:
{"has_date_filter": bool, "start_date": "YYYY-MM-DD", "end_date": "YYYY-MM-DD", "filter_type": "specific_date|date_range|relative|none"}
Use inclusive calendar days. Weeks start on Monday. When there is no date restriction reply
{"has_date_filter": false, "filter_type": "none"}

Question: %s`, today.Format(time.DateOnly), today.Weekday(), query)
}

// parseDateFilter pulls the first JSON object out of a reply that may be fenced or chatty
func parseDateFilter(raw string) (dates.Filter, error) {
	start := strings.IndexByte(raw, '{')
	end := strings.LastIndexByte(raw, '}')
	if start < 0 || end <= start {
		return dates.Filter{}, errors.New("no json object in reply")
	}
	var f dates.Filter
	if err := json.Unmarshal([]byte(raw[start:end+1]), &f); err != nil {
		return dates.Filter{}, err
	}
	switch f.FilterType {
	case dates.FilterSpecificDate, dates.FilterDateRange, dates.FilterRelative:
	case dates.FilterNone, "":
		if f.HasDateFilter {
			f.FilterType = dates.FilterDateRange
		} else {
			f.FilterType = dates.FilterNone
		}
	default:
		return dates.Filter{}, fmt.Errorf("unknown filter_type %q", f.FilterType)
	}
	if !f.HasDateFilter {
		return dates.NoFilter(), nil
	}
	return f, nil
}
