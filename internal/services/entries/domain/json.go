package domain

import (
	"encoding/json"
	"time"
)

// MarshalJSON writes entry_date as YYYY-MM-DD or null
func (e Entry) MarshalJSON() ([]byte, error) {
	type plain Entry
	var date *string
	if e.EntryDate != nil {
		s := e.EntryDate.Format(time.DateOnly)
		date = &s
	}
	return json.Marshal(struct {
		plain
		EntryDate *string `json:"entry_date"`
	}{plain: plain(e), EntryDate: date})
}
