// Package domain holds journal entry types and DTOs
package domain

import (
	"errors"
	"time"
)

// Domain sentinels
var (
	ErrEntryNotFound = errors.New("entries: entry not found")
	ErrFutureDate    = errors.New("entries: entry date cannot be in the future")
	ErrEmptyContent  = errors.New("entries: content cannot be empty")
)

// Entry is one journal entry as clients see it
// EntryDate is nil only for legacy rows
type Entry struct {
	ID           string     `json:"id" example:"0b4c7f3e-8f3a-4a3e-9e1c-2c9f0c7d7a10"`
	Content      string     `json:"content" example:"Walked the dog by the river."`
	EntryDate    *time.Time `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	HasEmbedding bool       `json:"has_embedding"`
}

// Day is the calendar day an entry counts for, entry_date or else the creation day
func (e Entry) Day() time.Time {
	if e.EntryDate != nil {
		return *e.EntryDate
	}
	y, m, d := e.CreatedAt.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, e.CreatedAt.Location())
}
