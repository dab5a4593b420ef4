// Package domain holds the embedding backfill types
package domain

import (
	"errors"
	"time"
)

// ErrLeaseHeld signals another runner owns the backfill already
var ErrLeaseHeld = errors.New("backfill: lease already held")

// Pending is an entry still waiting for its embedding
type Pending struct {
	ID        string
	UserID    string
	Content   string
	CreatedAt time.Time
}

// Cursor is the keyset position, the zero value starts from the oldest entry
type Cursor struct {
	CreatedAt time.Time
	ID        string
}

// IsZero reports the starting cursor
func (c Cursor) IsZero() bool { return c.ID == "" }

// RunOptions narrows one run; zero values fall back to the service config
type RunOptions struct {
	Batch  int
	Max    int
	DryRun bool
}

// Report summarises a run
type Report struct {
	Batches  int           `json:"batches"`
	Scanned  int           `json:"scanned"`
	Embedded int           `json:"embedded"`
	Failed   int           `json:"failed"`
	Skipped  int           `json:"skipped"`
	DryRun   bool          `json:"dry_run"`
	Elapsed  time.Duration `json:"elapsed"`
}
