// Package domain holds search types, canned answers and DTOs
package domain

import (
	"errors"
	"time"

	"inkwell/internal/core/dates"
	entriesdom "inkwell/internal/services/entries/domain"
)

// Entry is a journal entry as search returns it
type Entry = entriesdom.Entry

// ErrUnauthorized is the only hard failure of a search: no caller
var ErrUnauthorized = errors.New("search: missing user")

// Canned answers
const (
	MessageNoEntries       = "I couldn't find any relevant entries to answer your question. Try adding more journal entries first!"
	MessageGenerationFail  = "I found relevant entries but couldn't generate a response due to AI service issues. Please try again later."
	MessageEmbeddingFailed = "AI search is currently unavailable. Please try again later or use the basic search feature."
)

// Result limits
const (
	DefaultLimit = 10
	MaxLimit     = 50
)

// Strategy names the engine that served a search
type Strategy string

// Strategies
const (
	StrategySimilarity Strategy = "similarity"
	StrategyDate       Strategy = "date"
	StrategyNone       Strategy = "none"
)

// SearchRequest is one orchestrated search
// Embedding nil means date only; explicit bounds beat DateFilter which beats Query
type SearchRequest struct {
	UserID     string
	Query      string
	Embedding  []float32
	DateFilter *dates.Filter
	StartDate  *time.Time
	EndDate    *time.Time
	Limit      int
}

// Result is the ordered entries plus how they were found
type Result struct {
	Entries    []Entry
	Strategy   Strategy
	Constraint dates.Constraint
	// Ranker is the similarity strategy that answered, empty for date searches
	Ranker string
}

// Answer is the synthesized reply
type Answer struct {
	Text                string
	Count               int
	CapabilityAvailable bool
}

// Event is one answered search for analytics
type Event struct {
	UserID      string
	QueryLength int
	Strategy    Strategy
	Count       int
	AIAvailable bool
	Latency     time.Duration
	At          time.Time
}
