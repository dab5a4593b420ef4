package similarity

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"inkwell/internal/core/dates"
)

// Query asks for the Limit nearest of one user's entries
// a nil Window means no date filter
type Query struct {
	UserID string
	Vector []float32
	Window *dates.Range
	Limit  int
}

// Key is the tie break identity of a ranked item
type Key struct {
	CreatedAt time.Time
	ID        string
}

// Scored is an item with its cosine distance to the query
type Scored[T any] struct {
	Item     T
	Key      Key
	Distance float64
}

// Compare orders by ascending distance, then older first, then id
func Compare(da float64, a Key, db float64, b Key) int {
	if c := cmp.Compare(da, db); c != 0 {
		return c
	}
	if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}

// Sort orders hits nearest first using Compare
func Sort[T any](hits []Scored[T]) {
	slices.SortStableFunc(hits, func(a, b Scored[T]) int {
		return Compare(a.Distance, a.Key, b.Distance, b.Key)
	})
}

// Ranker is one strategy for answering a Query
type Ranker[T any] interface {
	Name() string
	// Available is a cheap capability check, false skips the strategy
	Available(ctx context.Context) bool
	Rank(ctx context.Context, q Query) ([]Scored[T], error)
}

// ErrNoRanker is returned when every strategy was unavailable
var ErrNoRanker = errors.New("similarity: no ranker available")

// Chain tries rankers in order and returns the first success
// onFail, when set, is told about each failed or skipped strategy
type Chain[T any] struct {
	rankers []Ranker[T]
	onFail  func(name string, err error)
}

// NewChain builds a Chain, primary first
func NewChain[T any](onFail func(name string, err error), rankers ...Ranker[T]) *Chain[T] {
	return &Chain[T]{rankers: rankers, onFail: onFail}
}

// Rank runs the first available strategy that succeeds and names it
func (c *Chain[T]) Rank(ctx context.Context, q Query) ([]Scored[T], string, error) {
	err := ErrNoRanker
	for _, r := range c.rankers {
		if !r.Available(ctx) {
			c.fail(r.Name(), ErrNoRanker)
			continue
		}
		hits, rerr := r.Rank(ctx, q)
		if rerr == nil {
			return hits, r.Name(), nil
		}
		err = rerr
		c.fail(r.Name(), rerr)
		if ctx.Err() != nil {
			return nil, "", ctx.Err()
		}
	}
	return nil, "", err
}

func (c *Chain[T]) fail(name string, err error) {
	if c.onFail != nil {
		c.onFail(name, err)
	}
}

// Candidate is an item with its stored, still encoded, embedding
type Candidate[T any] struct {
	Item   T
	Key    Key
	Vector string
}

// RankInMemory scores candidates against q, drops those whose vector does not
// decode to dim components and returns the nearest limit
// the returned errors describe each skipped candidate
func RankInMemory[T any](q []float32, dim int, cands []Candidate[T], limit int) ([]Scored[T], []error) {
	hits := make([]Scored[T], 0, len(cands))
	var skipped []error
	for _, c := range cands {
		v, err := ParseVector(c.Vector, dim)
		if err != nil {
			skipped = append(skipped, errors.Join(errors.New("entry "+c.Key.ID), err))
			continue
		}
		hits = append(hits, Scored[T]{Item: c.Item, Key: c.Key, Distance: Distance(q, v)})
	}
	Sort(hits)
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, skipped
}
