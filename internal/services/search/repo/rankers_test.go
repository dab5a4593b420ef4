package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"inkwell/internal/core/dates"
	"inkwell/internal/core/similarity"
	"inkwell/internal/services/search/domain"

	"github.com/jackc/pgx/v5/pgconn"
)

type fakeRepo struct {
	nearestErr error
	nearest    int
	cands      []similarity.Candidate[domain.Entry]
	lastUser   string
}

func (f *fakeRepo) Nearest(_ context.Context, q similarity.Query, _ int) ([]similarity.Scored[domain.Entry], error) {
	f.nearest++
	f.lastUser = q.UserID
	return nil, f.nearestErr
}

func (f *fakeRepo) Candidates(_ context.Context, userID string, _ *dates.Range) ([]similarity.Candidate[domain.Entry], error) {
	f.lastUser = userID
	return f.cands, nil
}

func (f *fakeRepo) ByEntryDate(context.Context, string, dates.Range, int) ([]domain.Entry, error) {
	return nil, nil
}

func (f *fakeRepo) ByCreatedDate(context.Context, string, dates.Range, int) ([]domain.Entry, error) {
	return nil, nil
}

func cand(id, vec string, created time.Time) similarity.Candidate[domain.Entry] {
	return similarity.Candidate[domain.Entry]{
		Item:   domain.Entry{ID: id, CreatedAt: created},
		Key:    similarity.Key{ID: id, CreatedAt: created},
		Vector: vec,
	}
}

func TestChainFallsBackToCosine(t *testing.T) {
	t0 := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	r := &fakeRepo{
		nearestErr: errors.New("connection reset"),
		cands: []similarity.Candidate[domain.Entry]{
			cand("far", "[0,1]", t0),
			cand("near", "[1,0]", t0.Add(time.Hour)),
			cand("bad", "[1,0,0]", t0),
			cand("garbage", "not a vector", t0),
		},
	}
	hits, name, err := NewChain(r, 2).Rank(context.Background(), similarity.Query{UserID: "u1", Vector: []float32{1, 0}, Limit: 5})
	if err != nil || name != "cosine" {
		t.Fatalf("Rank = %q, %v", name, err)
	}
	if len(hits) != 2 || hits[0].Item.ID != "near" || hits[1].Item.ID != "far" {
		t.Fatalf("hits = %+v", hits)
	}
	if r.lastUser != "u1" {
		t.Fatalf("fallback ran for %q", r.lastUser)
	}
}

func TestVectorRankerLatchesMissingExtension(t *testing.T) {
	r := &fakeRepo{nearestErr: &pgconn.PgError{Code: "42704"}}
	v := NewVectorRanker(r, 2)
	if !v.Available(context.Background()) {
		t.Fatalf("available before the first failure")
	}
	if _, err := v.Rank(context.Background(), similarity.Query{UserID: "u1"}); err == nil {
		t.Fatalf("expected the repo error")
	}
	if v.Available(context.Background()) {
		t.Fatalf("missing extension should latch")
	}

	chain := similarity.NewChain[domain.Entry](nil, v, NewCosineRanker(r, 2))
	if _, name, err := chain.Rank(context.Background(), similarity.Query{UserID: "u1", Vector: []float32{1, 0}}); err != nil || name != "cosine" {
		t.Fatalf("Rank = %q, %v", name, err)
	}
	if r.nearest != 1 {
		t.Fatalf("pgvector retried after latching: %d calls", r.nearest)
	}
}

func TestVectorRankerTransientErrorDoesNotLatch(t *testing.T) {
	v := NewVectorRanker(&fakeRepo{nearestErr: errors.New("timeout")}, 2)
	_, _ = v.Rank(context.Background(), similarity.Query{})
	if !v.Available(context.Background()) {
		t.Fatalf("transient errors must not disable pgvector")
	}
}
