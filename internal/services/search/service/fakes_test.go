package service

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"inkwell/internal/core/dates"
	"inkwell/internal/core/similarity"
	"inkwell/internal/modkit/repokit"
	kit "inkwell/internal/platform/testkit"
	"inkwell/internal/services/search/domain"
	"inkwell/internal/services/search/repo"
)

type nopDB struct{ repokit.TxRunner }

type row struct {
	user string
	e    domain.Entry
	vec  []float32
}

type fakeRepo struct {
	mu         sync.Mutex
	rows       []row
	nearestErr error
	dayErr     error
	calls      map[string]int
	lastLimit  int
}

func newFakeRepo() *fakeRepo { return &fakeRepo{calls: map[string]int{}} }

func (f *fakeRepo) add(user, id, content, entryDate, created string, vec ...float32) {
	e := domain.Entry{ID: id, Content: content, CreatedAt: day(created).Add(9 * time.Hour), HasEmbedding: len(vec) > 0}
	if entryDate != "" {
		d := day(entryDate)
		e.EntryDate = &d
	}
	f.rows = append(f.rows, row{user: user, e: e, vec: vec})
}

func inWindow(e domain.Entry, w *dates.Range) bool {
	if w == nil {
		return true
	}
	if e.EntryDate != nil {
		return w.Contains(*e.EntryDate)
	}
	return w.Contains(e.CreatedAt)
}

func cosineDistance(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(na)*math.Sqrt(nb))
}

// Nearest mimics the pgvector query: owner, width and window filters, then
// distance, created_at, id
func (f *fakeRepo) Nearest(_ context.Context, q similarity.Query, dim int) ([]similarity.Scored[domain.Entry], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["nearest"]++
	f.lastLimit = q.Limit
	if f.nearestErr != nil {
		return nil, f.nearestErr
	}
	var out []similarity.Scored[domain.Entry]
	for _, r := range f.rows {
		if r.user != q.UserID || len(r.vec) != dim || !inWindow(r.e, q.Window) {
			continue
		}
		out = append(out, similarity.Scored[domain.Entry]{
			Item: r.e, Key: similarity.Key{CreatedAt: r.e.CreatedAt, ID: r.e.ID}, Distance: cosineDistance(q.Vector, r.vec),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Distance != b.Distance {
			return a.Distance < b.Distance
		}
		if !a.Key.CreatedAt.Equal(b.Key.CreatedAt) {
			return a.Key.CreatedAt.Before(b.Key.CreatedAt)
		}
		return a.Key.ID < b.Key.ID
	})
	if len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (f *fakeRepo) Candidates(_ context.Context, userID string, w *dates.Range) ([]similarity.Candidate[domain.Entry], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["candidates"]++
	var out []similarity.Candidate[domain.Entry]
	for _, r := range f.rows {
		if r.user != userID || len(r.vec) == 0 || !inWindow(r.e, w) {
			continue
		}
		out = append(out, similarity.Candidate[domain.Entry]{
			Item: r.e, Key: similarity.Key{CreatedAt: r.e.CreatedAt, ID: r.e.ID}, Vector: similarity.Encode(r.vec).String(),
		})
	}
	return out, nil
}

func (f *fakeRepo) ByEntryDate(_ context.Context, userID string, rg dates.Range, limit int) ([]domain.Entry, error) {
	return f.byDay("entry_date", userID, limit, func(e domain.Entry) bool {
		return e.EntryDate != nil && rg.Contains(*e.EntryDate)
	})
}

func (f *fakeRepo) ByCreatedDate(_ context.Context, userID string, rg dates.Range, limit int) ([]domain.Entry, error) {
	return f.byDay("created_at", userID, limit, func(e domain.Entry) bool { return rg.Contains(e.CreatedAt) })
}

func (f *fakeRepo) byDay(tier, userID string, limit int, keep func(domain.Entry) bool) ([]domain.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[tier]++
	f.lastLimit = limit
	if f.dayErr != nil {
		return nil, f.dayErr
	}
	var out []domain.Entry
	for _, r := range f.rows {
		if r.user == userID && keep(r.e) {
			out = append(out, r.e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Day().After(out[j].Day()) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeCaps struct {
	mu       sync.Mutex
	vec      []float32
	embedErr error
	genErr   error
	reply    string
	filter   dates.Filter
	embeds   int
	gens     int
	prompts  []string
}

func (f *fakeCaps) Embed(_ context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.embeds++
	if f.embedErr != nil {
		return nil, f.embedErr
	}
	return f.vec, nil
}

func (f *fakeCaps) Generate(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gens++
	f.prompts = append(f.prompts, prompt)
	if f.genErr != nil {
		return "", f.genErr
	}
	return f.reply, nil
}

func (f *fakeCaps) ExtractDateFilter(context.Context, string) dates.Filter { return f.filter }

func (f *fakeCaps) Dimension() int { return 3 }

type chanSink chan domain.Event

func (c chanSink) Record(_ context.Context, ev domain.Event) { c <- ev }

var errDown = errors.New("provider down")

func day(s string) time.Time {
	t, err := time.ParseInLocation(time.DateOnly, s, time.Local)
	if err != nil {
		panic(err)
	}
	return t
}

func ids(es []domain.Entry) string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.ID
	}
	return strings.Join(out, ",")
}

// newSvc pins today to 2025-08-15
func newSvc(r *fakeRepo, caps *fakeCaps, opts ...Option) *Svc {
	binder := repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return r })
	opts = append([]Option{WithClock(kit.FixedClock(2025, time.August, 15, 12))}, opts...)
	return New(nopDB{}, binder, caps, opts...)
}
