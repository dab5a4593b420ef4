package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"inkwell/internal/modkit/repokit"
	"inkwell/internal/platform/store"
	"inkwell/internal/services/backfill/domain"
	"inkwell/internal/services/backfill/guardrails"
)

type nopDB struct{ repokit.TxRunner }

type fakeRepo struct {
	mu      sync.Mutex
	pending []domain.Pending
	vecs    map[string][]float32
	taken   map[string]bool
	pages   int
}

func newFakeRepo(n int) *fakeRepo {
	r := &fakeRepo{vecs: map[string][]float32{}, taken: map[string]bool{}}
	t0 := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		r.pending = append(r.pending, domain.Pending{
			ID: string(rune('a' + i)), UserID: "u1", Content: "entry " + string(rune('a'+i)), CreatedAt: t0.Add(time.Duration(i) * time.Minute),
		})
	}
	return r
}

func (f *fakeRepo) Pending(_ context.Context, cur domain.Cursor, limit int) ([]domain.Pending, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pages++
	var out []domain.Pending
	for _, p := range f.pending {
		if _, done := f.vecs[p.ID]; done {
			continue
		}
		if !cur.IsZero() && !(p.CreatedAt.After(cur.CreatedAt) || p.CreatedAt.Equal(cur.CreatedAt) && p.ID > cur.ID) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeRepo) SetEmbedding(_ context.Context, id string, vec []float32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.taken[id] {
		return store.ErrNoRowsAffected
	}
	f.vecs[id] = vec
	return nil
}

type fakeEmb struct {
	mu    sync.Mutex
	fail  map[string]bool
	width int
	calls int
}

func (f *fakeEmb) Embed(_ context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.fail[text] {
		return nil, errors.New("provider down")
	}
	return make([]float32, f.width), nil
}

func (f *fakeEmb) Dimension() int { return 3 }

func newSvc(r *fakeRepo, emb *fakeEmb, cfg Config, lease func(context.Context, func(context.Context) error) error) *Service {
	binder := repokit.BindFunc[domain.StorageRepo](func(repokit.Queryer) domain.StorageRepo { return r })
	return New(nopDB{}, binder, emb, cfg, lease)
}

func TestRunEmbedsEverythingInBatches(t *testing.T) {
	r := newFakeRepo(5)
	emb := &fakeEmb{width: 3, fail: map[string]bool{"entry c": true}}
	rep, err := newSvc(r, emb, Config{Batch: 2}, nil).Run(context.Background(), domain.RunOptions{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rep.Scanned != 5 || rep.Embedded != 4 || rep.Failed != 1 || rep.Batches != 3 {
		t.Fatalf("report = %+v", rep)
	}
	if _, ok := r.vecs["c"]; ok {
		t.Fatalf("failed entry was written")
	}
}

func TestRunRespectsMaxAndDryRun(t *testing.T) {
	r := newFakeRepo(5)
	emb := &fakeEmb{width: 3}
	rep, err := newSvc(r, emb, Config{Batch: 2}, nil).Run(context.Background(), domain.RunOptions{Max: 3, DryRun: true})
	if err != nil || rep.Scanned != 3 || rep.Skipped != 3 || rep.Embedded != 0 || !rep.DryRun {
		t.Fatalf("report = %+v, %v", rep, err)
	}
	if emb.calls != 0 || len(r.vecs) != 0 {
		t.Fatalf("dry run touched the provider or the store")
	}
}

func TestRunSkipsWrongWidthAndRacedRows(t *testing.T) {
	r := newFakeRepo(2)
	r.taken["a"] = true
	rep, err := newSvc(r, &fakeEmb{width: 3}, Config{}, nil).Run(context.Background(), domain.RunOptions{})
	if err != nil || rep.Embedded != 1 || rep.Skipped != 1 {
		t.Fatalf("report = %+v, %v", rep, err)
	}

	rep, err = newSvc(newFakeRepo(2), &fakeEmb{width: 4}, Config{}, nil).Run(context.Background(), domain.RunOptions{})
	if err != nil || rep.Failed != 2 || rep.Embedded != 0 {
		t.Fatalf("wrong width report = %+v, %v", rep, err)
	}
}

func TestRunHonoursLease(t *testing.T) {
	held := func(context.Context, func(context.Context) error) error { return domain.ErrLeaseHeld }
	emb := &fakeEmb{width: 3}
	rep, err := newSvc(newFakeRepo(3), emb, Config{}, held).Run(context.Background(), domain.RunOptions{})
	if !errors.Is(err, domain.ErrLeaseHeld) || rep.Scanned != 0 || emb.calls != 0 {
		t.Fatalf("held lease = %+v, %v", rep, err)
	}

	ran := false
	free := func(ctx context.Context, do func(context.Context) error) error { ran = true; return do(ctx) }
	rep, err = newSvc(newFakeRepo(3), emb, Config{}, free).Run(context.Background(), domain.RunOptions{})
	if err != nil || !ran || rep.Embedded != 3 {
		t.Fatalf("free lease = %+v, %v", rep, err)
	}
}

func TestRunBudgetBoundsLease(t *testing.T) {
	var deadline time.Time
	lease := func(ctx context.Context, do func(context.Context) error) error {
		deadline, _ = ctx.Deadline()
		return do(ctx)
	}
	cfg := Config{Timeouts: guardrails.Timeouts{Run: time.Minute}}
	before := time.Now()
	if _, err := newSvc(newFakeRepo(1), &fakeEmb{width: 3}, cfg, lease).Run(context.Background(), domain.RunOptions{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if deadline.IsZero() || deadline.Before(before) || deadline.After(before.Add(time.Minute+time.Second)) {
		t.Fatalf("lease deadline = %v, want about a minute from %v", deadline, before)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newSvc(newFakeRepo(3), &fakeEmb{width: 3}, Config{}, nil).Run(ctx, domain.RunOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
}

type countRunner struct {
	mu   sync.Mutex
	runs int
	done chan struct{}
}

func (c *countRunner) Run(context.Context, domain.RunOptions) (domain.Report, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.runs++
	if c.runs == 1 {
		close(c.done)
	}
	return domain.Report{}, nil
}

func TestScheduler(t *testing.T) {
	if _, err := NewScheduler(&countRunner{}, "not a spec", nil); err == nil {
		t.Fatalf("bad spec accepted")
	}
	r := &countRunner{done: make(chan struct{})}
	s, err := NewScheduler(r, "@every 1s", time.UTC)
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}
	s.Start()
	select {
	case <-r.done:
	case <-time.After(5 * time.Second):
		t.Fatalf("scheduler never ran")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Stop(ctx); err != nil {
		t.Fatalf("Stop: %v", err)
	}
}
