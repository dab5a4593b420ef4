// Package service contains entry workflows: writes embed best effort, reads are owner scoped
package service

import (
	"context"
	"strings"
	"time"

	"inkwell/internal/adapters/llm"
	"inkwell/internal/core/similarity"
	"inkwell/internal/modkit/repokit"
	perr "inkwell/internal/platform/errors"
	"inkwell/internal/platform/logger"
	str "inkwell/internal/platform/strings"
	ptime "inkwell/internal/platform/time"
	"inkwell/internal/services/entries/domain"
	"inkwell/internal/services/entries/repo"

	"github.com/google/uuid"
)

// Embedder is the slice of llm.Capabilities entries need
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimension() int
}

var _ Embedder = (llm.Capabilities)(nil)

// Service is the entries contract
type Service interface{ domain.ServicePort }

// Svc implements Service
type Svc struct {
	Repo repo.Repo
	emb  Embedder
	now  ptime.Clock
	loc  *time.Location
}

// Option configures Svc
type Option func(*Svc)

// WithClock overrides the wall clock
func WithClock(c ptime.Clock) Option {
	return func(s *Svc) {
		if c != nil {
			s.now = c
		}
	}
}

// WithLocation sets the calendar used for "today"
func WithLocation(loc *time.Location) Option {
	return func(s *Svc) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// New creates the entries service, emb may be nil to store entries without embeddings
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], emb Embedder, opts ...Option) *Svc {
	if db == nil {
		panic("entries.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("entries.Service requires a non nil Repo binder")
	}
	s := &Svc{Repo: binder.Bind(db), emb: emb, now: ptime.System, loc: time.Local}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Create stores an entry dated today unless told otherwise
func (s *Svc) Create(ctx context.Context, userID string, in domain.CreateInput) (domain.EntryResponse, error) {
	content := strings.TrimSpace(str.Clean(in.Content))
	if content == "" {
		return domain.EntryResponse{}, domain.ErrEmptyContent
	}
	day, err := s.entryDay(in.EntryDate)
	if err != nil {
		return domain.EntryResponse{}, err
	}
	vec := s.embed(ctx, content)
	e, err := s.Repo.Insert(ctx, repo.Row{
		ID:        uuid.NewString(),
		UserID:    userID,
		Content:   content,
		EntryDate: day,
		Embedding: vec,
	})
	if err != nil {
		return domain.EntryResponse{}, err
	}
	return domain.EntryResponse{Entry: e, HasEmbedding: e.HasEmbedding}, nil
}

// List returns the caller's entries, entry_date desc nulls last then updated_at desc
func (s *Svc) List(ctx context.Context, userID string, limit, offset int) (domain.ListResponse, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	rows, total, err := s.Repo.List(ctx, userID, limit, offset)
	if err != nil {
		return domain.ListResponse{}, err
	}
	return domain.ListResponse{Entries: rows, Total: total}, nil
}

// Get returns one of the caller's entries
func (s *Svc) Get(ctx context.Context, userID, id string) (domain.EntryResponse, error) {
	if !isID(id) {
		return domain.EntryResponse{}, domain.ErrEntryNotFound
	}
	e, err := s.Repo.Get(ctx, userID, id)
	if err != nil {
		return domain.EntryResponse{}, err
	}
	return domain.EntryResponse{Entry: e, HasEmbedding: e.HasEmbedding}, nil
}

// Update applies the given fields; a content or date change re-embeds and a failed
// re-embed keeps the stored vector
func (s *Svc) Update(ctx context.Context, userID, id string, in domain.UpdateInput) (domain.EntryResponse, error) {
	if !isID(id) {
		return domain.EntryResponse{}, domain.ErrEntryNotFound
	}
	cur, err := s.Repo.Get(ctx, userID, id)
	if err != nil {
		return domain.EntryResponse{}, err
	}

	content := cur.Content
	if in.Content != nil {
		content = strings.TrimSpace(str.Clean(*in.Content))
		if content == "" {
			return domain.EntryResponse{}, domain.ErrEmptyContent
		}
	}
	day := cur.Day()
	if raw := str.Deref(in.EntryDate); raw != "" {
		if day, err = s.entryDay(raw); err != nil {
			return domain.EntryResponse{}, err
		}
	}

	row := repo.Row{ID: id, UserID: userID, Content: content, EntryDate: day}
	changed := content != cur.Content || cur.EntryDate == nil || !sameDay(day, *cur.EntryDate)
	if changed {
		if vec := s.embed(ctx, content); vec != nil {
			row.Embedding, row.Embed = vec, true
		}
	}
	e, err := s.Repo.Update(ctx, row)
	if err != nil {
		return domain.EntryResponse{}, err
	}
	return domain.EntryResponse{Entry: e, HasEmbedding: e.HasEmbedding}, nil
}

// Delete removes one of the caller's entries
func (s *Svc) Delete(ctx context.Context, userID, id string) (domain.DeleteResponse, error) {
	if !isID(id) {
		return domain.DeleteResponse{}, domain.ErrEntryNotFound
	}
	if err := s.Repo.Delete(ctx, userID, id); err != nil {
		return domain.DeleteResponse{}, err
	}
	return domain.DeleteResponse{Message: "Entry deleted successfully"}, nil
}

// entryDay parses YYYY-MM-DD, "" is today, and rejects the future
func (s *Svc) entryDay(raw string) (time.Time, error) {
	today := ptime.Day(s.now().In(s.loc))
	if strings.TrimSpace(raw) == "" {
		return today, nil
	}
	day, err := ptime.ParseDate(strings.TrimSpace(raw), s.loc)
	if err != nil {
		return time.Time{}, perr.WithField(perr.Validationf("entry_date must be a date in YYYY-MM-DD form"), "entry_date")
	}
	if day.After(today) {
		return time.Time{}, domain.ErrFutureDate
	}
	return day, nil
}

// embed returns nil on any failure, the entry is stored without a vector
func (s *Svc) embed(ctx context.Context, text string) []float32 {
	if s.emb == nil {
		return nil
	}
	v, err := s.emb.Embed(ctx, text)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Msg("entry stored without embedding")
		return nil
	}
	if err := similarity.CheckDimension(v, s.emb.Dimension()); err != nil {
		logger.C(ctx).Warn().Err(err).Msg("entry stored without embedding")
		return nil
	}
	return v
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func isID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
