// Package repo provides postgres access for journal entries
package repo

import (
	"context"
	"errors"
	"time"

	"inkwell/internal/core/similarity"
	"inkwell/internal/modkit/repokit"
	perr "inkwell/internal/platform/errors"
	"inkwell/internal/platform/store"
	"inkwell/internal/services/entries/domain"
)

// Repo is the entry storage contract, every call is scoped to userID
type Repo interface {
	Insert(ctx context.Context, in Row) (domain.Entry, error)
	List(ctx context.Context, userID string, limit, offset int) ([]domain.Entry, int, error)
	Get(ctx context.Context, userID, id string) (domain.Entry, error)
	// Update writes content and date; the embedding is only touched when in.Embed is true
	Update(ctx context.Context, in Row) (domain.Entry, error)
	Delete(ctx context.Context, userID, id string) error
}

// Row is an entry write
type Row struct {
	ID        string
	UserID    string
	Content   string
	EntryDate time.Time
	Embedding []float32
	Embed     bool
}

type (
	// PG implements Repo on postgres
	PG struct{}

	queries struct{ q repokit.Queryer }
)

// NewPG returns the postgres binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const entryCols = `id::text, content, entry_date, created_at, updated_at, embedding is not null`

func scanEntry(r store.Row) (domain.Entry, error) {
	var e domain.Entry
	err := r.Scan(&e.ID, &e.Content, &e.EntryDate, &e.CreatedAt, &e.UpdatedAt, &e.HasEmbedding)
	return e, err
}

// vectorArg is the $n::vector bind value, nil writes NULL
func vectorArg(v []float32) any {
	if len(v) == 0 {
		return nil
	}
	return similarity.Encode(v).String()
}

func (r *queries) Insert(ctx context.Context, in Row) (domain.Entry, error) {
	const sql = `
insert into journal_entries (id, user_id, content, entry_date, embedding)
values ($1::uuid, $2::uuid, $3, $4::date, $5::vector)
returning ` + entryCols
	e, err := store.One(ctx, r.q, scanEntry, sql, in.ID, in.UserID, in.Content, in.EntryDate, vectorArg(in.Embedding))
	return e, perr.FromPostgres(err, "insert entry")
}

func (r *queries) List(ctx context.Context, userID string, limit, offset int) ([]domain.Entry, int, error) {
	const sql = `
select ` + entryCols + `
from journal_entries
where user_id = $1::uuid
order by entry_date desc nulls last, updated_at desc, id
limit $2 offset $3`
	out, err := store.Many(ctx, r.q, scanEntry, sql, userID, limit, offset)
	if err != nil {
		return nil, 0, perr.FromPostgres(err, "list entries")
	}
	total, err := store.Scalar[int](ctx, r.q, `select count(*) from journal_entries where user_id = $1::uuid`, userID)
	if err != nil {
		return nil, 0, perr.FromPostgres(err, "count entries")
	}
	return out, total, nil
}

func (r *queries) Get(ctx context.Context, userID, id string) (domain.Entry, error) {
	const sql = `select ` + entryCols + ` from journal_entries where id = $1::uuid and user_id = $2::uuid`
	e, err := store.One(ctx, r.q, scanEntry, sql, id, userID)
	if errors.Is(err, perr.ErrNotFound) {
		return domain.Entry{}, domain.ErrEntryNotFound
	}
	return e, perr.FromPostgres(err, "get entry")
}

func (r *queries) Update(ctx context.Context, in Row) (domain.Entry, error) {
	const sql = `
update journal_entries
set content = $3,
	entry_date = $4::date,
	embedding = case when $5 then $6::vector else embedding end,
	updated_at = now()
where id = $1::uuid and user_id = $2::uuid
returning ` + entryCols
	e, err := store.One(ctx, r.q, scanEntry, sql, in.ID, in.UserID, in.Content, in.EntryDate, in.Embed, vectorArg(in.Embedding))
	if errors.Is(err, perr.ErrNotFound) {
		return domain.Entry{}, domain.ErrEntryNotFound
	}
	return e, perr.FromPostgres(err, "update entry")
}

func (r *queries) Delete(ctx context.Context, userID, id string) error {
	err := store.ExecOne(ctx, r.q, `delete from journal_entries where id = $1::uuid and user_id = $2::uuid`, id, userID)
	if errors.Is(err, store.ErrNoRowsAffected) {
		return domain.ErrEntryNotFound
	}
	return perr.FromPostgres(err, "delete entry")
}
