// Package repo provides postgres reads for search and the analytics sink
package repo

import (
	"context"
	"time"

	"inkwell/internal/core/dates"
	"inkwell/internal/core/similarity"
	"inkwell/internal/modkit/repokit"
	perr "inkwell/internal/platform/errors"
	"inkwell/internal/platform/store"
	"inkwell/internal/services/search/domain"
)

// Repo is the search read contract, every call is scoped to one user
type Repo interface {
	// Nearest ranks with pgvector, skipping vectors whose width is not dim
	Nearest(ctx context.Context, q similarity.Query, dim int) ([]similarity.Scored[domain.Entry], error)
	// Candidates loads the same rows as Nearest with their encoded vectors, unranked
	Candidates(ctx context.Context, userID string, window *dates.Range) ([]similarity.Candidate[domain.Entry], error)
	ByEntryDate(ctx context.Context, userID string, rg dates.Range, limit int) ([]domain.Entry, error)
	ByCreatedDate(ctx context.Context, userID string, rg dates.Range, limit int) ([]domain.Entry, error)
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

// windowPred is true for every row when the start parameter is null; legacy rows
// without entry_date count on their creation day
func windowPred(start, end string) string {
	return `(
	` + start + `::date is null
	or entry_date between ` + start + `::date and ` + end + `::date
	or (entry_date is null and created_at::date between ` + start + `::date and ` + end + `::date)
)`
}

func windowArgs(w *dates.Range) (any, any) {
	if w == nil || w.IsZero() {
		return nil, nil
	}
	return day(w.Start), day(w.End)
}

func scanEntry(dst *domain.Entry, extra ...any) []any {
	return append([]any{&dst.ID, &dst.Content, &dst.EntryDate, &dst.CreatedAt, &dst.UpdatedAt, &dst.HasEmbedding}, extra...)
}

func key(e domain.Entry) similarity.Key { return similarity.Key{CreatedAt: e.CreatedAt, ID: e.ID} }

func (r *queries) Nearest(ctx context.Context, q similarity.Query, dim int) ([]similarity.Scored[domain.Entry], error) {
	// a zero magnitude side makes <=> NaN, which ranks as distance 1 like the in memory path
	sql := `
select ` + entryCols + `,
	coalesce(nullif(embedding <=> $2::vector, 'NaN'::float8), 1) as distance
from journal_entries
where user_id = $1::uuid
	and embedding is not null
	and vector_dims(embedding) = $5
	and ` + windowPred("$3", "$4") + `
order by distance, created_at, id
limit $6`
	start, end := windowArgs(q.Window)
	out, err := store.Many(ctx, r.q, func(row store.Row) (similarity.Scored[domain.Entry], error) {
		var s similarity.Scored[domain.Entry]
		err := row.Scan(scanEntry(&s.Item, &s.Distance)...)
		s.Key = key(s.Item)
		return s, err
	}, sql, q.UserID, similarity.Encode(q.Vector).String(), start, end, dim, q.Limit)
	return out, perr.FromPostgres(err, "rank entries")
}

func (r *queries) Candidates(ctx context.Context, userID string, window *dates.Range) ([]similarity.Candidate[domain.Entry], error) {
	sql := `
select ` + entryCols + `, embedding::text
from journal_entries
where user_id = $1::uuid
	and embedding is not null
	and ` + windowPred("$2", "$3")
	start, end := windowArgs(window)
	out, err := store.Many(ctx, r.q, func(row store.Row) (similarity.Candidate[domain.Entry], error) {
		var c similarity.Candidate[domain.Entry]
		err := row.Scan(scanEntry(&c.Item, &c.Vector)...)
		c.Key = key(c.Item)
		return c, err
	}, sql, userID, start, end)
	return out, perr.FromPostgres(err, "load candidates")
}

func (r *queries) ByEntryDate(ctx context.Context, userID string, rg dates.Range, limit int) ([]domain.Entry, error) {
	const sql = `
select ` + entryCols + `
from journal_entries
where user_id = $1::uuid and entry_date between $2::date and $3::date
order by entry_date desc, created_at desc, id
limit $4`
	return r.byDay(ctx, sql, "entries by entry date", userID, rg, limit)
}

func (r *queries) ByCreatedDate(ctx context.Context, userID string, rg dates.Range, limit int) ([]domain.Entry, error) {
	const sql = `
select ` + entryCols + `
from journal_entries
where user_id = $1::uuid and created_at::date between $2::date and $3::date
order by created_at desc, id
limit $4`
	return r.byDay(ctx, sql, "entries by creation date", userID, rg, limit)
}

func (r *queries) byDay(ctx context.Context, sql, what, userID string, rg dates.Range, limit int) ([]domain.Entry, error) {
	out, err := store.Many(ctx, r.q, func(row store.Row) (domain.Entry, error) {
		var e domain.Entry
		err := row.Scan(scanEntry(&e)...)
		return e, err
	}, sql, userID, day(rg.Start), day(rg.End), limit)
	return out, perr.FromPostgres(err, what)
}

// day strips the clock so the date cast cannot shift across a zone boundary
func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
