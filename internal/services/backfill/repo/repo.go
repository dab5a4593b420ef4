// Package repo provides postgres access for backfill writes
package repo

import (
	"context"
	"errors"

	"inkwell/internal/core/similarity"
	"inkwell/internal/modkit/repokit"
	perr "inkwell/internal/platform/errors"
	"inkwell/internal/platform/store"
	"inkwell/internal/services/backfill/domain"
)

type (
	// PG is a Postgres binder for domain.StorageRepo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a Postgres binder for domain.StorageRepo
func NewPG() repokit.Binder[domain.StorageRepo] { return PG{} }

// Bind implements repokit.Binder
func (PG) Bind(q repokit.Queryer) domain.StorageRepo { return &queries{q: q} }

// Pending pages with a (created_at, id) keyset so entries that keep failing are not revisited
func (r *queries) Pending(ctx context.Context, cur domain.Cursor, limit int) ([]domain.Pending, error) {
	const sql = `
		SELECT id::text, user_id::text, content, created_at
		FROM journal_entries
		WHERE embedding IS NULL
			AND btrim(content) <> ''
			AND ($1::timestamptz IS NULL OR (created_at, id) > ($1::timestamptz, $2::uuid))
		ORDER BY created_at, id
		LIMIT $3
	`
	var at, id any
	if !cur.IsZero() {
		at, id = cur.CreatedAt, cur.ID
	}
	out, err := store.Many(ctx, r.q, func(row store.Row) (domain.Pending, error) {
		var p domain.Pending
		err := row.Scan(&p.ID, &p.UserID, &p.Content, &p.CreatedAt)
		return p, err
	}, sql, at, id, limit)
	return out, perr.FromPostgres(err, "list pending entries")
}

// SetEmbedding leaves updated_at alone, the entry itself did not change
func (r *queries) SetEmbedding(ctx context.Context, id string, vec []float32) error {
	err := store.ExecOne(ctx, r.q, `
		UPDATE journal_entries SET embedding = $2::vector
		WHERE id = $1::uuid AND embedding IS NULL
	`, id, similarity.Encode(vec).String())
	if errors.Is(err, store.ErrNoRowsAffected) {
		return err
	}
	return perr.FromPostgres(err, "store embedding")
}
