//go:build integration_pg

package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"inkwell/internal/platform/store"
	"inkwell/internal/platform/testkit"
	"inkwell/internal/services/backfill/domain"

	"github.com/google/uuid"
)

func TestPendingAndSetEmbedding(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	st, err := store.Open(ctx, store.Config{PG: store.PGConfig{Enabled: true, URL: testkit.StartPostgres(t), MaxConns: 4}})
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close(context.Background()) })
	if _, err := st.PG.Exec(ctx, testkit.Schema); err != nil {
		t.Fatalf("schema: %v", err)
	}

	user := uuid.NewString()
	if _, err := st.PG.Exec(ctx, `insert into users (id, username, email, password_hash) values ($1::uuid, 'u', 'u@example.com', 'x')`, user); err != nil {
		t.Fatalf("user: %v", err)
	}
	add := func(content, created string, vec any) {
		if _, err := st.PG.Exec(ctx, `
insert into journal_entries (id, user_id, content, embedding, created_at)
values ($1::uuid, $2::uuid, $3, $4::vector, $5::timestamptz)`, uuid.NewString(), user, content, vec, created); err != nil {
			t.Fatalf("entry: %v", err)
		}
	}
	add("first", "2025-08-01T00:00:00Z", nil)
	add("second", "2025-08-02T00:00:00Z", nil)
	add("done", "2025-08-03T00:00:00Z", "[1,0,0]")
	add("   ", "2025-08-04T00:00:00Z", nil)

	r := NewPG().Bind(st.PG)
	page, err := r.Pending(ctx, domain.Cursor{}, 1)
	if err != nil || len(page) != 1 || page[0].Content != "first" || page[0].UserID != user {
		t.Fatalf("first page = %+v, %v", page, err)
	}
	next, err := r.Pending(ctx, domain.Cursor{CreatedAt: page[0].CreatedAt, ID: page[0].ID}, 10)
	if err != nil || len(next) != 1 || next[0].Content != "second" {
		t.Fatalf("second page = %+v, %v", next, err)
	}

	if err := r.SetEmbedding(ctx, page[0].ID, []float32{0, 1, 0}); err != nil {
		t.Fatalf("SetEmbedding: %v", err)
	}
	if err := r.SetEmbedding(ctx, page[0].ID, []float32{0, 0, 1}); !errors.Is(err, store.ErrNoRowsAffected) {
		t.Fatalf("second SetEmbedding err = %v", err)
	}
	left, _ := r.Pending(ctx, domain.Cursor{}, 10)
	if len(left) != 1 || left[0].Content != "second" {
		t.Fatalf("left = %+v", left)
	}
}
