//go:build integration_pg

package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"inkwell/internal/platform/store"
	"inkwell/internal/platform/testkit"
	"inkwell/internal/services/entries/domain"

	"github.com/google/uuid"
)

func openRepo(t *testing.T) (Repo, store.TxRunner) {
	t.Helper()
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
	return NewPG().Bind(st.PG), st.PG
}

func addUser(t *testing.T, db store.TxRunner, name string) string {
	t.Helper()
	id := uuid.NewString()
	if _, err := db.Exec(context.Background(),
		`insert into users (id, username, email, password_hash) values ($1::uuid, $2, $3, 'x')`, id, name, name+"@example.com"); err != nil {
		t.Fatalf("insert user: %v", err)
	}
	return id
}

func day(s string) time.Time {
	d, _ := time.Parse(time.DateOnly, s)
	return d
}

func TestEntriesCRUD(t *testing.T) {
	r, db := openRepo(t)
	ctx := context.Background()
	alice, bob := addUser(t, db, "alice"), addUser(t, db, "bob")

	e, err := r.Insert(ctx, Row{ID: uuid.NewString(), UserID: alice, Content: "first", EntryDate: day("2025-08-01"), Embedding: []float32{1, 0, 0}})
	if err != nil || !e.HasEmbedding || e.EntryDate.Format(time.DateOnly) != "2025-08-01" {
		t.Fatalf("Insert = %+v, %v", e, err)
	}
	plain, err := r.Insert(ctx, Row{ID: uuid.NewString(), UserID: alice, Content: "second", EntryDate: day("2025-08-03")})
	if err != nil || plain.HasEmbedding {
		t.Fatalf("Insert without vector = %+v, %v", plain, err)
	}
	if _, err := db.Exec(ctx, `insert into journal_entries (id, user_id, content) values ($1::uuid, $2::uuid, 'legacy')`, uuid.NewString(), alice); err != nil {
		t.Fatalf("legacy row: %v", err)
	}

	list, total, err := r.List(ctx, alice, 10, 0)
	if err != nil || total != 3 {
		t.Fatalf("List total = %d, %v", total, err)
	}
	if list[0].Content != "second" || list[1].Content != "first" || list[2].EntryDate != nil {
		t.Fatalf("order = %q %q %q", list[0].Content, list[1].Content, list[2].Content)
	}

	if _, err := r.Get(ctx, bob, e.ID); !errors.Is(err, domain.ErrEntryNotFound) {
		t.Fatalf("cross user get err = %v", err)
	}

	up, err := r.Update(ctx, Row{ID: e.ID, UserID: alice, Content: "first, edited", EntryDate: day("2025-08-02")})
	if err != nil || !up.HasEmbedding || up.Content != "first, edited" {
		t.Fatalf("Update keeping vector = %+v, %v", up, err)
	}
	up, err = r.Update(ctx, Row{ID: e.ID, UserID: alice, Content: "first, edited", EntryDate: day("2025-08-02"), Embed: true})
	if err != nil || up.HasEmbedding {
		t.Fatalf("Update clearing vector = %+v, %v", up, err)
	}
	if _, err := r.Update(ctx, Row{ID: e.ID, UserID: bob, Content: "x", EntryDate: day("2025-08-02")}); !errors.Is(err, domain.ErrEntryNotFound) {
		t.Fatalf("cross user update err = %v", err)
	}

	if err := r.Delete(ctx, bob, e.ID); !errors.Is(err, domain.ErrEntryNotFound) {
		t.Fatalf("cross user delete err = %v", err)
	}
	if err := r.Delete(ctx, alice, e.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}
