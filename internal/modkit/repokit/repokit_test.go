package repokit

import (
	"context"
	stderrs "errors"
	"strings"
	"testing"
	"time"

	"inkwell/internal/platform/store"
	kit "inkwell/internal/platform/testkit"
)

type fakeTag struct{}

func (fakeTag) String() string      { return "" }
func (fakeTag) RowsAffected() int64 { return 0 }

// fakeTx records every Exec
type fakeTx struct {
	execs []string
}

func (f *fakeTx) Exec(_ context.Context, sql string, _ ...any) (store.CommandTag, error) {
	f.execs = append(f.execs, sql)
	return fakeTag{}, nil
}
func (f *fakeTx) Query(context.Context, string, ...any) (store.Rows, error) { return nil, nil }
func (f *fakeTx) QueryRow(context.Context, string, ...any) store.Row      { return nil }
func (f *fakeTx) Tx(_ context.Context, fn func(q store.RowQuerier) error) error { return fn(f) }

var _ TxRunner = (*fakeTx)(nil)

func TestBinder(t *testing.T) {
	b := BindFunc[string](func(Queryer) string { return "ok" })
	if got := MustBind[string](b, &fakeTx{}); got != "ok" {
		t.Fatalf("MustBind = %q", got)
	}
	kit.MustPanic(t, func() { _ = MustBind[string](b, nil) })
	kit.MustPanic(t, func() { _ = RequireQueryer(nil) })
}

func TestBeginHooksRunBeforeFn(t *testing.T) {
	f := &fakeTx{}
	tx := WithBeginHooks(f, StatementTimeout(1500*time.Millisecond), ReadOnly())
	err := tx.Tx(context.Background(), func(q Queryer) error {
		_, err := q.Exec(context.Background(), "SELECT 1")
		return err
	})
	if err != nil {
		t.Fatalf("Tx: %v", err)
	}
	want := []string{"SET LOCAL statement_timeout = 1500", "SET TRANSACTION READ ONLY", "SELECT 1"}
	if strings.Join(f.execs, "|") != strings.Join(want, "|") {
		t.Fatalf("exec order = %v", f.execs)
	}
}

func TestStatementTimeoutZeroIsNoop(t *testing.T) {
	f := &fakeTx{}
	if err := StatementTimeout(0)(context.Background(), f); err != nil || len(f.execs) != 0 {
		t.Fatalf("zero timeout should not exec, got %v %v", f.execs, err)
	}
}

func TestBeginHookErrorAbortsFn(t *testing.T) {
	f := &fakeTx{}
	boom := stderrs.New("boom")
	called := false
	tx := WithBeginHooks(f, func(context.Context, Queryer) error { return boom })
	err := tx.Tx(context.Background(), func(Queryer) error { called = true; return nil })
	if !stderrs.Is(err, boom) || called {
		t.Fatalf("hook error = %v, fn called = %v", err, called)
	}
}

type fakeGuard struct{ err error }

func (g fakeGuard) Guard(context.Context) error { return g.err }

func TestMustGuard(t *testing.T) {
	kit.MustPanic(t, func() { MustGuard(context.Background(), fakeGuard{err: stderrs.New("pg: down")}) })
	kit.MustNotPanic(t, func() { MustGuard(context.Background(), fakeGuard{}) })
}
