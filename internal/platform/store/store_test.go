package store

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"inkwell/internal/platform/config"
	"inkwell/internal/platform/store/pg"
	"inkwell/internal/platform/testkit"

	"github.com/rs/zerolog"
)

type fakeKV struct {
	pingErr error
	closed  bool
}

func (f *fakeKV) Get(context.Context, string) ([]byte, error)  { return nil, ErrCacheMiss }
func (f *fakeKV) Take(context.Context, string) ([]byte, error) { return nil, ErrCacheMiss }
func (f *fakeKV) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}
func (f *fakeKV) Incr(context.Context, string, time.Duration) (int64, error) { return 1, nil }
func (f *fakeKV) Ping(context.Context) error                                 { return f.pingErr }
func (f *fakeKV) Close() error                                               { f.closed = true; return nil }

type fakeCH struct{ closed bool }

func (f *fakeCH) Insert(context.Context, string, [][]any) error { return nil }
func (f *fakeCH) Query(context.Context, string, ...any) (Rows, error) {
	return nil, errors.New("unused")
}
func (f *fakeCH) Ping(context.Context) error { return nil }
func (f *fakeCH) Close() error               { f.closed = true; return nil }

func TestOpen_NothingEnabled(t *testing.T) {
	s, err := Open(context.Background(), Config{}, WithLogger(zerolog.New(io.Discard)))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.PG != nil || s.RDS != nil || s.CH != nil {
		t.Fatalf("disabled backends should stay nil: %+v", s)
	}
	if len(s.Checks()) != 0 || s.Guard(context.Background()) != nil || s.Close(context.Background()) != nil {
		t.Fatalf("empty store should guard and close cleanly")
	}
}

func TestOpen_OptionError(t *testing.T) {
	boom := errors.New("boom")
	if _, err := Open(context.Background(), Config{}, func(*Store) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("option error lost: %v", err)
	}
}

func TestGuardJoinsFailures(t *testing.T) {
	kv := &fakeKV{pingErr: errors.New("refused")}
	ch := &fakeCH{}
	s := &Store{RDS: kv, CH: ch}

	checks := s.Checks()
	if _, ok := checks["redis"]; !ok || len(checks) != 2 {
		t.Fatalf("checks = %v", checks)
	}
	err := s.Guard(context.Background())
	if err == nil || !strings.Contains(err.Error(), "redis: refused") {
		t.Fatalf("Guard = %v", err)
	}
	if err := s.Close(context.Background()); err != nil || !kv.closed || !ch.closed {
		t.Fatalf("Close did not reach backends: %v", err)
	}
	var nilStore *Store
	if nilStore.Guard(context.Background()) == nil {
		t.Fatalf("nil store should fail Guard")
	}
}

func TestConfigFrom(t *testing.T) {
	t.Setenv("SERVICE_PGSQL_DBURL", "postgres://u:p@db:5432/inkwell")
	t.Setenv("SERVICE_PGSQL_MAX_CONNS", "3")
	t.Setenv("SERVICE_REDIS_URL", "redis://cache:6379/0")
	cfg := ConfigFrom(config.New(), "api")

	if !cfg.PG.Enabled || cfg.PG.MaxConns != 3 || cfg.AppName != "inkwell-api" {
		t.Fatalf("pg = %+v", cfg.PG)
	}
	if !cfg.RDS.Enabled || cfg.CH.Enabled || cfg.CH.ClientTag != "api" {
		t.Fatalf("rds=%+v ch=%+v", cfg.RDS, cfg.CH)
	}

	t.Setenv("SERVICE_REDIS_ENABLED", "false")
	if ConfigFrom(config.New(), "api").RDS.Enabled {
		t.Fatalf("explicit ENABLED=false should win")
	}
}

func TestOpenPG_RetriesUntilPing(t *testing.T) {
	testkit.Serial(t)
	calls := 0
	testkit.Swap(t, &pingPool, func(context.Context, *pg.PG) error {
		calls++
		if calls < 3 {
			return errors.New("starting up")
		}
		return nil
	})
	s := &Store{Log: zerolog.New(io.Discard)}
	txr, err := openPG(context.Background(), Config{PG: PGConfig{URL: "postgres://u:p@127.0.0.1:1/db"}}, s)
	if err != nil {
		t.Fatalf("openPG: %v", err)
	}
	defer txr.(*pgAdapter).Close()
	if calls != 3 {
		t.Fatalf("ping calls = %d", calls)
	}
}

func TestOpenPG_GivesUp(t *testing.T) {
	testkit.Serial(t)
	testkit.Swap(t, &pingPool, func(context.Context, *pg.PG) error { return errors.New("down") })
	s := &Store{Log: zerolog.New(io.Discard)}
	_, err := openPG(context.Background(), Config{PG: PGConfig{URL: "postgres://u:p@127.0.0.1:1/db", ConnectRetries: 2}}, s)
	if err == nil || !strings.Contains(err.Error(), "after 2 attempts") {
		t.Fatalf("err = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := openPG(ctx, Config{PG: PGConfig{URL: "postgres://u:p@127.0.0.1:1/db"}}, s); !errors.Is(err, context.Canceled) {
		t.Fatalf("cancelled ctx err = %v", err)
	}
}
