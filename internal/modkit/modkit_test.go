package modkit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"inkwell/internal/modkit/httpkit"
	"inkwell/internal/platform/config"
	phttp "inkwell/internal/platform/net/http"
	"inkwell/internal/platform/store"

	"github.com/go-chi/chi/v5"
)

func TestBuild_Defaults(t *testing.T) {
	b := Build()
	if b.Subrouter == nil || b.Register == nil {
		t.Fatalf("hooks should default to no-ops")
	}
	if b.Name != "" || b.Prefix != "" || b.Ports != nil || b.SwaggerOn {
		t.Fatalf("unexpected defaults %+v", b)
	}
}

func TestBuild_AppliesOptionsInOrder(t *testing.T) {
	mw := func(h http.Handler) http.Handler { return h }
	b := Build(
		WithName("entries"),
		WithPrefix("/entries"),
		WithMiddlewares(mw),
		WithMiddlewares(mw),
		WithPorts(42),
		WithSwagger(true),
		WithName("entries2"),
		nil,
	)
	if b.Name != "entries2" || b.Prefix != "/entries" || !b.SwaggerOn || b.Ports.(int) != 42 {
		t.Fatalf("Build = %+v", b)
	}
	if len(b.Mw) != 2 {
		t.Fatalf("middlewares should accumulate, got %d", len(b.Mw))
	}
}

func TestBuilt_Mount(t *testing.T) {
	var order []string
	mw := func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "mw")
			h.ServeHTTP(w, r)
		})
	}
	sub := false
	b := Build(
		WithPrefix("/meta"),
		WithMiddlewares(mw),
		WithSubrouter(func(r httpkit.Router) httpkit.Router { sub = true; return r }),
		WithRegister(func(r httpkit.Router) {
			r.Get("/extra", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })
		}),
	)
	mux := chi.NewRouter()
	b.Mount(phttp.AdaptChi(mux), func(r httpkit.Router) {
		r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
			order = append(order, "handler")
			w.WriteHeader(http.StatusNoContent)
		})
	})
	if !sub {
		t.Fatalf("subrouter hook not called")
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/meta/ping", nil))
	if rec.Code != http.StatusNoContent || len(order) != 2 || order[0] != "mw" {
		t.Fatalf("ping code=%d order=%v", rec.Code, order)
	}
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/meta/extra", nil))
	if rec.Code != http.StatusTeapot {
		t.Fatalf("external register route code=%d", rec.Code)
	}
}

func TestDeps_FromStoreAndClock(t *testing.T) {
	d := FromStore(config.New(), nil)
	if d.PG != nil || d.RDS != nil || d.CH != nil {
		t.Fatalf("nil store should give empty deps")
	}
	if d.Now() == nil {
		t.Fatalf("Now should default to the wall clock")
	}
	fixed := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	d = FromStore(config.New(), &store.Store{})
	d.Clock = func() time.Time { return fixed }
	if !d.Now()().Equal(fixed) {
		t.Fatalf("configured clock ignored")
	}
}
