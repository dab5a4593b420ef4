package http

import (
	"context"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pnet "inkwell/internal/platform/net"
	phttp "inkwell/internal/platform/net/http"
	kit "inkwell/internal/platform/testkit"
	"inkwell/internal/services/search/domain"

	"github.com/go-chi/chi/v5"
)

type fakeSvc struct {
	ans     domain.Answer
	err     error
	lastUID string
	lastQ   string
	lastIn  domain.EntriesInput
}

func (f *fakeSvc) AnswerQuery(_ context.Context, uid, q string) (domain.Answer, error) {
	f.lastUID, f.lastQ = uid, q
	return f.ans, f.err
}

func (f *fakeSvc) ListEntries(_ context.Context, uid string, in domain.EntriesInput) (domain.EntriesResponse, error) {
	f.lastUID, f.lastIn = uid, in
	return domain.EntriesResponse{Entries: []domain.Entry{}, Strategy: domain.StrategyNone}, f.err
}

func (f *fakeSvc) Probe(context.Context) domain.ProbeResponse {
	return domain.ProbeResponse{EmbeddingOK: true, Dimension: 768}
}

func do(t *testing.T, svc domain.ServicePort, uid, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	mux := chi.NewRouter()
	mux.Use(func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
			if uid != "" {
				r = r.WithContext(pnet.WithUser(r.Context(), uid))
			}
			next.ServeHTTP(w, r)
		})
	})
	Register(phttp.AdaptChi(mux), svc)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func TestAsk(t *testing.T) {
	svc := &fakeSvc{ans: domain.Answer{Text: domain.MessageGenerationFail, Count: 2}}
	rec := do(t, svc, "user-1", stdhttp.MethodPost, "/", `{"query":"what did I do last week?"}`)
	if rec.Code != stdhttp.StatusOK || svc.lastUID != "user-1" || svc.lastQ != "what did I do last week?" {
		t.Fatalf("code = %d uid = %q q = %q", rec.Code, svc.lastUID, svc.lastQ)
	}
	body := rec.Body.String()
	kit.MustContain(t, body, `"relevant_entries_count":2`)
	kit.MustContain(t, body, `"ai_available":false`)
	kit.MustContain(t, body, "couldn't generate a response")

	if rec := do(t, svc, "user-1", stdhttp.MethodPost, "/", `{"query":"   "}`); rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("blank query code = %d", rec.Code)
	}
	if rec := do(t, svc, "", stdhttp.MethodPost, "/", `{"query":"x"}`); rec.Code != stdhttp.StatusUnauthorized {
		t.Fatalf("anonymous code = %d", rec.Code)
	}
	if rec := do(t, &fakeSvc{err: domain.ErrUnauthorized}, "user-1", stdhttp.MethodPost, "/", `{"query":"x"}`); rec.Code != stdhttp.StatusUnauthorized {
		t.Fatalf("ErrUnauthorized code = %d", rec.Code)
	}
}

func TestEntries(t *testing.T) {
	svc := &fakeSvc{}
	rec := do(t, svc, "user-1", stdhttp.MethodPost, "/entries", `{"start_date":"2025-08-01","end_date":"2025-08-31","limit":5}`)
	if rec.Code != stdhttp.StatusOK || svc.lastIn.StartDate != "2025-08-01" || svc.lastIn.Limit != 5 {
		t.Fatalf("code = %d in = %+v", rec.Code, svc.lastIn)
	}
	for _, body := range []string{`{"limit":51}`, `{"start_date":"08/01/2025","end_date":"2025-08-31"}`, `{"bogus":1}`} {
		if rec := do(t, svc, "user-1", stdhttp.MethodPost, "/entries", body); rec.Code != stdhttp.StatusBadRequest {
			t.Fatalf("%s: code = %d", body, rec.Code)
		}
	}
}

func TestProbe(t *testing.T) {
	rec := do(t, &fakeSvc{}, "user-1", stdhttp.MethodGet, "/test", "")
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("code = %d", rec.Code)
	}
	kit.MustContain(t, rec.Body.String(), `"embedding_ok":true`)
	kit.MustContain(t, rec.Body.String(), `"dimension":768`)
}
