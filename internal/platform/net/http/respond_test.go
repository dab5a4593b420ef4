package http_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "inkwell/internal/platform/errors"
	lumnet "inkwell/internal/platform/net"
	phttp "inkwell/internal/platform/net/http"
)

func withReqID(r *http.Request, id string) *http.Request {
	return r.WithContext(lumnet.WithRequestID(r.Context(), id))
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) phttp.Envelope {
	t.Helper()
	var env phttp.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (%s)", err, rec.Body.String())
	}
	return env
}

func TestRespondHelpers(t *testing.T) {
	req := withReqID(httptest.NewRequest(http.MethodGet, "/", nil), "rid-1")

	rec := httptest.NewRecorder()
	phttp.RespondOK(rec, req, map[string]int{"n": 1})
	if env := decode(t, rec); rec.Code != 200 || env.RequestID != "rid-1" || env.Data == nil {
		t.Fatalf("RespondOK: %d %+v", rec.Code, env)
	}

	rec = httptest.NewRecorder()
	phttp.RespondCreated(rec, req, "x")
	if rec.Code != http.StatusCreated {
		t.Fatalf("RespondCreated: %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	phttp.RespondError(rec, req, perr.NotFoundf("entry not found"))
	env := decode(t, rec)
	if rec.Code != 404 || env.Code != perr.ErrorCodeNotFound || env.Error != "entry not found" {
		t.Fatalf("RespondError: %d %+v", rec.Code, env)
	}
}

func TestHandleStatuses(t *testing.T) {
	cases := []struct {
		name string
		resp phttp.Response
		want int
	}{
		{"zero", phttp.Response{Body: "x"}, http.StatusOK},
		{"created", phttp.Created("x"), http.StatusCreated},
		{"accepted", phttp.Accepted(nil), http.StatusAccepted},
		{"nocontent", phttp.NoContent(), http.StatusNoContent},
		{"teapot", phttp.Response{Status: http.StatusTeapot}, http.StatusTeapot},
		{"error", phttp.Error(perr.Unauthorizedf("bad token")), http.StatusUnauthorized},
		{"foreign", phttp.Error(errors.New("boom")), http.StatusInternalServerError},
	}
	for _, c := range cases {
		rec := httptest.NewRecorder()
		resp := c.resp
		phttp.Handle(func(*http.Request) phttp.Response { return resp })(rec, httptest.NewRequest("GET", "/", nil))
		if rec.Code != c.want {
			t.Fatalf("%s: status = %d, want %d", c.name, rec.Code, c.want)
		}
		if c.want == http.StatusNoContent && rec.Body.Len() != 0 {
			t.Fatalf("204 must have no body")
		}
	}
}

func TestHandleHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	h := phttp.Handle(func(*http.Request) phttp.Response {
		return phttp.Response{Status: 200, Header: http.Header{"X-Search-Mode": {"date"}}}
	})
	h(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Header().Get("X-Search-Mode") != "date" {
		t.Fatalf("header not copied")
	}
}

type echoIn struct {
	Query string `json:"query" validate:"required"`
}

func TestJSONHandlers(t *testing.T) {
	echo := func(_ *http.Request, in echoIn) (any, error) { return in.Query, nil }

	rec := httptest.NewRecorder()
	phttp.JSONHandler(echo)(rec, httptest.NewRequest("POST", "/", strings.NewReader(`{"query":"hi"}`)))
	if env := decode(t, rec); rec.Code != 200 || env.Data != "hi" {
		t.Fatalf("JSONHandler: %d %+v", rec.Code, env)
	}

	rec = httptest.NewRecorder()
	phttp.JSONCreatedHandler(echo)(rec, httptest.NewRequest("POST", "/", strings.NewReader(`{"query":"hi"}`)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("JSONCreatedHandler: %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	phttp.JSONHandler(echo)(rec, httptest.NewRequest("POST", "/", strings.NewReader(`{}`)))
	if env := decode(t, rec); rec.Code != 400 || env.Field != "query" {
		t.Fatalf("validation: %d %+v", rec.Code, env)
	}

	rec = httptest.NewRecorder()
	phttp.JSONHandlerNoBody(func(*http.Request) (any, error) { return nil, nil })(rec, httptest.NewRequest("DELETE", "/", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("nil result should be 204, got %d", rec.Code)
	}
}
