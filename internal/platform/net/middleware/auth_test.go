package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	perr "inkwell/internal/platform/errors"
	pnet "inkwell/internal/platform/net"
	"inkwell/internal/platform/net/middleware"
)

type portFunc func(*http.Request) (string, error)

func (f portFunc) Parse(r *http.Request) (string, error) { return f(r) }

func writeStatus(w http.ResponseWriter, status int, _ any) { w.WriteHeader(status) }

func TestAuth(t *testing.T) {
	cases := []struct {
		name     string
		port     middleware.AuthPort
		want     int
		wantUser string
	}{
		{"nil port", nil, 200, ""},
		{"accepted", portFunc(func(*http.Request) (string, error) { return "u-1", nil }), 200, "u-1"},
		{"rejected", portFunc(func(*http.Request) (string, error) { return "", perr.Unauthorizedf("no token") }), 401, ""},
	}
	for _, c := range cases {
		var seen string
		var called bool
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			seen = pnet.UserID(r.Context())
		})
		rec := httptest.NewRecorder()
		middleware.Auth(c.port, writeStatus)(next).ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
		if rec.Code != c.want {
			t.Fatalf("%s: status = %d, want %d", c.name, rec.Code, c.want)
		}
		if called != (c.want == 200) || seen != c.wantUser {
			t.Fatalf("%s: called=%v user=%q", c.name, called, seen)
		}
	}
}
