package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"inkwell/internal/modkit/httpkit"
	phttp "inkwell/internal/platform/net/http"
	"inkwell/internal/services/auth/domain"

	"github.com/go-chi/chi/v5"
)

type fakeSvc struct {
	err     error
	profile string
}

func (f *fakeSvc) Register(context.Context, domain.RegisterInput) (domain.TokenResponse, error) {
	return domain.TokenResponse{AccessToken: "t", TokenType: "bearer"}, f.err
}

func (f *fakeSvc) Login(context.Context, domain.LoginInput) (domain.TokenResponse, error) {
	return domain.TokenResponse{AccessToken: "t"}, f.err
}

func (f *fakeSvc) Profile(_ context.Context, uid string) (domain.User, error) {
	f.profile = uid
	return domain.User{ID: uid, Username: "ada"}, f.err
}

func (f *fakeSvc) ForgotPassword(context.Context, domain.ForgotPasswordInput) (domain.MessageResponse, error) {
	return domain.MessageResponse{Message: "sent"}, f.err
}

func (f *fakeSvc) ResetPassword(context.Context, domain.ResetPasswordInput) (domain.MessageResponse, error) {
	return domain.MessageResponse{Message: "ok"}, f.err
}

func do(t *testing.T, svc domain.ServicePort, method, path, body, bearer string) (*httptest.ResponseRecorder, httpkit.Envelope) {
	t.Helper()
	mux := chi.NewRouter()
	port := httpkit.NewPortFunc(func(tok string) (string, error) {
		if tok != "good" {
			return "", domain.ErrInvalidCredentials
		}
		return "user-1", nil
	})
	Register(phttp.AdaptChi(mux), svc, port)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	var env httpkit.Envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

func TestRegisterCreated(t *testing.T) {
	rec, _ := do(t, &fakeSvc{}, stdhttp.MethodPost, "/register", `{"username":"ada","email":"ada@example.com","password":"correct horse"}`, "")
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("register code = %d body = %s", rec.Code, rec.Body.String())
	}
}

func TestRegisterValidation(t *testing.T) {
	cases := map[string]string{
		"username": `{"username":"ad","email":"ada@example.com","password":"correct horse"}`,
		"email":    `{"username":"ada","email":"nope","password":"correct horse"}`,
		"password": `{"username":"ada","email":"ada@example.com","password":"short"}`,
	}
	for field, body := range cases {
		rec, env := do(t, &fakeSvc{}, stdhttp.MethodPost, "/register", body, "")
		if rec.Code != stdhttp.StatusBadRequest || env.Field != field {
			t.Fatalf("%s: code = %d env = %+v", field, rec.Code, env)
		}
	}
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		path string
		body string
		want int
	}{
		{domain.ErrInvalidCredentials, "/login", `{"username":"ada","password":"x"}`, stdhttp.StatusUnauthorized},
		{domain.ErrInvalidResetToken, "/reset-password", `{"token":"abc","password":"battery staple"}`, stdhttp.StatusBadRequest},
	}
	for _, tc := range cases {
		rec, _ := do(t, &fakeSvc{err: tc.err}, stdhttp.MethodPost, tc.path, tc.body, "")
		if rec.Code != tc.want {
			t.Fatalf("%s: code = %d, want %d", tc.path, rec.Code, tc.want)
		}
	}
}

func TestProfileNeedsBearer(t *testing.T) {
	svc := &fakeSvc{}
	if rec, _ := do(t, svc, stdhttp.MethodGet, "/profile", "", ""); rec.Code != stdhttp.StatusUnauthorized {
		t.Fatalf("no token code = %d", rec.Code)
	}
	if rec, _ := do(t, svc, stdhttp.MethodGet, "/profile", "", "bad"); rec.Code != stdhttp.StatusUnauthorized {
		t.Fatalf("bad token code = %d", rec.Code)
	}
	rec, _ := do(t, svc, stdhttp.MethodGet, "/profile", "", "good")
	if rec.Code != stdhttp.StatusOK || svc.profile != "user-1" {
		t.Fatalf("profile code = %d uid = %q", rec.Code, svc.profile)
	}
}
