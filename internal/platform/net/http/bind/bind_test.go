package bind

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "inkwell/internal/platform/errors"
)

type filterIn struct {
	Query     string `json:"query" validate:"notblank,max=500"`
	StartDate string `json:"start_date,omitempty" validate:"omitempty,isodate"`
	Limit     int    `json:"limit,omitempty" validate:"omitempty,min=1,max=50"`
}

func post(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestParseJSON_OK(t *testing.T) {
	got, err := ParseJSON[filterIn](post(`{"query":"gym","start_date":"2025-08-01","limit":5}`))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if got.Query != "gym" || got.StartDate != "2025-08-01" || got.Limit != 5 {
		t.Fatalf("got %+v", got)
	}
}

func TestParseJSON_BodyErrors(t *testing.T) {
	cases := map[string]string{
		"empty":    ``,
		"garbage":  `{`,
		"unknown":  `{"query":"x","nope":1}`,
		"trailing": `{"query":"x"} {"query":"y"}`,
	}
	for name, body := range cases {
		_, err := ParseJSON[filterIn](post(body))
		if perr.CodeOf(err) != perr.ErrorCodeJSON {
			t.Fatalf("%s: code = %d (%v)", name, perr.CodeOf(err), err)
		}
	}
	req := httptest.NewRequest(http.MethodPost, "/", http.NoBody)
	if _, err := ParseJSON[filterIn](req); perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("NoBody should be a JSON error, got %v", err)
	}
}

func TestParseJSON_Validation(t *testing.T) {
	cases := []struct {
		body, field, msg string
	}{
		{`{"query":"   "}`, "query", "must not be blank"},
		{`{"query":"x","start_date":"08/01/2025"}`, "start_date", "YYYY-MM-DD"},
		{`{"query":"x","limit":99}`, "limit", "must be at most 50"},
	}
	for _, c := range cases {
		_, err := ParseJSON[filterIn](post(c.body))
		e, ok := perr.As(err)
		if !ok || e.Code() != perr.ErrorCodeValidation {
			t.Fatalf("%s: want validation error, got %v", c.body, err)
		}
		if e.Field() != c.field || !strings.Contains(e.Message(), c.msg) {
			t.Fatalf("%s: field=%q msg=%q", c.body, e.Field(), e.Message())
		}
	}
}

func TestQueryInt(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?limit=7&offset=-1&bad=x", nil)
	if n, err := QueryInt(r, "limit", 10); err != nil || n != 7 {
		t.Fatalf("limit = %d, %v", n, err)
	}
	if n, err := QueryInt(r, "missing", 10); err != nil || n != 10 {
		t.Fatalf("default = %d, %v", n, err)
	}
	for _, name := range []string{"offset", "bad"} {
		if _, err := QueryInt(r, name, 0); perr.CodeOf(err) != perr.ErrorCodeValidation {
			t.Fatalf("%s should fail validation, got %v", name, err)
		}
	}
}
