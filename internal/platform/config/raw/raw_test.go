package raw

import "testing"

func TestEnvGet(t *testing.T) {
	t.Setenv("LOG_LEVEL", " info ")
	t.Setenv("LOG_FORMAT", "")

	log := New().Prefix("LOG_")
	if got := log.Get("LEVEL", "debug"); got != "info" {
		t.Fatalf("Get(LEVEL) = %q, want info", got)
	}
	if got := log.Get("FORMAT", "console"); got != "console" {
		t.Fatalf("blank value should fall back, got %q", got)
	}
	if got := log.Get("MISSING", "x"); got != "x" {
		t.Fatalf("missing value should fall back, got %q", got)
	}
}

func TestEnvGetBool(t *testing.T) {
	e := New().Prefix("B_")
	cases := map[string]bool{"1": true, "TRUE": true, "yes": true, "on": true, "0": false, "no": false, "nope": false}
	for v, want := range cases {
		t.Setenv("B_FLAG", v)
		if got := e.GetBool("FLAG", !want); got != want {
			t.Fatalf("GetBool(%q) = %v, want %v", v, got, want)
		}
	}
	if !e.GetBool("UNSET", true) {
		t.Fatalf("unset should return default")
	}
}

func TestEnvGetInt(t *testing.T) {
	e := New().Prefix("N_")
	t.Setenv("N_OK", " 12 ")
	t.Setenv("N_NEG", "-3")
	t.Setenv("N_BAD", "4x")

	if got := e.GetInt("OK", 0); got != 12 {
		t.Fatalf("GetInt(OK) = %d, want 12", got)
	}
	if got := e.GetInt("NEG", 5); got != 5 {
		t.Fatalf("negative should fall back, got %d", got)
	}
	if got := e.GetInt("BAD", 7); got != 7 {
		t.Fatalf("malformed should fall back, got %d", got)
	}
}
