package strings

import (
	"testing"

	kit "inkwell/internal/platform/testkit"
)

func TestFold(t *testing.T) {
	if Fold("Last WEEK") != Fold("last week") {
		t.Fatalf("Fold should ignore case")
	}
}

func TestMustHelpers(t *testing.T) {
	if MustString(" x ", "name") != " x " {
		t.Fatalf("MustString changed input")
	}
	kit.MustPanic(t, func() { MustString("  ", "name") })

	cases := map[string]string{"search": "/search", "/entries/": "/entries", " /auth ": "/auth", "a/b": "/a/b"}
	for in, want := range cases {
		if got := MustPrefix(in); got != want {
			t.Fatalf("MustPrefix(%q) = %q, want %q", in, got, want)
		}
	}
	kit.MustPanic(t, func() { MustPrefix("//") })
}

func TestTruncate(t *testing.T) {
	if Truncate("hello", 10) != "hello" || Truncate("hello", 3) != "hel" || Truncate("x", 0) != "" {
		t.Fatalf("ascii truncate wrong")
	}
	// é is two bytes, cutting inside it backs off to the rune start
	if got := Truncate("café", 4); got != "caf" {
		t.Fatalf("Truncate split a rune: %q", got)
	}
}

func TestDeref(t *testing.T) {
	s := "v"
	if Deref(nil) != "" || Deref(&s) != "v" {
		t.Fatalf("Deref wrong")
	}
}

func TestClean(t *testing.T) {
	clean := "line one\n\tline two, déjà vu"
	if Clean(clean) != clean {
		t.Fatalf("clean input must pass through")
	}
	dirty := "a\x00b\x07c\x7fd\u0085e\xffé\r\n"
	if got := Clean(dirty); got != "abcdeé\r\n" {
		t.Fatalf("Clean = %q", got)
	}
	if Clean("") != "" {
		t.Fatalf("empty stays empty")
	}
}
