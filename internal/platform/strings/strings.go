// Package strings holds small string helpers shared by modules and repos
package strings

import (
	std "strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

var folder = cases.Fold()

// Fold returns the case folded form of s for case insensitive matching
func Fold(s string) string { return folder.String(s) }

// MustString returns s or panics naming what was missing
func MustString(s, name string) string {
	if std.TrimSpace(s) == "" {
		panic(name + " is required")
	}
	return s
}

// MustPrefix normalises a route prefix to one leading slash and no trailing slash
// panics when nothing but slashes remain
func MustPrefix(s string) string {
	s = "/" + std.Trim(std.TrimSpace(s), "/ ")
	if s == "/" {
		panic("route prefix is required")
	}
	return s
}

// Truncate cuts s to at most n bytes on a rune boundary
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// Clean drops bytes postgres text columns reject or that only garble a journal:
// NUL, ASCII controls other than tab and newlines, DEL, C1 controls and invalid UTF-8
// s is returned as is when already clean
func Clean(s string) string {
	i := 0
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if dropRune(r, size) {
			break
		}
		i += size
	}
	if i == len(s) {
		return s
	}

	var b std.Builder
	b.Grow(len(s))
	b.WriteString(s[:i])
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !dropRune(r, size) {
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}

func dropRune(r rune, size int) bool {
	switch {
	case r == utf8.RuneError && size == 1:
		return true
	case r == '\n' || r == '\r' || r == '\t':
		return false
	case r < 0x20 || r == 0x7F:
		return true
	case r >= 0x80 && r <= 0x9F:
		return true
	}
	return false
}

// Deref returns *ps or ""
func Deref(ps *string) string {
	if ps == nil {
		return ""
	}
	return *ps
}
