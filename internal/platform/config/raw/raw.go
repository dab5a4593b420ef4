// Package raw reads the environment during bootstrap, before the logger exists.
// It must not import the logger package
package raw

import (
	"os"
	"strconv"
	"strings"
)

// Env is a prefixed view over process environment variables
type Env struct{ prefix string }

// New returns an unprefixed Env
func New() Env { return Env{} }

// Prefix returns a child Env, e.g. New().Prefix("LOG_")
func (e Env) Prefix(p string) Env { return Env{prefix: e.prefix + p} }

func (e Env) lookup(k string) string { return strings.TrimSpace(os.Getenv(e.prefix + k)) }

// Get returns the value for key or def when unset or blank
func (e Env) Get(key, def string) string {
	if v := e.lookup(key); v != "" {
		return v
	}
	return def
}

// GetBool accepts 1, true, yes and on. Anything else set is false
func (e Env) GetBool(key string, def bool) bool {
	v := strings.ToLower(e.lookup(key))
	if v == "" {
		return def
	}
	switch v {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// GetInt returns a non negative integer or def when unset or malformed
func (e Env) GetInt(key string, def int) int {
	v := e.lookup(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}
