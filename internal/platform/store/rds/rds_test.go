package rds

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestOpen_BadURL(t *testing.T) {
	_, err := Open(context.Background(), Config{URL: "http://not-redis"})
	if err == nil || !strings.Contains(err.Error(), "parse url") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestOpen_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := Open(ctx, Config{URL: "redis://127.0.0.1:1/0"})
	if err == nil || !strings.Contains(err.Error(), "ping") {
		t.Fatalf("expected ping error, got %v", err)
	}
}
