package net

import (
	"context"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
)

func TestRequestIDSharedWithChi(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	if RequestID(ctx) != "req-1" || chimw.GetReqID(ctx) != "req-1" {
		t.Fatalf("request id not visible through both readers")
	}
	if WithRequestID(context.Background(), "") != context.Background() {
		t.Fatalf("empty id should return ctx unchanged")
	}
}

func TestUserScope(t *testing.T) {
	ctx := context.Background()
	if HasUser(ctx) || UserID(ctx) != "" {
		t.Fatalf("bare ctx should have no user")
	}
	ctx = WithUser(ctx, "u-9")
	if !HasUser(ctx) || UserID(ctx) != "u-9" {
		t.Fatalf("UserID = %q", UserID(ctx))
	}
	if UserID(WithUser(ctx, "")) != "u-9" {
		t.Fatalf("empty user must not clear an existing one")
	}
}
