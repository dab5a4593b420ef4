package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"time"

	"inkwell/internal/modkit/repokit"
	"inkwell/internal/platform/store"
	ptime "inkwell/internal/platform/time"
	"inkwell/internal/services/auth/domain"
	"inkwell/internal/services/auth/repo"
)

// redeemFunc applies the reset for the token's owner
type redeemFunc func(ctx context.Context, r repo.Repo, userID string) error

// resetStore keeps hashed one time reset tokens
type resetStore interface {
	save(ctx context.Context, tokenHash, userID string, ttl time.Duration) error
	// redeem consumes the token and runs apply for its owner
	redeem(ctx context.Context, tokenHash string, apply redeemFunc) error
}

// kvResets stores tokens in redis, Take makes them single use
type kvResets struct {
	kv   store.KV
	repo repo.Repo
}

func resetKey(hash string) string { return "reset:" + hash }

func (k kvResets) save(ctx context.Context, hash, userID string, ttl time.Duration) error {
	return k.kv.Set(ctx, resetKey(hash), []byte(userID), ttl)
}

func (k kvResets) redeem(ctx context.Context, hash string, apply redeemFunc) error {
	b, err := k.kv.Take(ctx, resetKey(hash))
	if errors.Is(err, store.ErrCacheMiss) {
		return domain.ErrInvalidResetToken
	}
	if err != nil {
		return err
	}
	return apply(ctx, k.repo, string(b))
}

// pgResets is the fallback when redis is disabled
// the token is deleted in the same transaction as the password update
type pgResets struct {
	db     repokit.TxRunner
	binder repokit.Binder[repo.Repo]
	now    ptime.Clock
}

func (p pgResets) save(ctx context.Context, hash, userID string, ttl time.Duration) error {
	return p.binder.Bind(p.db).SaveReset(ctx, hash, userID, p.now().Add(ttl))
}

func (p pgResets) redeem(ctx context.Context, hash string, apply redeemFunc) error {
	return store.RunTx(ctx, p.db, func(ctx context.Context, q store.RowQuerier) error {
		r := p.binder.Bind(q)
		userID, err := r.TakeReset(ctx, hash, p.now())
		if err != nil {
			return err
		}
		return apply(ctx, r, userID)
	})
}

// newResetToken returns the raw token for the email and its hash for storage
func newResetToken() (raw, hash string, err error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", "", err
	}
	raw = base64.RawURLEncoding.EncodeToString(b)
	return raw, hashResetToken(raw), nil
}

func hashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
