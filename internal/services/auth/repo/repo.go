// Package repo provides postgres access for accounts and reset tokens
package repo

import (
	"context"
	"errors"
	"time"

	"inkwell/internal/modkit/repokit"
	perr "inkwell/internal/platform/errors"
	"inkwell/internal/platform/store"
	"inkwell/internal/services/auth/domain"
)

// Repo is the account storage contract
type Repo interface {
	CreateUser(ctx context.Context, a domain.Account) (domain.Account, error)
	ByID(ctx context.Context, id string) (domain.Account, error)
	ByUsername(ctx context.Context, username string) (domain.Account, error)
	ByEmail(ctx context.Context, email string) (domain.Account, error)
	UpdatePassword(ctx context.Context, id, hash string) error

	SaveReset(ctx context.Context, tokenHash, userID string, expiresAt time.Time) error
	// TakeReset deletes the token and returns its owner when it has not expired
	TakeReset(ctx context.Context, tokenHash string, now time.Time) (string, error)
}

type (
	// PG implements Repo on postgres
	PG struct{}

	queries struct{ q repokit.Queryer }
)

// NewPG returns the postgres binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const accountCols = `id::text, username, email, password_hash, created_at`

func scanAccount(r store.Row) (domain.Account, error) {
	var a domain.Account
	err := r.Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.CreatedAt)
	return a, err
}

func (r *queries) CreateUser(ctx context.Context, a domain.Account) (domain.Account, error) {
	const sql = `
insert into users (id, username, email, password_hash)
values ($1, $2, $3, $4)
returning ` + accountCols
	out, err := store.One(ctx, r.q, scanAccount, sql, a.ID, a.Username, a.Email, a.PasswordHash)
	if err != nil {
		msg := "create user"
		if perr.IsDuplicateKey(err) {
			msg = "username or email already registered"
		}
		return domain.Account{}, perr.FromPostgres(err, msg)
	}
	return out, nil
}

func (r *queries) byCol(ctx context.Context, where string, arg any) (domain.Account, error) {
	a, err := store.One(ctx, r.q, scanAccount, `select `+accountCols+` from users where `+where, arg)
	if errors.Is(err, perr.ErrNotFound) {
		return domain.Account{}, domain.ErrUserNotFound
	}
	if err != nil {
		return domain.Account{}, perr.FromPostgres(err, "load user")
	}
	return a, nil
}

func (r *queries) ByID(ctx context.Context, id string) (domain.Account, error) {
	return r.byCol(ctx, `id = $1::uuid`, id)
}

func (r *queries) ByUsername(ctx context.Context, username string) (domain.Account, error) {
	return r.byCol(ctx, `lower(username) = lower($1)`, username)
}

func (r *queries) ByEmail(ctx context.Context, email string) (domain.Account, error) {
	return r.byCol(ctx, `lower(email) = lower($1)`, email)
}

func (r *queries) UpdatePassword(ctx context.Context, id, hash string) error {
	err := store.ExecOne(ctx, r.q, `update users set password_hash = $2, updated_at = now() where id = $1::uuid`, id, hash)
	if errors.Is(err, store.ErrNoRowsAffected) {
		return domain.ErrUserNotFound
	}
	return perr.FromPostgres(err, "update password")
}

func (r *queries) SaveReset(ctx context.Context, tokenHash, userID string, expiresAt time.Time) error {
	const sql = `
insert into password_resets (token_hash, user_id, expires_at)
values ($1, $2::uuid, $3)
on conflict (token_hash) do update set user_id = excluded.user_id, expires_at = excluded.expires_at`
	_, err := r.q.Exec(ctx, sql, tokenHash, userID, expiresAt)
	return perr.FromPostgres(err, "save reset token")
}

func (r *queries) TakeReset(ctx context.Context, tokenHash string, now time.Time) (string, error) {
	type taken struct {
		userID  string
		expires time.Time
	}
	t, err := store.One(ctx, r.q, func(row store.Row) (taken, error) {
		var t taken
		err := row.Scan(&t.userID, &t.expires)
		return t, err
	}, `delete from password_resets where token_hash = $1 returning user_id::text, expires_at`, tokenHash)
	if errors.Is(err, perr.ErrNotFound) {
		return "", domain.ErrInvalidResetToken
	}
	if err != nil {
		return "", perr.FromPostgres(err, "take reset token")
	}
	if !now.Before(t.expires) {
		return "", domain.ErrInvalidResetToken
	}
	// the owner's other expired tokens go with it
	_, _ = r.q.Exec(ctx, `delete from password_resets where user_id = $1::uuid and expires_at <= $2`, t.userID, now)
	return t.userID, nil
}
