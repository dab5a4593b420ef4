// Package service contains the auth workflows: accounts, tokens and password resets
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"inkwell/internal/adapters/mail"
	"inkwell/internal/modkit/repokit"
	perr "inkwell/internal/platform/errors"
	"inkwell/internal/platform/logger"
	"inkwell/internal/platform/store"
	pstrings "inkwell/internal/platform/strings"
	ptime "inkwell/internal/platform/time"
	"inkwell/internal/services/auth/domain"
	"inkwell/internal/services/auth/repo"

	"github.com/google/uuid"
)

const forgotMessage = "If that email is registered, a password reset link has been sent."

// Service is the auth contract
type Service interface {
	domain.ServicePort
	domain.TokenVerifier
}

// Svc implements Service
type Svc struct {
	Repo   repo.Repo
	cfg    Config
	tokens *Tokens
	resets resetStore
	kv     store.KV
	mailer mail.Mailer
	mcfg   mail.Config
	now    ptime.Clock

	// dummy is verified against when a login names no account
	dummy string
}

// Option configures Svc
type Option func(*Svc)

// WithKV keeps reset tokens and login counters in redis
func WithKV(kv store.KV) Option { return func(s *Svc) { s.kv = kv } }

// WithMailer sets the mailer used for welcome and reset emails
func WithMailer(m mail.Mailer, cfg mail.Config) Option {
	return func(s *Svc) { s.mailer, s.mcfg = m, cfg }
}

// WithClock overrides the wall clock
func WithClock(c ptime.Clock) Option {
	return func(s *Svc) {
		if c != nil {
			s.now = c
		}
	}
}

// New creates the auth service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], cfg Config, opts ...Option) *Svc {
	if db == nil {
		panic("auth.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("auth.Service requires a non nil Repo binder")
	}
	if cfg.Hash == (HashParams{}) {
		cfg.Hash = DefaultHashParams
	}
	s := &Svc{Repo: binder.Bind(db), cfg: cfg, mailer: mail.LogMailer{}, now: ptime.System}
	for _, o := range opts {
		o(s)
	}
	s.tokens = NewTokens(cfg.Secret, cfg.Issuer, cfg.TokenTTL, s.now)
	if s.kv != nil {
		s.resets = kvResets{kv: s.kv, repo: s.Repo}
	} else {
		s.resets = pgResets{db: db, binder: binder, now: s.now}
	}
	s.dummy, _ = HashPassword(uuid.NewString(), cfg.Hash)
	return s
}

// VerifyToken implements domain.TokenVerifier
func (s *Svc) VerifyToken(token string) (string, error) { return s.tokens.Verify(token) }

// Register creates the account, signs it in and sends a welcome email in the background
func (s *Svc) Register(ctx context.Context, in domain.RegisterInput) (domain.TokenResponse, error) {
	hash, err := HashPassword(in.Password, s.cfg.Hash)
	if err != nil {
		return domain.TokenResponse{}, err
	}
	acct, err := s.Repo.CreateUser(ctx, domain.Account{
		User: domain.User{
			ID:       uuid.NewString(),
			Username: strings.TrimSpace(in.Username),
			Email:    normalizeEmail(in.Email),
		},
		PasswordHash: hash,
	})
	if err != nil {
		return domain.TokenResponse{}, err
	}
	logger.C(ctx).Info().Str("user_id", acct.ID).Msg("account registered")

	if msg, err := mail.Welcome(s.mcfg, acct.Email, acct.Username); err == nil {
		go s.deliver(context.WithoutCancel(ctx), msg)
	}
	return s.issue(acct.User)
}

// Login checks credentials by username or email
func (s *Svc) Login(ctx context.Context, in domain.LoginInput) (domain.TokenResponse, error) {
	ident := strings.TrimSpace(in.Username)
	if err := s.throttle(ctx, ident); err != nil {
		return domain.TokenResponse{}, err
	}

	var (
		acct domain.Account
		err  error
	)
	if strings.Contains(ident, "@") {
		acct, err = s.Repo.ByEmail(ctx, normalizeEmail(ident))
	} else {
		acct, err = s.Repo.ByUsername(ctx, ident)
	}
	if errors.Is(err, domain.ErrUserNotFound) {
		_, _ = VerifyPassword(in.Password, s.dummy)
		return domain.TokenResponse{}, domain.ErrInvalidCredentials
	}
	if err != nil {
		return domain.TokenResponse{}, err
	}
	ok, err := VerifyPassword(in.Password, acct.PasswordHash)
	if err != nil {
		logger.C(ctx).Error().Err(err).Str("user_id", acct.ID).Msg("stored password hash unreadable")
	}
	if !ok {
		return domain.TokenResponse{}, domain.ErrInvalidCredentials
	}
	return s.issue(acct.User)
}

// Profile returns the caller's account
func (s *Svc) Profile(ctx context.Context, userID string) (domain.User, error) {
	acct, err := s.Repo.ByID(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}
	return acct.User, nil
}

// ForgotPassword answers the same way whether or not the email is known
func (s *Svc) ForgotPassword(ctx context.Context, in domain.ForgotPasswordInput) (domain.MessageResponse, error) {
	out := domain.MessageResponse{Message: forgotMessage}
	acct, err := s.Repo.ByEmail(ctx, normalizeEmail(in.Email))
	if errors.Is(err, domain.ErrUserNotFound) {
		return out, nil
	}
	if err != nil {
		return domain.MessageResponse{}, err
	}

	raw, hash, err := newResetToken()
	if err != nil {
		return domain.MessageResponse{}, fmt.Errorf("auth: reset token: %w", err)
	}
	if err := s.resets.save(ctx, hash, acct.ID, s.cfg.ResetTTL); err != nil {
		return domain.MessageResponse{}, err
	}
	msg, err := mail.PasswordReset(s.mcfg, acct.Email, acct.Username, raw, s.cfg.ResetTTL)
	if err != nil {
		return domain.MessageResponse{}, err
	}
	s.deliver(ctx, msg)
	return out, nil
}

// ResetPassword consumes a reset token and sets the new password
func (s *Svc) ResetPassword(ctx context.Context, in domain.ResetPasswordInput) (domain.MessageResponse, error) {
	hash, err := HashPassword(in.Password, s.cfg.Hash)
	if err != nil {
		return domain.MessageResponse{}, err
	}
	var userID string
	err = s.resets.redeem(ctx, hashResetToken(strings.TrimSpace(in.Token)), func(ctx context.Context, r repo.Repo, id string) error {
		userID = id
		return r.UpdatePassword(ctx, id, hash)
	})
	if errors.Is(err, domain.ErrUserNotFound) {
		return domain.MessageResponse{}, domain.ErrInvalidResetToken
	}
	if err != nil {
		return domain.MessageResponse{}, err
	}
	logger.C(ctx).Info().Str("user_id", userID).Msg("password reset")
	return domain.MessageResponse{Message: "Password has been reset successfully."}, nil
}

func (s *Svc) issue(u domain.User) (domain.TokenResponse, error) {
	tok, err := s.tokens.Issue(u.ID)
	if err != nil {
		return domain.TokenResponse{}, err
	}
	return domain.TokenResponse{
		AccessToken: tok,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.tokens.TTL() / time.Second),
		User:        u,
	}, nil
}

// throttle counts attempts per identifier when redis is available
func (s *Svc) throttle(ctx context.Context, ident string) error {
	if s.kv == nil || s.cfg.LoginMax <= 0 {
		return nil
	}
	n, err := s.kv.Incr(ctx, "login:"+pstrings.Fold(ident), s.cfg.LoginWindow)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Msg("login throttle unavailable")
		return nil
	}
	if n > int64(s.cfg.LoginMax) {
		return perr.TooManyf("too many login attempts, try again later")
	}
	return nil
}

// deliver sends best effort, failures are logged only
func (s *Svc) deliver(ctx context.Context, m mail.Message) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := s.mailer.Send(ctx, m); err != nil {
		logger.C(ctx).Warn().Err(err).Str("subject", m.Subject).Msg("mail not delivered")
	}
}

func normalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
