// Package http provides http transport for auth
package http

import (
	"errors"
	stdhttp "net/http"

	"inkwell/internal/modkit/httpkit"
	perr "inkwell/internal/platform/errors"
	"inkwell/internal/platform/net/middleware"
	"inkwell/internal/services/auth/domain"
)

// Register mounts auth endpoints, profile sits behind the bearer port
func Register(r httpkit.Router, s domain.ServicePort, port middleware.AuthPort) {
	h := &handlers{svc: s}
	httpkit.CreateJSON[domain.RegisterInput](r, "/register", h.register)
	httpkit.PostJSON[domain.LoginInput](r, "/login", h.login)
	httpkit.PostJSON[domain.ForgotPasswordInput](r, "/forgot-password", h.forgot)
	httpkit.PostJSON[domain.ResetPasswordInput](r, "/reset-password", h.reset)
	httpkit.Protected(r, port, func(pr httpkit.Router) {
		httpkit.Get(pr, "/profile", h.profile)
	})
}

type handlers struct{ svc domain.ServicePort }

// @Summary Register an account
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body domain.RegisterInput true "Account"
// @Success 201 {object} domain.TokenResponse
// @Failure 409 {object} httpkit.Envelope "username or email taken"
// @Router /auth/register [post]
func (h *handlers) register(r *stdhttp.Request, in domain.RegisterInput) (any, error) {
	out, err := h.svc.Register(r.Context(), in)
	return out, mapErr(err)
}

// @Summary Sign in
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body domain.LoginInput true "Credentials"
// @Success 200 {object} domain.TokenResponse
// @Failure 401 {object} httpkit.Envelope
// @Failure 429 {object} httpkit.Envelope
// @Router /auth/login [post]
func (h *handlers) login(r *stdhttp.Request, in domain.LoginInput) (any, error) {
	out, err := h.svc.Login(r.Context(), in)
	return out, mapErr(err)
}

// @Summary Current account
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.User
// @Router /auth/profile [get]
func (h *handlers) profile(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	out, err := h.svc.Profile(r.Context(), uid)
	return out, mapErr(err)
}

// @Summary Request a password reset email
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body domain.ForgotPasswordInput true "Email"
// @Success 200 {object} domain.MessageResponse
// @Router /auth/forgot-password [post]
func (h *handlers) forgot(r *stdhttp.Request, in domain.ForgotPasswordInput) (any, error) {
	out, err := h.svc.ForgotPassword(r.Context(), in)
	return out, mapErr(err)
}

// @Summary Reset a password with an emailed token
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body domain.ResetPasswordInput true "Token and new password"
// @Success 200 {object} domain.MessageResponse
// @Failure 400 {object} httpkit.Envelope "invalid or expired token"
// @Router /auth/reset-password [post]
func (h *handlers) reset(r *stdhttp.Request, in domain.ResetPasswordInput) (any, error) {
	out, err := h.svc.ResetPassword(r.Context(), in)
	return out, mapErr(err)
}

func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrInvalidCredentials):
		return perr.Unauthorizedf("invalid credentials")
	case errors.Is(err, domain.ErrInvalidResetToken):
		return perr.WithField(perr.InvalidArgf("invalid or expired reset token"), "token")
	case errors.Is(err, domain.ErrUserNotFound):
		return perr.NotFoundf("user not found")
	}
	return err
}
