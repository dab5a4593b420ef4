package domain

import "context"

// ServicePort is the auth contract the http layer uses
type ServicePort interface {
	Register(ctx context.Context, in RegisterInput) (TokenResponse, error)
	Login(ctx context.Context, in LoginInput) (TokenResponse, error)
	Profile(ctx context.Context, userID string) (User, error)
	ForgotPassword(ctx context.Context, in ForgotPasswordInput) (MessageResponse, error)
	ResetPassword(ctx context.Context, in ResetPasswordInput) (MessageResponse, error)
}

// TokenVerifier resolves a bearer token to a user id, other modules depend on it
type TokenVerifier interface {
	VerifyToken(token string) (userID string, err error)
}
