package domain

// RegisterInput creates an account
type RegisterInput struct {
	Username string `json:"username" validate:"required,notblank,min=3,max=50" example:"ada"`
	Email    string `json:"email" validate:"required,email,max=254" example:"ada@example.com"`
	Password string `json:"password" validate:"required,min=8,max=128" example:"correct horse"`
}

// LoginInput authenticates by username or email
type LoginInput struct {
	Username string `json:"username" validate:"required,notblank,max=254" example:"ada"`
	Password string `json:"password" validate:"required,max=128" example:"correct horse"`
}

// ForgotPasswordInput starts a password reset
type ForgotPasswordInput struct {
	Email string `json:"email" validate:"required,email" example:"ada@example.com"`
}

// ResetPasswordInput consumes a reset token
type ResetPasswordInput struct {
	Token    string `json:"token" validate:"required,notblank,max=256"`
	Password string `json:"password" validate:"required,min=8,max=128" example:"battery staple"`
}

// TokenResponse is returned by register and login
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type" example:"bearer"`
	ExpiresIn   int64  `json:"expires_in" example:"86400"`
	User        User   `json:"user"`
}

// MessageResponse carries a human readable outcome
type MessageResponse struct {
	Message string `json:"message" example:"If that email is registered, a password reset link has been sent."`
}
