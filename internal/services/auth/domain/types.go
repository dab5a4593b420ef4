// Package domain holds auth types and DTOs shared by the http, service and repo layers
package domain

import (
	"errors"
	"time"
)

// Domain sentinels, the http layer maps them to perr codes
var (
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrInvalidResetToken  = errors.New("auth: invalid or expired reset token")
	ErrUserNotFound       = errors.New("auth: user not found")
)

// User is the public view of an account
type User struct {
	ID        string    `json:"id" example:"8d3b8a50-3e67-4c5d-9a57-8a8f7b1f3c11"`
	Username  string    `json:"username" example:"ada"`
	Email     string    `json:"email" example:"ada@example.com"`
	CreatedAt time.Time `json:"created_at"`
}

// Account is a User with its password hash, never serialised
type Account struct {
	User
	PasswordHash string
}
