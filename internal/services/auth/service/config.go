package service

import (
	"time"

	"inkwell/internal/platform/config"
)

// Config holds token and throttling settings
type Config struct {
	Secret   string
	Issuer   string
	TokenTTL time.Duration
	ResetTTL time.Duration

	// LoginMax attempts per username within LoginWindow, 0 disables the throttle
	LoginMax    int
	LoginWindow time.Duration

	Hash HashParams
}

// ConfigFrom reads INKWELL_AUTH_*, the jwt secret is required
func ConfigFrom(root config.Conf) Config {
	c := root.Prefix("INKWELL_AUTH_")
	return Config{
		Secret:      c.MustSecret("JWT_SECRET", 32),
		Issuer:      c.MayString("ISSUER", "inkwell"),
		TokenTTL:    c.MayDuration("TOKEN_TTL", 24*time.Hour),
		ResetTTL:    c.MayDuration("RESET_TTL", time.Hour),
		LoginMax:    c.MayInt("LOGIN_MAX", 10),
		LoginWindow: c.MayDuration("LOGIN_WINDOW", 15*time.Minute),
		Hash:        DefaultHashParams,
	}
}
