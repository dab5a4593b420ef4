// Package mail sends the transactional emails: welcome and password reset
package mail

import (
	"context"
	"errors"
	"time"

	"inkwell/internal/platform/config"
)

// ErrDisabled is returned by senders that are not configured
var ErrDisabled = errors.New("mail: disabled")

// Message is a rendered plain text email
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers a rendered message
type Mailer interface {
	Send(ctx context.Context, m Message) error
}

// Config holds SMTP settings
type Config struct {
	Enabled  bool
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
	// AppURL is linked from the templates
	AppURL string
}

// ConfigFrom reads INKWELL_MAIL_*
func ConfigFrom(root config.Conf) Config {
	c := root.Prefix("INKWELL_MAIL_")
	return Config{
		Enabled:  c.MayBool("ENABLED", false),
		Host:     c.MayString("HOST", "localhost"),
		Port:     c.MayInt("PORT", 587),
		Username: c.MayString("USER", ""),
		Password: c.MayString("PASSWORD", ""),
		From:     c.MayString("FROM", "inkwell <no-reply@inkwell.local>"),
		Timeout:  c.MayDuration("TIMEOUT", 10*time.Second),
		AppURL:   c.MayString("APP_URL", "http://localhost:3000"),
	}
}

// New returns the SMTP mailer when enabled and the log mailer otherwise
func New(cfg Config) (Mailer, error) {
	if !cfg.Enabled {
		return LogMailer{}, nil
	}
	return NewSMTP(cfg)
}
