package mail

import (
	"bytes"
	"fmt"
	"text/template"
	"time"
)

var templates = template.Must(template.New("mail").Parse(`
{{- define "welcome" -}}
Hi {{.Username}},

Welcome to inkwell. Your journal is ready at {{.AppURL}}.

Write a first entry and you can start asking questions about your days.
{{- end}}

{{- define "reset" -}}
Hi {{.Username}},

Someone asked to reset the password for your inkwell account.
Use this code within {{.TTL}}:

    {{.Token}}

or open {{.AppURL}}/reset-password?token={{.Token}}

If it was not you, ignore this message. Your password has not changed.
{{- end}}
`))

// Welcome renders the registration email
func Welcome(cfg Config, to, username string) (Message, error) {
	body, err := render("welcome", map[string]any{"Username": username, "AppURL": cfg.AppURL})
	if err != nil {
		return Message{}, err
	}
	return Message{To: to, Subject: "Welcome to inkwell", Body: body}, nil
}

// PasswordReset renders the reset email carrying the raw token
func PasswordReset(cfg Config, to, username, token string, ttl time.Duration) (Message, error) {
	body, err := render("reset", map[string]any{
		"Username": username,
		"AppURL":   cfg.AppURL,
		"Token":    token,
		"TTL":      ttl.String(),
	})
	if err != nil {
		return Message{}, err
	}
	return Message{To: to, Subject: "Reset your inkwell password", Body: body}, nil
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("mail: render %s: %w", name, err)
	}
	return buf.String(), nil
}
