package middleware

import (
	"net/http"

	"inkwell/internal/platform/logger"
	pnet "inkwell/internal/platform/net"
)

// AuthPort resolves the caller of a request
type AuthPort interface {
	Parse(r *http.Request) (userID string, err error)
}

// WriteFunc writes a status and body, usually phttp.JSON
type WriteFunc = func(w http.ResponseWriter, status int, body any)

// Auth rejects requests the port cannot resolve and scopes the rest to their user
// a nil port lets everything through unscoped
func Auth(p AuthPort, write WriteFunc) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			uid, err := p.Parse(r)
			if err != nil {
				status, body := pnet.Error(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			ctx := pnet.WithUser(r.Context(), uid)
			ctx = logger.WithRequest(ctx, pnet.RequestID(ctx), uid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
