package httpkit

import (
	"net/http"

	phttp "inkwell/internal/platform/net/http"
	"inkwell/internal/platform/net/middleware"
)

// CommonStack is the api scoped stack layered over the server defaults
// maxInFlight <= 0 disables throttling
func CommonStack(cors middleware.CORSOptions, maxInFlight int) []func(http.Handler) http.Handler {
	stack := []func(http.Handler) http.Handler{middleware.CORS(cors)}
	if maxInFlight > 0 {
		stack = append(stack, middleware.Throttle(maxInFlight))
	}
	return stack
}

// Auth wires the auth middleware to the platform JSON writer
func Auth(p middleware.AuthPort) func(http.Handler) http.Handler {
	return middleware.Auth(p, phttp.JSON)
}
