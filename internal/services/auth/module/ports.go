package module

import (
	"inkwell/internal/platform/net/middleware"
	"inkwell/internal/services/auth/domain"
)

// Ports is what auth offers other modules
// Auth guards protected routes, Verifier resolves raw tokens
type Ports struct {
	Auth     middleware.AuthPort
	Verifier domain.TokenVerifier
}

// Ports implements modkit.Module
func (m *Module) Ports() any { return m.ports }
