package auth

import (
	"fmt"

	"github.com/myvocabin/myvocabin/server/internal/config"
)

// NewAuthorizer selects the authorizer for the current configuration:
// dev mode uses the hardcoded-token mock, everything else requires a
// configured identity provider.
func NewAuthorizer(cfg *config.Config) (Authorizer, error) {
	if cfg.DevMode {
		return NewMockAuthorizer(), nil
	}
	if cfg.AuthURL == "" {
		return nil, fmt.Errorf("VOCAB_BACKEND_AUTH_URL is required unless dev mode is enabled")
	}
	return NewGoTrueAuthorizer(cfg.AuthURL, cfg.AuthAnonKey), nil
}
