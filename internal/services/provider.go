package services

import (
	"context"
	"fmt"

	"autoclerk-backend/internal/config"
)

// NewCompleter builds the upstream client for the configured provider.
// The returned close func releases provider resources on shutdown.
func NewCompleter(ctx context.Context, cfg *config.Config) (Completer, func() error, error) {
	switch cfg.Provider {
	case config.ProviderGroq:
		c, err := NewGroqClient(cfg.APIKey(), cfg.GroqBaseURL)
		if err != nil {
			return nil, nil, err
		}
		return c, func() error { return nil }, nil
	case config.ProviderGemini:
		c, err := NewGeminiClient(ctx, cfg.APIKey())
		if err != nil {
			return nil, nil, err
		}
		return c, c.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}
