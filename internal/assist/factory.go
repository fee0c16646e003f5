package assist

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/nexushub/internal/config"
)

// New builds a Client for the configured provider. Without a credential the
// client has no backend and every call returns its fallback.
func New(ctx context.Context, cfg config.AssistConfig, logger *zap.Logger, opts ...Option) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.Enabled() {
		logger.Warn("assist disabled, no api key configured")
		return NewClient(nil, logger, opts...), nil
	}

	var (
		gen Generator
		err error
	)
	switch cfg.Provider {
	case "openai":
		gen, err = NewOpenAI(cfg.APIKey, cfg.BaseURL, cfg.Model)
	default:
		gen, err = NewGemini(ctx, cfg.APIKey, cfg.Model)
	}
	if err != nil {
		return nil, err
	}
	logger.Info("assist enabled", zap.String("provider", cfg.Provider))
	return NewClient(gen, logger, opts...), nil
}
