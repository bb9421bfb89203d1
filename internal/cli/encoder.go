package cli

import (
	"fmt"

	"toonrec/config"
	"toonrec/internal/adapter/encoder"
	"toonrec/internal/port"
)

// newEncoder builds the configured encoder client.
func newEncoder(cfg *config.Config) (port.Encoder, error) {
	switch cfg.Encoder.Provider {
	case "ollama":
		return encoder.NewOllamaEncoder(cfg.Encoder.Model, cfg.Encoder.BaseURL)
	case "openai":
		return encoder.NewOpenAIEncoder(cfg.Encoder.APIKeyEnv, cfg.Encoder.Model)
	case "compatible":
		return encoder.NewCompatibleEncoder(cfg.Encoder.APIKeyEnv, cfg.Encoder.Model, cfg.Encoder.BaseURL)
	case "mock":
		return encoder.NewMockEncoder(cfg.Encoder.Dimension), nil
	default:
		return nil, fmt.Errorf("unsupported encoder provider: %s", cfg.Encoder.Provider)
	}
}
