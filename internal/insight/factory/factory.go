// internal/insight/factory/factory.go
package factory

import (
	"fmt"

	"github.com/cryptotrack/cryptotracker/internal/config"
	"github.com/cryptotrack/cryptotracker/internal/insight"
	"github.com/cryptotrack/cryptotracker/internal/insight/claude"
	"github.com/cryptotrack/cryptotracker/internal/insight/ollama"
	"github.com/cryptotrack/cryptotracker/internal/insight/openai"
)

// New creates an insight provider based on configuration.
func New(cfg config.InsightConfig) (insight.Provider, error) {
	switch cfg.Provider {
	case "claude":
		return claude.New(cfg.Claude.APIKey, cfg.Claude.Model)
	case "openai":
		return openai.New(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	case "ollama":
		return ollama.New(cfg.Ollama.Endpoint, cfg.Ollama.Model)
	default:
		return nil, fmt.Errorf("unknown insight provider: %s", cfg.Provider)
	}
}
