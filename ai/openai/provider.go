package openai

import (
	"log/slog"

	"github.com/poiesic/unifinder/ai"
)

// Provider implements ai.AIProvider using OpenAI-compatible APIs.
type Provider struct {
	config   *ai.Config
	embedder ai.Embedder
	logger   *slog.Logger
}

// NewProvider creates a new provider whose embedder sits behind a circuit
// breaker configured from config.
//
// Returns ai.AIProvider interface to enforce abstraction.
func NewProvider(config *ai.Config, opts ...ai.BreakerOption) (ai.AIProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	embedder, err := newEmbedder(config)
	if err != nil {
		return nil, err
	}

	breakerOpts := append([]ai.BreakerOption{
		ai.WithBreakerName("openai-" + config.EmbeddingModel),
		ai.WithBreakerThreshold(config.BreakerFailures, config.BreakerCooldown),
	}, opts...)
	guarded, err := ai.NewBreakerEmbedder(embedder, breakerOpts...)
	if err != nil {
		return nil, err
	}

	return &Provider{
		config:   config,
		embedder: guarded,
		logger:   slog.Default().With("component", "openai-provider"),
	}, nil
}

// Embedder returns the breaker-guarded embedder.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// Close releases resources held by the provider.
func (p *Provider) Close() error {
	p.logger.Debug("closing OpenAI provider")
	return nil
}
