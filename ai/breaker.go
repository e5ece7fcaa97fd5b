package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
)

// StateChangeFunc observes circuit breaker transitions. States are
// reported as "closed", "half-open" or "open".
type StateChangeFunc func(name, from, to string)

// BreakerEmbedder wraps an Embedder with a circuit breaker. The breaker opens
// after a run of consecutive failures and rejects calls with ErrCircuitOpen
// until the cooldown elapses. Context cancellation by the caller is not
// counted as a provider failure.
type BreakerEmbedder struct {
	inner    Embedder
	cb       *gobreaker.CircuitBreaker[[][]float32]
	name     string
	failures uint32
	cooldown time.Duration
	onChange StateChangeFunc
	logger   *slog.Logger
}

type BreakerOption func(*BreakerEmbedder)

func WithBreakerName(name string) BreakerOption {
	return func(b *BreakerEmbedder) {
		b.name = name
	}
}

// WithBreakerThreshold sets the consecutive failures that open the breaker
// and how long it stays open.
func WithBreakerThreshold(failures uint32, cooldown time.Duration) BreakerOption {
	return func(b *BreakerEmbedder) {
		b.failures = failures
		b.cooldown = cooldown
	}
}

func WithStateChange(fn StateChangeFunc) BreakerOption {
	return func(b *BreakerEmbedder) {
		b.onChange = fn
	}
}

func WithBreakerLogger(logger *slog.Logger) BreakerOption {
	return func(b *BreakerEmbedder) {
		b.logger = logger
	}
}

// NewBreakerEmbedder wraps inner with a circuit breaker.
func NewBreakerEmbedder(inner Embedder, opts ...BreakerOption) (*BreakerEmbedder, error) {
	if inner == nil {
		return nil, ErrEmbedderRequired
	}

	defaults := DefaultConfig()
	b := &BreakerEmbedder{
		inner:    inner,
		name:     "embedder",
		failures: defaults.BreakerFailures,
		cooldown: defaults.BreakerCooldown,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.failures == 0 || b.cooldown <= 0 {
		return nil, fmt.Errorf("%w: breaker threshold and cooldown must be positive", ErrInvalidConfig)
	}
	b.logger = b.logger.With("component", "embed-breaker", "breaker", b.name)

	b.cb = gobreaker.NewCircuitBreaker[[][]float32](gobreaker.Settings{
		Name:        b.name,
		MaxRequests: 1,
		Timeout:     b.cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= b.failures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			b.logger.Info("circuit breaker state change", "from", stateName(from), "to", stateName(to))
			if b.onChange != nil {
				b.onChange(name, stateName(from), stateName(to))
			}
		},
	})

	return b, nil
}

// EmbedText embeds a single text through the breaker.
func (b *BreakerEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vectors, err := b.execute(func() ([][]float32, error) {
		v, err := b.inner.EmbedText(ctx, text)
		if err != nil {
			return nil, err
		}
		return [][]float32{v}, nil
	})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedTexts embeds a batch through the breaker.
func (b *BreakerEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	return b.execute(func() ([][]float32, error) {
		return b.inner.EmbedTexts(ctx, texts)
	})
}

// State reports the current breaker state.
func (b *BreakerEmbedder) State() string {
	return stateName(b.cb.State())
}

func (b *BreakerEmbedder) execute(fn func() ([][]float32, error)) ([][]float32, error) {
	result, err := b.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			b.logger.Warn("embedding request rejected", "err", err)
			return nil, fmt.Errorf("%w: %w", ErrCircuitOpen, err)
		}
		return nil, err
	}
	return result, nil
}

func stateName(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

var _ Embedder = (*BreakerEmbedder)(nil)
