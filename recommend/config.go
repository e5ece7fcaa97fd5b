package recommend

import (
	"fmt"
	"time"
)

// BudgetScope selects which candidates the budget filter applies to.
type BudgetScope int

const (
	// BudgetScopeAll applies the budget to every candidate with a known tuition.
	BudgetScopeAll BudgetScope = iota
	// BudgetScopePrivateOnly applies the budget to private schools only.
	BudgetScopePrivateOnly
)

func (s BudgetScope) String() string {
	switch s {
	case BudgetScopeAll:
		return "all"
	case BudgetScopePrivateOnly:
		return "private"
	default:
		return fmt.Sprintf("BudgetScope(%d)", int(s))
	}
}

// ParseBudgetScope maps "all" or "private" to a scope.
func ParseBudgetScope(name string) (BudgetScope, error) {
	switch name {
	case "", "all":
		return BudgetScopeAll, nil
	case "private", "private-only":
		return BudgetScopePrivateOnly, nil
	default:
		return 0, fmt.Errorf("%w: unknown budget scope %q", ErrInvalidConfig, name)
	}
}

// Config holds the engine's ranking parameters.
type Config struct {
	// Threshold is the final score at or above which a result is a strong match.
	// Default: 0.4
	Threshold float64

	// Weight is the share of the final score taken by the school rating.
	// Default: 0.3
	Weight float64

	// RatingMax is the top of the ranking table's rating scale.
	// Default: 10
	RatingMax float64

	// ExactLimit caps both lists of an exact response.
	// Default: 10
	ExactLimit int

	// FallbackResults is how many weak matches a fallback response leads with.
	// Default: 6
	FallbackResults int

	// FallbackWeak is how many further weak matches a fallback response lists.
	// Default: 6
	FallbackWeak int

	// TopSchools is the length of the top-schools list for the matched category.
	// Default: 5
	TopSchools int

	// EmbedTimeout bounds the query embedding call.
	// Default: 10s
	EmbedTimeout time.Duration

	BudgetScope BudgetScope
}

type ConfigOption func(*Config)

func WithThreshold(threshold float64) ConfigOption {
	return func(c *Config) {
		c.Threshold = threshold
	}
}

func WithWeight(weight float64) ConfigOption {
	return func(c *Config) {
		c.Weight = weight
	}
}

func WithRatingMax(max float64) ConfigOption {
	return func(c *Config) {
		c.RatingMax = max
	}
}

// WithLimits sets the exact-response cap and the two fallback slice lengths.
func WithLimits(exact, fallbackResults, fallbackWeak int) ConfigOption {
	return func(c *Config) {
		c.ExactLimit = exact
		c.FallbackResults = fallbackResults
		c.FallbackWeak = fallbackWeak
	}
}

func WithTopSchools(n int) ConfigOption {
	return func(c *Config) {
		c.TopSchools = n
	}
}

func WithEmbedTimeout(timeout time.Duration) ConfigOption {
	return func(c *Config) {
		c.EmbedTimeout = timeout
	}
}

func WithBudgetScope(scope BudgetScope) ConfigOption {
	return func(c *Config) {
		c.BudgetScope = scope
	}
}

func DefaultConfig() *Config {
	return &Config{
		Threshold:       0.4,
		Weight:          0.3,
		RatingMax:       10,
		ExactLimit:      10,
		FallbackResults: 6,
		FallbackWeak:    6,
		TopSchools:      5,
		EmbedTimeout:    10 * time.Second,
		BudgetScope:     BudgetScopeAll,
	}
}

func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func (c *Config) Validate() error {
	if c.Weight < 0 || c.Weight > 1 {
		return fmt.Errorf("%w: Weight must be within [0, 1]", ErrInvalidConfig)
	}
	if c.RatingMax <= 0 {
		return fmt.Errorf("%w: RatingMax must be positive", ErrInvalidConfig)
	}
	if c.ExactLimit < 0 || c.FallbackResults < 0 || c.FallbackWeak < 0 || c.TopSchools < 0 {
		return fmt.Errorf("%w: limits must not be negative", ErrInvalidConfig)
	}
	if c.EmbedTimeout <= 0 {
		return fmt.Errorf("%w: EmbedTimeout must be positive", ErrInvalidConfig)
	}
	if c.BudgetScope != BudgetScopeAll && c.BudgetScope != BudgetScopePrivateOnly {
		return fmt.Errorf("%w: unknown budget scope %d", ErrInvalidConfig, int(c.BudgetScope))
	}
	return nil
}
