package ingestion

import (
	"fmt"
	"runtime"
	"time"
)

// Config holds the import settings.
type Config struct {
	// PoolSize is the number of concurrent embedding workers.
	// Default: runtime.NumCPU() / 2, minimum 1
	PoolSize int

	// EmbedBatchSize is the number of texts sent per embedding call.
	// Default: 32
	EmbedBatchSize int

	// WriteBatchSize is the number of programs written per transaction.
	// Default: 500
	WriteBatchSize int

	// MaxRetries is the number of attempts for each embedding call.
	// Default: 3
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff.
	// Default: 1s
	RetryDelay time.Duration

	// RateLimit caps embedding calls per second. Zero disables the limit.
	RateLimit float64

	// RateBurst is the number of calls allowed at once under the rate limit.
	// Default: 1
	RateBurst int
}

type ConfigOption func(*Config)

func WithPoolSize(size int) ConfigOption {
	return func(c *Config) {
		c.PoolSize = size
	}
}

func WithEmbedBatchSize(size int) ConfigOption {
	return func(c *Config) {
		c.EmbedBatchSize = size
	}
}

func WithWriteBatchSize(size int) ConfigOption {
	return func(c *Config) {
		c.WriteBatchSize = size
	}
}

func WithRetry(maxRetries int, delay time.Duration) ConfigOption {
	return func(c *Config) {
		c.MaxRetries = maxRetries
		c.RetryDelay = delay
	}
}

// WithRateLimit caps embedding calls at perSecond with the given burst.
func WithRateLimit(perSecond float64, burst int) ConfigOption {
	return func(c *Config) {
		c.RateLimit = perSecond
		c.RateBurst = burst
	}
}

func DefaultConfig() *Config {
	return &Config{
		PoolSize:       max(runtime.NumCPU()/2, 1),
		EmbedBatchSize: 32,
		WriteBatchSize: 500,
		MaxRetries:     3,
		RetryDelay:     time.Second,
		RateBurst:      1,
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
	if c.PoolSize < 1 {
		return fmt.Errorf("%w: PoolSize must be at least 1", ErrInvalidConfig)
	}
	if c.EmbedBatchSize < 1 {
		return fmt.Errorf("%w: EmbedBatchSize must be at least 1", ErrInvalidConfig)
	}
	if c.WriteBatchSize < 1 {
		return fmt.Errorf("%w: WriteBatchSize must be at least 1", ErrInvalidConfig)
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("%w: MaxRetries must be at least 1", ErrInvalidConfig)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("%w: RetryDelay cannot be negative", ErrInvalidConfig)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("%w: RateLimit cannot be negative", ErrInvalidConfig)
	}
	if c.RateLimit > 0 && c.RateBurst < 1 {
		return fmt.Errorf("%w: RateBurst must be at least 1 when rate limited", ErrInvalidConfig)
	}
	return nil
}
