package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/unifinder/ai"
	"github.com/poiesic/unifinder/ingestion"
	"github.com/poiesic/unifinder/recommend"
	"github.com/poiesic/unifinder/reembed"
)

// ErrInvalidConfig indicates a loaded value is out of range.
var ErrInvalidConfig = errors.New("invalid configuration")

// AppConfig is the full application configuration.
type AppConfig struct {
	LogLevel  string          `koanf:"log_level"`
	Database  DatabaseConfig  `koanf:"database"`
	AI        AIConfig        `koanf:"ai"`
	Recommend RecommendConfig `koanf:"recommend"`
	Ingestion IngestionConfig `koanf:"ingestion"`
	Reembed   ReembedConfig   `koanf:"reembed"`
}

type DatabaseConfig struct {
	Path string `koanf:"path"`
}

type AIConfig struct {
	EmbeddingHost   string        `koanf:"embedding_host"`
	EmbeddingModel  string        `koanf:"embedding_model"`
	APIToken        string        `koanf:"api_token"`
	BreakerFailures uint32        `koanf:"breaker_failures"`
	BreakerCooldown time.Duration `koanf:"breaker_cooldown"`
}

type RecommendConfig struct {
	Threshold       float64       `koanf:"threshold"`
	Weight          float64       `koanf:"weight"`
	RatingMax       float64       `koanf:"rating_max"`
	ExactLimit      int           `koanf:"exact_limit"`
	FallbackResults int           `koanf:"fallback_results"`
	FallbackWeak    int           `koanf:"fallback_weak"`
	TopSchools      int           `koanf:"top_schools"`
	EmbedTimeout    time.Duration `koanf:"embed_timeout"`
	BudgetScope     string        `koanf:"budget_scope"` // "all" or "private"
}

type IngestionConfig struct {
	PoolSize       int           `koanf:"pool_size"`
	EmbedBatchSize int           `koanf:"embed_batch_size"`
	WriteBatchSize int           `koanf:"write_batch_size"`
	MaxRetries     int           `koanf:"max_retries"`
	RetryDelay     time.Duration `koanf:"retry_delay"`
	RateLimit      float64       `koanf:"rate_limit"` // Embedding calls per second, 0 for unlimited
	RateBurst      int           `koanf:"rate_burst"`
}

type ReembedConfig struct {
	BatchSize      int           `koanf:"batch_size"`
	ReportInterval int           `koanf:"report_interval"`
	MaxRetries     int           `koanf:"max_retries"`
	RetryDelay     time.Duration `koanf:"retry_delay"`
}

// Default returns the configuration used when nothing overrides it. Library
// sections mirror the defaults of their packages.
func Default() *AppConfig {
	aiCfg := ai.DefaultConfig()
	recCfg := recommend.DefaultConfig()
	ingCfg := ingestion.DefaultConfig()
	reCfg := reembed.DefaultConfig()

	return &AppConfig{
		LogLevel: "info",
		Database: DatabaseConfig{
			Path: "unifinder.db",
		},
		AI: AIConfig{
			EmbeddingHost:   aiCfg.EmbeddingHost,
			EmbeddingModel:  aiCfg.EmbeddingModel,
			APIToken:        aiCfg.APIToken,
			BreakerFailures: aiCfg.BreakerFailures,
			BreakerCooldown: aiCfg.BreakerCooldown,
		},
		Recommend: RecommendConfig{
			Threshold:       recCfg.Threshold,
			Weight:          recCfg.Weight,
			RatingMax:       recCfg.RatingMax,
			ExactLimit:      recCfg.ExactLimit,
			FallbackResults: recCfg.FallbackResults,
			FallbackWeak:    recCfg.FallbackWeak,
			TopSchools:      recCfg.TopSchools,
			EmbedTimeout:    recCfg.EmbedTimeout,
			BudgetScope:     recCfg.BudgetScope.String(),
		},
		Ingestion: IngestionConfig{
			PoolSize:       ingCfg.PoolSize,
			EmbedBatchSize: ingCfg.EmbedBatchSize,
			WriteBatchSize: ingCfg.WriteBatchSize,
			MaxRetries:     ingCfg.MaxRetries,
			RetryDelay:     ingCfg.RetryDelay,
			RateLimit:      ingCfg.RateLimit,
			RateBurst:      ingCfg.RateBurst,
		},
		Reembed: ReembedConfig{
			BatchSize:      reCfg.BatchSize,
			ReportInterval: reCfg.ReportInterval,
			MaxRetries:     reCfg.MaxRetries,
			RetryDelay:     reCfg.RetryDelay,
		},
	}
}

// AIConfig converts the ai section into provider settings.
func (c *AppConfig) AIConfig() *ai.Config {
	return ai.NewConfig(
		ai.WithEmbeddingHost(c.AI.EmbeddingHost),
		ai.WithEmbeddingModel(c.AI.EmbeddingModel),
		ai.WithAPIToken(c.AI.APIToken),
		ai.WithBreaker(c.AI.BreakerFailures, c.AI.BreakerCooldown),
	)
}

// RecommendConfig converts the recommend section into engine settings.
func (c *AppConfig) RecommendConfig() (*recommend.Config, error) {
	scope, err := recommend.ParseBudgetScope(strings.ToLower(strings.TrimSpace(c.Recommend.BudgetScope)))
	if err != nil {
		return nil, err
	}
	return recommend.NewConfig(
		recommend.WithThreshold(c.Recommend.Threshold),
		recommend.WithWeight(c.Recommend.Weight),
		recommend.WithRatingMax(c.Recommend.RatingMax),
		recommend.WithLimits(c.Recommend.ExactLimit, c.Recommend.FallbackResults, c.Recommend.FallbackWeak),
		recommend.WithTopSchools(c.Recommend.TopSchools),
		recommend.WithEmbedTimeout(c.Recommend.EmbedTimeout),
		recommend.WithBudgetScope(scope),
	), nil
}

// IngestionConfig converts the ingestion section into import settings.
func (c *AppConfig) IngestionConfig() *ingestion.Config {
	return ingestion.NewConfig(
		ingestion.WithPoolSize(c.Ingestion.PoolSize),
		ingestion.WithEmbedBatchSize(c.Ingestion.EmbedBatchSize),
		ingestion.WithWriteBatchSize(c.Ingestion.WriteBatchSize),
		ingestion.WithRetry(c.Ingestion.MaxRetries, c.Ingestion.RetryDelay),
		ingestion.WithRateLimit(c.Ingestion.RateLimit, c.Ingestion.RateBurst),
	)
}

// ReembedConfig converts the reembed section into re-embedding settings.
func (c *AppConfig) ReembedConfig() *reembed.Config {
	return &reembed.Config{
		BatchSize:      c.Reembed.BatchSize,
		ReportInterval: c.Reembed.ReportInterval,
		MaxRetries:     c.Reembed.MaxRetries,
		RetryDelay:     c.Reembed.RetryDelay,
	}
}

// Level parses LogLevel. Unknown names are an error.
func (c *AppConfig) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	return level, nil
}

// Validate checks every section against its package's rules.
func (c *AppConfig) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("%w: database.path is required", ErrInvalidConfig)
	}
	if err := c.AIConfig().Validate(); err != nil {
		return fmt.Errorf("ai: %w", err)
	}
	rec, err := c.RecommendConfig()
	if err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	if err := c.IngestionConfig().Validate(); err != nil {
		return fmt.Errorf("ingestion: %w", err)
	}
	if c.Reembed.BatchSize < 1 || c.Reembed.MaxRetries < 1 || c.Reembed.RetryDelay < 0 {
		return fmt.Errorf("%w: reembed batch_size and max_retries must be positive", ErrInvalidConfig)
	}
	return nil
}
