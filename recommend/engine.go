package recommend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/poiesic/unifinder/ai"
	"github.com/poiesic/unifinder/core"
	"github.com/poiesic/unifinder/storage"
)

// Engine produces program recommendations from questionnaire answers.
type Engine struct {
	catalog    storage.CatalogRepository
	vectorizer *Vectorizer
	config     *Config
	monitor    Monitor
	logger     *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithConfig replaces the default ranking parameters.
func WithConfig(cfg *Config) Option {
	return func(e *Engine) error {
		if cfg == nil {
			cfg = DefaultConfig()
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		e.config = cfg
		return nil
	}
}

// WithMonitor sets the monitor that observes every request.
// Default is a no-op monitor.
func WithMonitor(monitor Monitor) Option {
	return func(e *Engine) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		e.monitor = monitor
		return nil
	}
}

// NewEngine creates an engine reading from catalog and embedding with the
// provider's embedder.
func NewEngine(catalog storage.CatalogRepository, provider ai.AIProvider, opts ...Option) (*Engine, error) {
	if catalog == nil {
		return nil, ErrCatalogRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	e := &Engine{
		catalog: catalog,
		config:  DefaultConfig(),
		monitor: &noopMonitor{},
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	e.logger = e.logger.With("component", "recommend")
	e.vectorizer = NewVectorizer(provider.Embedder(), e.config.EmbedTimeout, e.logger)
	return e, nil
}

// Config returns the engine's ranking parameters.
func (e *Engine) Config() Config {
	return *e.config
}

// Recommend ranks the catalog against answers, restricted by filter.
func (e *Engine) Recommend(ctx context.Context, answers *core.UserAnswers, filter Filter) (*core.RecommendationResponse, error) {
	return e.RecommendWithMonitor(ctx, answers, filter, nil)
}

// RecommendWithMonitor runs Recommend reporting to monitor in addition to
// the engine's own monitor.
func (e *Engine) RecommendWithMonitor(ctx context.Context, answers *core.UserAnswers, filter Filter, monitor Monitor) (*core.RecommendationResponse, error) {
	requestID := uuid.NewString()
	logger := e.logger.With("request_id", requestID)
	monitors := e.monitorsFor(monitor)
	started := time.Now()

	monitors.Start(requestID)
	resp, err := e.recommend(ctx, requestID, answers, filter, monitors, logger)
	elapsed := time.Since(started)
	monitors.Finish(requestID, resp, err, elapsed)

	if err != nil {
		logger.Error("recommendation failed", "err", err, "elapsed", elapsed)
		return nil, err
	}
	logger.Info("recommendation complete",
		"type", resp.Type,
		"results", len(resp.Results),
		"weak_matches", len(resp.WeakMatches),
		"elapsed", elapsed)
	return resp, nil
}

func (e *Engine) recommend(ctx context.Context, requestID string, answers *core.UserAnswers, filter Filter, monitor Monitor, logger *slog.Logger) (*core.RecommendationResponse, error) {
	// 1. Build the query vector
	query, vectors, err := e.vectorizer.Vectorize(ctx, answers)
	if errors.Is(err, ErrNoValidInput) {
		logger.Info("no valid input in answers")
		return noValidInputResponse(), nil
	}
	if err != nil {
		return nil, err
	}
	monitor.AfterVectorize(requestID, vectors, len(query))

	// 2. Read the catalog snapshot
	programs, err := e.catalog.ListPrograms(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrRepositoryUnavailable, err)
	}
	rankings, err := e.catalog.GetRankings(ctx)
	if err != nil {
		logger.Warn("ranking table unavailable, scoring without ratings", "err", err)
		rankings = core.SchoolRankings{}
	}
	monitor.AfterCatalogLoad(requestID, len(programs), len(rankings))

	// 3. Filter, score and blend
	crit := filter.compile(e.config.BudgetScope)
	scored := make([]*core.ScoredResult, 0, len(programs))
	for _, program := range programs {
		if err := core.ValidateProgram(program); err != nil {
			logger.Warn("skipping malformed program", "program_id", programID(program), "err", err)
			monitor.CandidateSkipped(requestID, program, err)
			continue
		}

		if reason := crit.reject(program); reason != "" {
			monitor.CandidateFiltered(requestID, program, reason)
			continue
		}

		similarity, err := CosineSimilarity(query, program.Vector)
		if err != nil {
			logger.Warn("skipping unscoreable program", "program_id", program.Id, "school", program.School, "err", err)
			monitor.CandidateSkipped(requestID, program, err)
			continue
		}

		rating := LookupRating(rankings, program.Category, program.School)
		result := &core.ScoredResult{
			Program:    program,
			Similarity: similarity,
			Score:      Blend(similarity, rating, e.config.Weight, e.config.RatingMax),
			Category:   program.Category,
		}
		monitor.CandidateScored(requestID, result)
		scored = append(scored, result)
	}

	// 4. Classify and assemble
	strong, weak := Classify(scored, e.config.Threshold)
	logger.Debug("candidates classified", "strong", len(strong), "weak", len(weak))
	return assemble(strong, weak, rankings, e.config), nil
}

func (e *Engine) monitorsFor(extra Monitor) Monitor {
	if extra == nil {
		return e.monitor
	}
	return multiMonitor{e.monitor, extra}
}

func programID(p *core.ProgramRecord) core.ID {
	if p == nil {
		return 0
	}
	return p.Id
}
