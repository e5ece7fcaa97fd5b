// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package reembed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/poiesic/unifinder/ai"
	"github.com/poiesic/unifinder/core"
	"github.com/poiesic/unifinder/storage"
)

// Config holds configuration for the reembedding operation.
type Config struct {
	// BatchSize is the number of programs embedded per call
	BatchSize int

	// ReportInterval is how often to report progress (number of programs)
	ReportInterval int

	// MaxRetries is the maximum number of attempts for each embedding call
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      DefaultBatchSize,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Summary describes a finished run.
type Summary struct {
	Programs int
	Elapsed  time.Duration
}

// Reembedder regenerates the vector of every program in a repository.
type Reembedder struct {
	repo      storage.ProgramRepository
	config    *Config
	progress  io.Writer
	logger    *slog.Logger
	processor *BatchProcessor
	iterator  *ProgramIterator
}

// Option configures a Reembedder.
type Option func(*Reembedder)

// WithProgress sets where the progress line is written (typically os.Stderr).
// Default discards it.
func WithProgress(w io.Writer) Option {
	return func(r *Reembedder) {
		r.progress = w
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reembedder) {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
	}
}

// NewReembedder creates a reembedder. A nil config uses DefaultConfig.
func NewReembedder(repo storage.ProgramRepository, embedder ai.Embedder, config *Config, opts ...Option) (*Reembedder, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if config.MaxRetries <= 0 {
		return nil, ErrInvalidMaxAttempts
	}

	r := &Reembedder{
		repo:     repo,
		config:   config,
		progress: io.Discard,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With("component", "reembedder")

	r.processor = NewBatchProcessor(repo, embedder, RetryPolicy{
		MaxAttempts: config.MaxRetries,
		BaseDelay:   config.RetryDelay,
		Logger:      r.logger,
	})
	r.iterator = NewProgramIterator(repo, config.BatchSize)
	return r, nil
}

// Run re-embeds every program. Programs already processed when an error
// occurs keep their new vectors.
func (r *Reembedder) Run(ctx context.Context) (*Summary, error) {
	total, err := r.repo.CountPrograms(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count programs: %w", err)
	}
	if total == 0 {
		r.logger.Info("no programs to reembed")
		return &Summary{}, nil
	}

	r.logger.Info("starting reembedding", "programs", total, "batchSize", r.config.BatchSize)

	tracker := NewProgressTracker(r.progress, "programs", total, r.config.ReportInterval)
	tracker.Start()

	processed := 0
	err = r.iterator.ForEach(ctx, func(programs []*core.ProgramRecord) error {
		if err := r.processor.Process(ctx, programs); err != nil {
			return fmt.Errorf("failed to process batch after program %d: %w", processed, err)
		}
		processed += len(programs)
		tracker.Update(processed)
		return nil
	})
	if err != nil {
		r.logger.Error("reembedding stopped", "processed", processed, "err", err)
		return &Summary{Programs: processed, Elapsed: tracker.Elapsed()}, err
	}

	tracker.Finish()
	summary := &Summary{Programs: processed, Elapsed: tracker.Elapsed()}
	r.logger.Info("reembedding complete", "programs", processed, "elapsed", summary.Elapsed.Round(time.Millisecond))
	return summary, nil
}
