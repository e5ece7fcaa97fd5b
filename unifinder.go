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

// Package unifinder opens a program catalog on disk and hands out the
// components that work on it: the recommendation engine, the catalog
// importer and the re-embedder.
package unifinder

import (
	"log/slog"

	"github.com/poiesic/unifinder/ai"
	"github.com/poiesic/unifinder/ai/openai"
	"github.com/poiesic/unifinder/catalog"
	"github.com/poiesic/unifinder/ingestion"
	"github.com/poiesic/unifinder/recommend"
	"github.com/poiesic/unifinder/reembed"
	"github.com/poiesic/unifinder/storage"
	"github.com/poiesic/unifinder/storage/badger"
)

type Database struct {
	backend     *badger.Backend
	programRepo storage.ProgramRepository
	rankingRepo storage.RankingRepository
	cache       *catalog.Cache
	provider    ai.AIProvider
	logger      *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig    *ai.Config
	breakerOpts []ai.BreakerOption
	provider    ai.AIProvider
	inMemory    bool
	logger      *slog.Logger
}

// WithAIConfig sets the embedding provider settings.
func WithAIConfig(cfg *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		o.aiConfig = cfg
	}
}

// WithBreakerOptions passes options to the embedder's circuit breaker,
// e.g. ai.WithStateChange to export breaker transitions.
func WithBreakerOptions(opts ...ai.BreakerOption) DatabaseOption {
	return func(o *databaseOptions) {
		o.breakerOpts = append(o.breakerOpts, opts...)
	}
}

// WithProvider uses provider instead of building an OpenAI-compatible one.
// The database closes it on Close.
func WithProvider(provider ai.AIProvider) DatabaseOption {
	return func(o *databaseOptions) {
		o.provider = provider
	}
}

// InMemory keeps the catalog in memory; the path is ignored.
func InMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

func WithLogger(logger *slog.Logger) DatabaseOption {
	return func(o *databaseOptions) {
		o.logger = logger
	}
}

func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	logger := options.logger.With("component", "database")

	backend, err := badger.OpenBackend(filePath, options.inMemory, badger.WithLogger(options.logger))
	if err != nil {
		return nil, err
	}

	programRepo, err := badger.NewProgramRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	rankingRepo, err := badger.NewRankingRepository(backend)
	if err != nil {
		programRepo.Close()
		backend.Close()
		return nil, err
	}

	cache, err := catalog.NewCache(storage.NewCatalog(programRepo, rankingRepo), catalog.WithLogger(options.logger))
	if err != nil {
		rankingRepo.Close()
		programRepo.Close()
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig, options.breakerOpts...)
		if err != nil {
			rankingRepo.Close()
			programRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Database{
		backend:     backend,
		programRepo: programRepo,
		rankingRepo: rankingRepo,
		cache:       cache,
		provider:    provider,
		logger:      logger,
	}, nil
}

func (db *Database) Close() error {
	if err := db.provider.Close(); err != nil {
		db.logger.Error("error closing AI provider", "err", err)
	}

	if err := db.rankingRepo.Close(); err != nil {
		db.logger.Error("error closing ranking repository", "err", err)
		return err
	}
	if err := db.programRepo.Close(); err != nil {
		db.logger.Error("error closing program repository", "err", err)
		return err
	}

	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) ProgramRepository() storage.ProgramRepository {
	return db.programRepo
}

func (db *Database) RankingRepository() storage.RankingRepository {
	return db.rankingRepo
}

// Catalog returns the snapshot cache engines read from. Call Reload on it
// after writing to the repositories.
func (db *Database) Catalog() *catalog.Cache {
	return db.cache
}

func (db *Database) NewEngine(opts ...recommend.Option) (*recommend.Engine, error) {
	return recommend.NewEngine(db.cache, db.provider, opts...)
}

func (db *Database) NewImporter(opts ...ingestion.Option) (*ingestion.Importer, error) {
	return ingestion.NewImporter(db.programRepo, db.rankingRepo, db.provider, opts...)
}

func (db *Database) NewReembedder(config *reembed.Config, opts ...reembed.Option) (*reembed.Reembedder, error) {
	return reembed.NewReembedder(db.programRepo, db.provider.Embedder(), config, opts...)
}
