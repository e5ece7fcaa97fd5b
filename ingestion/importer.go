package ingestion

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/unifinder/ai"
	"github.com/poiesic/unifinder/core"
	"github.com/poiesic/unifinder/reembed"
	"github.com/poiesic/unifinder/storage"
	"golang.org/x/time/rate"
)

// Importer writes program catalogs and ranking tables into storage.
type Importer struct {
	programRepository storage.ProgramRepository
	rankingRepository storage.RankingRepository
	embedProc         *embeddingProcessor
	pool              *ants.Pool
	config            *Config
	progress          io.Writer
	logger            *slog.Logger
}

// Option configures an Importer.
type Option func(*Importer) error

// WithConfig replaces the default import settings.
func WithConfig(cfg *Config) Option {
	return func(im *Importer) error {
		if cfg == nil {
			cfg = DefaultConfig()
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		im.config = cfg
		return nil
	}
}

// WithProgress sets where embedding progress is written (typically os.Stderr).
// Default discards it.
func WithProgress(w io.Writer) Option {
	return func(im *Importer) error {
		im.progress = w
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(im *Importer) error {
		if logger == nil {
			logger = slog.Default()
		}
		im.logger = logger
		return nil
	}
}

// NewImporter creates an importer. The provider's embedder fills in
// vectors for programs that arrive without one.
func NewImporter(
	programRepository storage.ProgramRepository,
	rankingRepository storage.RankingRepository,
	provider ai.AIProvider,
	opts ...Option,
) (*Importer, error) {
	if programRepository == nil {
		return nil, ErrProgramRepositoryRequired
	}
	if rankingRepository == nil {
		return nil, ErrRankingRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	im := &Importer{
		programRepository: programRepository,
		rankingRepository: rankingRepository,
		config:            DefaultConfig(),
		progress:          io.Discard,
		logger:            slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(im); err != nil {
			return nil, err
		}
	}
	im.logger = im.logger.With("component", "importer")

	pool, err := ants.NewPool(im.config.PoolSize)
	if err != nil {
		return nil, err
	}
	im.pool = pool

	limit := rate.Inf
	if im.config.RateLimit > 0 {
		limit = rate.Limit(im.config.RateLimit)
	}

	im.embedProc = &embeddingProcessor{
		embedder:  provider.Embedder(),
		pool:      pool,
		limiter:   rate.NewLimiter(limit, max(im.config.RateBurst, 1)),
		batchSize: im.config.EmbedBatchSize,
		retry: reembed.RetryPolicy{
			MaxAttempts: im.config.MaxRetries,
			BaseDelay:   im.config.RetryDelay,
			Logger:      im.logger,
		},
		logger: im.logger.With("processor", "embeddings"),
	}
	return im, nil
}

// Rejection describes a program that was not imported.
type Rejection struct {
	Index  int // Position in the input
	School string
	Name   string
	Err    error
}

// Report summarizes a program import.
type Report struct {
	Imported int // Programs written, new or updated
	Embedded int // Programs whose vector was generated during the import
	Rejected []Rejection
	Programs []*core.ProgramRecord // Written programs with IDs assigned
}

// ImportPrograms embeds programs lacking a vector, validates every program
// and upserts the valid ones. Invalid programs and programs whose embedding
// failed end up in Report.Rejected. The returned error is reserved for
// storage failures and cancellation.
func (im *Importer) ImportPrograms(ctx context.Context, programs []*core.ProgramRecord) (*Report, error) {
	report := &Report{}
	index := make(map[*core.ProgramRecord]int, len(programs))

	var missing []*core.ProgramRecord
	for i, program := range programs {
		if program == nil {
			report.Rejected = append(report.Rejected, Rejection{Index: i, Err: core.ErrMalformedProgram})
			continue
		}
		index[program] = i
		if len(program.Vector) == 0 {
			missing = append(missing, program)
		}
	}

	failed := make(map[*core.ProgramRecord]error)
	if len(missing) > 0 {
		im.logger.Info("embedding programs without vectors", "programs", len(missing))
		tracker := reembed.NewProgressTracker(im.progress, "programs", len(missing), im.config.EmbedBatchSize)
		tracker.Start()

		for _, failure := range im.embedProc.process(ctx, missing, tracker.Increment) {
			for _, program := range failure.programs {
				failed[program] = failure.err
			}
		}
		tracker.Finish()
		report.Embedded = len(missing) - len(failed)
	}
	if err := ctx.Err(); err != nil {
		return report, err
	}

	valid := make([]*core.ProgramRecord, 0, len(programs))
	for _, program := range programs {
		if program == nil {
			continue
		}
		err := failed[program]
		if err == nil {
			err = core.ValidateProgram(program)
		}
		if err != nil {
			im.logger.Warn("skipping program", "school", program.School, "program", program.Name, "err", err)
			report.Rejected = append(report.Rejected, Rejection{
				Index:  index[program],
				School: program.School,
				Name:   program.Name,
				Err:    err,
			})
			continue
		}
		valid = append(valid, program)
	}

	for start := 0; start < len(valid); start += im.config.WriteBatchSize {
		batch := valid[start:min(start+im.config.WriteBatchSize, len(valid))]
		written, err := im.programRepository.AddPrograms(ctx, batch...)
		if err != nil {
			return report, fmt.Errorf("writing programs %d-%d: %w", start, start+len(batch)-1, err)
		}
		report.Imported += len(written)
		report.Programs = append(report.Programs, written...)
	}

	im.logger.Info("program import complete",
		"imported", report.Imported,
		"embedded", report.Embedded,
		"rejected", len(report.Rejected))
	return report, nil
}

// ImportProgramsFrom decodes a JSON program array from r and imports it.
func (im *Importer) ImportProgramsFrom(ctx context.Context, r io.Reader) (*Report, error) {
	programs, err := DecodePrograms(r)
	if err != nil {
		return nil, err
	}
	return im.ImportPrograms(ctx, programs)
}

// ImportRankings validates rankings and replaces every stored table with them.
func (im *Importer) ImportRankings(ctx context.Context, rankings core.SchoolRankings) error {
	if err := core.ValidateRankings(rankings); err != nil {
		return err
	}
	if err := im.rankingRepository.ReplaceRankings(ctx, rankings); err != nil {
		return err
	}
	im.logger.Info("ranking import complete", "categories", len(rankings))
	return nil
}

// ImportRankingsFrom decodes a ranking file from r and imports it.
func (im *Importer) ImportRankingsFrom(ctx context.Context, r io.Reader) error {
	rankings, err := DecodeRankings(r)
	if err != nil {
		return err
	}
	return im.ImportRankings(ctx, rankings)
}

// Release stops the embedding workers.
// The importer should not be used after calling Release.
func (im *Importer) Release() {
	if im.pool != nil {
		im.pool.Release()
	}
}
