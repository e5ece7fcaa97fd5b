package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/poiesic/unifinder"
	"github.com/poiesic/unifinder/ai"
	"github.com/poiesic/unifinder/config"
	"github.com/poiesic/unifinder/core"
	"github.com/poiesic/unifinder/ingestion"
	"github.com/poiesic/unifinder/metrics"
	"github.com/poiesic/unifinder/recommend"
	"github.com/poiesic/unifinder/reembed"
	"github.com/poiesic/unifinder/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"
)

// openDatabase is replaced in tests to run commands against a mock provider.
var openDatabase = func(cfg *config.AppConfig, opts ...unifinder.DatabaseOption) (*unifinder.Database, error) {
	opts = append([]unifinder.DatabaseOption{unifinder.WithAIConfig(cfg.AIConfig())}, opts...)
	return unifinder.NewDatabase(cfg.Database.Path, opts...)
}

func importProgramsCommand(c *cli.Context) error {
	ctx := context.Background()
	cfg := appConfig(c)

	ingCfg := cfg.IngestionConfig()
	setInt(c, "pool-size", &ingCfg.PoolSize)
	setInt(c, "max-retries", &ingCfg.MaxRetries)
	setDuration(c, "retry-delay", &ingCfg.RetryDelay)
	setFloat(c, "rate-limit", &ingCfg.RateLimit)
	if err := ingCfg.Validate(); err != nil {
		return err
	}

	f, err := os.Open(c.String("file"))
	if err != nil {
		return fmt.Errorf("failed to open programs file: %w", err)
	}
	defer f.Close()

	db, err := openDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	importer, err := db.NewImporter(ingestion.WithConfig(ingCfg), ingestion.WithProgress(c.App.ErrWriter))
	if err != nil {
		return err
	}
	defer importer.Release()

	report, err := importer.ImportProgramsFrom(ctx, f)
	if err != nil {
		return fmt.Errorf("program import failed: %w", err)
	}

	fmt.Fprintf(c.App.ErrWriter, "Imported %d programs (%d embedded), rejected %d\n",
		report.Imported, report.Embedded, len(report.Rejected))
	for _, rejected := range report.Rejected {
		fmt.Fprintf(c.App.ErrWriter, "  #%d %s / %s: %v\n", rejected.Index, rejected.School, rejected.Name, rejected.Err)
	}
	return nil
}

func importRankingsCommand(c *cli.Context) error {
	ctx := context.Background()
	cfg := appConfig(c)

	f, err := os.Open(c.String("file"))
	if err != nil {
		return fmt.Errorf("failed to open rankings file: %w", err)
	}
	defer f.Close()

	db, err := openDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	importer, err := db.NewImporter()
	if err != nil {
		return err
	}
	defer importer.Release()

	if err := importer.ImportRankingsFrom(ctx, f); err != nil {
		return fmt.Errorf("ranking import failed: %w", err)
	}
	return nil
}

func reembedCommand(c *cli.Context) error {
	ctx := context.Background()
	cfg := appConfig(c)

	reCfg := cfg.ReembedConfig()
	setInt(c, "batch-size", &reCfg.BatchSize)
	setInt(c, "report-interval", &reCfg.ReportInterval)
	setInt(c, "max-retries", &reCfg.MaxRetries)
	setDuration(c, "retry-delay", &reCfg.RetryDelay)

	if reCfg.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if reCfg.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if reCfg.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	reembedder, err := db.NewReembedder(reCfg, reembed.WithProgress(c.App.ErrWriter))
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.ErrWriter, "Database: %s\n", cfg.Database.Path)
	fmt.Fprintf(c.App.ErrWriter, "Embedding host: %s\n", cfg.AI.EmbeddingHost)
	fmt.Fprintf(c.App.ErrWriter, "Embedding model: %s\n", cfg.AI.EmbeddingModel)
	fmt.Fprintln(c.App.ErrWriter)

	if _, err := reembedder.Run(ctx); err != nil {
		return fmt.Errorf("reembedding failed: %w", err)
	}
	return nil
}

func programsCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := openDatabase(appConfig(c))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	programs, err := db.ProgramRepository().SearchPrograms(ctx, storage.ProgramQuery{
		Name:     c.String("name"),
		Location: c.String("location"),
		Category: c.String("category"),
	})
	if err != nil {
		return err
	}

	docs := make([]core.ProgramDocument, len(programs))
	for i, program := range programs {
		docs[i] = program.Document()
		docs[i].Vector = nil
	}
	return writeJSON(c.App.Writer, docs)
}

func rankingsCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := openDatabase(appConfig(c))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	rankings, err := db.RankingRepository().GetRankings(ctx)
	if err != nil {
		return err
	}
	return writeJSON(c.App.Writer, map[string]core.SchoolRankings{"programs": rankings})
}

func recommendCommand(c *cli.Context) error {
	ctx := context.Background()
	cfg := appConfig(c)

	if c.IsSet("budget-scope") {
		cfg.Recommend.BudgetScope = c.String("budget-scope")
	}
	setFloat(c, "threshold", &cfg.Recommend.Threshold)
	setFloat(c, "weight", &cfg.Recommend.Weight)
	recCfg, err := cfg.RecommendConfig()
	if err != nil {
		return err
	}

	answers, err := readAnswers(c.String("answers"))
	if err != nil {
		return err
	}

	filter := recommend.Filter{
		SchoolType: c.String("school-type"),
		Locations:  c.StringSlice("location"),
	}
	if budget := c.Float64("max-budget"); budget > 0 {
		filter.MaxBudget = &budget
	}

	var (
		dbOpts     []unifinder.DatabaseOption
		engineOpts = []recommend.Option{recommend.WithConfig(recCfg)}
		m          *metrics.Metrics
	)
	if c.Bool("metrics") {
		m = metrics.New(prometheus.NewRegistry())
		dbOpts = append(dbOpts, unifinder.WithBreakerOptions(ai.WithStateChange(m.BreakerStateChange)))
		engineOpts = append(engineOpts, recommend.WithMonitor(m.Monitor()))
	}

	db, err := openDatabase(cfg, dbOpts...)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	engine, err := db.NewEngine(engineOpts...)
	if err != nil {
		return err
	}

	response, err := engine.Recommend(ctx, answers, filter)
	if m != nil {
		if werr := m.WriteText(c.App.ErrWriter); werr != nil {
			return werr
		}
	}
	if err != nil {
		return fmt.Errorf("recommendation failed: %w", err)
	}
	return writeJSON(c.App.Writer, response)
}

func readAnswers(path string) (*core.UserAnswers, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read answers file: %w", err)
	}
	answers := core.NewUserAnswers()
	if err := json.Unmarshal(data, answers); err != nil {
		return nil, fmt.Errorf("failed to parse answers file: %w", err)
	}
	return answers, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
