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

package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/poiesic/unifinder/config"
	"github.com/urfave/cli/v2"
)

const configKey = "config"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "unifinder",
		Usage: "University program recommendations from questionnaire answers",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error); overrides the config file",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:   "import-programs",
				Usage:  "Import program records from a JSON file, embedding those without a vector",
				Action: importProgramsCommand,
				Flags: []cli.Flag{
					dbFlag(),
					fileFlag(),
					embeddingHostFlag(),
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Number of concurrent embedding workers",
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum attempts for each embedding call",
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
					},
					&cli.Float64Flag{
						Name:  "rate-limit",
						Usage: "Maximum embedding calls per second (0 for unlimited)",
					},
				},
			},
			{
				Name:   "import-rankings",
				Usage:  "Replace the school ranking tables from a JSON file",
				Action: importRankingsCommand,
				Flags:  []cli.Flag{dbFlag(), fileFlag()},
			},
			{
				Name:   "reembed",
				Usage:  "Re-embed every stored program with a new embedding model",
				Action: reembedCommand,
				Flags: []cli.Flag{
					dbFlag(),
					embeddingHostFlag(),
					&cli.StringFlag{
						Name:     "embedding-model",
						Usage:    "Embedding model name",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of programs to process in each batch",
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N programs",
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
					},
				},
			},
			{
				Name:   "programs",
				Usage:  "List stored programs as JSON, optionally filtered",
				Action: programsCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:  "name",
						Usage: "Keep programs whose name contains this text",
					},
					&cli.StringFlag{
						Name:  "location",
						Usage: "Keep programs whose location contains this text",
					},
					&cli.StringFlag{
						Name:  "category",
						Usage: "Keep programs whose category contains this text",
					},
				},
			},
			{
				Name:   "rankings",
				Usage:  "Print the school ranking tables as JSON",
				Action: rankingsCommand,
				Flags:  []cli.Flag{dbFlag()},
			},
			{
				Name:   "recommend",
				Usage:  "Recommend programs for a questionnaire answers file",
				Action: recommendCommand,
				Flags: []cli.Flag{
					dbFlag(),
					embeddingHostFlag(),
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
					},
					&cli.StringFlag{
						Name:     "answers",
						Aliases:  []string{"a"},
						Usage:    "Path to the questionnaire answers JSON file",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "school-type",
						Usage: "Keep only public or private schools (any for both)",
						Value: "any",
					},
					&cli.StringSliceFlag{
						Name:  "location",
						Usage: "Preferred location; repeat for several",
					},
					&cli.Float64Flag{
						Name:  "max-budget",
						Usage: "Maximum tuition per semester (0 for no limit)",
					},
					&cli.StringFlag{
						Name:  "budget-scope",
						Usage: "Which schools the budget applies to (all, private)",
					},
					&cli.Float64Flag{
						Name:  "threshold",
						Usage: "Final score at or above which a match is strong",
					},
					&cli.Float64Flag{
						Name:  "weight",
						Usage: "Share of the final score taken by the school rating",
					},
					&cli.BoolFlag{
						Name:  "metrics",
						Usage: "Write Prometheus metrics for the request to stderr",
					},
				},
			},
		},
	}
}

func dbFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "db",
		Aliases: []string{"d"},
		Usage:   "Path to BadgerDB database directory (default from config)",
	}
}

func fileFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "file",
		Aliases:  []string{"f"},
		Usage:    "Path to the JSON input file",
		Required: true,
	}
}

func embeddingHostFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "embedding-host",
		Usage: "Embedding service host URL",
	}
}

// setup loads the configuration and installs the default logger.
func setup(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = strings.ToLower(c.String("log-level"))
	}
	level, err := cfg.Level()
	if err != nil {
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", cfg.LogLevel)
	}

	logger := slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	if c.App.Metadata == nil {
		c.App.Metadata = make(map[string]any)
	}
	c.App.Metadata[configKey] = cfg
	return nil
}

// appConfig returns the loaded configuration with the command's flags applied.
func appConfig(c *cli.Context) *config.AppConfig {
	cfg, ok := c.App.Metadata[configKey].(*config.AppConfig)
	if !ok {
		cfg = config.Default()
	}

	if c.IsSet("db") {
		cfg.Database.Path = c.String("db")
	}
	if c.IsSet("embedding-host") {
		cfg.AI.EmbeddingHost = c.String("embedding-host")
	}
	if c.IsSet("embedding-model") {
		cfg.AI.EmbeddingModel = c.String("embedding-model")
	}
	return cfg
}

func setInt(c *cli.Context, name string, dst *int) {
	if c.IsSet(name) {
		*dst = c.Int(name)
	}
}

func setDuration(c *cli.Context, name string, dst *time.Duration) {
	if c.IsSet(name) {
		*dst = c.Duration(name)
	}
}

func setFloat(c *cli.Context, name string, dst *float64) {
	if c.IsSet(name) {
		*dst = c.Float64(name)
	}
}
