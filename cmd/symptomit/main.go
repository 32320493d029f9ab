// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/symptomit"
	"github.com/poiesic/symptomit/ai"
	"github.com/poiesic/symptomit/core"
	"github.com/poiesic/symptomit/indexing"
	"github.com/poiesic/symptomit/knowledge"
)

func main() {
	app := &cli.App{
		Name:  "symptomit",
		Usage: "Symptom-to-concept normalization and matching engine",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "match",
				Usage:     "Rank knowledge-base concepts against a symptom query",
				ArgsUsage: "<query text>",
				Action:    matchCommand,
				Flags: append(engineFlags(),
					&cli.Float64Flag{
						Name:    "threshold",
						Aliases: []string{"t"},
						Usage:   "Minimum match score (0 selects the default)",
						Value:   0,
					},
				),
			},
			{
				Name:      "analyze",
				Usage:     "Resolve each phrase of a symptom description",
				ArgsUsage: "<text>",
				Action:    analyzeCommand,
				Flags:     engineFlags(),
			},
			{
				Name:      "hypotheses",
				Usage:     "Run pattern rules over a symptom description",
				ArgsUsage: "<text>",
				Action:    hypothesesCommand,
				Flags:     engineFlags(),
			},
			{
				Name:      "similar",
				Usage:     "Search the persistent vector index for similar concepts",
				ArgsUsage: "<query text>",
				Action:    similarCommand,
				Flags: append(engineFlags(),
					&cli.Float64Flag{
						Name:  "min-similarity",
						Usage: "Minimum cosine similarity",
						Value: 0.5,
					},
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of results",
						Value:   10,
					},
				),
			},
			{
				Name:   "index",
				Usage:  "Precompute embedding vectors for stored concepts",
				Action: indexCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
						Value: "embeddinggemma",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of concepts to embed in each batch",
						Value: 32,
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Number of concurrent embedding workers",
					},
				},
			},
			{
				Name:   "import",
				Usage:  "Import concepts and pattern rules into the database",
				Action: importCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "concepts",
						Usage: "Path to JSON concept map",
					},
					&cli.StringFlag{
						Name:  "csv",
						Usage: "Path to CSV candidate export",
					},
					&cli.StringFlag{
						Name:  "rules",
						Usage: "Path to YAML pattern rule file",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// engineFlags are shared by the query commands.
func engineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			Aliases: []string{"d"},
			Usage:   "Path to BadgerDB database directory",
		},
		&cli.StringFlag{
			Name:  "concepts",
			Usage: "Path to JSON concept map",
		},
		&cli.StringFlag{
			Name:  "rules",
			Usage: "Path to YAML pattern rule file",
		},
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "embeddinggemma",
		},
	}
}

func newEngine(c *cli.Context) (*symptomit.Engine, error) {
	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	opts := []symptomit.EngineOption{symptomit.WithAIConfig(aiConfig)}
	if path := c.String("concepts"); path != "" {
		opts = append(opts, symptomit.WithConceptMap(path))
	}
	if path := c.String("rules"); path != "" {
		opts = append(opts, symptomit.WithPatternRules(path))
	}
	return symptomit.NewEngine(c.String("db"), opts...)
}

func queryText(c *cli.Context) (string, error) {
	text := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if text == "" {
		return "", fmt.Errorf("query text is required")
	}
	return text, nil
}

func matchCommand(c *cli.Context) error {
	text, err := queryText(c)
	if err != nil {
		return err
	}

	engine, err := newEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	results, err := engine.Match(context.Background(), text, c.Float64("threshold"))
	if err != nil {
		return err
	}
	return printJSON(results)
}

func analyzeCommand(c *cli.Context) error {
	text, err := queryText(c)
	if err != nil {
		return err
	}

	engine, err := newEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	reports, err := engine.Analyze(context.Background(), text)
	if err != nil {
		return err
	}
	return printJSON(reports)
}

func hypothesesCommand(c *cli.Context) error {
	text, err := queryText(c)
	if err != nil {
		return err
	}

	engine, err := newEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	hyps, err := engine.Hypotheses(context.Background(), text)
	if err != nil {
		return err
	}
	return printJSON(hyps)
}

func similarCommand(c *cli.Context) error {
	text, err := queryText(c)
	if err != nil {
		return err
	}
	if c.String("db") == "" {
		return fmt.Errorf("database path is required")
	}

	engine, err := newEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	similar, err := engine.Similar(context.Background(), text,
		float32(c.Float64("min-similarity")), c.Int("limit"))
	if err != nil {
		return err
	}
	return printJSON(similar)
}

func indexCommand(c *cli.Context) error {
	ctx := context.Background()

	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	engine, err := symptomit.NewEngine(c.String("db"), symptomit.WithAIConfig(aiConfig))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer engine.Close()

	opts := []indexing.Option{indexing.WithBatchSize(c.Int("batch-size"))}
	if size := c.Int("pool-size"); size > 0 {
		opts = append(opts, indexing.WithPoolSize(size))
	}
	pipeline, err := engine.NewIndexingPipeline(ctx, opts...)
	if err != nil {
		return err
	}
	defer pipeline.Release()

	if err := pipeline.Reindex(ctx); err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}
	return nil
}

func importCommand(c *cli.Context) error {
	ctx := context.Background()

	engine, err := symptomit.NewEngine(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer engine.Close()

	var concepts []core.Concept
	if path := c.String("concepts"); path != "" {
		loaded, err := knowledge.LoadConceptMap(path)
		if err != nil {
			return err
		}
		concepts = append(concepts, loaded...)
	}
	if path := c.String("csv"); path != "" {
		loaded, skipped, err := knowledge.LoadCandidatesCSV(path)
		if err != nil {
			return err
		}
		for _, skip := range skipped {
			slog.Warn("skipped candidate row", "label", skip.Label, "reason", skip.Reason)
		}
		concepts = append(concepts, loaded...)
	}
	if len(concepts) > 0 {
		put := make([]*core.Concept, len(concepts))
		for i := range concepts {
			put[i] = &concepts[i]
		}
		if _, err := engine.ConceptRepository().PutConcepts(ctx, put...); err != nil {
			return fmt.Errorf("failed to store concepts: %w", err)
		}
		slog.Info("imported concepts", "count", len(concepts))
	}

	if path := c.String("rules"); path != "" {
		rules, err := knowledge.LoadPatternRules(path, slog.Default())
		if err != nil {
			return err
		}
		put := make([]*core.PatternRule, len(rules))
		for i := range rules {
			put[i] = &rules[i]
		}
		if len(put) > 0 {
			if err := engine.RuleRepository().PutRules(ctx, put...); err != nil {
				return fmt.Errorf("failed to store rules: %w", err)
			}
			slog.Info("imported rules", "count", len(put))
		}
	}
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
