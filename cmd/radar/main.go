// Copyright 2025 LicitIA
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
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/licitia/radar"
	"github.com/licitia/radar/ai"
	"github.com/licitia/radar/core"
	"github.com/licitia/radar/ingestion"
	"github.com/licitia/radar/matching"
	"github.com/licitia/radar/reindex"
	"github.com/licitia/radar/secop"
	"github.com/urfave/cli/v2"
)

// SECOP II process dataset on datos.gov.co.
const defaultDatasetID = "p6dx-8zbt"

func main() {
	app := &cli.App{
		Name:  "radar",
		Usage: "Public tender radar for Colombian road supervision contracts",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB database directory",
				Value:   "./radar_db",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "fetch",
				Usage:  "Fetch new tenders from SECOP and store them",
				Action: fetchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "dataset",
						Usage: "Socrata dataset id to fetch from",
						Value: defaultDatasetID,
					},
					&cli.StringFlag{
						Name:    "app-token",
						Usage:   "Socrata application token",
						EnvVars: []string{"SOCRATA_APP_TOKEN"},
					},
					&cli.DurationFlag{
						Name:  "lookback",
						Usage: "How far back the first fetch reaches when no checkpoint exists",
						Value: ingestion.DefaultLookback,
					},
					&cli.StringFlag{
						Name:  "unspsc",
						Usage: "UNSPSC category code pre-filter",
						Value: ingestion.CivilEngineeringUNSPSC,
					},
				},
			},
			{
				Name:      "import",
				Usage:     "Import company experiences from a CSV file",
				Action:    importCommand,
				ArgsUsage: "<file.csv>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "company",
						Usage: "Company name used for rows without one",
					},
				},
			},
			{
				Name:   "match",
				Usage:  "Rank recent tenders against a company's experiences",
				Action: matchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "company",
						Usage:    "Company whose experiences to match against",
						Required: true,
					},
					&cli.Float64Flag{
						Name:  "min-score",
						Usage: "Relevance threshold",
						Value: matching.DefaultMinScore,
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of ranked tenders to print",
						Value: 20,
					},
					&cli.IntFlag{
						Name:  "candidates",
						Usage: "Maximum number of recent tenders to consider",
						Value: matching.DefaultCandidateCap,
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
				},
			},
			{
				Name:   "reindex",
				Usage:  "Rebuild cached keyword signatures for all experiences",
				Action: reindexCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of experiences to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N experiences",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed storage writes",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openRadar(c *cli.Context, opts ...radar.RadarOption) (*radar.Radar, error) {
	r, err := radar.Open(c.String("db"), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return r, nil
}

func fetchCommand(c *cli.Context) error {
	ctx := context.Background()

	r, err := openRadar(c)
	if err != nil {
		return err
	}
	defer r.Close()

	clientOpts := []secop.Option{}
	if token := c.String("app-token"); token != "" {
		clientOpts = append(clientOpts, secop.WithAppToken(token))
	}
	client, err := secop.NewClient(c.String("dataset"), clientOpts...)
	if err != nil {
		return fmt.Errorf("failed to create SECOP client: %w", err)
	}

	pipeline, err := r.NewIngestionPipeline(client,
		ingestion.WithLookback(c.Duration("lookback")),
		ingestion.WithUNSPSCCode(c.String("unspsc")),
	)
	if err != nil {
		return fmt.Errorf("failed to create ingestion pipeline: %w", err)
	}
	defer pipeline.Release()

	stats, err := pipeline.Run(ctx)
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Fetched %d tenders (%d new, %d updated)\n",
		stats.Fetched, stats.Inserted, stats.Updated)
	return nil
}

func importCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one CSV file argument")
	}
	path := c.Args().First()

	r, err := openRadar(c)
	if err != nil {
		return err
	}
	defer r.Close()

	importer, err := r.NewImporter()
	if err != nil {
		return fmt.Errorf("failed to create importer: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	result, err := importer.ImportCSV(context.Background(), f, c.String("company"))
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Imported %d experiences (%d updated)\n", result.Imported, result.Updated)
	for _, rowErr := range result.Errors {
		fmt.Fprintf(os.Stderr, "  skipped: %s\n", rowErr)
	}
	return nil
}

func matchCommand(c *cli.Context) error {
	ctx := context.Background()

	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	r, err := openRadar(c, radar.WithAIConfig(aiConfig))
	if err != nil {
		return err
	}
	defer r.Close()

	experiences, err := r.ExperienceRepository().GetExperiencesByCompany(ctx, c.String("company"))
	if err != nil {
		return fmt.Errorf("failed to load experiences: %w", err)
	}
	if len(experiences) == 0 {
		return fmt.Errorf("no experiences stored for company %q", c.String("company"))
	}

	candidateCap := c.Int("candidates")
	tenders, err := r.TenderRepository().GetRecentTenders(ctx, candidateCap)
	if err != nil {
		return fmt.Errorf("failed to load recent tenders: %w", err)
	}

	matcher, err := r.NewMatcher(ctx)
	if err != nil {
		return fmt.Errorf("failed to create matcher: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Weight profile: %s\n\n", matcher.Profile())

	ranker, err := r.NewRanker(matcher)
	if err != nil {
		return fmt.Errorf("failed to create ranker: %w", err)
	}

	ranked, total, err := ranker.MatchBatch(ctx, tenders, experiences, c.Float64("min-score"), candidateCap, c.Int("limit"), 0)
	if err != nil {
		return fmt.Errorf("matching failed: %w", err)
	}

	if total == 0 {
		fmt.Println("No relevant tenders found.")
		return nil
	}

	for i, item := range ranked {
		printRankedTender(i+1, item)
	}
	fmt.Fprintf(os.Stderr, "\n%d relevant tenders (showing %d)\n", total, len(ranked))
	return nil
}

func printRankedTender(position int, item core.RankedTender) {
	pub := "n/a"
	if item.Tender.PublicationDate != nil {
		pub = item.Tender.PublicationDate.Format("2006-01-02")
	}
	fmt.Printf("%2d. [%.3f] %s (%s)\n", position, item.Outcome.BestScore, item.Tender.EntityName, pub)
	object := item.Tender.ObjectText
	if runes := []rune(object); len(runes) > 120 {
		object = string(runes[:120]) + "..."
	}
	fmt.Printf("    %s\n", object)
	if item.Tender.ProcessURL != "" {
		fmt.Printf("    %s\n", item.Tender.ProcessURL)
	}
}

func reindexCommand(c *cli.Context) error {
	r, err := openRadar(c)
	if err != nil {
		return err
	}
	defer r.Close()

	config := &reindex.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}
	if config.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if config.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if config.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	reindexer := r.NewReindexer(config, os.Stderr)
	if err := reindexer.Run(context.Background()); err != nil {
		return fmt.Errorf("reindex failed: %w", err)
	}
	return nil
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
