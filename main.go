package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"fashion-etl/config"
	"fashion-etl/scraper/fashion"
	"fashion-etl/services"
	"fashion-etl/storage"
	"fashion-etl/utils"
)

func main() {
	os.Exit(execute(os.Args[1:]))
}

// execute runs the root command and returns the process exit code, so the
// signal handler is released before the process exits.
func execute(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd()
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	cfg := config.Load()

	cmd := &cobra.Command{
		Use:           "fashion-etl",
		Short:         "Scrapes the Fashion Studio catalog, cleans it and loads it to CSV, Google Sheets and PostgreSQL.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cfg)
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfg.SeedURL, "seed", cfg.SeedURL, "first catalog page to crawl")
	f.StringVar(&cfg.Fetcher, "fetcher", cfg.Fetcher, `page fetcher: "http" or "browser"`)
	f.IntVar(&cfg.MaxPages, "max-pages", cfg.MaxPages, "stop after this many pages (0 = all)")
	f.StringVar(&cfg.StagingPath, "staging", cfg.StagingPath, `JSON-lines staging file for raw records ("" keeps them in memory)`)
	f.StringVar(&cfg.CSVOutputPath, "csv", cfg.CSVOutputPath, "CSV output path")
	f.StringVar(&cfg.DatabaseURL, "db", cfg.DatabaseURL, "database URL (defaults to the POSTGRES_* settings)")
	f.IntVar(&cfg.LoadConcurrency, "load-concurrency", cfg.LoadConcurrency, "number of sinks written in parallel")

	return cmd
}

func run(ctx context.Context, cfg *config.Config) error {
	logger := utils.NewLogger()
	logger.Info("=== Fashion Studio ETL starting ===")
	logger.Info("Config: seed=%s | fetcher=%s | max pages=%d | staging=%q",
		cfg.SeedURL, cfg.Fetcher, cfg.MaxPages, cfg.StagingPath)

	fetcher, closeFetcher, err := newFetcher(cfg, logger)
	if err != nil {
		return err
	}
	defer closeFetcher()

	crawler := fashion.NewCrawler(
		cfg.SeedURL,
		fetcher,
		fashion.NewExtractor(fashion.DefaultSelectors(), logger),
		fashion.CrawlOptions{MaxPages: cfg.MaxPages, PageDelay: cfg.PageDelay},
		logger,
	)

	sqlWriter, err := storage.NewSQLWriter(cfg.DSN(), cfg.DatabaseTable, cfg.MaxRetries, logger)
	if err != nil {
		return err
	}
	sinks := []storage.Sink{
		storage.NewCSVWriter(cfg.CSVOutputPath),
		storage.NewSheetsWriter(storage.SheetsConfig{
			CredentialsFile: cfg.SheetsCredentialsFile,
			SpreadsheetID:   cfg.SheetsSpreadsheetID,
			Range:           cfg.SheetsRange,
		}, logger),
		sqlWriter,
	}

	pipeline := services.NewPipeline(
		crawler,
		services.NewNormalizer(cfg.ExchangeRate),
		storage.NewLoader(sinks, cfg.LoadConcurrency, logger),
		services.NewSummaryService(os.Stdout),
		cfg.StagingPath,
		logger,
	)

	if _, err := pipeline.Run(ctx); err != nil {
		logger.Error("An error occurred during execution: %v", err)
		return err
	}
	return nil
}

func newFetcher(cfg *config.Config, logger *utils.Logger) (fashion.Fetcher, func(), error) {
	switch cfg.Fetcher {
	case "http", "":
		return fashion.NewHTTPFetcher(cfg.UserAgent, cfg.HTTPTimeout), func() {}, nil
	case "browser":
		b, err := fashion.NewBrowserFetcher(cfg.ChromeBin, cfg.UserAgent, cfg.HTTPTimeout, logger)
		if err != nil {
			return nil, nil, err
		}
		return b, func() { _ = b.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown fetcher %q", cfg.Fetcher)
}
