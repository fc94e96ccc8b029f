package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/jcpvanhooren/pricesync/internal/catalog"
	"github.com/jcpvanhooren/pricesync/internal/config"
	"github.com/jcpvanhooren/pricesync/internal/database"
	"github.com/jcpvanhooren/pricesync/internal/pipeline"
	"github.com/jcpvanhooren/pricesync/internal/quote"
	"github.com/jcpvanhooren/pricesync/internal/sink"
	"github.com/jcpvanhooren/pricesync/internal/version"
	"github.com/jcpvanhooren/pricesync/internal/window"
)

func main() {
	configPath := flag.String("config", "configs/pricesync.yaml", "path to config file")
	flag.Parse()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("starting pricesync",
		"version", version.String(),
		"config", *configPath,
	)

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		"database", cfg.Database.Name,
		"currency", cfg.Book.Currency,
		"period", cfg.Fetch.Period,
		"to_db", cfg.Sinks.ToDB,
		"to_csv", cfg.Sinks.ToCSV,
	)

	// The run is not cancellable by design: partial completion after an
	// external kill leaves already-written instruments written.
	ctx := context.Background()

	start, err := cfg.Fetch.Start()
	if err != nil {
		logger.Error("invalid start date", "error", err)
		os.Exit(1)
	}
	end, err := cfg.Fetch.End()
	if err != nil {
		logger.Error("invalid end date", "error", err)
		os.Exit(1)
	}

	// Resolve the CSV sink's participation before touching any data. An
	// existing file is appended to, replaced, or left alone per config;
	// declining to overwrite only drops this sink, never the run.
	toCSV := cfg.Sinks.ToCSV
	csvWriter := sink.NewCSVWriter(cfg.Sinks.CSVPath, logger)
	if toCSV && csvWriter.Exists() {
		switch cfg.Sinks.CSVOnExisting {
		case config.CSVOverwrite:
			if _, err := csvWriter.Remove(); err != nil {
				logger.Error("overwrite declined by filesystem, csv sink disabled", "error", err)
				toCSV = false
			}
		case config.CSVSkip:
			logger.Info("existing file kept, csv sink disabled", "path", csvWriter.Path())
			toCSV = false
		case config.CSVAppend:
			logger.Info("appending to existing file", "path", csvWriter.Path())
		}
	}

	// Connect to the catalog database
	logger.Info("connecting to database",
		"host", cfg.Database.Host,
		"port", cfg.Database.Port,
		"database", cfg.Database.Name,
	)

	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	logger.Info("database connected")

	// Load the instrument catalog; a partial catalog is never acceptable.
	reader := catalog.NewReader(pool, cfg.Book.Currency, logger)
	instruments, err := reader.Instruments(ctx)
	if err != nil {
		logger.Error("failed to load catalog", "error", err)
		os.Exit(1)
	}
	if len(instruments) == 0 {
		logger.Info("no instruments to sync")
		return
	}
	logger.Info("catalog loaded", "instruments", len(instruments))

	// Create quote source client
	source := quote.NewClient(
		cfg.Quote.BaseURL,
		quote.WithLogger(logger),
		quote.WithTimeout(cfg.Quote.Timeout),
	)

	p := pipeline.New(
		pipeline.Config{
			BaseCurrency: cfg.Book.Currency,
			Window: window.Request{
				Period: cfg.Fetch.Period,
				Start:  start,
				End:    end,
			},
			ToTable: cfg.Sinks.ToDB,
			ToFile:  toCSV,
		},
		source,
		sink.NewTableWriter(pool, logger),
		csvWriter,
		logger,
	)

	summary := p.Run(ctx, instruments)

	logger.Info("run complete",
		"instruments", summary.Instruments,
		"fetched", summary.Fetched,
		"skipped", summary.Skipped,
		"records", summary.Records,
		"fetch_errors", summary.FetchErrors,
		"table_writes", summary.TableWrites,
		"table_errors", summary.TableErrors,
		"file_writes", summary.FileWrites,
		"file_errors", summary.FileErrors,
	)
}
