package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/dvloznov/statement-exporter/internal/bank"
	"github.com/dvloznov/statement-exporter/internal/config"
	"github.com/dvloznov/statement-exporter/internal/delivery"
	"github.com/dvloznov/statement-exporter/internal/exporter"
	"github.com/dvloznov/statement-exporter/internal/logger"
	"github.com/dvloznov/statement-exporter/internal/period"
	"github.com/dvloznov/statement-exporter/internal/storage"
)

const runTimeout = 5 * time.Minute

func main() {
	os.Exit(run())
}

func run() int {
	// Initialize structured logger; every log line carries the run id.
	log := logger.New().With().Str("run_id", uuid.NewString()).Logger()

	// Parse CLI flags; they override the environment where set.
	bankName := flag.String("bank", "", "Bank adapter to use: monobank or privatbank (overrides EXPORT_BANK_NAME)")
	fileFormat := flag.String("format", "", "Statement file format: csv or xlsx (overrides EXPORT_FILE_FORMAT)")
	dryRun := flag.Bool("dry-run", false, "Fetch and generate but do not store, deliver or advance the checkpoint")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	cfg, err := loadConfig(ctx, *bankName, *fileFormat)
	if err != nil {
		log.Error().Err(err).Msg("Invalid configuration")
		return 1
	}

	location, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		log.Error().Err(err).Str("time_zone", cfg.TimeZone).Msg("Invalid time zone")
		return 1
	}

	bankClient, err := bank.Build(cfg, location, log)
	if err != nil {
		log.Error().Err(err).Msg("Failed to build bank client")
		return 1
	}

	store, err := storage.NewGCSStore(ctx, cfg.Storage.BucketName)
	if err != nil {
		log.Error().Err(err).Str("bucket", cfg.Storage.BucketName).Msg("Failed to create storage client")
		return 1
	}
	defer store.Close()

	channel, err := delivery.Build(cfg)
	if err != nil {
		log.Error().Err(err).Msg("Failed to build delivery channel")
		return 1
	}

	// Surface delivery problems before touching any bank API.
	if err := channel.Verify(); err != nil {
		log.Error().Err(err).Str("import_way", cfg.ImportWay).Msg("Delivery channel verification failed")
		return 1
	}

	exp := exporter.New(exporter.Options{
		Bank: bankClient,
		Periods: &period.Calculator{
			Location:  location,
			MaxMonths: cfg.MaxMonthsToExport,
		},
		Checkpoints: storage.NewCheckpointStore(store),
		Files:       store,
		Delivery:    channel,
		FileFormat:  cfg.FileFormat,
		DryRun:      *dryRun,
		Logger:      log,
	})

	log.Info().
		Str("bank", cfg.BankName).
		Str("file_format", cfg.FileFormat).
		Str("import_way", cfg.ImportWay).
		Bool("dry_run", *dryRun).
		Msg("Starting statement export")

	if err := exp.Run(ctx); err != nil {
		// Not enough time has passed since the last export; the next cron
		// invocation will retry from the same checkpoint.
		if errors.Is(err, period.ErrTooSoon) {
			log.Info().Err(err).Msg("Try later: export period is not ready yet")
			return 0
		}

		log.Error().Err(err).Str("bank", cfg.BankName).Msg("Export failed")
		return 1
	}

	log.Info().Msg("Export completed")
	return 0
}

func loadConfig(ctx context.Context, bankName, fileFormat string) (config.Config, error) {
	if bankName != "" {
		os.Setenv("EXPORT_BANK_NAME", bankName)
	}
	if fileFormat != "" {
		os.Setenv("EXPORT_FILE_FORMAT", fileFormat)
	}

	return config.ParseEnv(ctx)
}
