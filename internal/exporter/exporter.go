// Package exporter runs one statement export: checkpoint -> period -> bank
// fetch -> statement file -> storage + delivery -> checkpoint advance.
package exporter

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dvloznov/statement-exporter/internal/bank"
	"github.com/dvloznov/statement-exporter/internal/domain"
	"github.com/dvloznov/statement-exporter/internal/period"
	"github.com/dvloznov/statement-exporter/internal/statement"
)

// CheckpointStore is the checkpoint persistence the exporter needs.
type CheckpointStore interface {
	LastExportTime(ctx context.Context, caption string) (int64, error)
	SetLastExportTime(ctx context.Context, caption string, millis int64) error
}

// FileStore persists generated statement files.
type FileStore interface {
	PutObject(ctx context.Context, name string, data []byte) error
}

// Channel delivers a generated statement file.
type Channel interface {
	Deliver(ctx context.Context, fileName string, content []byte) error
}

// Options wires an Exporter together.
type Options struct {
	Bank        bank.Client
	Periods     *period.Calculator
	Checkpoints CheckpointStore
	Files       FileStore
	Delivery    Channel
	FileFormat  string
	DryRun      bool
	Logger      zerolog.Logger
}

// Exporter orchestrates a single export run. It holds no cross-run state;
// the only state that survives a run is the persisted checkpoint.
type Exporter struct {
	bank        bank.Client
	periods     *period.Calculator
	checkpoints CheckpointStore
	files       FileStore
	delivery    Channel
	fileFormat  string
	dryRun      bool
	log         zerolog.Logger
}

// New creates an Exporter.
func New(opts Options) *Exporter {
	return &Exporter{
		bank:        opts.Bank,
		periods:     opts.Periods,
		checkpoints: opts.Checkpoints,
		files:       opts.Files,
		delivery:    opts.Delivery,
		fileFormat:  opts.FileFormat,
		dryRun:      opts.DryRun,
		log:         opts.Logger,
	}
}

// Run executes one export. A period.ErrTooSoon failure aborts before any
// state is written, so the next scheduled invocation retries the same
// computation from the same checkpoint. An empty period still advances the
// checkpoint: a quiet month must not be re-scanned forever.
func (e *Exporter) Run(ctx context.Context) error {
	caption := e.buildCaption()

	// 1. Read the checkpoint; absence means a first-ever run.
	lastExportTime, err := e.checkpoints.LastExportTime(ctx, caption)
	if err != nil {
		return fmt.Errorf("read checkpoint: %w", err)
	}

	// 2. Compute the export period.
	p, err := e.periods.BuildExportPeriod(lastExportTime)
	if err != nil {
		return fmt.Errorf("build export period: %w", err)
	}

	e.log.Info().
		Str("caption", caption).
		Str("start_date", p.StartDate().String()).
		Str("end_date", p.EndDate().String()).
		Msg("Get transactions for export period")

	// 3. Fetch and normalize upstream transactions.
	transactions, err := e.bank.GetTransactions(ctx, p.Start, p.End)
	if err != nil {
		return fmt.Errorf("get transactions: %w", err)
	}

	// 4. Generate, store and deliver the statement file.
	if len(transactions) > 0 {
		if err := e.exportStatement(ctx, caption, p, transactions); err != nil {
			return err
		}
	} else {
		e.log.Info().Str("caption", caption).Msg("No transactions found for specified period")
	}

	if e.dryRun {
		e.log.Info().Str("caption", caption).Msg("Dry run: checkpoint not advanced")
		return nil
	}

	// 5. Advance the checkpoint to the period end, even for an empty period.
	if err := e.checkpoints.SetLastExportTime(ctx, caption, p.End.UnixMilli()); err != nil {
		return fmt.Errorf("write checkpoint: %w", err)
	}

	return nil
}

func (e *Exporter) exportStatement(ctx context.Context, caption string, p period.Period, transactions []domain.Transaction) error {
	fileName := statement.FileName(p, e.fileFormat)

	e.log.Info().
		Str("caption", caption).
		Str("file_name", fileName).
		Int("transactions", len(transactions)).
		Msg("Generate statement file")

	content, err := statement.Generate(transactions, e.fileFormat)
	if err != nil {
		return fmt.Errorf("generate statement file: %w", err)
	}

	if e.dryRun {
		e.log.Info().Str("file_name", fileName).Msg("Dry run: statement not stored or delivered")
		return nil
	}

	e.log.Info().Str("file_name", fileName).Msg("Save statement file to cloud storage")
	if err := e.files.PutObject(ctx, caption+"/"+fileName, content); err != nil {
		return fmt.Errorf("save statement file: %w", err)
	}

	e.log.Info().Str("file_name", fileName).Msg("Deliver statement file")
	if err := e.delivery.Deliver(ctx, fileName, content); err != nil {
		return fmt.Errorf("deliver statement file: %w", err)
	}

	return nil
}

// buildCaption derives the stable "{bank}-{last4}" identifier for this
// exporter instance.
func (e *Exporter) buildCaption() string {
	cardNumber := e.bank.CardNumber()
	lastDigits := cardNumber[len(cardNumber)-4:]

	return fmt.Sprintf("%s-%s", e.bank.BankName(), lastDigits)
}
