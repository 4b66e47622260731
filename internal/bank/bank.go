// Package bank defines the adapter capability every upstream bank client
// implements, and builds the configured concrete adapter.
package bank

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/dvloznov/statement-exporter/internal/bank/monobank"
	"github.com/dvloznov/statement-exporter/internal/bank/privatbank"
	"github.com/dvloznov/statement-exporter/internal/config"
	"github.com/dvloznov/statement-exporter/internal/domain"
)

// Client is the capability set an upstream bank adapter provides. Each
// adapter owns its wire format and normalization; GetTransactions returns
// canonical transactions for the inclusive [start, end] window.
type Client interface {
	BankName() string
	CardNumber() string
	GetTransactions(ctx context.Context, start, end time.Time) ([]domain.Transaction, error)
}

// Build constructs the adapter selected by cfg.BankName. Selection happens
// once, here; callers only ever see the Client interface.
func Build(cfg config.Config, location *time.Location, log zerolog.Logger) (Client, error) {
	switch cfg.BankName {
	case config.BankMonobank:
		return monobank.New(monobank.Options{
			BankName:    cfg.BankName,
			CardNumber:  cfg.CardNumber,
			BaseURL:     cfg.Monobank.APIURL,
			AccessToken: cfg.Monobank.AccessToken,
			Location:    location,
			Logger:      log,
		}), nil
	case config.BankPrivatbank:
		return privatbank.New(privatbank.Options{
			BankName:         cfg.BankName,
			CardNumber:       cfg.CardNumber,
			BaseURL:          cfg.Privatbank.APIURL,
			MerchantID:       cfg.Privatbank.MerchantID,
			MerchantPassword: cfg.Privatbank.MerchantPassword,
			Location:         location,
			Logger:           log,
		}), nil
	default:
		return nil, fmt.Errorf("unknown bank name %q", cfg.BankName)
	}
}
