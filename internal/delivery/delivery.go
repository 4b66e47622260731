// Package delivery sends a generated statement file to its configured
// destination. Exactly one channel is selected at construction; a run never
// delivers through more than one.
package delivery

import (
	"context"
	"fmt"

	"github.com/dvloznov/statement-exporter/internal/config"
)

// Channel delivers one statement file per run.
type Channel interface {
	// Verify checks the channel is usable before the run does any work.
	Verify() error

	// Deliver sends the statement file.
	Deliver(ctx context.Context, fileName string, content []byte) error
}

// Build constructs the channel selected by cfg.ImportWay.
func Build(cfg config.Config) (Channel, error) {
	switch cfg.ImportWay {
	case config.ImportWayMail:
		return NewMailChannel(cfg.Mail, cfg.Caption()), nil
	case config.ImportWayWallet:
		return NewWalletChannel(cfg.Wallet), nil
	case config.ImportWayNone:
		return NopChannel{}, nil
	default:
		return nil, fmt.Errorf("unknown import way %q", cfg.ImportWay)
	}
}

// NopChannel is the storage-only channel: the statement stays in cloud
// storage and nothing is sent anywhere.
type NopChannel struct{}

func (NopChannel) Verify() error { return nil }

func (NopChannel) Deliver(context.Context, string, []byte) error { return nil }
