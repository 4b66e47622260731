// Package config loads the exporter configuration from environment
// variables. One process exports one (bank, card) pair; the cron schedule
// that triggers it lives outside this service.
package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Bank adapter names selectable via EXPORT_BANK_NAME.
const (
	BankMonobank   = "monobank"
	BankPrivatbank = "privatbank"
)

// Statement file formats selectable via EXPORT_FILE_FORMAT.
const (
	FileFormatCSV  = "csv"
	FileFormatXLSX = "xlsx"
)

// Delivery channels selectable via EXPORT_IMPORT_WAY.
const (
	ImportWayMail   = "mail"
	ImportWayWallet = "wallet_api"
	ImportWayNone   = "none"
)

type Config struct {
	BankName          string `env:"EXPORT_BANK_NAME,required"`
	CardNumber        string `env:"EXPORT_CARD_NUMBER,required"`
	MaxMonthsToExport int    `env:"EXPORT_MAX_MONTHS,default=2"`
	TimeZone          string `env:"EXPORT_TIME_ZONE,default=Europe/Kyiv"`
	FileFormat        string `env:"EXPORT_FILE_FORMAT,default=csv"`
	ImportWay         string `env:"EXPORT_IMPORT_WAY,default=mail"`

	Monobank   MonobankConfig   `env:",prefix=MONOBANK_"`
	Privatbank PrivatbankConfig `env:",prefix=PRIVATBANK_"`
	Storage    StorageConfig    `env:",prefix=STORAGE_"`
	Mail       MailConfig       `env:",prefix=MAIL_"`
	Wallet     WalletConfig     `env:",prefix=WALLET_"`
}

type MonobankConfig struct {
	APIURL      string `env:"API_URL,default=https://api.monobank.ua"`
	AccessToken string `env:"ACCESS_TOKEN"`
}

type PrivatbankConfig struct {
	APIURL           string `env:"API_URL,default=https://api.privatbank.ua/p24api"`
	MerchantID       string `env:"MERCHANT_ID"`
	MerchantPassword string `env:"MERCHANT_PASSWORD"`
}

type StorageConfig struct {
	// Credentials come from GOOGLE_APPLICATION_CREDENTIALS; inside a cloud
	// function environment they are applied automatically.
	BucketName string `env:"BUCKET_NAME,required"`
}

type MailConfig struct {
	From         string `env:"FROM"`
	To           string `env:"TO"`
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT,default=587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
}

type WalletConfig struct {
	ImportURL string `env:"IMPORT_URL"`
	UserID    string `env:"USER_ID"`
}

// ParseEnv reads the configuration from the process environment and
// validates it.
func ParseEnv(ctx context.Context) (Config, error) {
	cfg := Config{}
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Validate checks the cross-field constraints envconfig tags cannot express.
func (c Config) Validate() error {
	switch c.BankName {
	case BankMonobank:
		if c.Monobank.AccessToken == "" {
			return fmt.Errorf("MONOBANK_ACCESS_TOKEN is required for bank %q", c.BankName)
		}
	case BankPrivatbank:
		if c.Privatbank.MerchantID == "" || c.Privatbank.MerchantPassword == "" {
			return fmt.Errorf("MERCHANT_ID and MERCHANT_PASSWORD are required for bank %q", c.BankName)
		}
	default:
		return fmt.Errorf("unknown bank name %q", c.BankName)
	}

	if c.FileFormat != FileFormatCSV && c.FileFormat != FileFormatXLSX {
		return fmt.Errorf("unknown file format %q", c.FileFormat)
	}

	switch c.ImportWay {
	case ImportWayMail:
		if c.Mail.SMTPHost == "" {
			return fmt.Errorf("MAIL_SMTP_HOST is required for import way %q", c.ImportWay)
		}
	case ImportWayWallet:
		if c.Wallet.ImportURL == "" || c.Wallet.UserID == "" {
			return fmt.Errorf("WALLET_IMPORT_URL and WALLET_USER_ID are required for import way %q", c.ImportWay)
		}
	case ImportWayNone:
		// Storage-only run.
	default:
		return fmt.Errorf("unknown import way %q", c.ImportWay)
	}

	if c.MaxMonthsToExport <= 0 {
		return fmt.Errorf("EXPORT_MAX_MONTHS must be positive, got %d", c.MaxMonthsToExport)
	}

	if len(c.CardNumber) < 4 {
		return fmt.Errorf("EXPORT_CARD_NUMBER is too short")
	}

	return nil
}

// CardLastDigits returns the last four digits of the configured card number,
// used in checkpoint keys and statement captions.
func (c Config) CardLastDigits() string {
	return c.CardNumber[len(c.CardNumber)-4:]
}

// Caption is the stable "{bank}-{last4}" identifier for this exporter
// instance. It keys the checkpoint blob and prefixes stored statements.
func (c Config) Caption() string {
	return fmt.Sprintf("%s-%s", c.BankName, c.CardLastDigits())
}
