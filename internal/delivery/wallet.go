package delivery

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dvloznov/statement-exporter/internal/config"
)

const walletRequestTimeout = 10 * time.Second

// WalletChannel pushes the statement file to a third-party wallet import
// endpoint.
type WalletChannel struct {
	httpClient *http.Client
	importURL  string
	userID     string
}

// NewWalletChannel creates a WalletChannel.
func NewWalletChannel(cfg config.WalletConfig) *WalletChannel {
	return &WalletChannel{
		httpClient: &http.Client{Timeout: walletRequestTimeout},
		importURL:  cfg.ImportURL,
		userID:     cfg.UserID,
	}
}

// Verify is a no-op; the import endpoint has no health check.
func (c *WalletChannel) Verify() error { return nil }

// Deliver POSTs the raw statement bytes with the user and file name carried
// in headers.
func (c *WalletChannel) Deliver(ctx context.Context, fileName string, content []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.importURL, bytes.NewReader(content))
	if err != nil {
		return fmt.Errorf("build wallet import request: %w", err)
	}
	req.Header.Set("x-userid", c.userID)
	req.Header.Set("x-filename", fileName)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("wallet import request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("wallet import failed with status %d: %s", resp.StatusCode, body)
	}

	return nil
}
