// Package monobank fetches statements from the monobank personal REST API
// and normalizes them into canonical transactions.
package monobank

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dvloznov/statement-exporter/internal/domain"
)

// ErrAccountNotFound reports that no account in the client info response has
// a masked card pattern matching the configured card number. This is a
// configuration failure, not a transient one.
var ErrAccountNotFound = errors.New("no account matches the configured card number")

const defaultTimeout = 10 * time.Second

const descriptionSeparator = " | "

// Options configures a monobank Client.
type Options struct {
	BankName    string
	CardNumber  string
	BaseURL     string
	AccessToken string
	Location    *time.Location
	Timeout     time.Duration
	Logger      zerolog.Logger
}

// Client is the monobank statement adapter. The resolved account id is
// cached on the instance after the first lookup and must not outlive the
// process.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
	bankName    string
	cardNumber  string
	location    *time.Location
	log         zerolog.Logger

	accountID string // set at most once by resolveAccountID
}

// New creates a monobank Client.
func New(opts Options) *Client {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		baseURL:     strings.TrimSuffix(opts.BaseURL, "/"),
		accessToken: opts.AccessToken,
		bankName:    opts.BankName,
		cardNumber:  opts.CardNumber,
		location:    opts.Location,
		log:         opts.Logger,
	}
}

// BankName returns the configured bank name.
func (c *Client) BankName() string {
	return c.bankName
}

// CardNumber returns the configured full card number.
func (c *Client) CardNumber() string {
	return c.cardNumber
}

// statementItem is one raw transaction from /personal/statement.
type statementItem struct {
	ID          string `json:"id"`
	Time        int64  `json:"time"` // epoch seconds
	Description string `json:"description"`
	MCC         int    `json:"mcc"`
	Amount      int64  `json:"amount"`  // already in minor units
	Balance     int64  `json:"balance"` // already in minor units
	Comment     string `json:"comment"`
}

// clientInfo is the relevant subset of /personal/client-info.
type clientInfo struct {
	Accounts []struct {
		ID        string   `json:"id"`
		MaskedPan []string `json:"maskedPan"`
	} `json:"accounts"`
}

// GetTransactions fetches the statement for the inclusive [start, end]
// window. The upstream API already bounds results by the requested range and
// is trusted to do so.
func (c *Client) GetTransactions(ctx context.Context, start, end time.Time) ([]domain.Transaction, error) {
	accountID, err := c.resolveAccountID(ctx)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("/personal/statement/%s/%d/%d", accountID, start.UnixMilli(), end.UnixMilli())

	var items []statementItem
	if err := c.getJSON(ctx, endpoint, &items); err != nil {
		return nil, err
	}

	transactions := make([]domain.Transaction, 0, len(items))
	for _, item := range items {
		transactions = append(transactions, c.formatTransaction(item))
	}

	return transactions, nil
}

func (c *Client) formatTransaction(item statementItem) domain.Transaction {
	return domain.Transaction{
		ID:          item.ID,
		Amount:      item.Amount,
		Balance:     item.Balance,
		Datetime:    time.Unix(item.Time, 0).In(c.location),
		Description: c.formatDescription(item),
	}
}

// formatDescription appends the user comment and the merchant category text
// to the upstream description, separated by " | ".
func (c *Client) formatDescription(item statementItem) string {
	parts := []string{item.Description}

	if item.Comment != "" {
		parts = append(parts, item.Comment)
	}

	if item.MCC != 0 {
		if text, ok := merchantCategoryText(item.MCC); ok {
			parts = append(parts, text)
		}
	}

	return strings.Join(parts, descriptionSeparator)
}

// resolveAccountID finds the account whose masked card pattern matches the
// configured card number. The first match wins and is cached for the
// lifetime of the client.
func (c *Client) resolveAccountID(ctx context.Context) (string, error) {
	if c.accountID != "" {
		return c.accountID, nil
	}

	var info clientInfo
	if err := c.getJSON(ctx, "/personal/client-info", &info); err != nil {
		return "", err
	}

	for _, account := range info.Accounts {
		if len(account.MaskedPan) == 0 {
			continue
		}
		if MatchCardMask(c.cardNumber, account.MaskedPan[0]) {
			c.accountID = account.ID
			return c.accountID, nil
		}
	}

	c.log.Error().Str("bank", c.bankName).Msg("Not found account for provided card number")

	return "", ErrAccountNotFound
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", endpoint, err)
	}
	req.Header.Set("X-Token", c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response %s: %w", endpoint, err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request %s: unexpected status %d: %s", endpoint, resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response %s: %w", endpoint, err)
	}

	return nil
}
