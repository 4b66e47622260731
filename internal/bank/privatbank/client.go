// Package privatbank fetches statements from the legacy privatbank
// XML-over-HTTP API and normalizes them into canonical transactions.
package privatbank

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/rs/zerolog"

	"github.com/dvloznov/statement-exporter/internal/domain"
	"github.com/dvloznov/statement-exporter/internal/money"
)

// ErrUpstream reports a response the API marked as failed, or one missing
// the expected response envelope. The raw body is included for diagnostics.
var ErrUpstream = errors.New("privatbank statement request failed")

const defaultTimeout = 10 * time.Second

const (
	requestDateFormat = "02.01.2006"
	rowDatetimeFormat = "2006-01-02 15:04:05"
)

// Options configures a privatbank Client.
type Options struct {
	BankName         string
	CardNumber       string
	BaseURL          string
	MerchantID       string
	MerchantPassword string
	Location         *time.Location
	Timeout          time.Duration
	Logger           zerolog.Logger
}

// Client is the privatbank statement adapter.
type Client struct {
	httpClient       *http.Client
	baseURL          string
	bankName         string
	cardNumber       string
	merchantID       string
	merchantPassword string
	location         *time.Location
	log              zerolog.Logger
}

// New creates a privatbank Client.
func New(opts Options) *Client {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &Client{
		httpClient:       &http.Client{Timeout: timeout},
		baseURL:          strings.TrimSuffix(opts.BaseURL, "/"),
		bankName:         opts.BankName,
		cardNumber:       opts.CardNumber,
		merchantID:       opts.MerchantID,
		merchantPassword: opts.MerchantPassword,
		location:         opts.Location,
		log:              opts.Logger,
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

// response is the XML envelope of a statement reply. A single statement row
// decodes into a one-element slice and a missing statements node into an
// empty one, so the upstream scalar-vs-array inconsistency never reaches
// callers.
type response struct {
	XMLName xml.Name     `xml:"response"`
	Data    responseData `xml:"data"`
}

type responseData struct {
	Error *responseError `xml:"error"`
	Info  responseInfo   `xml:"info"`
}

type responseError struct {
	Message string `xml:"message,attr"`
}

type responseInfo struct {
	Statements struct {
		Rows []statementRow `xml:"statement"`
	} `xml:"statements"`
}

// statementRow is one raw statement entry; all values arrive as attributes.
type statementRow struct {
	Appcode     string `xml:"appcode,attr"`
	Description string `xml:"description,attr"`
	Trandate    string `xml:"trandate,attr"` // yyyy-mm-dd
	Trantime    string `xml:"trantime,attr"` // HH:MM:SS
	Cardamount  string `xml:"cardamount,attr"`
	Rest        string `xml:"rest,attr"`
	Terminal    string `xml:"terminal,attr"`
}

// GetTransactions fetches the statement for the inclusive [start, end]
// window. Upstream occasionally returns rows outside the requested range, so
// rows are re-filtered by calendar date before normalization.
func (c *Client) GetTransactions(ctx context.Context, start, end time.Time) ([]domain.Transaction, error) {
	dataXML := c.buildDataXML(start, end)
	requestXML := c.buildRequestXML(dataXML)

	body, err := c.post(ctx, "/rest_fiz", requestXML)
	if err != nil {
		return nil, err
	}

	var resp response
	if err := xml.Unmarshal(body, &resp); err != nil {
		c.log.Error().Str("response", string(body)).Msg("Invalid privatbank statement response")
		return nil, fmt.Errorf("%w: %v: %s", ErrUpstream, err, body)
	}

	if resp.Data.Error != nil {
		c.log.Error().Str("response", string(body)).Msg("Invalid privatbank statement response")
		return nil, fmt.Errorf("%w: %s", ErrUpstream, resp.Data.Error.Message)
	}

	rows, err := c.filterRows(resp.Data.Info.Statements.Rows, start, end)
	if err != nil {
		return nil, err
	}

	transactions := make([]domain.Transaction, 0, len(rows))
	for _, row := range rows {
		transaction, err := c.formatTransaction(row)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, transaction)
	}

	return transactions, nil
}

// filterRows drops rows whose transaction date falls outside the requested
// calendar date range.
func (c *Client) filterRows(rows []statementRow, start, end time.Time) ([]statementRow, error) {
	startDate := civil.DateOf(start.In(c.location))
	endDate := civil.DateOf(end.In(c.location))

	filtered := make([]statementRow, 0, len(rows))
	for _, row := range rows {
		date, err := civil.ParseDate(row.Trandate)
		if err != nil {
			return nil, fmt.Errorf("%w: bad trandate %q: %v", ErrUpstream, row.Trandate, err)
		}
		if date.Before(startDate) || date.After(endDate) {
			continue
		}
		filtered = append(filtered, row)
	}

	return filtered, nil
}

func (c *Client) formatTransaction(row statementRow) (domain.Transaction, error) {
	amount, err := parseAmount(row.Cardamount)
	if err != nil {
		return domain.Transaction{}, err
	}

	balance, err := parseAmount(row.Rest)
	if err != nil {
		return domain.Transaction{}, err
	}

	datetime, err := time.ParseInLocation(rowDatetimeFormat, row.Trandate+" "+row.Trantime, c.location)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("%w: bad datetime %q %q: %v", ErrUpstream, row.Trandate, row.Trantime, err)
	}

	return domain.Transaction{
		ID:          row.Appcode,
		Amount:      amount,
		Balance:     balance,
		Datetime:    datetime,
		Description: row.Description,
	}, nil
}

// parseAmount converts an upstream amount string into cents. Upstream
// appends a currency code ("-123.45 UAH"); only the numeric field counts.
func parseAmount(amount string) (int64, error) {
	fields := strings.Fields(amount)
	if len(fields) == 0 {
		return 0, fmt.Errorf("%w: %q", money.ErrInvalidAmount, amount)
	}

	return money.ToCents(fields[0])
}

// buildDataXML serializes the data subtree to its canonical markup form: no
// XML declaration, no whitespace. The signature is computed over exactly
// this string, so the shape must stay byte-stable.
func (c *Client) buildDataXML(start, end time.Time) string {
	var b strings.Builder

	b.WriteString("<oper>cmt</oper>")
	b.WriteString("<wait>0</wait>")
	b.WriteString("<test>0</test>")
	b.WriteString("<payment>")
	writeProp(&b, "sd", start.In(c.location).Format(requestDateFormat))
	writeProp(&b, "ed", end.In(c.location).Format(requestDateFormat))
	writeProp(&b, "card", c.cardNumber)
	b.WriteString("</payment>")

	return b.String()
}

func (c *Client) buildRequestXML(dataXML string) []byte {
	var b bytes.Buffer

	b.WriteString(xml.Header)
	b.WriteString(`<request version="1.0">`)
	b.WriteString("<merchant>")
	b.WriteString("<id>" + xmlEscape(c.merchantID) + "</id>")
	b.WriteString("<signature>" + sign(dataXML, c.merchantPassword) + "</signature>")
	b.WriteString("</merchant>")
	b.WriteString("<data>" + dataXML + "</data>")
	b.WriteString("</request>")

	return b.Bytes()
}

func writeProp(b *strings.Builder, name, value string) {
	b.WriteString(`<prop name="` + xmlEscape(name) + `" value="` + xmlEscape(value) + `"/>`)
}

func xmlEscape(s string) string {
	var b strings.Builder
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		return s
	}
	return b.String()
}

func (c *Client) post(ctx context.Context, endpoint string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response %s: %w", endpoint, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d: %s", ErrUpstream, resp.StatusCode, responseBody)
	}

	return responseBody, nil
}
