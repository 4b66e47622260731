package monobank

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

const testCardNumber = "4000123456789010"

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := New(Options{
		BankName:    "monobank",
		CardNumber:  testCardNumber,
		BaseURL:     server.URL,
		AccessToken: "test-token",
		Location:    time.UTC,
		Logger:      zerolog.Nop(),
	})

	return client, server
}

const clientInfoJSON = `{
	"accounts": [
		{"id": "acc-other", "maskedPan": ["510510******5100"]},
		{"id": "acc-match", "maskedPan": ["400012******9010"]}
	]
}`

func TestGetTransactions(t *testing.T) {
	var statementRequests int

	mux := http.NewServeMux()
	mux.HandleFunc("/personal/client-info", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Token"); got != "test-token" {
			t.Errorf("X-Token = %q, want test-token", got)
		}
		w.Write([]byte(clientInfoJSON))
	})
	mux.HandleFunc("/personal/statement/acc-match/", func(w http.ResponseWriter, r *http.Request) {
		statementRequests++
		w.Write([]byte(`[
			{"id": "tx-1", "time": 1704103200, "description": "Coffee", "mcc": 5812, "amount": -4500, "balance": 995500, "comment": "with Alex"},
			{"id": "tx-2", "time": 1704110400, "description": "Salary", "mcc": 0, "amount": 1000000, "balance": 1995500}
		]`))
	})

	client, _ := newTestClient(t, mux)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 23, 59, 59, int(999*time.Millisecond), time.UTC)

	transactions, err := client.GetTransactions(t.Context(), start, end)
	if err != nil {
		t.Fatalf("GetTransactions failed: %v", err)
	}

	if len(transactions) != 2 {
		t.Fatalf("got %d transactions, want 2", len(transactions))
	}

	first := transactions[0]
	if first.ID != "tx-1" {
		t.Errorf("ID = %q, want tx-1", first.ID)
	}
	if first.Amount != -4500 {
		t.Errorf("Amount = %d, want -4500", first.Amount)
	}
	if first.Balance != 995500 {
		t.Errorf("Balance = %d, want 995500", first.Balance)
	}
	if want := time.Unix(1704103200, 0).In(time.UTC); !first.Datetime.Equal(want) {
		t.Errorf("Datetime = %s, want %s", first.Datetime, want)
	}
	if want := "Coffee | with Alex | Eating Places and Restaurants"; first.Description != want {
		t.Errorf("Description = %q, want %q", first.Description, want)
	}

	// No comment and a zero MCC: the description passes through unchanged.
	if want := "Salary"; transactions[1].Description != want {
		t.Errorf("Description = %q, want %q", transactions[1].Description, want)
	}

	if statementRequests != 1 {
		t.Errorf("statement endpoint hit %d times, want 1", statementRequests)
	}
}

func TestGetTransactions_UnknownMCCNotAppended(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/personal/client-info", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(clientInfoJSON))
	})
	mux.HandleFunc("/personal/statement/acc-match/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": "tx-1", "time": 1704103200, "description": "Mystery", "mcc": 1, "amount": -100, "balance": 0}]`))
	})

	client, _ := newTestClient(t, mux)

	transactions, err := client.GetTransactions(t.Context(), time.Now().Add(-time.Hour), time.Now())
	if err != nil {
		t.Fatalf("GetTransactions failed: %v", err)
	}
	if got, want := transactions[0].Description, "Mystery"; got != want {
		t.Errorf("Description = %q, want %q", got, want)
	}
}

func TestGetTransactions_AccountNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/personal/client-info", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"accounts": [{"id": "acc-1", "maskedPan": ["510510******5100"]}]}`))
	})

	client, _ := newTestClient(t, mux)

	_, err := client.GetTransactions(t.Context(), time.Now().Add(-time.Hour), time.Now())
	if !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestGetTransactions_AccountIDCached(t *testing.T) {
	var clientInfoRequests int

	mux := http.NewServeMux()
	mux.HandleFunc("/personal/client-info", func(w http.ResponseWriter, r *http.Request) {
		clientInfoRequests++
		w.Write([]byte(clientInfoJSON))
	})
	mux.HandleFunc("/personal/statement/acc-match/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	client, _ := newTestClient(t, mux)

	for i := 0; i < 3; i++ {
		if _, err := client.GetTransactions(t.Context(), time.Now().Add(-time.Hour), time.Now()); err != nil {
			t.Fatalf("GetTransactions failed: %v", err)
		}
	}

	if clientInfoRequests != 1 {
		t.Errorf("client-info hit %d times, want 1", clientInfoRequests)
	}
}

func TestGetTransactions_UpstreamHTTPError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/personal/client-info", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	})

	client, _ := newTestClient(t, mux)

	_, err := client.GetTransactions(t.Context(), time.Now().Add(-time.Hour), time.Now())
	if err == nil {
		t.Fatal("expected error on non-200 response")
	}
}
