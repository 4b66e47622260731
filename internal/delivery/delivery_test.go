package delivery

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dvloznov/statement-exporter/internal/config"
)

func baseConfig() config.Config {
	return config.Config{
		BankName:   config.BankMonobank,
		CardNumber: "4000123456789010",
	}
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name      string
		importWay string
	}{
		{name: "mail", importWay: config.ImportWayMail},
		{name: "wallet", importWay: config.ImportWayWallet},
		{name: "none", importWay: config.ImportWayNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			cfg.ImportWay = tt.importWay

			channel, err := Build(cfg)
			if err != nil {
				t.Fatalf("Build failed: %v", err)
			}
			if channel == nil {
				t.Fatal("Build returned nil channel")
			}
		})
	}
}

func TestBuild_UnknownImportWay(t *testing.T) {
	cfg := baseConfig()
	cfg.ImportWay = "fax"

	if _, err := Build(cfg); err == nil {
		t.Fatal("expected error for unknown import way")
	}
}

func TestWalletChannel_Deliver(t *testing.T) {
	var (
		gotUserID   string
		gotFileName string
		gotBody     string
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = r.Header.Get("x-userid")
		gotFileName = r.Header.Get("x-filename")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
	}))
	defer server.Close()

	channel := NewWalletChannel(config.WalletConfig{ImportURL: server.URL, UserID: "user-1"})

	err := channel.Deliver(context.Background(), "2024-01-01_2024-01-31.csv", []byte("Id,Datetime\n"))
	if err != nil {
		t.Fatalf("Deliver failed: %v", err)
	}

	if gotUserID != "user-1" {
		t.Errorf("x-userid = %q, want user-1", gotUserID)
	}
	if gotFileName != "2024-01-01_2024-01-31.csv" {
		t.Errorf("x-filename = %q, want statement file name", gotFileName)
	}
	if gotBody != "Id,Datetime\n" {
		t.Errorf("body = %q, want raw statement bytes", gotBody)
	}
}

func TestWalletChannel_DeliverNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer server.Close()

	channel := NewWalletChannel(config.WalletConfig{ImportURL: server.URL, UserID: "user-1"})

	if err := channel.Deliver(context.Background(), "x.csv", []byte("data")); err == nil {
		t.Fatal("expected error on non-2xx response")
	}
}

func TestNopChannel(t *testing.T) {
	channel := NopChannel{}

	if err := channel.Verify(); err != nil {
		t.Errorf("Verify failed: %v", err)
	}
	if err := channel.Deliver(context.Background(), "x.csv", []byte("data")); err != nil {
		t.Errorf("Deliver failed: %v", err)
	}
}
