package coingecko

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tokenlens/tokenlens/business/pricing/domain"
	"github.com/tokenlens/tokenlens/internal/logger"
)

// mockLogger implements logger.LoggerInterface for testing.
type mockLogger struct{}

func (mockLogger) Debug(ctx context.Context, msg string, args ...any)              {}
func (mockLogger) Info(ctx context.Context, msg string, args ...any)               {}
func (mockLogger) Warn(ctx context.Context, msg string, args ...any)               {}
func (mockLogger) Error(ctx context.Context, msg string, args ...any)              {}
func (mockLogger) Debugc(ctx context.Context, caller int, msg string, args ...any) {}
func (mockLogger) Infoc(ctx context.Context, caller int, msg string, args ...any)  {}
func (mockLogger) Warnc(ctx context.Context, caller int, msg string, args ...any)  {}
func (mockLogger) Errorc(ctx context.Context, caller int, msg string, args ...any) {}

var _ logger.LoggerInterface = mockLogger{}

const contractPayload = `{
	"id": "pepe",
	"name": "Pepe",
	"symbol": "pepe",
	"image": {"thumb": "https://img/thumb.png", "small": "https://img/small.png"},
	"market_data": {"current_price": {"usd": 0.00001234}},
	"tickers": [
		{
			"market": {"name": "Binance"},
			"target": "USDT",
			"converted_last": {"usd": 0.00001235},
			"converted_volume": {"usd": 45000000},
			"is_anomaly": false,
			"is_stale": false
		},
		{
			"market": {"name": "Uniswap V3 (Ethereum)"},
			"target": "WETH",
			"converted_last": {"usd": 0.00001233},
			"converted_volume": {"usd": 9000000},
			"is_anomaly": false,
			"is_stale": false
		},
		{
			"market": {"name": "ShadyEx"},
			"target": "USDT",
			"converted_last": {"usd": 0.000013},
			"converted_volume": {"usd": 100},
			"is_anomaly": true,
			"is_stale": false
		}
	]
}`

func TestFetchToken(t *testing.T) {
	var gotPath, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-cg-demo-api-key")
		_, _ = w.Write([]byte(contractPayload))
	}))
	defer srv.Close()

	p, err := NewProvider(Config{BaseURL: srv.URL, APIKey: "demo-key"}, mockLogger{})
	if err != nil {
		t.Fatal(err)
	}

	meta := p.FetchToken(context.Background(), domain.ChainBSC, " 0xTOKEN ")
	if meta == nil {
		t.Fatal("expected metadata")
	}
	if gotPath != "/coins/binance-smart-chain/contract/0xtoken" {
		t.Errorf("path = %q", gotPath)
	}
	if gotKey != "demo-key" {
		t.Errorf("api key header = %q", gotKey)
	}
	if meta.Symbol != "PEPE" {
		t.Errorf("symbol = %q, want upper-cased PEPE", meta.Symbol)
	}
	if meta.ImageURL != "https://img/small.png" {
		t.Errorf("image = %q, want the small variant", meta.ImageURL)
	}
	if !meta.PriceUSD.Valid {
		t.Error("price not parsed")
	}

	if len(meta.Tickers) != 3 {
		t.Fatalf("got %d tickers, want 3", len(meta.Tickers))
	}
	if !meta.Tickers[0].IsCex {
		t.Error("Binance ticker should be CEX")
	}
	if meta.Tickers[1].IsCex {
		t.Error("Uniswap ticker should not be CEX")
	}
	if meta.Tickers[2].IsCex {
		t.Error("anomalous ticker should not be CEX")
	}
}

func TestFetchTokenUnknownContract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	p, err := NewProvider(Config{BaseURL: srv.URL}, mockLogger{})
	if err != nil {
		t.Fatal(err)
	}
	if meta := p.FetchToken(context.Background(), domain.ChainEthereum, "0xdead"); meta != nil {
		t.Errorf("expected nil for unknown contract, got %+v", meta)
	}
}
