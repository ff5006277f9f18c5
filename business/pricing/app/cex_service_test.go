package app

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

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

func nd(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(s), Valid: true}
}

// fakeCEX resolves to a fixed quote, optionally after a delay.
type fakeCEX struct {
	id    string
	quote *domain.CexQuote
	delay time.Duration
}

func (f *fakeCEX) ExchangeID() string { return f.id }

func (f *fakeCEX) FetchQuote(ctx context.Context, symbol string) *domain.CexQuote {
	if f.delay > 0 {
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(f.delay):
		}
	}
	return f.quote
}

func TestCexServiceFetchAll(t *testing.T) {
	providers := []CEXProvider{
		&fakeCEX{id: "binance", quote: &domain.CexQuote{
			Exchange: "Binance", ExchangeID: "binance",
			PriceUSD: nd("1.02"), Volume24hUSD: nd("50000000"), Tier: domain.Tier1,
		}},
		&fakeCEX{id: "mexc", quote: &domain.CexQuote{
			Exchange: "MEXC", ExchangeID: "mexc",
			PriceUSD: nd("1.01"), Volume24hUSD: nd("200000"), Tier: domain.Tier3,
		}},
		&fakeCEX{id: "kraken", quote: nil}, // not listed
		&fakeCEX{id: "okx", quote: &domain.CexQuote{
			Exchange: "OKX", ExchangeID: "okx",
			PriceUSD: decimal.NullDecimal{}, Tier: domain.Tier1, // no price
		}},
	}

	svc := NewCexService(providers, time.Second, mockLogger{})
	quotes := svc.FetchAll(context.Background(), "PEPE")

	if len(quotes) != 2 {
		t.Fatalf("got %d quotes, want 2", len(quotes))
	}
	// Tier 1 sorts ahead of tier 3.
	if quotes[0].ExchangeID != "binance" || quotes[1].ExchangeID != "mexc" {
		t.Errorf("order = [%s, %s]", quotes[0].ExchangeID, quotes[1].ExchangeID)
	}
	for _, q := range quotes {
		if q.TrustScore <= 0 {
			t.Errorf("%s trust score not computed: %v", q.ExchangeID, q.TrustScore)
		}
	}
}

func TestCexServiceFetchAllSlowProviderDoesNotBlockOthers(t *testing.T) {
	providers := []CEXProvider{
		&fakeCEX{id: "binance", quote: &domain.CexQuote{
			ExchangeID: "binance", PriceUSD: nd("1"), Tier: domain.Tier1,
		}},
		&fakeCEX{id: "slowex", delay: 5 * time.Second, quote: &domain.CexQuote{
			ExchangeID: "slowex", PriceUSD: nd("1"), Tier: domain.Tier3,
		}},
	}

	svc := NewCexService(providers, 50*time.Millisecond, mockLogger{})

	start := time.Now()
	quotes := svc.FetchAll(context.Background(), "PEPE")
	elapsed := time.Since(start)

	if len(quotes) != 1 || quotes[0].ExchangeID != "binance" {
		t.Fatalf("got %d quotes, want only binance", len(quotes))
	}
	if elapsed > time.Second {
		t.Errorf("fan-out took %v, timeout not applied", elapsed)
	}
}

func TestCexServiceFetchAllEmpty(t *testing.T) {
	svc := NewCexService(nil, time.Second, mockLogger{})
	if quotes := svc.FetchAll(context.Background(), "PEPE"); len(quotes) != 0 {
		t.Errorf("got %d quotes, want 0", len(quotes))
	}
}
