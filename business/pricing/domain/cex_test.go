package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func nd(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(s), Valid: true}
}

var noDec = decimal.NullDecimal{}

func TestCexTrustScore(t *testing.T) {
	tests := []struct {
		name    string
		volume  decimal.NullDecimal
		tier    Tier
		spread  decimal.NullDecimal
		want    float64
	}{
		{
			name:   "tier1_high_volume_tight_spread",
			volume: nd("1000000000"), // caps volume score at 100
			tier:   Tier1,
			spread: nd("0"),
			want:   100*0.40 + 100*0.40 + 100*0.20, // 100
		},
		{
			name:   "tier2_moderate_volume_unknown_spread",
			volume: nd("5000000"), // 5M / 10M = 0.5
			tier:   Tier2,
			spread: noDec,
			want:   0.5*0.40 + 60*0.40 + 50*0.20, // 34.2
		},
		{
			name:   "wide_spread_floors_at_zero",
			volume: nd("0"),
			tier:   Tier3,
			spread: nd("1"), // 100 - 1*1000 < 0, clamp to 0
			want:   0*0.40 + 30*0.40 + 0*0.20, // 12
		},
		{
			name:   "missing_volume_counts_zero",
			volume: noDec,
			tier:   Tier1,
			spread: nd("0.05"), // 100 - 50 = 50
			want:   0*0.40 + 100*0.40 + 50*0.20, // 50
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CexTrustScore(tt.volume, tt.tier, tt.spread)
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("CexTrustScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCexInfo(t *testing.T) {
	tests := []struct {
		id       string
		wantTier Tier
		wantName string
	}{
		{"binance", Tier1, "Binance"},
		{"gate.io", Tier2, "Gate.io"},
		{"Gate-io", Tier2, "Gate.io"},
		{"mexc", Tier3, "MEXC"},
		{"someunknownvenue", Tier3, "someunknownvenue"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			tier, name := CexInfo(tt.id)
			if tier != tt.wantTier || name != tt.wantName {
				t.Errorf("CexInfo(%q) = (%v, %q), want (%v, %q)",
					tt.id, tier, name, tt.wantTier, tt.wantName)
			}
		})
	}
}

func TestNormalizeExchangeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Binance", "binance"},
		{"  Binance Exchange ", "binance"},
		{"Gate.io International", "gate.io"},
		{"MEXC Global", "mexc"},
		{"OKX", "okx"},
	}

	for _, tt := range tests {
		if got := NormalizeExchangeName(tt.in); got != tt.want {
			t.Errorf("NormalizeExchangeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSortCexQuotes(t *testing.T) {
	quotes := []CexQuote{
		{ExchangeID: "mexc", Tier: Tier3, TrustScore: 90},
		{ExchangeID: "kucoin", Tier: Tier2, TrustScore: 40},
		{ExchangeID: "binance", Tier: Tier1, TrustScore: 80},
		{ExchangeID: "okx", Tier: Tier1, TrustScore: 95},
	}

	SortCexQuotes(quotes)

	wantOrder := []string{"okx", "binance", "kucoin", "mexc"}
	for i, want := range wantOrder {
		if quotes[i].ExchangeID != want {
			t.Errorf("position %d = %q, want %q", i, quotes[i].ExchangeID, want)
		}
	}
}

func TestTradeURL(t *testing.T) {
	tests := []struct {
		exchange string
		symbol   string
		want     string
	}{
		{"binance", "pepe", "https://www.binance.com/en/trade/PEPE_USDT?type=spot"},
		{"okx", "PEPE", "https://www.okx.com/trade-spot/pepe-usdt"},
		{"unlisted", "abc", "https://www.coingecko.com/en/coins/abc"},
	}

	for _, tt := range tests {
		t.Run(tt.exchange, func(t *testing.T) {
			if got := TradeURL(tt.exchange, tt.symbol); got != tt.want {
				t.Errorf("TradeURL(%q, %q) = %q, want %q", tt.exchange, tt.symbol, got, tt.want)
			}
		})
	}
}

func TestCexQuoteHasPrice(t *testing.T) {
	if (CexQuote{PriceUSD: noDec}).HasPrice() {
		t.Error("missing price should not count as priced")
	}
	if (CexQuote{PriceUSD: nd("0")}).HasPrice() {
		t.Error("zero price should not count as priced")
	}
	if !(CexQuote{PriceUSD: nd("0.0001")}).HasPrice() {
		t.Error("positive price should count as priced")
	}
}
