package domain

import (
	"testing"

	"github.com/shopspring/decimal"

	pricingDomain "github.com/tokenlens/tokenlens/business/pricing/domain"
)

func TestDexImpactPercent(t *testing.T) {
	tests := []struct {
		name         string
		amountUSD    float64
		liquidityUSD float64
		want         float64
	}{
		{"deep_pool", 1000, 1_000_000, 0.2},
		{"half_of_liquidity", 5000, 10000, 50},
		{"liquidity_equals_amount", 10000, 10000, 50},
		{"liquidity_below_amount", 10000, 2000, 50},
		{"zero_liquidity", 1000, 0, 100},
		{"negative_liquidity", 1000, -5, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DexImpactPercent(tt.amountUSD, tt.liquidityUSD)
			if got != tt.want {
				t.Errorf("impact = %v, want %v", got, tt.want)
			}
			if got > 100 {
				t.Errorf("impact %v exceeds 100", got)
			}
		})
	}
}

func TestDexImpactCapHolds(t *testing.T) {
	// Whenever liquidity does not exceed the trade size the cap binds.
	for _, liq := range []float64{1, 100, 999, 1000} {
		if got := DexImpactPercent(1000, liq); got != 50 {
			t.Errorf("liquidity %v: impact = %v, want 50", liq, got)
		}
	}
}

func TestCexImpactPercent(t *testing.T) {
	tests := []struct {
		amountUSD float64
		want      float64
	}{
		{100, 0},
		{100_000, 0},
		{150_000, 0.15},
		{2_000_000, 2},
	}

	for _, tt := range tests {
		if got := CexImpactPercent(tt.amountUSD); got != tt.want {
			t.Errorf("CexImpactPercent(%v) = %v, want %v", tt.amountUSD, got, tt.want)
		}
	}
}

func TestEstimateBuy(t *testing.T) {
	pools := []pricingDomain.DexPoolQuote{
		{
			Chain:        pricingDomain.ChainEthereum,
			DexName:      "uniswap",
			PriceUSD:     nd("2.00"),
			LiquidityUSD: nd("1000000"),
			PairURL:      "https://dexscreener.com/ethereum/uniswap",
		},
		{
			Chain:        pricingDomain.ChainEthereum,
			DexName:      "sushiswap",
			PriceUSD:     nd("2.00"),
			LiquidityUSD: nd("4000"),
		},
	}
	quotes := []pricingDomain.CexQuote{
		{
			Exchange:     "Binance",
			PriceUSD:     nd("2.00"),
			Volume24hUSD: nd("50000000"),
			Tier:         1,
		},
	}

	estimate := NewEstimator().Estimate(pools, quotes, 1000, DirectionBuy)
	if len(estimate.Venues) != 3 {
		t.Fatalf("got %d venues, want 3", len(estimate.Venues))
	}

	// CEX trade of 1000 has zero impact: 1000/2.00 = 500 tokens.
	best := estimate.Best
	if best == nil || best.SourceName != "Binance" {
		t.Fatalf("best = %+v, want Binance", best)
	}
	if !best.TokensReceived.Equal(decimal.NewFromInt(500)) {
		t.Errorf("best received = %s, want 500", best.TokensReceived)
	}
	if best.ImpactPercent != 0 {
		t.Errorf("best impact = %v, want 0", best.ImpactPercent)
	}

	// Deep pool: impact 1000/(1000000/2)*100 = 0.2%, effective 2.004.
	var deep *VenueImpact
	for i := range estimate.Venues {
		if estimate.Venues[i].SourceName == "uniswap (ethereum)" {
			deep = &estimate.Venues[i]
		}
	}
	if deep == nil {
		t.Fatal("uniswap venue missing")
	}
	if deep.ImpactPercent != 0.2 {
		t.Errorf("deep pool impact = %v, want 0.2", deep.ImpactPercent)
	}
	if !deep.EffectivePrice.Equal(decimal.RequireFromString("2.004")) {
		t.Errorf("effective = %s, want 2.004", deep.EffectivePrice)
	}

	// Shallow pool hits the cap: effective 2*(1.5) = 3, worst venue.
	worst := estimate.Worst
	if worst == nil || worst.SourceName != "sushiswap (ethereum)" {
		t.Fatalf("worst = %+v, want sushiswap", worst)
	}
	if worst.ImpactPercent != 50 {
		t.Errorf("worst impact = %v, want 50", worst.ImpactPercent)
	}

	// Gap: (500 - 333.33...)/333.33... * 100 = 50%.
	if estimate.EfficiencyGapPercent == nil {
		t.Fatal("expected an efficiency gap")
	}
	gap, _ := estimate.EfficiencyGapPercent.Round(4).Float64()
	if gap != 50 {
		t.Errorf("gap = %v, want 50", gap)
	}
}

func TestEstimateSell(t *testing.T) {
	pools := []pricingDomain.DexPoolQuote{
		{
			Chain:        pricingDomain.ChainBSC,
			DexName:      "pancakeswap",
			PriceUSD:     nd("4.00"),
			LiquidityUSD: nd("800000"),
		},
	}

	estimate := NewEstimator().Estimate(pools, nil, 2000, DirectionSell)
	if len(estimate.Venues) != 1 {
		t.Fatalf("got %d venues, want 1", len(estimate.Venues))
	}

	// Selling pushes the price down: impact 2000/400000*100 = 0.5%,
	// effective 4*0.995 = 3.98, proceeds 2000*3.98 = 7960.
	v := estimate.Venues[0]
	if !v.EffectivePrice.Equal(decimal.RequireFromString("3.98")) {
		t.Errorf("effective = %s, want 3.98", v.EffectivePrice)
	}
	if !v.TokensReceived.Equal(decimal.NewFromInt(7960)) {
		t.Errorf("proceeds = %s, want 7960", v.TokensReceived)
	}
	if estimate.EfficiencyGapPercent != nil {
		t.Error("single venue should have no gap")
	}
}

func TestEstimateSkipsUnusableVenues(t *testing.T) {
	pools := []pricingDomain.DexPoolQuote{
		{Chain: pricingDomain.ChainBSC, DexName: "nopriced", LiquidityUSD: nd("5000")},
		{Chain: pricingDomain.ChainBSC, DexName: "noliq", PriceUSD: nd("1.00")},
	}

	estimate := NewEstimator().Estimate(pools, nil, 1000, DirectionBuy)
	if len(estimate.Venues) != 0 {
		t.Errorf("got %d venues, want 0", len(estimate.Venues))
	}
	if estimate.Best != nil || estimate.Worst != nil {
		t.Error("no venues means no best/worst")
	}
}

func TestEstimateNonPositiveAmount(t *testing.T) {
	pools := []pricingDomain.DexPoolQuote{
		{Chain: pricingDomain.ChainBSC, DexName: "pancakeswap", PriceUSD: nd("1"), LiquidityUSD: nd("5000")},
	}

	if got := NewEstimator().Estimate(pools, nil, 0, DirectionBuy); len(got.Venues) != 0 {
		t.Errorf("zero amount should yield no venues, got %d", len(got.Venues))
	}
	if got := NewEstimator().Estimate(pools, nil, -5, DirectionBuy); len(got.Venues) != 0 {
		t.Errorf("negative amount should yield no venues, got %d", len(got.Venues))
	}
}
