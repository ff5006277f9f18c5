package domain

import (
	"testing"
	"time"
)

func TestDexScore(t *testing.T) {
	age := func(h float64) *float64 { return &h }

	tests := []struct {
		name      string
		liquidity string
		volume    string
		tier      Tier
		ageHours  *float64
		txns      int
		want      float64
	}{
		{
			name:      "deep_mature_tier1_pool",
			liquidity: "100000000", // caps at 100
			volume:    "50000000",  // caps at 100
			tier:      Tier1,
			ageHours:  age(72000), // caps at 100
			txns:      10000,      // caps at 100
			want:      100,
		},
		{
			name:      "fresh_shallow_tier3_pool",
			liquidity: "100000", // 0.1
			volume:    "50000",  // 0.1
			tier:      Tier3,
			ageHours:  age(7.2), // 0.01
			txns:      10,       // 0.1
			want:      0.1*0.35 + 0.1*0.25 + 30*0.20 + 0.01*0.10 + 0.1*0.10,
		},
		{
			name:      "unknown_age_is_neutral",
			liquidity: "0",
			volume:    "0",
			tier:      Tier2,
			ageHours:  nil,
			txns:      0,
			want:      60*0.20 + 50*0.10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DexScore(nd(tt.liquidity), nd(tt.volume), tt.tier, tt.ageHours, tt.txns)
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("DexScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDexTier(t *testing.T) {
	tests := []struct {
		dexID string
		want  Tier
	}{
		{"uniswap_v3", Tier1},
		{"uniswap-v3", Tier1},
		{"Raydium", Tier1},
		{"quickswap", Tier2},
		{"obscureswap", Tier3},
	}

	for _, tt := range tests {
		if got := DexTier(tt.dexID); got != tt.want {
			t.Errorf("DexTier(%q) = %v, want %v", tt.dexID, got, tt.want)
		}
	}
}

func TestPoolAgeHours(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	if got := PoolAgeHours(nil, now); got != nil {
		t.Errorf("nil creation time should yield nil, got %v", *got)
	}

	created := now.Add(-36 * time.Hour)
	got := PoolAgeHours(&created, now)
	if got == nil || *got != 36 {
		t.Errorf("PoolAgeHours() = %v, want 36", got)
	}
}

func TestSortPoolsByScore(t *testing.T) {
	pools := []DexPoolQuote{
		{PairAddress: "a", Score: 12},
		{PairAddress: "b", Score: 80},
		{PairAddress: "c", Score: 45},
	}

	SortPoolsByScore(pools)

	wantOrder := []string{"b", "c", "a"}
	for i, want := range wantOrder {
		if pools[i].PairAddress != want {
			t.Errorf("position %d = %q, want %q", i, pools[i].PairAddress, want)
		}
	}
}

func TestLiquidityAtLeast(t *testing.T) {
	p := DexPoolQuote{LiquidityUSD: nd("1000")}
	if !p.LiquidityAtLeast(1000) {
		t.Error("liquidity equal to floor should pass")
	}
	if p.LiquidityAtLeast(1001) {
		t.Error("liquidity below floor should fail")
	}
	if (DexPoolQuote{}).LiquidityAtLeast(0) {
		t.Error("unknown liquidity should fail any floor")
	}
}

func TestVenueName(t *testing.T) {
	p := DexPoolQuote{DexName: "uniswap v3", Chain: ChainEthereum}
	if got := p.VenueName(); got != "uniswap v3 (ethereum)" {
		t.Errorf("VenueName() = %q", got)
	}
}
