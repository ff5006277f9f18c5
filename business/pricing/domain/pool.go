package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PriceChange holds pool price movement over standard windows.
type PriceChange struct {
	H1  decimal.NullDecimal
	H6  decimal.NullDecimal
	H24 decimal.NullDecimal
}

// TxnCounts holds 24h transaction activity for a pool.
type TxnCounts struct {
	Buys  int
	Sells int
	Total int
}

// DexPoolQuote is one on-chain pool's view of the token. PoolAgeHours
// is derived from CreatedAt at read time and is not stable across
// requests.
type DexPoolQuote struct {
	Chain        Chain
	DexID        string
	DexName      string
	PairAddress  string
	PairURL      string
	PriceUSD     decimal.NullDecimal
	LiquidityUSD decimal.NullDecimal
	Volume24hUSD decimal.NullDecimal
	PriceChange  PriceChange
	Txns24h      TxnCounts
	CreatedAt    *time.Time
	PoolAgeHours *float64
	FDVUSD       decimal.NullDecimal
	BaseToken    TokenInfo
	QuoteToken   TokenInfo
	Tier         Tier
	Score        float64
}

// HasPrice reports whether the pool carries a positive price.
func (p DexPoolQuote) HasPrice() bool {
	return p.PriceUSD.Valid && p.PriceUSD.Decimal.IsPositive()
}

// LiquidityAtLeast reports whether the pool's liquidity is known and
// meets the given USD floor.
func (p DexPoolQuote) LiquidityAtLeast(floor int64) bool {
	return p.LiquidityUSD.Valid &&
		p.LiquidityUSD.Decimal.GreaterThanOrEqual(decimal.NewFromInt(floor))
}

// VenueName labels the pool for cross-venue comparisons.
func (p DexPoolQuote) VenueName() string {
	return p.DexName + " (" + string(p.Chain) + ")"
}

// dexTiers is the static DEX classification keyed by normalized DEX
// identifier. Tier 1 venues are established, audited, high-TVL; tier 2
// known with moderate trust. Everything else defaults to tier 3.
var dexTiers = map[string]Tier{
	// Tier 1
	"uniswap":        Tier1,
	"uniswap_v3":     Tier1,
	"uniswap_v2":     Tier1,
	"pancakeswap":    Tier1,
	"pancakeswap_v3": Tier1,
	"pancakeswap_v2": Tier1,
	"sushiswap":      Tier1,
	"sushiswap_v3":   Tier1,
	"curve":          Tier1,
	"balancer":       Tier1,
	"balancer_v2":    Tier1,
	"raydium":        Tier1,
	"orca":           Tier1,
	"trader_joe":     Tier1,
	"trader_joe_v2":  Tier1,
	"camelot":        Tier1,
	"velodrome":      Tier1,
	"aerodrome":      Tier1,

	// Tier 2
	"quickswap":    Tier2,
	"quickswap_v3": Tier2,
	"spookyswap":   Tier2,
	"spiritswap":   Tier2,
	"baseswap":     Tier2,
	"maverick":     Tier2,
	"thena":        Tier2,
	"syncswap":     Tier2,
	"mute":         Tier2,
	"zkswap":       Tier2,
	"jupiter":      Tier2,
	"meteora":      Tier2,
}

// DexTier resolves the static tier for a DEX identifier.
func DexTier(dexID string) Tier {
	key := strings.ToLower(dexID)
	for _, r := range []string{"-", " "} {
		key = strings.ReplaceAll(key, r, "_")
	}
	if tier, ok := dexTiers[key]; ok {
		return tier
	}
	return Tier3
}

// DexDisplayName turns a DEX identifier into a display name.
func DexDisplayName(dexID string) string {
	return strings.ReplaceAll(dexID, "_", " ")
}

// PoolAgeHours computes elapsed hours since pool creation, relative to
// now. Unknown creation time yields nil.
func PoolAgeHours(createdAt *time.Time, now time.Time) *float64 {
	if createdAt == nil {
		return nil
	}
	hours := now.Sub(*createdAt).Hours()
	return &hours
}

// DexScore blends liquidity, volume, static tier, pool age, and
// transaction activity into a 0-100 composite. Unknown age contributes
// a neutral 50.
func DexScore(liquidityUSD, volume24hUSD decimal.NullDecimal, tier Tier, ageHours *float64, totalTxns24h int) float64 {
	liquidity := 0.0
	if liquidityUSD.Valid {
		liquidity = liquidityUSD.Decimal.InexactFloat64()
	}
	volume := 0.0
	if volume24hUSD.Valid {
		volume = volume24hUSD.Decimal.InexactFloat64()
	}

	liquidityScore := min(liquidity/1_000_000, 100)
	volumeScore := min(volume/500_000, 100)

	ageScore := 50.0
	if ageHours != nil {
		ageScore = min(*ageHours/720, 100)
	}

	activityScore := min(float64(totalTxns24h)/100, 100)

	return liquidityScore*0.35 +
		volumeScore*0.25 +
		TierScore(tier)*0.20 +
		ageScore*0.10 +
		activityScore*0.10
}

// SortPoolsByScore orders pools by score descending, stable.
func SortPoolsByScore(pools []DexPoolQuote) {
	sort.SliceStable(pools, func(i, j int) bool {
		return pools[i].Score > pools[j].Score
	})
}
