package domain

import (
	"sort"

	"github.com/shopspring/decimal"

	pricingDomain "github.com/tokenlens/tokenlens/business/pricing/domain"
)

// TradeDirection distinguishes spending currency for tokens from
// selling tokens for currency.
type TradeDirection string

const (
	DirectionBuy  TradeDirection = "buy"
	DirectionSell TradeDirection = "sell"
)

// VenueImpact is one venue's estimated execution quality for a trade.
// TokensReceived holds tokens for a buy and proceeds for a sell.
type VenueImpact struct {
	SourceName     string
	Type           VenueType
	Tier           pricingDomain.Tier
	Price          decimal.Decimal
	LiquidityUSD   decimal.NullDecimal
	ImpactPercent  float64
	EffectivePrice decimal.Decimal
	TokensReceived decimal.Decimal
	URL            string
}

// ImpactEstimate ranks venues by execution quality for one trade size.
type ImpactEstimate struct {
	Venues []VenueImpact
	Best   *VenueImpact
	Worst  *VenueImpact
	// EfficiencyGapPercent is (best-worst)/worst*100 over the received
	// amounts; nil with fewer than two venues.
	EfficiencyGapPercent *decimal.Decimal
}

// Estimator computes per-venue price impact for a hypothetical trade.
type Estimator struct{}

// NewEstimator creates a price impact Estimator.
func NewEstimator() *Estimator {
	return &Estimator{}
}

// DexImpactPercent approximates constant-product slippage for a 50/50
// pool: amount over half the pool, capped at 50. Empty pools count as
// total impact.
func DexImpactPercent(amountUSD float64, liquidityUSD float64) float64 {
	if liquidityUSD <= 0 {
		return 100
	}
	return min(amountUSD/(liquidityUSD/2)*100, 50)
}

// CexImpactPercent treats exchange depth as effectively infinite below
// 100k notional and linear above it. Deliberately crude; order books
// are not modeled.
func CexImpactPercent(amountUSD float64) float64 {
	if amountUSD > 100_000 {
		return amountUSD / 1_000_000
	}
	return 0
}

func effectivePrice(price decimal.Decimal, impactPercent float64, direction TradeDirection) decimal.Decimal {
	adj := decimal.NewFromFloat(impactPercent / 100)
	if direction == DirectionBuy {
		return price.Mul(decimal.NewFromInt(1).Add(adj))
	}
	return price.Mul(decimal.NewFromInt(1).Sub(adj))
}

func receivedAmount(amount, effective decimal.Decimal, direction TradeDirection) decimal.Decimal {
	if direction == DirectionBuy {
		if effective.IsZero() {
			return decimal.Zero
		}
		return amount.Div(effective)
	}
	return amount.Mul(effective)
}

// Estimate computes per-venue execution quality for the given notional
// amount, ranked best-first by amount received.
func (e *Estimator) Estimate(
	pools []pricingDomain.DexPoolQuote,
	quotes []pricingDomain.CexQuote,
	amountUSD float64,
	direction TradeDirection,
) ImpactEstimate {
	if amountUSD <= 0 {
		return ImpactEstimate{}
	}
	amount := decimal.NewFromFloat(amountUSD)

	venues := make([]VenueImpact, 0, len(pools)+len(quotes))
	for _, p := range pools {
		if !p.HasPrice() || !p.LiquidityUSD.Valid {
			continue
		}
		impact := DexImpactPercent(amountUSD, p.LiquidityUSD.Decimal.InexactFloat64())
		effective := effectivePrice(p.PriceUSD.Decimal, impact, direction)
		venues = append(venues, VenueImpact{
			SourceName:     p.VenueName(),
			Type:           VenueDEX,
			Tier:           p.Tier,
			Price:          p.PriceUSD.Decimal,
			LiquidityUSD:   p.LiquidityUSD,
			ImpactPercent:  impact,
			EffectivePrice: effective,
			TokensReceived: receivedAmount(amount, effective, direction),
			URL:            p.PairURL,
		})
	}
	for _, q := range quotes {
		if !q.HasPrice() {
			continue
		}
		impact := CexImpactPercent(amountUSD)
		effective := effectivePrice(q.PriceUSD.Decimal, impact, direction)
		venues = append(venues, VenueImpact{
			SourceName: q.Exchange,
			Type:       VenueCEX,
			Tier:       q.Tier,
			Price:      q.PriceUSD.Decimal,
			// Exchange depth is not modeled; volume stands in as the
			// displayed liquidity figure.
			LiquidityUSD:   q.Volume24hUSD,
			ImpactPercent:  impact,
			EffectivePrice: effective,
			TokensReceived: receivedAmount(amount, effective, direction),
			URL:            q.TradeURL,
		})
	}

	sort.SliceStable(venues, func(i, j int) bool {
		return venues[i].TokensReceived.GreaterThan(venues[j].TokensReceived)
	})

	estimate := ImpactEstimate{Venues: venues}
	if len(venues) > 0 {
		estimate.Best = &venues[0]
		estimate.Worst = &venues[len(venues)-1]
	}
	if len(venues) > 1 && estimate.Worst.TokensReceived.IsPositive() {
		gap := estimate.Best.TokensReceived.
			Sub(estimate.Worst.TokensReceived).
			Div(estimate.Worst.TokensReceived).
			Mul(hundred)
		estimate.EfficiencyGapPercent = &gap
	}
	return estimate
}
