package domain

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	pricingDomain "github.com/tokenlens/tokenlens/business/pricing/domain"
)

const (
	// minSpreadPercent is the spread below which no opportunity is
	// emitted.
	minSpreadPercent = 0.5

	// minViableProfitPercent is the net profit required to flag an
	// opportunity as viable.
	minViableProfitPercent = 1.0

	// notionalUSD is the fixed trade size used for profit estimation.
	notionalUSD = 1000

	// bridgeFeeUSD is the flat surcharge when the two legs sit on
	// different chains.
	bridgeFeeUSD = 10

	// cexWithdrawalFeeUSD is the flat surcharge when either leg is a
	// centralized exchange.
	cexWithdrawalFeeUSD = 5

	// arbitrageLiquidityFloorUSD gates pools out of opportunity
	// detection.
	arbitrageLiquidityFloorUSD = 1000

	// bestPriceLiquidityFloorUSD gates pools out of best-buy/best-sell
	// selection.
	bestPriceLiquidityFloorUSD = 500
)

var (
	hundred  = decimal.NewFromInt(100)
	notional = decimal.NewFromInt(notionalUSD)
)

// Engine detects arbitrage opportunities and best-price pairs across
// the merged venue lists.
type Engine struct{}

// NewEngine creates an arbitrage Engine.
func NewEngine() *Engine {
	return &Engine{}
}

// collectVenues flattens pools and CEX quotes into priced venues,
// applying the pool liquidity floor.
func collectVenues(pools []pricingDomain.DexPoolQuote, quotes []pricingDomain.CexQuote, poolFloorUSD int64) []VenueRef {
	venues := make([]VenueRef, 0, len(pools)+len(quotes))
	for _, p := range pools {
		if !p.HasPrice() || !p.LiquidityAtLeast(poolFloorUSD) {
			continue
		}
		venues = append(venues, VenueRef{
			SourceName: p.VenueName(),
			Type:       VenueDEX,
			Price:      p.PriceUSD.Decimal,
			Chain:      p.Chain,
			URL:        p.PairURL,
		})
	}
	for _, q := range quotes {
		if !q.HasPrice() {
			continue
		}
		venues = append(venues, VenueRef{
			SourceName: q.Exchange,
			Type:       VenueCEX,
			Price:      q.PriceUSD.Decimal,
			URL:        q.TradeURL,
		})
	}
	return venues
}

func spreadPct(low, high decimal.Decimal) decimal.Decimal {
	return high.Sub(low).Div(low).Mul(hundred)
}

// legFees estimates the total fee for a buy/sell venue pair: gas per
// DEX leg, a bridge surcharge across chains, and a withdrawal fee when
// a CEX is involved.
func legFees(buy, sell VenueRef) decimal.Decimal {
	fees := decimal.Zero
	if buy.Type == VenueDEX && buy.Chain != "" {
		fees = fees.Add(GasCostUSD(buy.Chain))
	}
	if sell.Type == VenueDEX && sell.Chain != "" {
		fees = fees.Add(GasCostUSD(sell.Chain))
	}
	if buy.Chain != "" && sell.Chain != "" && buy.Chain != sell.Chain {
		fees = fees.Add(decimal.NewFromInt(bridgeFeeUSD))
	}
	if buy.Type == VenueCEX || sell.Type == VenueCEX {
		fees = fees.Add(decimal.NewFromInt(cexWithdrawalFeeUSD))
	}
	return fees
}

// netProfitPct computes profit of buying the notional at buyPrice and
// selling at sellPrice, net of fees, as a percentage of the notional.
func netProfitPct(buyPrice, sellPrice, fees decimal.Decimal) decimal.Decimal {
	tokens := notional.Div(buyPrice)
	saleValue := tokens.Mul(sellPrice)
	net := saleValue.Sub(notional).Sub(fees)
	return net.Div(notional).Mul(hundred)
}

// FindOpportunities runs the two detection passes: a global min/max
// pass across every venue, then a per-chain DEX pass with a softer
// inclusion threshold. Results sort viable-first, then by descending
// net profit.
func (e *Engine) FindOpportunities(pools []pricingDomain.DexPoolQuote, quotes []pricingDomain.CexQuote) []Opportunity {
	venues := collectVenues(pools, quotes, arbitrageLiquidityFloorUSD)
	if len(venues) < 2 {
		return nil
	}

	sort.SliceStable(venues, func(i, j int) bool {
		return venues[i].Price.LessThan(venues[j].Price)
	})
	globalBuy := venues[0]
	globalSell := venues[len(venues)-1]

	// The whole detection keys off the global spread: a flat market
	// yields no opportunities at all, same-chain pass included.
	spread := spreadPct(globalBuy.Price, globalSell.Price)
	if spread.LessThan(decimal.NewFromFloat(minSpreadPercent)) {
		return nil
	}

	fees := legFees(globalBuy, globalSell)
	profit := netProfitPct(globalBuy.Price, globalSell.Price, fees)
	opportunities := []Opportunity{{
		BuyFrom:          globalBuy,
		SellTo:           globalSell,
		SpreadPercent:    spread,
		EstimatedFeeUSD:  fees,
		NetProfitPercent: profit,
		IsViable:         profit.GreaterThanOrEqual(decimal.NewFromFloat(minViableProfitPercent)),
	}}

	opportunities = append(opportunities, e.sameChainPass(pools, globalBuy, globalSell)...)

	sort.SliceStable(opportunities, func(i, j int) bool {
		if opportunities[i].IsViable != opportunities[j].IsViable {
			return opportunities[i].IsViable
		}
		return opportunities[i].NetProfitPercent.GreaterThan(opportunities[j].NetProfitPercent)
	})
	return opportunities
}

// sameChainPass pairs the cheapest and dearest pool per chain. Fees
// are two swaps' gas with no bridge or withdrawal. The inclusion
// threshold is half the viability threshold, so an emitted opportunity
// can still carry IsViable=false.
func (e *Engine) sameChainPass(pools []pricingDomain.DexPoolQuote, globalBuy, globalSell VenueRef) []Opportunity {
	byChain := make(map[pricingDomain.Chain][]pricingDomain.DexPoolQuote)
	for _, p := range pools {
		if !p.HasPrice() || !p.LiquidityAtLeast(arbitrageLiquidityFloorUSD) {
			continue
		}
		byChain[p.Chain] = append(byChain[p.Chain], p)
	}

	chains := make([]pricingDomain.Chain, 0, len(byChain))
	for chain := range byChain {
		chains = append(chains, chain)
	}
	sort.Slice(chains, func(i, j int) bool { return chains[i] < chains[j] })

	var opportunities []Opportunity
	for _, chain := range chains {
		chainPools := byChain[chain]
		if len(chainPools) < 2 {
			continue
		}

		sort.SliceStable(chainPools, func(i, j int) bool {
			return chainPools[i].PriceUSD.Decimal.LessThan(chainPools[j].PriceUSD.Decimal)
		})
		low := chainPools[0]
		high := chainPools[len(chainPools)-1]

		spread := spreadPct(low.PriceUSD.Decimal, high.PriceUSD.Decimal)
		if spread.LessThan(decimal.NewFromFloat(minSpreadPercent)) {
			continue
		}
		if low.DexName == firstWord(globalBuy.SourceName) && high.DexName == firstWord(globalSell.SourceName) {
			continue
		}

		fees := GasCostUSD(chain).Mul(decimal.NewFromInt(2))
		profit := netProfitPct(low.PriceUSD.Decimal, high.PriceUSD.Decimal, fees)
		if profit.LessThan(decimal.NewFromFloat(minViableProfitPercent / 2)) {
			continue
		}

		opportunities = append(opportunities, Opportunity{
			BuyFrom: VenueRef{
				SourceName: low.VenueName(),
				Type:       VenueDEX,
				Price:      low.PriceUSD.Decimal,
				Chain:      chain,
				URL:        low.PairURL,
			},
			SellTo: VenueRef{
				SourceName: high.VenueName(),
				Type:       VenueDEX,
				Price:      high.PriceUSD.Decimal,
				Chain:      chain,
				URL:        high.PairURL,
			},
			SpreadPercent:    spread,
			EstimatedFeeUSD:  fees,
			NetProfitPercent: profit,
			IsViable:         profit.GreaterThanOrEqual(decimal.NewFromFloat(minViableProfitPercent)),
		})
	}
	return opportunities
}

func firstWord(s string) string {
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[:i]
	}
	return s
}

// BestPrices finds the cheapest and dearest eligible venue. Pools need
// a softer liquidity floor here than for arbitrage detection.
func (e *Engine) BestPrices(pools []pricingDomain.DexPoolQuote, quotes []pricingDomain.CexQuote) BestPrices {
	venues := collectVenues(pools, quotes, bestPriceLiquidityFloorUSD)
	if len(venues) == 0 {
		return BestPrices{}
	}

	sort.SliceStable(venues, func(i, j int) bool {
		return venues[i].Price.LessThan(venues[j].Price)
	})

	best := BestPrices{
		BestBuy:  &venues[0],
		BestSell: &venues[len(venues)-1],
	}
	if len(venues) > 1 {
		spread := spreadPct(best.BestBuy.Price, best.BestSell.Price)
		best.SpreadPercent = &spread
	}
	return best
}
