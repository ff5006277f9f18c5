// Package domain contains the cross-venue arbitrage and price impact
// types.
package domain

import (
	"github.com/shopspring/decimal"

	pricingDomain "github.com/tokenlens/tokenlens/business/pricing/domain"
)

// VenueType distinguishes on-chain pools from centralized exchanges.
type VenueType string

const (
	VenueDEX VenueType = "dex"
	VenueCEX VenueType = "cex"
)

// VenueRef points at one tradable venue with its quoted price. Chain
// is empty for CEX venues.
type VenueRef struct {
	SourceName string
	Type       VenueType
	Price      decimal.Decimal
	Chain      pricingDomain.Chain
	URL        string
}

// Opportunity is one detected price gap between two venues. Recomputed
// per request, never persisted.
type Opportunity struct {
	BuyFrom          VenueRef
	SellTo           VenueRef
	SpreadPercent    decimal.Decimal
	EstimatedFeeUSD  decimal.Decimal
	NetProfitPercent decimal.Decimal
	IsViable         bool
}

// BestPrices is the venue pair bracketing the market. All fields are
// nil when fewer than two venues qualify, except BestBuy/BestSell
// which are set whenever at least one venue exists.
type BestPrices struct {
	BestBuy       *VenueRef
	BestSell      *VenueRef
	SpreadPercent *decimal.Decimal
}

// gasCosts estimates a single swap's cost in USD per chain.
var gasCosts = map[pricingDomain.Chain]decimal.Decimal{
	pricingDomain.ChainEthereum:  decimal.NewFromFloat(15),
	pricingDomain.ChainBSC:       decimal.NewFromFloat(0.3),
	pricingDomain.ChainPolygon:   decimal.NewFromFloat(0.05),
	pricingDomain.ChainArbitrum:  decimal.NewFromFloat(0.5),
	pricingDomain.ChainOptimism:  decimal.NewFromFloat(0.3),
	pricingDomain.ChainBase:      decimal.NewFromFloat(0.1),
	pricingDomain.ChainSolana:    decimal.NewFromFloat(0.01),
	pricingDomain.ChainAvalanche: decimal.NewFromFloat(0.5),
	pricingDomain.ChainFantom:    decimal.NewFromFloat(0.05),
	pricingDomain.ChainZkSync:    decimal.NewFromFloat(0.2),
}

// GasCostUSD returns the estimated swap cost for a chain. Unknown
// chains fall back to 1 USD.
func GasCostUSD(chain pricingDomain.Chain) decimal.Decimal {
	if cost, ok := gasCosts[chain]; ok {
		return cost
	}
	return decimal.NewFromInt(1)
}
