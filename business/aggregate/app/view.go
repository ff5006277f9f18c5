package app

import (
	"time"

	"github.com/shopspring/decimal"

	arbitrageDomain "github.com/tokenlens/tokenlens/business/arbitrage/domain"
	pricingDomain "github.com/tokenlens/tokenlens/business/pricing/domain"
	securityDomain "github.com/tokenlens/tokenlens/business/security/domain"
)

// TokenSummary is the display identity of the aggregated token.
type TokenSummary struct {
	Name     string
	Symbol   string
	Chain    pricingDomain.Chain
	Address  string
	ImageURL string
}

// AggregatedPriceView is the top-level response aggregate: assembled
// fresh per request, cached wholesale under a short TTL, never
// partially updated.
type AggregatedPriceView struct {
	Token             TokenSummary
	ReferencePriceUSD decimal.NullDecimal
	DexPools          []pricingDomain.DexPoolQuote
	CexQuotes         []pricingDomain.CexQuote
	Security          *securityDomain.Report
	// TopPoolRisk assesses the highest-scoring pool's liquidity, age,
	// and activity; nil when no pool survives the floor.
	TopPoolRisk   *securityDomain.PoolRisk
	Arbitrage     []arbitrageDomain.Opportunity
	BestBuy       *arbitrageDomain.VenueRef
	BestSell      *arbitrageDomain.VenueRef
	SpreadPercent *decimal.Decimal
	UpdatedAt     time.Time
}

// SearchView is the resolved identity of a token lookup.
type SearchView struct {
	ID       string
	Name     string
	Symbol   string
	Chain    pricingDomain.Chain
	Address  string
	ImageURL string
	PriceUSD decimal.NullDecimal
}
