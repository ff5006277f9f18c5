package domain

import "github.com/shopspring/decimal"

// MarketTicker is one market listing reported by the metadata
// provider. IsCex is derived upstream from market-name heuristics and
// anomaly/staleness flags.
type MarketTicker struct {
	MarketName   string
	TargetPairID string
	PriceUSD     decimal.NullDecimal
	VolumeUSD    decimal.NullDecimal
	IsCex        bool
}

// TokenMetadata is the metadata provider's summary of a token.
type TokenMetadata struct {
	ID       string
	Name     string
	Symbol   string
	ImageURL string
	PriceUSD decimal.NullDecimal
	Tickers  []MarketTicker
}
