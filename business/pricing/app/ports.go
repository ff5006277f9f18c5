// Package app contains application services and port definitions for the pricing context.
package app

import (
	"context"

	"github.com/tokenlens/tokenlens/business/pricing/domain"
)

// CEXProvider is one centralized exchange's ticker adapter. FetchQuote
// never returns an error for provider-side failures: timeouts, network
// errors, non-2xx responses, and missing price fields all resolve to a
// nil quote so sibling calls are unaffected.
type CEXProvider interface {
	// ExchangeID returns the adapter's normalized exchange identifier.
	ExchangeID() string

	// FetchQuote retrieves the spot ticker for a base symbol (quote
	// asset USDT), or nil when the exchange has no usable data.
	FetchQuote(ctx context.Context, symbol string) *domain.CexQuote
}

// PoolProvider fetches raw trading pools for a token from the DEX
// pool-data service.
type PoolProvider interface {
	// FetchPools returns all pools for the contract address, optionally
	// filtered to one chain. Provider failure yields an empty list.
	FetchPools(ctx context.Context, address string, filter *domain.Chain) []domain.DexPoolQuote
}

// MetadataProvider resolves token metadata from a contract address.
type MetadataProvider interface {
	// FetchToken returns the token summary, or nil when the provider
	// does not know the contract or is unavailable.
	FetchToken(ctx context.Context, chain domain.Chain, address string) *domain.TokenMetadata
}
