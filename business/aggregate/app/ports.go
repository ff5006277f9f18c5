package app

import (
	"context"

	pricingDomain "github.com/tokenlens/tokenlens/business/pricing/domain"
)

// TokenSearcher resolves free-text queries to token candidates, for
// the type-ahead lookup endpoint.
type TokenSearcher interface {
	SearchTokens(ctx context.Context, query string, limit int) []pricingDomain.SearchResult
}
