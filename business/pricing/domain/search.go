package domain

import "github.com/shopspring/decimal"

// SearchResult is one token candidate returned by a free-text search.
type SearchResult struct {
	Address  string
	Chain    Chain
	Name     string
	Symbol   string
	PriceUSD decimal.NullDecimal
}
