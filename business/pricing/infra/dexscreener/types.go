package dexscreener

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tokenlens/tokenlens/business/pricing/domain"
)

// tokenPairsResponse is the envelope for both the token-pairs and
// search endpoints.
type tokenPairsResponse struct {
	SchemaVersion string     `json:"schemaVersion"`
	Pairs         []pairData `json:"pairs"`
}

// pairData is one trading pair as DexScreener reports it. Numeric
// strings stay strings until conversion; liquidity is a pointer since
// the API omits it for some pairs.
type pairData struct {
	ChainID       string          `json:"chainId"`
	DexID         string          `json:"dexId"`
	URL           string          `json:"url"`
	PairAddress   string          `json:"pairAddress"`
	BaseToken     wireToken       `json:"baseToken"`
	QuoteToken    wireToken       `json:"quoteToken"`
	PriceUsd      string          `json:"priceUsd"`
	Txns          pairTxns        `json:"txns"`
	Volume        pairVolume      `json:"volume"`
	PriceChange   pairPriceChange `json:"priceChange"`
	Liquidity     *pairLiquidity  `json:"liquidity"`
	Fdv           float64         `json:"fdv"`
	PairCreatedAt int64           `json:"pairCreatedAt"` // unix millis
}

type wireToken struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
}

type pairLiquidity struct {
	Usd   float64 `json:"usd"`
	Base  float64 `json:"base"`
	Quote float64 `json:"quote"`
}

type txnSummary struct {
	Buys  int `json:"buys"`
	Sells int `json:"sells"`
}

type pairTxns struct {
	H24 txnSummary `json:"h24"`
}

type pairVolume struct {
	H24 float64 `json:"h24"`
}

type pairPriceChange struct {
	H1  float64 `json:"h1"`
	H6  float64 `json:"h6"`
	H24 float64 `json:"h24"`
}

// toQuote converts the wire pair into the domain pool quote. Age, tier,
// and score are filled in by the pool service.
func (p pairData) toQuote(chain domain.Chain) domain.DexPoolQuote {
	q := domain.DexPoolQuote{
		Chain:        chain,
		DexID:        p.DexID,
		DexName:      domain.DexDisplayName(p.DexID),
		PairAddress:  p.PairAddress,
		PairURL:      p.URL,
		PriceUSD:     parseDec(p.PriceUsd),
		Volume24hUSD: fromFloat(p.Volume.H24),
		PriceChange: domain.PriceChange{
			H1:  fromFloat(p.PriceChange.H1),
			H6:  fromFloat(p.PriceChange.H6),
			H24: fromFloat(p.PriceChange.H24),
		},
		Txns24h: domain.TxnCounts{
			Buys:  p.Txns.H24.Buys,
			Sells: p.Txns.H24.Sells,
			Total: p.Txns.H24.Buys + p.Txns.H24.Sells,
		},
		FDVUSD: fromFloat(p.Fdv),
		BaseToken: domain.TokenInfo{
			Address: p.BaseToken.Address,
			Symbol:  p.BaseToken.Symbol,
			Name:    p.BaseToken.Name,
		},
		QuoteToken: domain.TokenInfo{
			Address: p.QuoteToken.Address,
			Symbol:  p.QuoteToken.Symbol,
			Name:    p.QuoteToken.Name,
		},
	}
	if p.Liquidity != nil {
		q.LiquidityUSD = fromFloat(p.Liquidity.Usd)
	}
	if p.PairCreatedAt > 0 {
		created := time.UnixMilli(p.PairCreatedAt).UTC()
		q.CreatedAt = &created
	}
	return q
}

func fromFloat(f float64) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.NewFromFloat(f), Valid: true}
}
