package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// CexQuote is one exchange's view of the token, built fresh on every
// aggregation request.
type CexQuote struct {
	Exchange      string // display name
	ExchangeID    string // normalized identifier
	PriceUSD      decimal.NullDecimal
	Volume24hUSD  decimal.NullDecimal
	Bid           decimal.NullDecimal
	Ask           decimal.NullDecimal
	SpreadPercent decimal.NullDecimal
	Change24hPct  decimal.NullDecimal
	Tier          Tier
	TrustScore    float64
	TradeURL      string
}

// HasPrice reports whether the quote carries a positive finite price.
func (q CexQuote) HasPrice() bool {
	return q.PriceUSD.Valid && q.PriceUSD.Decimal.IsPositive()
}

// cexInfo pairs a static tier with the canonical display name.
type cexInfo struct {
	tier Tier
	name string
}

// cexTiers is the static exchange classification. Tier 1 is the top
// exchanges by volume and regulation, tier 2 large reputable venues,
// tier 3 the rest. Unknown exchanges fall back to tier 3.
var cexTiers = map[string]cexInfo{
	// Tier 1
	"binance":  {Tier1, "Binance"},
	"coinbase": {Tier1, "Coinbase"},
	"kraken":   {Tier1, "Kraken"},
	"okx":      {Tier1, "OKX"},
	"bybit":    {Tier1, "Bybit"},

	// Tier 2
	"kucoin":    {Tier2, "KuCoin"},
	"gateio":    {Tier2, "Gate.io"},
	"htx":       {Tier2, "HTX"},
	"bitfinex":  {Tier2, "Bitfinex"},
	"cryptocom": {Tier2, "Crypto.com"},
	"bitstamp":  {Tier2, "Bitstamp"},
	"gemini":    {Tier2, "Gemini"},

	// Tier 3
	"mexc":   {Tier3, "MEXC"},
	"bitget": {Tier3, "Bitget"},
	"lbank":  {Tier3, "LBank"},
	"bingx":  {Tier3, "BingX"},
	"phemex": {Tier3, "Phemex"},
}

// CexInfo resolves the static tier and display name for an exchange
// identifier. Unknown exchanges keep their raw name at tier 3.
func CexInfo(exchangeID string) (Tier, string) {
	key := tierLookupKey(exchangeID)
	if info, ok := cexTiers[key]; ok {
		return info.tier, info.name
	}
	return Tier3, exchangeID
}

// tierLookupKey strips spaces, dots and dashes for table lookups.
func tierLookupKey(id string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '.', '-':
			return -1
		}
		return r
	}, strings.ToLower(id))
}

// NormalizeExchangeName produces the dedup key for merging quotes from
// different sources: case/whitespace-insensitive with marketing
// suffixes removed, so "Binance Exchange" collapses with "binance".
func NormalizeExchangeName(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, " ", "")
	for _, suffix := range []string{"exchange", "international", "global"} {
		key = strings.TrimSuffix(key, suffix)
	}
	return key
}

// CexTrustScore blends volume, static tier, and bid-ask spread into a
// 0-100 composite. Unknown spread contributes a neutral 50.
func CexTrustScore(volume24hUSD decimal.NullDecimal, tier Tier, spreadPercent decimal.NullDecimal) float64 {
	volume := 0.0
	if volume24hUSD.Valid {
		volume = volume24hUSD.Decimal.InexactFloat64()
	}
	volumeScore := min(volume/10_000_000, 100)

	spreadScore := 50.0
	if spreadPercent.Valid {
		spreadScore = max(0, 100-spreadPercent.Decimal.InexactFloat64()*1000)
	}

	return volumeScore*0.40 + TierScore(tier)*0.40 + spreadScore*0.20
}

// SortCexQuotes orders ascending by tier, then descending by trust
// score; ties keep a stable order so merges are deterministic.
func SortCexQuotes(quotes []CexQuote) {
	sort.SliceStable(quotes, func(i, j int) bool {
		if quotes[i].Tier != quotes[j].Tier {
			return quotes[i].Tier < quotes[j].Tier
		}
		return quotes[i].TrustScore > quotes[j].TrustScore
	})
}

// tradeURLTemplates maps an exchange identifier to its spot trade page.
// %[1]s is the upper-case base symbol, %[2]s the lower-case one; the
// quote asset is assumed USDT.
var tradeURLTemplates = map[string]string{
	"binance":   "https://www.binance.com/en/trade/%[1]s_USDT?type=spot",
	"okx":       "https://www.okx.com/trade-spot/%[2]s-usdt",
	"bybit":     "https://www.bybit.com/trade/spot/%[1]s/USDT",
	"kucoin":    "https://www.kucoin.com/trade/%[1]s-USDT",
	"gateio":    "https://www.gate.io/trade/%[1]s_USDT",
	"htx":       "https://www.htx.com/trade/%[2]s_usdt",
	"mexc":      "https://www.mexc.com/exchange/%[1]s_USDT",
	"bitget":    "https://www.bitget.com/spot/%[1]sUSDT",
	"kraken":    "https://pro.kraken.com/app/trade/%[2]s-usdt",
	"coinbase":  "https://www.coinbase.com/advanced-trade/spot/%[1]s-USDT",
	"cryptocom": "https://crypto.com/exchange/trade/%[1]s_USDT",
	"bitstamp":  "https://www.bitstamp.net/markets/%[2]s/usdt/",
	"gemini":    "https://exchange.gemini.com/trade/%[1]sUSDT",
	"bitfinex":  "https://trading.bitfinex.com/t/%[1]s:USDT",
	"lbank":     "https://www.lbank.com/trade/%[2]s_usdt",
	"bingx":     "https://bingx.com/en-us/spot/%[1]sUSDT/",
	"phemex":    "https://phemex.com/spot/trade/%[1]sUSDT",
}

// TradeURL builds the spot trade link for an exchange and base symbol.
// Unknown exchanges fall back to a generic coin page.
func TradeURL(exchangeID, symbol string) string {
	upper := strings.ToUpper(symbol)
	lower := strings.ToLower(symbol)

	if tpl, ok := tradeURLTemplates[tierLookupKey(exchangeID)]; ok {
		return fmt.Sprintf(tpl, upper, lower)
	}
	return fmt.Sprintf("https://www.coingecko.com/en/coins/%s", lower)
}
