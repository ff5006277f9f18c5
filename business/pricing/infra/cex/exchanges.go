package cex

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tokenlens/tokenlens/internal/logger"
)

var errEmptyTicker = errors.New("empty ticker payload")

// NewBinance creates the Binance spot ticker adapter.
func NewBinance(cfg AdapterConfig, log logger.LoggerInterface) (*Adapter, error) {
	return newAdapter(endpointSpec{
		id:      "binance",
		baseURL: "https://api.binance.com",
		request: func(symbol string) (string, map[string]string) {
			return "/api/v3/ticker/24hr", map[string]string{
				"symbol": strings.ToUpper(symbol) + "USDT",
			}
		},
		parse: func(body []byte) (*tickerData, error) {
			var t struct {
				LastPrice          string `json:"lastPrice"`
				QuoteVolume        string `json:"quoteVolume"`
				BidPrice           string `json:"bidPrice"`
				AskPrice           string `json:"askPrice"`
				PriceChangePercent string `json:"priceChangePercent"`
			}
			if err := json.Unmarshal(body, &t); err != nil {
				return nil, err
			}
			if t.LastPrice == "" {
				return nil, errEmptyTicker
			}
			return &tickerData{
				Price:     parseDec(t.LastPrice),
				VolumeUSD: parseDec(t.QuoteVolume),
				Bid:       parseDec(t.BidPrice),
				Ask:       parseDec(t.AskPrice),
				Change24h: parseDec(t.PriceChangePercent),
			}, nil
		},
	}, cfg, log)
}

// NewOKX creates the OKX spot ticker adapter.
func NewOKX(cfg AdapterConfig, log logger.LoggerInterface) (*Adapter, error) {
	return newAdapter(endpointSpec{
		id:      "okx",
		baseURL: "https://www.okx.com",
		request: func(symbol string) (string, map[string]string) {
			return "/api/v5/market/ticker", map[string]string{
				"instId": strings.ToUpper(symbol) + "-USDT",
			}
		},
		parse: func(body []byte) (*tickerData, error) {
			var resp struct {
				Data []struct {
					Last      string `json:"last"`
					VolCcy24h string `json:"volCcy24h"`
					Open24h   string `json:"open24h"`
					BidPx     string `json:"bidPx"`
					AskPx     string `json:"askPx"`
				} `json:"data"`
			}
			if err := json.Unmarshal(body, &resp); err != nil {
				return nil, err
			}
			if len(resp.Data) == 0 {
				return nil, errEmptyTicker
			}
			t := resp.Data[0]
			price := parseDec(t.Last)
			return &tickerData{
				Price:     price,
				VolumeUSD: parseDec(t.VolCcy24h),
				Bid:       parseDec(t.BidPx),
				Ask:       parseDec(t.AskPx),
				Change24h: pctFromOpen(price, parseDec(t.Open24h)),
			}, nil
		},
	}, cfg, log)
}

// NewBybit creates the Bybit spot ticker adapter.
func NewBybit(cfg AdapterConfig, log logger.LoggerInterface) (*Adapter, error) {
	return newAdapter(endpointSpec{
		id:      "bybit",
		baseURL: "https://api.bybit.com",
		request: func(symbol string) (string, map[string]string) {
			return "/v5/market/tickers", map[string]string{
				"category": "spot",
				"symbol":   strings.ToUpper(symbol) + "USDT",
			}
		},
		parse: func(body []byte) (*tickerData, error) {
			var resp struct {
				Result struct {
					List []struct {
						LastPrice    string `json:"lastPrice"`
						Turnover24h  string `json:"turnover24h"`
						Price24hPcnt string `json:"price24hPcnt"`
						Bid1Price    string `json:"bid1Price"`
						Ask1Price    string `json:"ask1Price"`
					} `json:"list"`
				} `json:"result"`
			}
			if err := json.Unmarshal(body, &resp); err != nil {
				return nil, err
			}
			if len(resp.Result.List) == 0 {
				return nil, errEmptyTicker
			}
			t := resp.Result.List[0]
			return &tickerData{
				Price:     parseDec(t.LastPrice),
				VolumeUSD: parseDec(t.Turnover24h),
				Bid:       parseDec(t.Bid1Price),
				Ask:       parseDec(t.Ask1Price),
				// Bybit reports change as a ratio.
				Change24h: scale(parseDec(t.Price24hPcnt), 100),
			}, nil
		},
	}, cfg, log)
}

// NewKraken creates the Kraken spot ticker adapter. Kraken spells BTC
// as XBT.
func NewKraken(cfg AdapterConfig, log logger.LoggerInterface) (*Adapter, error) {
	return newAdapter(endpointSpec{
		id:      "kraken",
		baseURL: "https://api.kraken.com",
		request: func(symbol string) (string, map[string]string) {
			base := strings.ToUpper(symbol)
			if base == "BTC" {
				base = "XBT"
			}
			return "/0/public/Ticker", map[string]string{"pair": base + "USDT"}
		},
		parse: func(body []byte) (*tickerData, error) {
			var resp struct {
				Error  []string `json:"error"`
				Result map[string]struct {
					C []string `json:"c"` // last trade [price, volume]
					V []string `json:"v"` // base volume [today, 24h]
					O string   `json:"o"` // open
					B []string `json:"b"` // bid [price, ...]
					A []string `json:"a"` // ask [price, ...]
				} `json:"result"`
			}
			if err := json.Unmarshal(body, &resp); err != nil {
				return nil, err
			}
			if len(resp.Error) > 0 || len(resp.Result) == 0 {
				return nil, errEmptyTicker
			}
			for _, t := range resp.Result {
				data := &tickerData{}
				if len(t.C) > 0 {
					data.Price = parseDec(t.C[0])
				}
				// Volume is in base units; convert via last price.
				if len(t.V) > 1 && data.Price.Valid {
					if vol := parseDec(t.V[1]); vol.Valid {
						data.VolumeUSD = decimal.NullDecimal{
							Decimal: vol.Decimal.Mul(data.Price.Decimal),
							Valid:   true,
						}
					}
				}
				if len(t.B) > 0 {
					data.Bid = parseDec(t.B[0])
				}
				if len(t.A) > 0 {
					data.Ask = parseDec(t.A[0])
				}
				data.Change24h = pctFromOpen(data.Price, parseDec(t.O))
				return data, nil
			}
			return nil, errEmptyTicker
		},
	}, cfg, log)
}

// NewKuCoin creates the KuCoin spot ticker adapter.
func NewKuCoin(cfg AdapterConfig, log logger.LoggerInterface) (*Adapter, error) {
	return newAdapter(endpointSpec{
		id:      "kucoin",
		baseURL: "https://api.kucoin.com",
		request: func(symbol string) (string, map[string]string) {
			return "/api/v1/market/stats", map[string]string{
				"symbol": strings.ToUpper(symbol) + "-USDT",
			}
		},
		parse: func(body []byte) (*tickerData, error) {
			var resp struct {
				Data struct {
					Last       string `json:"last"`
					VolValue   string `json:"volValue"`
					ChangeRate string `json:"changeRate"`
					Buy        string `json:"buy"`
					Sell       string `json:"sell"`
				} `json:"data"`
			}
			if err := json.Unmarshal(body, &resp); err != nil {
				return nil, err
			}
			if resp.Data.Last == "" {
				return nil, errEmptyTicker
			}
			return &tickerData{
				Price:     parseDec(resp.Data.Last),
				VolumeUSD: parseDec(resp.Data.VolValue),
				Bid:       parseDec(resp.Data.Buy),
				Ask:       parseDec(resp.Data.Sell),
				Change24h: scale(parseDec(resp.Data.ChangeRate), 100),
			}, nil
		},
	}, cfg, log)
}

// NewGateio creates the Gate.io spot ticker adapter.
func NewGateio(cfg AdapterConfig, log logger.LoggerInterface) (*Adapter, error) {
	return newAdapter(endpointSpec{
		id:      "gateio",
		baseURL: "https://api.gateio.ws",
		request: func(symbol string) (string, map[string]string) {
			return "/api/v4/spot/tickers", map[string]string{
				"currency_pair": strings.ToUpper(symbol) + "_USDT",
			}
		},
		parse: func(body []byte) (*tickerData, error) {
			var tickers []struct {
				Last             string `json:"last"`
				QuoteVolume      string `json:"quote_volume"`
				ChangePercentage string `json:"change_percentage"`
				HighestBid       string `json:"highest_bid"`
				LowestAsk        string `json:"lowest_ask"`
			}
			if err := json.Unmarshal(body, &tickers); err != nil {
				return nil, err
			}
			if len(tickers) == 0 {
				return nil, errEmptyTicker
			}
			t := tickers[0]
			return &tickerData{
				Price:     parseDec(t.Last),
				VolumeUSD: parseDec(t.QuoteVolume),
				Bid:       parseDec(t.HighestBid),
				Ask:       parseDec(t.LowestAsk),
				Change24h: parseDec(t.ChangePercentage),
			}, nil
		},
	}, cfg, log)
}

// NewHTX creates the HTX (Huobi) spot ticker adapter.
func NewHTX(cfg AdapterConfig, log logger.LoggerInterface) (*Adapter, error) {
	return newAdapter(endpointSpec{
		id:      "htx",
		baseURL: "https://api.huobi.pro",
		request: func(symbol string) (string, map[string]string) {
			return "/market/detail/merged", map[string]string{
				"symbol": strings.ToLower(symbol) + "usdt",
			}
		},
		parse: func(body []byte) (*tickerData, error) {
			var resp struct {
				Status string `json:"status"`
				Tick   struct {
					Close float64   `json:"close"`
					Vol   float64   `json:"vol"` // base volume
					Open  float64   `json:"open"`
					Bid   []float64 `json:"bid"`
					Ask   []float64 `json:"ask"`
				} `json:"tick"`
			}
			if err := json.Unmarshal(body, &resp); err != nil {
				return nil, err
			}
			if resp.Status != "ok" || resp.Tick.Close <= 0 {
				return nil, errEmptyTicker
			}
			data := &tickerData{
				Price:     decFloat(resp.Tick.Close),
				VolumeUSD: decFloat(resp.Tick.Vol * resp.Tick.Close),
			}
			if len(resp.Tick.Bid) > 0 {
				data.Bid = decFloat(resp.Tick.Bid[0])
			}
			if len(resp.Tick.Ask) > 0 {
				data.Ask = decFloat(resp.Tick.Ask[0])
			}
			if resp.Tick.Open > 0 {
				data.Change24h = pctFromOpen(data.Price, decFloat(resp.Tick.Open))
			}
			return data, nil
		},
	}, cfg, log)
}

// NewMEXC creates the MEXC spot ticker adapter. MEXC mirrors the
// Binance v3 payload shape.
func NewMEXC(cfg AdapterConfig, log logger.LoggerInterface) (*Adapter, error) {
	return newAdapter(endpointSpec{
		id:      "mexc",
		baseURL: "https://api.mexc.com",
		request: func(symbol string) (string, map[string]string) {
			return "/api/v3/ticker/24hr", map[string]string{
				"symbol": strings.ToUpper(symbol) + "USDT",
			}
		},
		parse: func(body []byte) (*tickerData, error) {
			var t struct {
				LastPrice          string `json:"lastPrice"`
				QuoteVolume        string `json:"quoteVolume"`
				BidPrice           string `json:"bidPrice"`
				AskPrice           string `json:"askPrice"`
				PriceChangePercent string `json:"priceChangePercent"`
			}
			if err := json.Unmarshal(body, &t); err != nil {
				return nil, err
			}
			if t.LastPrice == "" {
				return nil, errEmptyTicker
			}
			return &tickerData{
				Price:     parseDec(t.LastPrice),
				VolumeUSD: parseDec(t.QuoteVolume),
				Bid:       parseDec(t.BidPrice),
				Ask:       parseDec(t.AskPrice),
				Change24h: parseDec(t.PriceChangePercent),
			}, nil
		},
	}, cfg, log)
}

// NewBitget creates the Bitget spot ticker adapter.
func NewBitget(cfg AdapterConfig, log logger.LoggerInterface) (*Adapter, error) {
	return newAdapter(endpointSpec{
		id:      "bitget",
		baseURL: "https://api.bitget.com",
		request: func(symbol string) (string, map[string]string) {
			return "/api/v2/spot/market/tickers", map[string]string{
				"symbol": strings.ToUpper(symbol) + "USDT",
			}
		},
		parse: func(body []byte) (*tickerData, error) {
			var resp struct {
				Data []struct {
					LastPr      string `json:"lastPr"`
					QuoteVolume string `json:"quoteVolume"`
					Open        string `json:"open"`
					BidPr       string `json:"bidPr"`
					AskPr       string `json:"askPr"`
				} `json:"data"`
			}
			if err := json.Unmarshal(body, &resp); err != nil {
				return nil, err
			}
			if len(resp.Data) == 0 {
				return nil, errEmptyTicker
			}
			t := resp.Data[0]
			price := parseDec(t.LastPr)
			return &tickerData{
				Price:     price,
				VolumeUSD: parseDec(t.QuoteVolume),
				Bid:       parseDec(t.BidPr),
				Ask:       parseDec(t.AskPr),
				Change24h: pctFromOpen(price, parseDec(t.Open)),
			}, nil
		},
	}, cfg, log)
}

// NewBingX creates the BingX spot ticker adapter.
func NewBingX(cfg AdapterConfig, log logger.LoggerInterface) (*Adapter, error) {
	return newAdapter(endpointSpec{
		id:      "bingx",
		baseURL: "https://open-api.bingx.com",
		request: func(symbol string) (string, map[string]string) {
			return "/openApi/spot/v1/ticker/24hr", map[string]string{
				"symbol": strings.ToUpper(symbol) + "-USDT",
			}
		},
		parse: func(body []byte) (*tickerData, error) {
			var resp struct {
				Data struct {
					LastPrice          json.Number `json:"lastPrice"`
					QuoteVolume        json.Number `json:"quoteVolume"`
					BidPrice           json.Number `json:"bidPrice"`
					AskPrice           json.Number `json:"askPrice"`
					PriceChangePercent json.Number `json:"priceChangePercent"`
				} `json:"data"`
			}
			if err := json.Unmarshal(body, &resp); err != nil {
				return nil, err
			}
			if resp.Data.LastPrice == "" {
				return nil, errEmptyTicker
			}
			return &tickerData{
				Price:     parseDec(resp.Data.LastPrice.String()),
				VolumeUSD: parseDec(resp.Data.QuoteVolume.String()),
				Bid:       parseDec(resp.Data.BidPrice.String()),
				Ask:       parseDec(resp.Data.AskPrice.String()),
				Change24h: parseDec(resp.Data.PriceChangePercent.String()),
			}, nil
		},
	}, cfg, log)
}

// NewAdapters builds the full adapter set in tier order. baseURLs
// overrides endpoint bases per exchange identifier, used in tests and
// self-hosted proxies.
func NewAdapters(cfg AdapterConfig, baseURLs map[string]string, log logger.LoggerInterface) ([]*Adapter, error) {
	constructors := []struct {
		id string
		fn func(AdapterConfig, logger.LoggerInterface) (*Adapter, error)
	}{
		{"binance", NewBinance},
		{"okx", NewOKX},
		{"bybit", NewBybit},
		{"kraken", NewKraken},
		{"kucoin", NewKuCoin},
		{"gateio", NewGateio},
		{"htx", NewHTX},
		{"mexc", NewMEXC},
		{"bitget", NewBitget},
		{"bingx", NewBingX},
	}

	adapters := make([]*Adapter, 0, len(constructors))
	for _, c := range constructors {
		acfg := cfg
		if override, ok := baseURLs[c.id]; ok {
			acfg.BaseURL = override
		}
		a, err := c.fn(acfg, log)
		if err != nil {
			return nil, err
		}
		adapters = append(adapters, a)
	}
	return adapters, nil
}
