// Package coingecko implements the token metadata provider over the
// CoinGecko v3 API.
package coingecko

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tokenlens/tokenlens/business/pricing/app"
	"github.com/tokenlens/tokenlens/business/pricing/domain"
	"github.com/tokenlens/tokenlens/internal/httpclient"
	"github.com/tokenlens/tokenlens/internal/logger"
	"github.com/tokenlens/tokenlens/internal/ratelimit"
)

const (
	tracerName     = "github.com/tokenlens/tokenlens/business/pricing/infra/coingecko"
	defaultBaseURL = "https://api.coingecko.com/api/v3"

	apiKeyHeader = "x-cg-demo-api-key"
)

// platformByChain maps network names to CoinGecko asset platform ids.
var platformByChain = map[domain.Chain]string{
	domain.ChainEthereum:  "ethereum",
	domain.ChainBSC:       "binance-smart-chain",
	domain.ChainPolygon:   "polygon-pos",
	domain.ChainArbitrum:  "arbitrum-one",
	domain.ChainOptimism:  "optimistic-ethereum",
	domain.ChainBase:      "base",
	domain.ChainSolana:    "solana",
	domain.ChainAvalanche: "avalanche",
	domain.ChainFantom:    "fantom",
	domain.ChainZkSync:    "zksync",
}

// dexNameMarkers flag market names CoinGecko reports for on-chain
// venues; everything else counts as a centralized exchange.
var dexNameMarkers = []string{
	"Uniswap", "PancakeSwap", "Raydium", "Sushiswap",
	"Curve", "Balancer", "Orca", "Jupiter",
}

// Ensure Provider implements MetadataProvider.
var _ app.MetadataProvider = (*Provider)(nil)

// Config holds provider tuning.
type Config struct {
	BaseURL           string
	APIKey            string
	RequestsPerMinute int
	Timeout           time.Duration
}

// Provider fetches token metadata and market tickers from CoinGecko.
// All calls go through a shared limiter since the free tier is tightly
// rate limited.
type Provider struct {
	client  httpclient.Client
	limiter *ratelimit.Limiter
	apiKey  string
	logger  logger.LoggerInterface
	tracer  trace.Tracer
}

// NewProvider creates a CoinGecko provider.
func NewProvider(cfg Config, log logger.LoggerInterface) (*Provider, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = 30
	}

	client, err := httpclient.NewInstrumentedClient(
		httpclient.WithProviderName("coingecko"),
		httpclient.WithBaseURL(baseURL),
		httpclient.WithRequestTimeout(timeout),
	)
	if err != nil {
		return nil, err
	}

	return &Provider{
		client:  client,
		limiter: ratelimit.New(rpm),
		apiKey:  cfg.APIKey,
		logger:  log,
		tracer:  otel.Tracer(tracerName),
	}, nil
}

// FetchToken resolves the token's metadata by contract address, or nil
// when CoinGecko does not know the contract or is unavailable.
func (p *Provider) FetchToken(ctx context.Context, chain domain.Chain, address string) *domain.TokenMetadata {
	ctx, span := p.tracer.Start(ctx, "coingecko.fetch_token",
		trace.WithAttributes(
			attribute.String("token.chain", string(chain)),
			attribute.String("token.address", address),
		))
	defer span.End()

	platform, ok := platformByChain[chain]
	if !ok {
		return nil
	}
	address = strings.ToLower(strings.TrimSpace(address))

	if err := p.limiter.Wait(ctx); err != nil {
		return nil
	}

	req := p.client.NewRequest().SetHeader("Accept", "application/json")
	if p.apiKey != "" {
		req.SetHeader(apiKeyHeader, p.apiKey)
	}

	var payload contractResponse
	resp, err := req.SetResult(&payload).
		Get(ctx, "/coins/"+platform+"/contract/"+address)
	if err != nil || resp.IsError() {
		p.logger.Debug(ctx, "coingecko contract lookup failed",
			"chain", chain, "address", address, "error", err)
		return nil
	}

	return payload.toMetadata()
}

// contractResponse is the subset of the contract endpoint payload the
// aggregator consumes.
type contractResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Sym   string `json:"symbol"`
	Image struct {
		Thumb string `json:"thumb"`
		Small string `json:"small"`
	} `json:"image"`
	MarketData struct {
		CurrentPrice struct {
			USD *float64 `json:"usd"`
		} `json:"current_price"`
	} `json:"market_data"`
	Tickers []struct {
		Market struct {
			Name string `json:"name"`
		} `json:"market"`
		Target        string `json:"target"`
		ConvertedLast struct {
			USD *float64 `json:"usd"`
		} `json:"converted_last"`
		ConvertedVolume struct {
			USD *float64 `json:"usd"`
		} `json:"converted_volume"`
		IsAnomaly bool `json:"is_anomaly"`
		IsStale   bool `json:"is_stale"`
	} `json:"tickers"`
}

func (r contractResponse) toMetadata() *domain.TokenMetadata {
	meta := &domain.TokenMetadata{
		ID:       r.ID,
		Name:     r.Name,
		Symbol:   strings.ToUpper(r.Sym),
		PriceUSD: fromFloatPtr(r.MarketData.CurrentPrice.USD),
	}
	if r.Image.Small != "" {
		meta.ImageURL = r.Image.Small
	} else {
		meta.ImageURL = r.Image.Thumb
	}

	meta.Tickers = make([]domain.MarketTicker, 0, len(r.Tickers))
	for _, t := range r.Tickers {
		meta.Tickers = append(meta.Tickers, domain.MarketTicker{
			MarketName:   t.Market.Name,
			TargetPairID: t.Target,
			PriceUSD:     fromFloatPtr(t.ConvertedLast.USD),
			VolumeUSD:    fromFloatPtr(t.ConvertedVolume.USD),
			IsCex:        !isDexMarket(t.Market.Name) && !t.IsAnomaly && !t.IsStale,
		})
	}
	return meta
}

func isDexMarket(marketName string) bool {
	for _, marker := range dexNameMarkers {
		if strings.Contains(marketName, marker) {
			return true
		}
	}
	return false
}

func fromFloatPtr(f *float64) decimal.NullDecimal {
	if f == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: decimal.NewFromFloat(*f), Valid: true}
}
