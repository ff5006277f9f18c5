// Package dexscreener implements the DEX pool provider over the
// DexScreener public API.
package dexscreener

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
)

const (
	tracerName     = "github.com/tokenlens/tokenlens/business/pricing/infra/dexscreener"
	defaultBaseURL = "https://api.dexscreener.com"
)

// Ensure Provider implements both pricing ports.
var _ app.PoolProvider = (*Provider)(nil)

// Config holds provider tuning.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Provider fetches token pools and token search results from
// DexScreener.
type Provider struct {
	client httpclient.Client
	logger logger.LoggerInterface
	tracer trace.Tracer
	now    func() time.Time
}

// NewProvider creates a DexScreener provider.
func NewProvider(cfg Config, log logger.LoggerInterface) (*Provider, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	client, err := httpclient.NewInstrumentedClient(
		httpclient.WithProviderName("dexscreener"),
		httpclient.WithBaseURL(baseURL),
		httpclient.WithRequestTimeout(timeout),
	)
	if err != nil {
		return nil, err
	}

	return &Provider{
		client: client,
		logger: log,
		tracer: otel.Tracer(tracerName),
		now:    time.Now,
	}, nil
}

// FetchPools returns all pools trading the token, keeping only pools on
// supported chains. Provider failure yields an empty list.
func (p *Provider) FetchPools(ctx context.Context, address string, filter *domain.Chain) []domain.DexPoolQuote {
	ctx, span := p.tracer.Start(ctx, "dexscreener.fetch_pools",
		trace.WithAttributes(attribute.String("token.address", address)))
	defer span.End()

	address = strings.ToLower(strings.TrimSpace(address))

	var payload tokenPairsResponse
	resp, err := p.client.NewRequest().
		SetHeader("Accept", "application/json").
		SetResult(&payload).
		Get(ctx, "/latest/dex/tokens/"+address)
	if err != nil || resp.IsError() {
		p.logger.Warn(ctx, "dexscreener pools request failed",
			"address", address, "error", err)
		return nil
	}

	pools := make([]domain.DexPoolQuote, 0, len(payload.Pairs))
	for _, pair := range payload.Pairs {
		chain := domain.Chain(pair.ChainID)
		if !domain.IsSupportedChain(chain) {
			continue
		}
		if filter != nil && chain != *filter {
			continue
		}
		pools = append(pools, pair.toQuote(chain))
	}
	return pools
}

// SearchTokens returns up to limit distinct tokens matching a free-text
// query, deduplicated by chain and base token address.
func (p *Provider) SearchTokens(ctx context.Context, query string, limit int) []domain.SearchResult {
	ctx, span := p.tracer.Start(ctx, "dexscreener.search_tokens")
	defer span.End()

	if limit <= 0 {
		limit = 20
	}

	var payload tokenPairsResponse
	resp, err := p.client.NewRequest().
		SetHeader("Accept", "application/json").
		SetQueryParam("q", query).
		SetResult(&payload).
		Get(ctx, "/latest/dex/search")
	if err != nil || resp.IsError() {
		p.logger.Warn(ctx, "dexscreener search request failed",
			"query", query, "error", err)
		return nil
	}

	seen := make(map[string]struct{})
	results := make([]domain.SearchResult, 0, limit)
	for _, pair := range payload.Pairs {
		chain := domain.Chain(pair.ChainID)
		if !domain.IsSupportedChain(chain) {
			continue
		}
		key := string(chain) + ":" + pair.BaseToken.Address
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		results = append(results, domain.SearchResult{
			Address:  pair.BaseToken.Address,
			Chain:    chain,
			Name:     pair.BaseToken.Name,
			Symbol:   pair.BaseToken.Symbol,
			PriceUSD: parseDec(pair.PriceUsd),
		})
		if len(results) >= limit {
			break
		}
	}
	return results
}

func parseDec(s string) decimal.NullDecimal {
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}
