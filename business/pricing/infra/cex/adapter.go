// Package cex hosts the REST ticker adapters for centralized exchanges.
// Every adapter shares the same request plumbing and circuit breaker;
// exchanges differ only in their endpoint spec and payload shape.
package cex

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/tokenlens/tokenlens/business/pricing/app"
	"github.com/tokenlens/tokenlens/business/pricing/domain"
	"github.com/tokenlens/tokenlens/internal/apperror"
	"github.com/tokenlens/tokenlens/internal/circuitbreaker"
	"github.com/tokenlens/tokenlens/internal/httpclient"
	"github.com/tokenlens/tokenlens/internal/logger"
)

const tracerName = "github.com/tokenlens/tokenlens/business/pricing/infra/cex"

// Ensure Adapter implements CEXProvider.
var _ app.CEXProvider = (*Adapter)(nil)

// tickerData is the normalized intermediate ticker view every
// exchange's parser produces.
type tickerData struct {
	Price     decimal.NullDecimal
	VolumeUSD decimal.NullDecimal
	Bid       decimal.NullDecimal
	Ask       decimal.NullDecimal
	Change24h decimal.NullDecimal
}

// endpointSpec describes one exchange's ticker endpoint.
type endpointSpec struct {
	id      string
	baseURL string
	// request maps a base symbol to path and query parameters.
	request func(symbol string) (path string, query map[string]string)
	// parse extracts normalized ticker fields from the response body.
	parse func(body []byte) (*tickerData, error)
}

// AdapterConfig holds shared adapter tuning.
type AdapterConfig struct {
	BaseURL             string // override the exchange's default base URL
	Timeout             time.Duration
	BreakerMaxFailures  uint32
	BreakerOpenInterval time.Duration
}

// Adapter is one exchange's ticker adapter over the shared HTTP stack.
type Adapter struct {
	spec    endpointSpec
	client  httpclient.Client
	breaker *gobreaker.CircuitBreaker[*tickerData]
	logger  logger.LoggerInterface
	tracer  trace.Tracer
}

func newAdapter(spec endpointSpec, cfg AdapterConfig, log logger.LoggerInterface) (*Adapter, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = spec.baseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	client, err := httpclient.NewInstrumentedClient(
		httpclient.WithProviderName("cex-"+spec.id),
		httpclient.WithBaseURL(baseURL),
		httpclient.WithRequestTimeout(timeout),
	)
	if err != nil {
		return nil, err
	}

	cbCfg := circuitbreaker.DefaultConfig("cex-" + spec.id)
	if cfg.BreakerMaxFailures > 0 {
		cbCfg.MaxFailures = cfg.BreakerMaxFailures
	}
	if cfg.BreakerOpenInterval > 0 {
		cbCfg.Timeout = cfg.BreakerOpenInterval
	}
	cbCfg.OnStateChange = func(name string, from, to gobreaker.State) {
		log.Info(context.Background(), "circuit breaker state change",
			"breaker", name, "from", from.String(), "to", to.String())
	}

	return &Adapter{
		spec:    spec,
		client:  client,
		breaker: circuitbreaker.New[*tickerData](cbCfg),
		logger:  log,
		tracer:  otel.Tracer(tracerName),
	}, nil
}

// ExchangeID returns the adapter's normalized exchange identifier.
func (a *Adapter) ExchangeID() string {
	return a.spec.id
}

// FetchQuote retrieves the spot ticker for a base symbol. Any failure
// resolves to nil so one exchange cannot poison the fan-out.
func (a *Adapter) FetchQuote(ctx context.Context, symbol string) *domain.CexQuote {
	ctx, span := a.tracer.Start(ctx, "cex.fetch_quote")
	defer span.End()

	data, err := a.breaker.Execute(func() (*tickerData, error) {
		return a.fetch(ctx, symbol)
	})
	if err != nil {
		a.logger.Debug(ctx, "ticker fetch failed",
			"exchange", a.spec.id, "symbol", symbol, "error", err)
		return nil
	}
	if data == nil || !data.Price.Valid || !data.Price.Decimal.IsPositive() {
		return nil
	}

	tier, name := domain.CexInfo(a.spec.id)
	return &domain.CexQuote{
		Exchange:      name,
		ExchangeID:    a.spec.id,
		PriceUSD:      data.Price,
		Volume24hUSD:  data.VolumeUSD,
		Bid:           data.Bid,
		Ask:           data.Ask,
		SpreadPercent: spreadPercent(data.Bid, data.Ask),
		Change24hPct:  data.Change24h,
		Tier:          tier,
		TradeURL:      domain.TradeURL(a.spec.id, symbol),
	}
}

func (a *Adapter) fetch(ctx context.Context, symbol string) (*tickerData, error) {
	path, query := a.spec.request(symbol)

	req := a.client.NewRequest().SetHeader("Accept", "application/json")
	for k, v := range query {
		req.SetQueryParam(k, v)
	}

	resp, err := req.Get(ctx, path)
	if err != nil {
		return nil, apperror.External(apperror.CodeTickerFetchFailed, a.spec.id, err)
	}
	if resp.IsError() {
		return nil, apperror.New(apperror.CodeTickerFetchFailed,
			apperror.WithContext(fmt.Sprintf("%s: status %d", a.spec.id, resp.StatusCode)))
	}
	return a.spec.parse(resp.Body())
}

// spreadPercent computes ((ask-bid)/bid)*100, or null when either side
// is missing or non-positive.
func spreadPercent(bid, ask decimal.NullDecimal) decimal.NullDecimal {
	if !bid.Valid || !ask.Valid || !bid.Decimal.IsPositive() || !ask.Decimal.IsPositive() {
		return decimal.NullDecimal{}
	}
	spread := ask.Decimal.Sub(bid.Decimal).Div(bid.Decimal).Mul(decimal.NewFromInt(100))
	return decimal.NullDecimal{Decimal: spread, Valid: true}
}

// parseDec parses a numeric string into a nullable decimal. Empty or
// malformed input yields null rather than an error.
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

func decFloat(f float64) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.NewFromFloat(f), Valid: true}
}

// pctFromOpen derives the 24h change percentage from last and open.
func pctFromOpen(price, open decimal.NullDecimal) decimal.NullDecimal {
	if !price.Valid || !open.Valid || !open.Decimal.IsPositive() {
		return decimal.NullDecimal{}
	}
	pct := price.Decimal.Sub(open.Decimal).Div(open.Decimal).Mul(decimal.NewFromInt(100))
	return decimal.NullDecimal{Decimal: pct, Valid: true}
}

// scale multiplies a nullable decimal, used for ratio-style change
// fields reported as 0.0123 instead of 1.23.
func scale(d decimal.NullDecimal, factor int64) decimal.NullDecimal {
	if !d.Valid {
		return d
	}
	return decimal.NullDecimal{Decimal: d.Decimal.Mul(decimal.NewFromInt(factor)), Valid: true}
}
