// Package goplus implements the contract security provider over the
// GoPlus Labs token_security API.
package goplus

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	pricingDomain "github.com/tokenlens/tokenlens/business/pricing/domain"
	"github.com/tokenlens/tokenlens/business/security/app"
	"github.com/tokenlens/tokenlens/business/security/domain"
	"github.com/tokenlens/tokenlens/internal/httpclient"
	"github.com/tokenlens/tokenlens/internal/logger"
	"github.com/tokenlens/tokenlens/internal/ratelimit"
)

const (
	tracerName     = "github.com/tokenlens/tokenlens/business/security/infra/goplus"
	defaultBaseURL = "https://api.gopluslabs.io/api/v1"
)

// chainIDs maps networks to GoPlus numeric chain ids. Solana and
// zkSync are not covered by the scanner.
var chainIDs = map[pricingDomain.Chain]string{
	pricingDomain.ChainEthereum:  "1",
	pricingDomain.ChainBSC:       "56",
	pricingDomain.ChainPolygon:   "137",
	pricingDomain.ChainArbitrum:  "42161",
	pricingDomain.ChainOptimism:  "10",
	pricingDomain.ChainBase:      "8453",
	pricingDomain.ChainAvalanche: "43114",
	pricingDomain.ChainFantom:    "250",
}

// Ensure Provider implements SecurityProvider.
var _ app.SecurityProvider = (*Provider)(nil)

// Config holds provider tuning.
type Config struct {
	BaseURL           string
	RequestsPerMinute int
	Timeout           time.Duration
}

// Provider fetches contract scans from GoPlus.
type Provider struct {
	client  httpclient.Client
	limiter *ratelimit.Limiter
	logger  logger.LoggerInterface
	tracer  trace.Tracer
}

// NewProvider creates a GoPlus provider.
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
		httpclient.WithProviderName("goplus"),
		httpclient.WithBaseURL(baseURL),
		httpclient.WithRequestTimeout(timeout),
	)
	if err != nil {
		return nil, err
	}

	return &Provider{
		client:  client,
		limiter: ratelimit.New(rpm),
		logger:  log,
		tracer:  otel.Tracer(tracerName),
	}, nil
}

// SupportsChain reports whether the scanner covers the network.
func SupportsChain(chain pricingDomain.Chain) bool {
	_, ok := chainIDs[chain]
	return ok
}

// FetchReport retrieves the contract scan, or nil when the chain is
// unsupported, the contract is unknown, or the provider fails.
func (p *Provider) FetchReport(ctx context.Context, chain pricingDomain.Chain, address string) *domain.RawReport {
	ctx, span := p.tracer.Start(ctx, "goplus.fetch_report",
		trace.WithAttributes(
			attribute.String("token.chain", string(chain)),
			attribute.String("token.address", address),
		))
	defer span.End()

	chainID, ok := chainIDs[chain]
	if !ok {
		return nil
	}
	address = strings.ToLower(strings.TrimSpace(address))

	if err := p.limiter.Wait(ctx); err != nil {
		return nil
	}

	var payload securityResponse
	resp, err := p.client.NewRequest().
		SetHeader("Accept", "application/json").
		SetQueryParam("contract_addresses", address).
		SetResult(&payload).
		Get(ctx, "/token_security/"+chainID)
	if err != nil || resp.IsError() {
		p.logger.Warn(ctx, "goplus scan failed",
			"chain", chain, "address", address, "error", err)
		return nil
	}

	raw, ok := payload.Result[address]
	if !ok {
		return nil
	}
	return raw.toRaw()
}

// securityResponse is the GoPlus envelope: a result map keyed by
// contract address, with every field a string.
type securityResponse struct {
	Code   int                     `json:"code"`
	Result map[string]wireSecurity `json:"result"`
}

type wireSecurity struct {
	IsHoneypot              string `json:"is_honeypot"`
	HoneypotWithSameCreator string `json:"honeypot_with_same_creator"`
	CannotSellAll           string `json:"cannot_sell_all"`
	CannotBuy               string `json:"cannot_buy"`
	TransferPausable        string `json:"transfer_pausable"`
	TradingCooldown         string `json:"trading_cooldown"`
	IsProxy                 string `json:"is_proxy"`
	IsMintable              string `json:"is_mintable"`
	CanTakeBackOwnership    string `json:"can_take_back_ownership"`
	OwnerChangeBalance      string `json:"owner_change_balance"`
	HiddenOwner             string `json:"hidden_owner"`
	SelfDestruct            string `json:"selfdestruct"`
	ExternalCall            string `json:"external_call"`
	IsOpenSource            string `json:"is_open_source"`
	IsInDex                 string `json:"is_in_dex"`
	BuyTax                  string `json:"buy_tax"`
	SellTax                 string `json:"sell_tax"`
	OwnerAddress            string `json:"owner_address"`
	CreatorAddress          string `json:"creator_address"`
	HolderCount             string `json:"holder_count"`
	LPHolderCount           string `json:"lp_holder_count"`
}

// toRaw converts GoPlus string flags ("1"/"0"/"") into typed optionals.
// Taxes arrive as ratios and convert to percentages.
func (w wireSecurity) toRaw() *domain.RawReport {
	return &domain.RawReport{
		IsHoneypot:           triFlag(w.IsHoneypot),
		HoneypotSameCreator:  triFlag(w.HoneypotWithSameCreator),
		CannotSellAll:        triFlag(w.CannotSellAll),
		CannotBuy:            triFlag(w.CannotBuy),
		TransferPausable:     triFlag(w.TransferPausable),
		TradingCooldown:      triFlag(w.TradingCooldown),
		IsProxy:              triFlag(w.IsProxy),
		IsMintable:           triFlag(w.IsMintable),
		CanTakeBackOwnership: triFlag(w.CanTakeBackOwnership),
		OwnerChangeBalance:   triFlag(w.OwnerChangeBalance),
		HiddenOwner:          triFlag(w.HiddenOwner),
		SelfDestruct:         triFlag(w.SelfDestruct),
		ExternalCall:         triFlag(w.ExternalCall),
		IsOpenSource:         triFlag(w.IsOpenSource),
		IsInDex:              triFlag(w.IsInDex),
		BuyTaxPercent:        taxPercent(w.BuyTax),
		SellTaxPercent:       taxPercent(w.SellTax),
		OwnerAddress:         w.OwnerAddress,
		CreatorAddress:       w.CreatorAddress,
		HolderCount:          intField(w.HolderCount),
		LPHolderCount:        intField(w.LPHolderCount),
	}
}

func triFlag(s string) *bool {
	switch s {
	case "1":
		v := true
		return &v
	case "0":
		v := false
		return &v
	default:
		return nil
	}
}

func taxPercent(s string) *float64 {
	if s == "" {
		return nil
	}
	ratio, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	pct := ratio * 100
	return &pct
}

func intField(s string) *int {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}
