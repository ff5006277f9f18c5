// Package rest exposes the aggregation service over HTTP.
package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/tokenlens/tokenlens/business/aggregate/app"
	arbitrageDomain "github.com/tokenlens/tokenlens/business/arbitrage/domain"
	"github.com/tokenlens/tokenlens/internal/apperror"
	"github.com/tokenlens/tokenlens/internal/logger"
)

// API handles the HTTP surface of the aggregation service.
type API struct {
	svc *app.Service
	log logger.LoggerInterface
}

// NewAPI creates the REST API over the aggregation service.
func NewAPI(svc *app.Service, log logger.LoggerInterface) *API {
	return &API{svc: svc, log: log}
}

// Handler builds the instrumented route table.
func (a *API) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/price", a.handlePrice)
	mux.HandleFunc("GET /api/impact", a.handleImpact)
	mux.HandleFunc("POST /api/search", a.handleSearch)
	mux.HandleFunc("GET /api/search", a.handleSearchQuery)
	return otelhttp.NewHandler(mux, "api")
}

func (a *API) handlePrice(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view, err := a.svc.AggregatePrice(r.Context(), q.Get("chain"), q.Get("address"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, r, http.StatusOK, toPriceResponse(view))
}

func (a *API) handleImpact(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	amount, err := strconv.ParseFloat(q.Get("amount"), 64)
	if err != nil {
		a.writeError(w, r, apperror.Validation(apperror.CodeInvalidTradeSize, q.Get("amount")))
		return
	}
	direction := arbitrageDomain.TradeDirection(q.Get("direction"))
	if direction == "" {
		direction = arbitrageDomain.DirectionBuy
	}

	estimate, err := a.svc.EstimateImpact(r.Context(), q.Get("chain"), q.Get("address"), amount, direction)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, r, http.StatusOK, toImpactResponse(estimate))
}

type searchRequest struct {
	Address string `json:"address"`
	Chain   string `json:"chain"`
}

func (a *API) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, r, apperror.Validation(apperror.CodeInvalidFormat, "request body"))
		return
	}

	view, err := a.svc.SearchToken(r.Context(), req.Chain, req.Address)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, r, http.StatusOK, toSearchResponse(view))
}

func (a *API) handleSearchQuery(w http.ResponseWriter, r *http.Request) {
	results, err := a.svc.SearchByQuery(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	candidates := make([]searchCandidateDTO, 0, len(results))
	for _, res := range results {
		candidates = append(candidates, searchCandidateDTO{
			Address:  res.Address,
			Chain:    res.Chain,
			Name:     res.Name,
			Symbol:   res.Symbol,
			PriceUSD: res.PriceUSD,
		})
	}
	a.writeJSON(w, r, http.StatusOK, map[string]any{"results": candidates})
}

func (a *API) writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		a.log.Error(r.Context(), "failed to encode response", "error", err)
	}
}

// writeError maps domain errors to HTTP statuses. Internal detail
// stays in the logs; the boundary sees only the coded message.
func (a *API) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		appErr = apperror.Internal(apperror.CodeInternalError, "", err)
	}

	if appErr.StatusCode >= http.StatusInternalServerError {
		a.log.Error(r.Context(), "request failed", "error", appErr.ToLog())
	} else {
		a.log.Debug(r.Context(), "request rejected", "code", appErr.Code, "context", appErr.Context)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode)
	if encErr := json.NewEncoder(w).Encode(appErr.ToResponse()); encErr != nil {
		a.log.Error(r.Context(), "failed to encode error response", "error", encErr)
	}
}
