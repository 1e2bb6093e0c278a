// Package handler internal/infrastructure/handler/exchange_rate_handler.go
package handler

import (
	"errors"
	"net/http"

	"github.com/damon-houk/prevday-exchange-rate/internal/application/service"
	"github.com/damon-houk/prevday-exchange-rate/internal/domain/entity"
	"github.com/damon-houk/prevday-exchange-rate/internal/infrastructure/logger"
	"github.com/damon-houk/prevday-exchange-rate/internal/infrastructure/middleware"
	"github.com/gorilla/mux"
)

const foundMessage = "Found exchange rates"

// ExchangeRateHandler handles HTTP requests for previous-day exchange rates
type ExchangeRateHandler struct {
	resolver *service.RateResolver
	logger   logger.Logger
}

// NewExchangeRateHandler creates a new exchange rate handler
func NewExchangeRateHandler(resolver *service.RateResolver, log logger.Logger) *ExchangeRateHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &ExchangeRateHandler{
		resolver: resolver,
		logger:   log,
	}
}

// GetPreviousDayRate handles GET /prevday/exchangerate/{currency}/{date}
func (h *ExchangeRateHandler) GetPreviousDayRate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	vars := mux.Vars(r)
	currency := vars["currency"]
	date := vars["date"]

	h.logger.Debug("Handling previous day rate request", map[string]interface{}{
		"request_id": requestID,
		"currency":   currency,
		"date":       date,
	})

	record, err := h.resolver.Lookup(r.Context(), currency, date)
	if err != nil {
		h.sendResolutionError(w, err, requestID, currency, date)
		return
	}

	h.logger.Info("Exchange rate found", map[string]interface{}{
		"request_id":     requestID,
		"currency":       record.Currency,
		"searched_date":  record.SearchedDate,
		"effective_date": record.EffectiveDate,
		"exchange_rate":  record.ExchangeRate.String(),
	})

	sendJSON(w, h.logger, http.StatusOK, ExchangeRateResponse{
		Message:       foundMessage,
		Currency:      record.Currency,
		SearchedDate:  record.SearchedDate,
		EffectiveDate: record.EffectiveDate,
		ExchangeRate:  record.ExchangeRate.String(),
	})
}

func (h *ExchangeRateHandler) sendResolutionError(w http.ResponseWriter, err error, requestID, currency, date string) {
	fields := map[string]interface{}{
		"request_id": requestID,
		"currency":   currency,
		"date":       date,
		"error":      err.Error(),
	}

	var resErr *entity.ResolutionError
	if !errors.As(err, &resErr) {
		h.logger.Error("Unexpected error in exchange rate handler", fields)
		sendErrorResponse(w, h.logger, statusPhrase(http.StatusInternalServerError),
			"An unexpected error occurred.", http.StatusInternalServerError, requestID)
		return
	}

	fields["kind"] = resErr.Kind
	if resErr.StatusCode() >= http.StatusInternalServerError {
		h.logger.Error("Exchange rate lookup failed", fields)
	} else {
		h.logger.Warn("Exchange rate lookup rejected", fields)
	}

	sendErrorResponse(w, h.logger, resErr.StatusPhrase(), resErr.Message, resErr.StatusCode(), requestID)
}

// RegisterRoutes registers the exchange rate handler routes
func (h *ExchangeRateHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/prevday/exchangerate/{currency}/{date}", h.GetPreviousDayRate).Methods(http.MethodGet)

	h.logger.Info("Exchange rate routes registered", map[string]interface{}{
		"routes":        []string{"GET /prevday/exchangerate/{currency}/{date}"},
		"lookback_days": h.resolver.LookbackDays(),
	})
}
