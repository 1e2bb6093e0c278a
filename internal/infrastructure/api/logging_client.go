package api

import (
	"context"
	"time"

	"github.com/damon-houk/prevday-exchange-rate/internal/domain/service"
	"github.com/damon-houk/prevday-exchange-rate/internal/infrastructure/logger"
	"github.com/damon-houk/prevday-exchange-rate/internal/infrastructure/middleware"
)

// LoggingRateAPI logs every upstream call made through the wrapped API
type LoggingRateAPI struct {
	next   service.RateAPI
	logger logger.Logger
}

// NewLoggingRateAPI wraps next with call logging
func NewLoggingRateAPI(next service.RateAPI, log logger.Logger) *LoggingRateAPI {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &LoggingRateAPI{
		next:   next,
		logger: log,
	}
}

func (a *LoggingRateAPI) FetchTable(ctx context.Context) (*service.UpstreamResponse, error) {
	start := time.Now()
	resp, err := a.next.FetchTable(ctx)
	a.record(ctx, start, resp, err, map[string]interface{}{
		"call": "tables/a",
	})
	return resp, err
}

func (a *LoggingRateAPI) FetchRate(ctx context.Context, currency string, date time.Time) (*service.UpstreamResponse, error) {
	start := time.Now()
	resp, err := a.next.FetchRate(ctx, currency, date)
	a.record(ctx, start, resp, err, map[string]interface{}{
		"call":     "rates/a",
		"currency": currency,
		"date":     date.Format("2006-01-02"),
	})
	return resp, err
}

func (a *LoggingRateAPI) record(ctx context.Context, start time.Time, resp *service.UpstreamResponse, err error, fields map[string]interface{}) {
	fields["request_id"] = middleware.GetRequestID(ctx)
	fields["duration_ms"] = time.Since(start).Milliseconds()

	if err != nil {
		fields["error"] = err.Error()
		a.logger.Warn("Upstream call failed", fields)
		return
	}

	fields["status"] = resp.StatusCode
	a.logger.Debug("Upstream call completed", fields)
}
