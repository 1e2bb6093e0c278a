// Package service internal/application/service/rate_resolver.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/damon-houk/prevday-exchange-rate/internal/domain/entity"
	upstream "github.com/damon-houk/prevday-exchange-rate/internal/domain/service"
	"github.com/shopspring/decimal"
)

const (
	// DefaultLookbackDays is how many days before the requested date are probed
	DefaultLookbackDays = 7

	isoDate = "2006-01-02"
)

// EarliestDate is the first day the upstream publishes table A rates for
var EarliestDate = time.Date(2002, 1, 3, 0, 0, 0, 0, time.UTC)

// CurrencySet answers currency code membership
type CurrencySet interface {
	Contains(code string) bool
}

// RateFetcher retrieves a single day's rate from upstream
type RateFetcher interface {
	FetchRate(ctx context.Context, currency string, date time.Time) (*upstream.UpstreamResponse, error)
}

// rateResponse is the body of GET /rates/a/{code}/{date}
type rateResponse struct {
	Rates []struct {
		EffectiveDate *string      `json:"effectiveDate"`
		Mid           *json.Number `json:"mid"`
	} `json:"rates"`
}

// RateResolver finds the mid rate published on the last business day before a date.
// It keeps no per-request state and may be shared by concurrent requests.
type RateResolver struct {
	catalog      CurrencySet
	api          RateFetcher
	lookbackDays int
	now          func() time.Time
}

// NewRateResolver creates a new rate resolver. A non-positive lookbackDays
// falls back to DefaultLookbackDays.
func NewRateResolver(catalog CurrencySet, api RateFetcher, lookbackDays int) *RateResolver {
	if lookbackDays <= 0 {
		lookbackDays = DefaultLookbackDays
	}

	return &RateResolver{
		catalog:      catalog,
		api:          api,
		lookbackDays: lookbackDays,
		now:          time.Now,
	}
}

// LookbackDays returns the size of the backward search window
func (r *RateResolver) LookbackDays() int {
	return r.lookbackDays
}

// Lookup validates the raw inputs and resolves the rate
func (r *RateResolver) Lookup(ctx context.Context, currencyInput, dateInput string) (*entity.RateRecord, error) {
	date, err := r.Validate(currencyInput, dateInput)
	if err != nil {
		return nil, err
	}

	return r.Resolve(ctx, currencyInput, date)
}

// Validate checks the currency against the catalog and parses the date,
// which must fall between EarliestDate and today inclusive.
func (r *RateResolver) Validate(currencyInput, dateInput string) (time.Time, error) {
	if !r.catalog.Contains(strings.ToUpper(currencyInput)) {
		return time.Time{}, entity.NewResolutionError(entity.InvalidCurrency,
			fmt.Errorf("currency %q is not listed in table A", currencyInput))
	}

	date, err := time.Parse(isoDate, dateInput)
	if err != nil {
		return time.Time{}, entity.NewResolutionError(entity.InvalidDateFormat, err)
	}

	year, month, day := r.now().Date()
	today := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

	if date.After(today) || date.Before(EarliestDate) {
		return time.Time{}, entity.NewResolutionError(entity.DateOutOfRange,
			fmt.Errorf("date %s is outside %s..%s", dateInput, EarliestDate.Format(isoDate), today.Format(isoDate)))
	}

	return date, nil
}

// Resolve walks back from the day before date, one calendar day at a time,
// until upstream has a published rate or the lookback window is exhausted.
// A transport failure ends the search immediately.
func (r *RateResolver) Resolve(ctx context.Context, currency string, date time.Time) (*entity.RateRecord, error) {
	code := strings.ToUpper(currency)

	var found *upstream.UpstreamResponse
	for step := 1; step <= r.lookbackDays; step++ {
		day := date.AddDate(0, 0, -step)

		resp, err := r.api.FetchRate(ctx, code, day)
		if err != nil {
			return nil, entity.NewResolutionError(entity.UpstreamUnavailable, err)
		}

		if resp.StatusCode == http.StatusOK {
			found = resp
			break
		}
	}

	if found == nil {
		return nil, entity.NewResolutionError(entity.NotFound,
			fmt.Errorf("no %s rate published in the %d days before %s", code, r.lookbackDays, date.Format(isoDate)))
	}

	effectiveDate, rate, err := parseRate(found.Body)
	if err != nil {
		return nil, err
	}

	return &entity.RateRecord{
		Currency:      code,
		SearchedDate:  date.Format(isoDate),
		EffectiveDate: effectiveDate,
		ExchangeRate:  rate,
	}, nil
}

// parseRate extracts the first entry's effective date and mid rate
func parseRate(body []byte) (string, decimal.Decimal, error) {
	var payload rateResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return "", decimal.Zero, entity.NewResolutionError(entity.UpstreamShapeMismatch, err)
		}
		return "", decimal.Zero, entity.NewResolutionError(entity.UpstreamMalformed, err)
	}

	if len(payload.Rates) == 0 {
		return "", decimal.Zero, entity.NewResolutionError(entity.UpstreamShapeMismatch,
			errors.New("response has no rates"))
	}

	first := payload.Rates[0]
	if first.EffectiveDate == nil || first.Mid == nil {
		return "", decimal.Zero, entity.NewResolutionError(entity.UpstreamShapeMismatch,
			errors.New("first rate lacks effectiveDate or mid"))
	}

	rate, err := decimal.NewFromString(first.Mid.String())
	if err != nil {
		return "", decimal.Zero, entity.NewResolutionError(entity.UpstreamShapeMismatch, err)
	}

	return *first.EffectiveDate, rate, nil
}
