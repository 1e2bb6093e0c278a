package service

import (
	"context"
	"time"
)

// UpstreamResponse is a raw reply from the rate API
type UpstreamResponse struct {
	StatusCode int
	Body       []byte
}

// RateAPI defines the interface for interacting with the national bank rate API.
// Implementations return an error only for transport failures; any HTTP status
// is reported through UpstreamResponse.
type RateAPI interface {
	// FetchTable retrieves the current table A of mid rates
	FetchTable(ctx context.Context) (*UpstreamResponse, error)

	// FetchRate retrieves the mid rate of a currency published on a date
	FetchRate(ctx context.Context, currency string, date time.Time) (*UpstreamResponse, error)
}
