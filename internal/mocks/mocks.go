// internal/mocks/mocks.go
package mocks

import (
	"context"
	"time"

	"github.com/damon-houk/prevday-exchange-rate/internal/domain/service"
	"github.com/stretchr/testify/mock"
)

// MockRateAPI mocks the RateAPI interface
type MockRateAPI struct {
	mock.Mock
}

func (m *MockRateAPI) FetchTable(ctx context.Context) (*service.UpstreamResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UpstreamResponse), args.Error(1)
}

func (m *MockRateAPI) FetchRate(ctx context.Context, currency string, date time.Time) (*service.UpstreamResponse, error) {
	args := m.Called(ctx, currency, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UpstreamResponse), args.Error(1)
}

// OnDay matches a date argument by calendar day
func OnDay(year int, month time.Month, day int) interface{} {
	want := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return mock.MatchedBy(func(date time.Time) bool {
		return date.Equal(want)
	})
}
