package internal

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/damon-houk/prevday-exchange-rate/internal/application/service"
	"github.com/damon-houk/prevday-exchange-rate/internal/domain/entity"
	upstream "github.com/damon-houk/prevday-exchange-rate/internal/domain/service"
	"github.com/damon-houk/prevday-exchange-rate/internal/infrastructure/cache"
	"github.com/stretchr/testify/assert"
)

// weekdayAPI publishes a rate for every Monday to Friday
type weekdayAPI struct{}

func (weekdayAPI) FetchTable(ctx context.Context) (*upstream.UpstreamResponse, error) {
	return &upstream.UpstreamResponse{
		StatusCode: http.StatusOK,
		Body:       []byte(`[{"rates":[{"code":"USD"},{"code":"EUR"},{"code":"GBP"},{"code":"CHF"}]}]`),
	}, nil
}

func (weekdayAPI) FetchRate(ctx context.Context, currency string, date time.Time) (*upstream.UpstreamResponse, error) {
	if date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
		return &upstream.UpstreamResponse{StatusCode: http.StatusNotFound}, nil
	}

	body := fmt.Sprintf(`{"code":%q,"rates":[{"effectiveDate":%q,"mid":%d.%04d}]}`,
		currency, date.Format("2006-01-02"), len(currency), date.YearDay())
	return &upstream.UpstreamResponse{StatusCode: http.StatusOK, Body: []byte(body)}, nil
}

func TestConcurrentLookups(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping performance test in short mode")
	}

	ctx := context.Background()
	api := weekdayAPI{}

	catalog, err := cache.BuildCurrencyCatalog(ctx, api)
	if err != nil {
		t.Fatalf("Failed to build catalog: %v", err)
	}
	resolver := service.NewRateResolver(catalog, api, service.DefaultLookbackDays)

	currencies := []string{"USD", "EUR", "GBP", "CHF"}
	start := time.Date(2022, 1, 3, 0, 0, 0, 0, time.UTC)
	numLookups := 400
	concurrency := 10

	// Sequential baseline the concurrent results must match
	expected := make([]*entity.RateRecord, numLookups)
	for i := range expected {
		record, err := resolver.Lookup(ctx, currencies[i%len(currencies)], start.AddDate(0, 0, i%90).Format("2006-01-02"))
		if err != nil {
			t.Fatalf("Baseline lookup %d failed: %v", i, err)
		}
		expected[i] = record
	}

	results := make([]*entity.RateRecord, numLookups)
	startTime := time.Now()

	wg := sync.WaitGroup{}
	wg.Add(concurrency)
	for w := 0; w < concurrency; w++ {
		go func(workerID int) {
			defer wg.Done()
			for i := workerID; i < numLookups; i += concurrency {
				record, err := resolver.Lookup(ctx, currencies[i%len(currencies)], start.AddDate(0, 0, i%90).Format("2006-01-02"))
				if err != nil {
					t.Errorf("Lookup %d failed: %v", i, err)
					continue
				}
				results[i] = record
			}
		}(w)
	}
	wg.Wait()

	duration := time.Since(startTime)
	t.Logf("Resolved %d lookups in %v (%.2f lookups/sec)",
		numLookups, duration, float64(numLookups)/duration.Seconds())

	assert.Equal(t, expected, results)

	for _, record := range results {
		effective, err := time.Parse("2006-01-02", record.EffectiveDate)
		if assert.NoError(t, err) {
			assert.NotEqual(t, time.Saturday, effective.Weekday())
			assert.NotEqual(t, time.Sunday, effective.Weekday())
			assert.True(t, effective.Format("2006-01-02") < record.SearchedDate)
		}
	}
}
