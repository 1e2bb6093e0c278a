// internal/infrastructure/api/nbp_api_client_test.go
package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchRate(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		if r.URL.Path != "/rates/a/USD/2022-01-12" {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte("404 NotFound - Not Found - Brak danych"))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"table":"A","code":"USD","rates":[{"no":"008/A/NBP/2022","effectiveDate":"2022-01-12","mid":3.9879}]}`))
	}))
	defer mockServer.Close()

	client := NewNBPAPIClient(mockServer.URL+"/", time.Second, nil)
	ctx := context.Background()

	t.Run("Published day", func(t *testing.T) {
		resp, err := client.FetchRate(ctx, "USD", time.Date(2022, 1, 12, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, string(resp.Body), `"mid":3.9879`)
	})

	t.Run("Day without data is not an error", func(t *testing.T) {
		resp, err := client.FetchRate(ctx, "USD", time.Date(2022, 1, 9, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestFetchTable(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tables/a", r.URL.Path)
		w.Write([]byte(`[{"table":"A","rates":[{"code":"USD","mid":3.9879}]}]`))
	}))
	defer mockServer.Close()

	client := NewNBPAPIClient(mockServer.URL, time.Second, nil)

	resp, err := client.FetchTable(context.Background())
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(resp.Body), `"code":"USD"`)
}

func TestTransportFailures(t *testing.T) {
	t.Run("Timeout", func(t *testing.T) {
		release := make(chan struct{})
		slowServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer slowServer.Close()
		defer close(release)

		client := NewNBPAPIClient(slowServer.URL, 20*time.Millisecond, nil)

		start := time.Now()
		resp, err := client.FetchTable(context.Background())
		assert.Error(t, err)
		assert.Nil(t, resp)
		assert.Less(t, time.Since(start), 2*time.Second)
	})

	t.Run("Connection refused", func(t *testing.T) {
		closedServer := httptest.NewServer(http.NotFoundHandler())
		closedURL := closedServer.URL
		closedServer.Close()

		client := NewNBPAPIClient(closedURL, time.Second, nil)

		_, err := client.FetchRate(context.Background(), "USD", time.Now())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to execute request")
	})
}

func TestNewNBPAPIClientDefaults(t *testing.T) {
	client := NewNBPAPIClient("", 0, nil)

	assert.Equal(t, DefaultBaseURL, client.baseURL)
	assert.Equal(t, DefaultTimeout, client.timeout)
	assert.NotNil(t, client.httpClient)
}
