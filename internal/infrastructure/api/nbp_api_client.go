package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/damon-houk/prevday-exchange-rate/internal/domain/service"
)

const (
	// DefaultBaseURL is the public NBP exchange rates API
	DefaultBaseURL = "https://api.nbp.pl/api/exchangerates"
	// DefaultTimeout bounds a single upstream call
	DefaultTimeout = 10 * time.Second

	tablePath = "/tables/a"
	ratePath  = "/rates/a/%s/%s"
)

// NBPAPIClient implements the rate API interface against the NBP web API
type NBPAPIClient struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// NewNBPAPIClient creates a new NBP API client. Every call is bounded by timeout.
func NewNBPAPIClient(baseURL string, timeout time.Duration, httpClient *http.Client) *NBPAPIClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &NBPAPIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		timeout:    timeout,
		httpClient: httpClient,
	}
}

// FetchTable retrieves the current table A
func (c *NBPAPIClient) FetchTable(ctx context.Context) (*service.UpstreamResponse, error) {
	return c.get(ctx, c.baseURL+tablePath)
}

// FetchRate retrieves the table A mid rate of a currency for one day
func (c *NBPAPIClient) FetchRate(ctx context.Context, currency string, date time.Time) (*service.UpstreamResponse, error) {
	reqURL := c.baseURL + fmt.Sprintf(ratePath, url.PathEscape(currency), date.Format("2006-01-02"))
	return c.get(ctx, reqURL)
}

func (c *NBPAPIClient) get(ctx context.Context, reqURL string) (*service.UpstreamResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Add("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	// The deadline still applies while the body streams in
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &service.UpstreamResponse{
		StatusCode: resp.StatusCode,
		Body:       body,
	}, nil
}
