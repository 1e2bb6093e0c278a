package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/damon-houk/prevday-exchange-rate/internal/domain/service"
)

// ErrCatalogBuild is returned when the currency catalog cannot be built
var ErrCatalogBuild = errors.New("failed to build currency catalog")

// TableFetcher retrieves the upstream table of currencies
type TableFetcher interface {
	FetchTable(ctx context.Context) (*service.UpstreamResponse, error)
}

// tableA is the body of GET /tables/a
type tableA []struct {
	Table string `json:"table"`
	Rates []struct {
		Code string `json:"code"`
	} `json:"rates"`
}

// CurrencyCatalog is the immutable set of currency codes the service accepts.
// It is never written after construction and is safe for concurrent readers.
type CurrencyCatalog struct {
	codes map[string]struct{}
}

// NewCurrencyCatalog creates a catalog holding the given codes
func NewCurrencyCatalog(codes ...string) *CurrencyCatalog {
	set := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code == "" {
			continue
		}
		set[code] = struct{}{}
	}

	return &CurrencyCatalog{codes: set}
}

// BuildCurrencyCatalog takes a one-time snapshot of the codes listed in table A
func BuildCurrencyCatalog(ctx context.Context, api TableFetcher) (*CurrencyCatalog, error) {
	resp, err := api.FetchTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogBuild, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: table A returned status %d", ErrCatalogBuild, resp.StatusCode)
	}

	var tables tableA
	if err := json.Unmarshal(resp.Body, &tables); err != nil {
		return nil, fmt.Errorf("%w: failed to decode table A: %w", ErrCatalogBuild, err)
	}

	if len(tables) == 0 {
		return nil, fmt.Errorf("%w: table A is empty", ErrCatalogBuild)
	}

	codes := make([]string, 0, len(tables[0].Rates))
	for _, rate := range tables[0].Rates {
		codes = append(codes, rate.Code)
	}

	catalog := NewCurrencyCatalog(codes...)
	if catalog.Size() == 0 {
		return nil, fmt.Errorf("%w: table A lists no currency codes", ErrCatalogBuild)
	}

	return catalog, nil
}

// Contains reports whether code is in the catalog, ignoring case
func (c *CurrencyCatalog) Contains(code string) bool {
	_, ok := c.codes[strings.ToUpper(code)]
	return ok
}

// Size returns the number of codes in the catalog
func (c *CurrencyCatalog) Size() int {
	return len(c.codes)
}

// Codes returns the codes in lexical order
func (c *CurrencyCatalog) Codes() []string {
	codes := make([]string, 0, len(c.codes))
	for code := range c.codes {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	return codes
}
