// Package localdata retrieves verified facts about service areas for prompt
// enrichment. Data comes from the US Census ACS 5-year estimates, which are
// free and do not require an API key.
package localdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultBaseURL is the Census ACS 5-year estimates endpoint.
const DefaultBaseURL = "https://api.census.gov/data/2022/acs/acs5"

// DefaultTimeout bounds one Census API call.
const DefaultTimeout = 10 * time.Second

// medianYearBuiltVar is the ACS variable for median year structure built.
const medianYearBuiltVar = "B25035_001E"

// Config configures the Census fetcher.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Fetcher looks up housing facts for a city. City-level ACS rows are sparse,
// so lookups use the state estimate as a proxy, which is what the facts are
// worded around ("in the area").
type Fetcher struct {
	config Config
	client *http.Client
	now    func() time.Time
}

// NewFetcher creates a Census fetcher, filling config defaults.
func NewFetcher(config Config) *Fetcher {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	return &Fetcher{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		now:    time.Now,
	}
}

// HousingFacts returns prompt-ready fact lines for a city, or nil when the
// state is unknown or the Census API is unavailable. Enrichment is optional;
// callers treat nil as "no facts", never as an error.
func (f *Fetcher) HousingFacts(ctx context.Context, city, state string) []string {
	year, err := f.MedianYearBuilt(ctx, state)
	if err != nil {
		return nil
	}
	age := f.now().Year() - year
	return []string{
		fmt.Sprintf("Many homes in the area were built around %d, making them approximately %d years old", year, age),
	}
}

// MedianYearBuilt fetches the state's median year structure built estimate.
func (f *Fetcher) MedianYearBuilt(ctx context.Context, state string) (int, error) {
	fips, ok := StateFIPS(state)
	if !ok {
		return 0, fmt.Errorf("unknown state %q", state)
	}

	params := url.Values{}
	params.Set("get", medianYearBuiltVar)
	params.Set("for", "state:"+fips)
	endpoint := f.config.BaseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("census request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("census API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to read census response: %w", err)
	}

	// Responses are a JSON table: a header row, then one row per geography,
	// every cell a string.
	var rows [][]string
	if err := json.Unmarshal(body, &rows); err != nil {
		return 0, fmt.Errorf("failed to decode census response: %w", err)
	}
	if len(rows) < 2 || len(rows[1]) < 1 {
		return 0, fmt.Errorf("census response has no data row")
	}

	median, err := strconv.ParseFloat(rows[1][0], 64)
	if err != nil {
		return 0, fmt.Errorf("census median year %q is not numeric: %w", rows[1][0], err)
	}
	year := int(median)
	if year <= 1800 || year >= f.now().Year() {
		return 0, fmt.Errorf("census median year %d out of range", year)
	}
	return year, nil
}
