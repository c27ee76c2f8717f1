package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the public Yahoo Finance query host.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// Client is the subset of the Yahoo Finance API used by the quote source.
type Client interface {
	QuerySymbolByDateRange(ctx context.Context, symbol string, startDate, endDate time.Time) (Response, error)
}

// FinanceClient provides methods for fetching daily prices from Yahoo Finance.
type FinanceClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewFinanceClient creates a new Yahoo Finance client.
//
// Parameters:
//   - baseURL: API host; empty selects DefaultBaseURL
//   - httpClient: client used for requests; nil selects http.DefaultClient
func NewFinanceClient(baseURL string, httpClient *http.Client) *FinanceClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &FinanceClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// ParseChart converts a raw Yahoo Finance API response into a structured price chart.
//
// Days whose close is null are skipped. The result is ordered by date as
// Yahoo returned it (ascending).
//
// Returns an error if the response carries no result, no timestamps, no
// close series, or a close series whose length differs from the timestamps.
func ParseChart(yahooResult Response) (PriceChart, error) {
	if len(yahooResult.Chart.Result) == 0 {
		return PriceChart{}, fmt.Errorf("no results returned")
	}
	result := yahooResult.Chart.Result[0]

	if len(result.Timestamp) == 0 {
		return PriceChart{}, fmt.Errorf("no price data returned")
	}
	if len(result.Indicators.Quote) == 0 || len(result.Indicators.Quote[0].Close) == 0 {
		return PriceChart{}, fmt.Errorf("no close prices returned")
	}

	closes := result.Indicators.Quote[0].Close
	if len(closes) != len(result.Timestamp) {
		return PriceChart{}, fmt.Errorf("mismatched data lengths")
	}

	indicators := make([]Indicators, 0, len(result.Timestamp))
	for i, v := range result.Timestamp {
		if closes[i] == nil {
			continue
		}
		t := time.Unix(v, 0).UTC()
		indicators = append(indicators, Indicators{
			Date:       time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC),
			PriceClose: *closes[i],
		})
	}

	return PriceChart{
		Symbol:     result.Meta.Symbol,
		Currency:   result.Meta.Currency,
		LongName:   result.Meta.LongName,
		Indicators: indicators,
	}, nil
}

// LatestOnOrBefore returns the last close dated on or before target.
// Only the calendar date of target is considered.
func (c PriceChart) LatestOnOrBefore(target time.Time) (Indicators, bool) {
	t := target.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)

	var (
		best  Indicators
		found bool
	)
	for _, ind := range c.Indicators {
		if ind.Date.After(day) {
			continue
		}
		if !found || !ind.Date.Before(best.Date) {
			best = ind
			found = true
		}
	}
	return best, found
}

// QuerySymbolByDateRange fetches daily price data for a symbol within a date range.
//
// Parameters:
//   - symbol: ticker symbol (e.g. "0P0000XVKP.BO")
//   - startDate: beginning of the range (inclusive)
//   - endDate: end of the range (inclusive)
//
// Returns an error if the HTTP request fails, the API reports an error, or no
// results are found.
func (c *FinanceClient) QuerySymbolByDateRange(ctx context.Context, symbol string, startDate, endDate time.Time) (Response, error) {
	u := fmt.Sprintf(
		"%s/v8/finance/chart/%s?interval=1d&period1=%d&period2=%d",
		c.baseURL,
		url.PathEscape(symbol),
		startDate.Unix(),
		endDate.Unix(),
	)
	result, err := c.queryYahoo(ctx, u)
	if err != nil {
		return Response{}, err
	}
	if len(result.Chart.Result) == 0 {
		return Response{}, fmt.Errorf("no results returned for symbol %s", symbol)
	}

	return result, nil
}

// queryYahoo executes a GET against the chart API and decodes the response.
//
// A browser User-Agent is sent; Yahoo rejects the Go default.
func (c *FinanceClient) queryYahoo(ctx context.Context, u string) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Response{}, err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, err
	}

	var response Response
	if err := json.Unmarshal(data, &response); err != nil {
		return Response{}, fmt.Errorf("failed to decode yahoo response (status %d): %w", resp.StatusCode, err)
	}

	if response.Chart.Error != nil {
		return response, fmt.Errorf("yahoo error: %s", *response.Chart.Error)
	}

	return response, nil
}
