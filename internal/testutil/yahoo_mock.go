package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ndewijer/mutualfund-tracker/internal/yahoo"
)

// MockYahooClient is a mock implementation of yahoo.Client for testing.
// It returns predefined test data instead of making actual API calls.
type MockYahooClient struct {
	// MockResponse is the response to return when no per-symbol response is set
	MockResponse yahoo.Response
	// Responses holds per-symbol responses
	Responses map[string]yahoo.Response
	// MockError is the error to return from query methods
	MockError error
	// Symbols records every symbol queried, in call order
	Symbols []string

	mu sync.Mutex
}

// NewMockYahooClient creates a new mock Yahoo client with five days of
// closes ending yesterday.
func NewMockYahooClient() *MockYahooClient {
	now := time.Now().UTC()
	yesterday := time.Date(now.Year(), now.Month(), now.Day()-1, 0, 0, 0, 0, time.UTC)
	return &MockYahooClient{
		MockResponse: CreateMockYahooResponse(yesterday.AddDate(0, 0, -4), 100, 100.5, 101, 101.5, 102),
		Responses:    map[string]yahoo.Response{},
	}
}

// QuerySymbolByDateRange returns the response configured for symbol, or
// MockResponse, or MockError when set. A response carrying a chart error is
// returned with an error, as FinanceClient does. Calls from concurrent
// fetches are recorded in Symbols in arrival order.
func (m *MockYahooClient) QuerySymbolByDateRange(_ context.Context, symbol string, _, _ time.Time) (yahoo.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Symbols = append(m.Symbols, symbol)
	if m.MockError != nil {
		return yahoo.Response{}, m.MockError
	}
	resp, ok := m.Responses[symbol]
	if !ok {
		resp = m.MockResponse
	}
	if resp.Chart.Error != nil {
		return resp, fmt.Errorf("yahoo error: %s", *resp.Chart.Error)
	}
	return resp, nil
}

// WithError configures the mock to return the specified error.
func (m *MockYahooClient) WithError(err error) *MockYahooClient {
	m.MockError = err
	return m
}

// WithResponse configures the default response.
func (m *MockYahooClient) WithResponse(resp yahoo.Response) *MockYahooClient {
	m.MockResponse = resp
	return m
}

// WithSymbolResponse configures the response for one symbol.
func (m *MockYahooClient) WithSymbolResponse(symbol string, resp yahoo.Response) *MockYahooClient {
	m.Responses[symbol] = resp
	return m
}

// CreateMockYahooResponse creates a chart response with one daily close per
// value, on consecutive days starting at start. A negative close is encoded
// as null, the way Yahoo reports days without trading.
func CreateMockYahooResponse(start time.Time, closes ...float64) yahoo.Response {
	timestamps := make([]int64, len(closes))
	values := make([]*float64, len(closes))
	for i, c := range closes {
		timestamps[i] = start.AddDate(0, 0, i).Add(9 * time.Hour).Unix()
		if c >= 0 {
			v := c
			values[i] = &v
		}
	}

	return yahoo.Response{
		Chart: yahoo.Chart{
			Result: []yahoo.Result{
				{
					Meta: yahoo.Meta{
						Symbol:   "0P0000TEST.BO",
						Currency: "INR",
						LongName: "Test Fund Direct Growth",
					},
					Timestamp: timestamps,
					Indicators: yahoo.IndicatorsContainer{
						Quote: []yahoo.Quote{{Close: values}},
					},
				},
			},
		},
	}
}

// CreateMockYahooResponseForDate creates a mock Yahoo response with a single day's close.
func CreateMockYahooResponseForDate(date time.Time, price float64) yahoo.Response {
	return CreateMockYahooResponse(date, price)
}

// CreateMockYahooErrorResponse creates a mock Yahoo response with an error.
func CreateMockYahooErrorResponse(errorMsg string) yahoo.Response {
	return yahoo.Response{
		Chart: yahoo.Chart{
			Result: []yahoo.Result{},
			Error:  &errorMsg,
		},
	}
}
