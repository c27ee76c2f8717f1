package yahoo

import "time"

// Response represents the raw JSON response of the Yahoo Finance chart API.
//
// The structure includes:
//   - Chart.Result: Array of result objects (typically contains one element)
//   - Chart.Result[].Meta: Symbol metadata (name, currency)
//   - Chart.Result[].Timestamp: Unix timestamps for each data point
//   - Chart.Result[].Indicators.Quote[].Close: closing prices, null on days without a close
//   - Chart.Error: Optional error message from Yahoo API
type Response struct {
	Chart Chart `json:"chart"`
}

type Chart struct {
	Result []Result `json:"result"`
	Error  *string  `json:"error"`
}

type Result struct {
	Meta       Meta                `json:"meta"`
	Timestamp  []int64             `json:"timestamp"`
	Indicators IndicatorsContainer `json:"indicators"`
}

type Meta struct {
	Currency  string `json:"currency"`
	Symbol    string `json:"symbol"`
	LongName  string `json:"longName"`
	Shortname string `json:"shortName"`
}

type IndicatorsContainer struct {
	Quote []Quote `json:"quote"`
}

type Quote struct {
	Close []*float64 `json:"close"`
}

// PriceChart is the parsed form of a Response: symbol metadata plus a
// date-ordered series of daily closes.
type PriceChart struct {
	Currency   string       `json:"currency"`
	Symbol     string       `json:"symbol"`
	LongName   string       `json:"longName"`
	Indicators []Indicators `json:"indicators"`
}

// Indicators is one trading day's close. Date is midnight UTC.
type Indicators struct {
	Date       time.Time
	PriceClose float64
}
