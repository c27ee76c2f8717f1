package model

import "time"

// FundQuote is the NAV of one fund as reported by a quote source.
// Date is the date the source says the NAV is valid for, which can be earlier
// than the evaluation date (weekends, holidays, stale feeds).
type FundQuote struct {
	FundID string    `json:"fundId"`
	NAV    float64   `json:"nav"`
	Date   time.Time `json:"date"`
	Source string    `json:"source"`
}
