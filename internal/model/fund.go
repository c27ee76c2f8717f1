package model

import "time"

// Fund represents a mutual fund scheme from the database.
//
// SchemeCode is the AMFI scheme code used to pick the fund's line out of the
// AMFI NAV feed. MoneycontrolURL and Symbol are only needed when quotes come
// from the Moneycontrol or Yahoo sources respectively.
type Fund struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Type            string `json:"type"`
	Folio           string `json:"folio"`
	SchemeCode      string `json:"schemeCode"`
	MoneycontrolURL string `json:"moneycontrolUrl,omitempty"`
	Symbol          string `json:"symbol,omitempty"`
}

// NavSnapshot is a stored NAV for one fund on one date.
type NavSnapshot struct {
	ID     string    `json:"id"`
	FundID string    `json:"fundId"`
	Date   time.Time `json:"date"`
	NAV    float64   `json:"nav"`
	Source string    `json:"source"`
}

// NavSnapshotDate summarises the snapshots stored for a single date.
type NavSnapshotDate struct {
	Date  time.Time `json:"date"`
	Funds int       `json:"funds"`
}
