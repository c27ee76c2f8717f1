package model

import "time"

// PurchaseLot is one recorded buy of a fund. Fund name and type are joined in
// from the fund table so the lot is self-describing for valuation and listing.
type PurchaseLot struct {
	ID       string    `json:"id"`
	FundID   string    `json:"fundId"`
	FundName string    `json:"fundName"`
	FundType string    `json:"fundType"`
	Amount   float64   `json:"amount"`
	NAV      float64   `json:"nav"`
	Units    float64   `json:"units"`
	Date     time.Time `json:"date"`
}

// LotFilter narrows the purchase lots returned by the lot source.
// At most one of Types, ExcludeTypes, FundIDs and ExcludeFundIDs may be set.
// A zero AsOf means no upper bound on purchase date.
type LotFilter struct {
	Types          []string
	ExcludeTypes   []string
	FundIDs        []string
	ExcludeFundIDs []string
	AsOf           time.Time
}
