package model

import "time"

// FixedDeposit is a bank term deposit tracked next to the fund portfolio.
// Tenure is in days.
type FixedDeposit struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Amount         float64   `json:"amount"`
	Rate           float64   `json:"rate"`
	Tenure         int       `json:"tenure"`
	DepositDate    time.Time `json:"depositDate"`
	MaturityDate   time.Time `json:"maturityDate"`
	MaturityAmount float64   `json:"maturityAmount"`
}
