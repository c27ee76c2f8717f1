package valuation

import (
	"slices"
	"strings"

	"github.com/ndewijer/mutualfund-tracker/internal/model"
)

// TypeShare is the amount invested in one fund type and its share of the total.
type TypeShare struct {
	Type       string  `json:"type"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// ComputeDistribution sums invested amounts per fund type, sorted by type.
func ComputeDistribution(lots []model.PurchaseLot) ([]TypeShare, error) {
	byType := make(map[string]float64)
	var total float64
	for _, lot := range lots {
		byType[lot.FundType] += lot.Amount
		total += lot.Amount
	}
	if total <= 0 {
		return nil, ErrNothingInvested
	}

	shares := make([]TypeShare, 0, len(byType))
	for fundType, amount := range byType {
		shares = append(shares, TypeShare{
			Type:       fundType,
			Amount:     amount,
			Percentage: amount * 100 / total,
		})
	}
	slices.SortFunc(shares, func(a, b TypeShare) int { return strings.Compare(a.Type, b.Type) })
	return shares, nil
}
