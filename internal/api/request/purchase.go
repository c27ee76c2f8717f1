package request

// CreatePurchaseRequest records a buy. NAV, amount and date arrive as text so
// they can be parsed exactly.
type CreatePurchaseRequest struct {
	FundID string `json:"fundId"`
	NAV    string `json:"nav"`
	Amount string `json:"amount"`
	Date   string `json:"date"`
}
