package request

type CreateDepositRequest struct {
	Name           string `json:"name"`
	Amount         string `json:"amount"`
	Rate           string `json:"rate"`
	Tenure         string `json:"tenure"`
	DepositDate    string `json:"depositDate"`
	MaturityDate   string `json:"maturityDate"`
	MaturityAmount string `json:"maturityAmount"`
}
