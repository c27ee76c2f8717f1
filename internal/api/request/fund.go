package request

type CreateFundRequest struct {
	Name            string `json:"name"`
	Type            string `json:"type"`
	Folio           string `json:"folio"`
	SchemeCode      string `json:"schemeCode"`
	MoneycontrolURL string `json:"moneycontrolUrl"`
	Symbol          string `json:"symbol"`
}
