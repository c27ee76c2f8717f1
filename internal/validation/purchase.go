package validation

import (
	"strings"

	"github.com/ndewijer/mutualfund-tracker/internal/api/request"
)

func ValidateCreatePurchase(req request.CreatePurchaseRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.FundID) == "" {
		errors["fundId"] = "fund ID is required"
	} else if err := ValidateIDPrefix(req.FundID); err != nil {
		errors["fundId"] = err.Error()
	}
	positiveDecimal(errors, "nav", req.NAV)
	positiveDecimal(errors, "amount", req.Amount)
	date(errors, "date", req.Date)

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
