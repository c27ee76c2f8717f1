package validation

import (
	"strings"

	"github.com/ndewijer/mutualfund-tracker/internal/api/request"
)

func ValidateCreateFund(req request.CreateFundRequest) error {
	errors := make(map[string]string)

	// Required field
	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	} else if len(req.Name) > 200 {
		errors["name"] = "name must be 200 characters or less"
	}

	if strings.TrimSpace(req.Type) == "" {
		errors["type"] = "type is required"
	} else if len(req.Type) > 50 {
		errors["type"] = "type must be 50 characters or less"
	}

	if len(req.Folio) > 50 {
		errors["folio"] = "folio must be 50 characters or less"
	}

	if req.SchemeCode != "" && strings.Trim(req.SchemeCode, "0123456789") != "" {
		errors["schemeCode"] = "scheme code must be numeric"
	}

	if req.MoneycontrolURL != "" &&
		!strings.HasPrefix(req.MoneycontrolURL, "http://") &&
		!strings.HasPrefix(req.MoneycontrolURL, "https://") {
		errors["moneycontrolUrl"] = "moneycontrol url must be an http(s) url"
	}

	if len(req.Symbol) > 20 {
		errors["symbol"] = "symbol must be 20 characters or less"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
