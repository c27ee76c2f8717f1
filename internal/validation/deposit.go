package validation

import (
	"strconv"
	"strings"
	"time"

	"github.com/ndewijer/mutualfund-tracker/internal/api/request"
)

func ValidateCreateDeposit(req request.CreateDepositRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}
	positiveDecimal(errors, "amount", req.Amount)
	positiveDecimal(errors, "rate", req.Rate)
	positiveDecimal(errors, "maturityAmount", req.MaturityAmount)

	if tenure, err := strconv.Atoi(strings.TrimSpace(req.Tenure)); err != nil || tenure <= 0 {
		errors["tenure"] = "tenure must be a positive number of days"
	}

	date(errors, "depositDate", req.DepositDate)
	date(errors, "maturityDate", req.MaturityDate)

	if _, ok := errors["depositDate"]; !ok {
		if _, ok := errors["maturityDate"]; !ok {
			dd, _ := time.Parse("2006-01-02", req.DepositDate)
			md, _ := time.Parse("2006-01-02", req.MaturityDate)
			if md.Before(dd) {
				errors["maturityDate"] = "maturity date must not be before deposit date"
			}
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
