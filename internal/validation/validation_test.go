package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/ndewijer/mutualfund-tracker/internal/api/request"
)

func TestValidateCreatePurchase(t *testing.T) {
	valid := request.CreatePurchaseRequest{FundID: "3f2a", NAV: "10.5", Amount: "5000", Date: "2024-01-15"}

	t.Run("valid request", func(t *testing.T) {
		if err := ValidateCreatePurchase(valid); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	tests := []struct {
		name  string
		mod   func(r *request.CreatePurchaseRequest)
		field string
	}{
		{"zero nav", func(r *request.CreatePurchaseRequest) { r.NAV = "0" }, "nav"},
		{"negative amount", func(r *request.CreatePurchaseRequest) { r.Amount = "-1" }, "amount"},
		{"text amount", func(r *request.CreatePurchaseRequest) { r.Amount = "lots" }, "amount"},
		{"bad date", func(r *request.CreatePurchaseRequest) { r.Date = "15/01/2024" }, "date"},
		{"non-hex fund id", func(r *request.CreatePurchaseRequest) { r.FundID = "xyz" }, "fundId"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mod(&req)

			err := ValidateCreatePurchase(req)
			var verr *Error
			if !errors.As(err, &verr) {
				t.Fatalf("Expected *Error, got %v", err)
			}
			if _, ok := verr.Fields[tt.field]; !ok {
				t.Errorf("Expected error on %s, got %v", tt.field, verr.Fields)
			}
		})
	}
}

func TestValidateCreateFund(t *testing.T) {
	err := ValidateCreateFund(request.CreateFundRequest{SchemeCode: "12a", MoneycontrolURL: "ftp://x"})
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("Expected *Error, got %v", err)
	}
	for _, field := range []string{"name", "type", "schemeCode", "moneycontrolUrl"} {
		if _, ok := verr.Fields[field]; !ok {
			t.Errorf("Expected error on %s", field)
		}
	}

	if !strings.HasPrefix(verr.Error(), "moneycontrolUrl: ") {
		t.Errorf("Expected fields sorted in message, got %q", verr.Error())
	}
}

func TestValidateCreateDeposit(t *testing.T) {
	req := request.CreateDepositRequest{
		Name: "SBI FD", Amount: "100000", Rate: "7.1", Tenure: "365",
		DepositDate: "2024-01-01", MaturityDate: "2023-12-31", MaturityAmount: "107100",
	}

	err := ValidateCreateDeposit(req)
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("Expected *Error, got %v", err)
	}
	if len(verr.Fields) != 1 || verr.Fields["maturityDate"] == "" {
		t.Errorf("Expected only maturityDate error, got %v", verr.Fields)
	}

	req.MaturityDate = "2024-12-31"
	if err := ValidateCreateDeposit(req); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}
