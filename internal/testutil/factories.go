package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/ndewijer/mutualfund-tracker/internal/model"
)

// FundBuilder provides a fluent interface for creating test funds.
//
// Example usage:
//
//	fund := testutil.NewFund().
//	    WithName("HDFC Top 100").
//	    WithType("equity").
//	    Build(t, db)
type FundBuilder struct {
	ID              string
	Name            string
	Type            string
	Folio           string
	SchemeCode      string
	MoneycontrolURL string
	Symbol          string
}

// NewFund creates a FundBuilder with sensible defaults.
func NewFund() *FundBuilder {
	return &FundBuilder{
		ID:         MakeID(),
		Name:       MakeFundName("HDFC Test Fund"),
		Type:       "equity",
		Folio:      randomAlphanumeric(8),
		SchemeCode: MakeSchemeCode(),
	}
}

// WithID sets a fixed ID.
func (b *FundBuilder) WithID(id string) *FundBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *FundBuilder) WithName(name string) *FundBuilder {
	b.Name = name
	return b
}

// WithType sets the fund type.
func (b *FundBuilder) WithType(fundType string) *FundBuilder {
	b.Type = fundType
	return b
}

// WithSchemeCode sets the AMFI scheme code.
func (b *FundBuilder) WithSchemeCode(code string) *FundBuilder {
	b.SchemeCode = code
	return b
}

// WithMoneycontrolURL sets the Moneycontrol page.
func (b *FundBuilder) WithMoneycontrolURL(url string) *FundBuilder {
	b.MoneycontrolURL = url
	return b
}

// WithSymbol sets the Yahoo Finance symbol.
func (b *FundBuilder) WithSymbol(symbol string) *FundBuilder {
	b.Symbol = symbol
	return b
}

// Build creates the fund in the database and returns it.
func (b *FundBuilder) Build(t *testing.T, db *sql.DB) model.Fund {
	t.Helper()

	query := `
		INSERT INTO fund (id, name, type, folio, scheme_code, mc_url, symbol)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Name, b.Type, b.Folio, b.SchemeCode, b.MoneycontrolURL, b.Symbol)
	if err != nil {
		t.Fatalf("Failed to create test fund: %v", err)
	}

	return model.Fund{
		ID:              b.ID,
		Name:            b.Name,
		Type:            b.Type,
		Folio:           b.Folio,
		SchemeCode:      b.SchemeCode,
		MoneycontrolURL: b.MoneycontrolURL,
		Symbol:          b.Symbol,
	}
}

// CreateFund creates a fund with the given name and type.
func CreateFund(t *testing.T, db *sql.DB, name, fundType string) model.Fund {
	t.Helper()
	return NewFund().WithName(name).WithType(fundType).Build(t, db)
}

// PurchaseBuilder provides a fluent interface for creating purchase lots.
// Units default to amount / nav when not set.
//
// Example usage:
//
//	lot := testutil.NewPurchase(fund.ID).
//	    WithAmount(1000).
//	    WithNAV(10).
//	    WithDate(testutil.Date(2024, 1, 1)).
//	    Build(t, db)
type PurchaseBuilder struct {
	ID     string
	FundID string
	Amount float64
	NAV    float64
	Units  float64
	Date   time.Time
}

// NewPurchase creates a PurchaseBuilder with sensible defaults.
func NewPurchase(fundID string) *PurchaseBuilder {
	return &PurchaseBuilder{
		ID:     MakeID(),
		FundID: fundID,
		Amount: 1000,
		NAV:    10,
		Date:   Date(2024, 1, 1),
	}
}

// WithAmount sets the amount invested.
func (b *PurchaseBuilder) WithAmount(amount float64) *PurchaseBuilder {
	b.Amount = amount
	return b
}

// WithNAV sets the purchase NAV.
func (b *PurchaseBuilder) WithNAV(nav float64) *PurchaseBuilder {
	b.NAV = nav
	return b
}

// WithUnits sets the units bought explicitly.
func (b *PurchaseBuilder) WithUnits(units float64) *PurchaseBuilder {
	b.Units = units
	return b
}

// WithDate sets the purchase date.
func (b *PurchaseBuilder) WithDate(date time.Time) *PurchaseBuilder {
	b.Date = date
	return b
}

// Build creates the purchase in the database and returns it.
func (b *PurchaseBuilder) Build(t *testing.T, db *sql.DB) model.PurchaseLot {
	t.Helper()

	units := b.Units
	if units == 0 {
		units = b.Amount / b.NAV
	}

	query := `
		INSERT INTO purchase (id, fund_id, amount, nav, units, date)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.FundID, b.Amount, b.NAV, units, b.Date.Format("2006-01-02"))
	if err != nil {
		t.Fatalf("Failed to create test purchase: %v", err)
	}

	return model.PurchaseLot{
		ID:     b.ID,
		FundID: b.FundID,
		Amount: b.Amount,
		NAV:    b.NAV,
		Units:  units,
		Date:   b.Date,
	}
}

// NavSnapshotBuilder provides a fluent interface for creating stored NAVs.
type NavSnapshotBuilder struct {
	ID     string
	FundID string
	Date   time.Time
	NAV    float64
	Source string
}

// NewNavSnapshot creates a NavSnapshotBuilder with sensible defaults.
func NewNavSnapshot(fundID string) *NavSnapshotBuilder {
	return &NavSnapshotBuilder{
		ID:     MakeID(),
		FundID: fundID,
		Date:   Date(2024, 1, 1),
		NAV:    10,
		Source: "amfi",
	}
}

// WithDate sets the snapshot date.
func (b *NavSnapshotBuilder) WithDate(date time.Time) *NavSnapshotBuilder {
	b.Date = date
	return b
}

// WithNAV sets the stored NAV.
func (b *NavSnapshotBuilder) WithNAV(nav float64) *NavSnapshotBuilder {
	b.NAV = nav
	return b
}

// Build creates the snapshot in the database and returns it.
func (b *NavSnapshotBuilder) Build(t *testing.T, db *sql.DB) model.NavSnapshot {
	t.Helper()

	query := `
		INSERT INTO nav_snapshot (id, fund_id, date, nav, source)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.FundID, b.Date.Format("2006-01-02"), b.NAV, b.Source)
	if err != nil {
		t.Fatalf("Failed to create test nav snapshot: %v", err)
	}

	return model.NavSnapshot{
		ID:     b.ID,
		FundID: b.FundID,
		Date:   b.Date,
		NAV:    b.NAV,
		Source: b.Source,
	}
}

// CreateDeposit stores a fixed deposit with the given name, amount and rate.
// Deposit and maturity dates are one year apart starting at depositDate.
func CreateDeposit(t *testing.T, db *sql.DB, name string, amount, rate float64, depositDate time.Time) model.FixedDeposit {
	t.Helper()

	fd := model.FixedDeposit{
		ID:             MakeID(),
		Name:           name,
		Amount:         amount,
		Rate:           rate,
		Tenure:         365,
		DepositDate:    depositDate,
		MaturityDate:   depositDate.AddDate(1, 0, 0),
		MaturityAmount: amount * (1 + rate/100),
	}

	query := `
		INSERT INTO fixed_deposit (id, name, amount, rate, tenure, deposit_date, maturity_date, maturity_amount)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := db.Exec(query, fd.ID, fd.Name, fd.Amount, fd.Rate, fd.Tenure,
		fd.DepositDate.Format("2006-01-02"), fd.MaturityDate.Format("2006-01-02"), fd.MaturityAmount)
	if err != nil {
		t.Fatalf("Failed to create test fixed deposit: %v", err)
	}

	return fd
}
