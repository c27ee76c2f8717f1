// Package valuation turns purchase lots and one NAV per fund into fund
// positions, a portfolio total and a per-type distribution.
//
// Everything here is a pure function of its arguments: no I/O, no clock, no
// goroutines. Callers fetch lots and quotes and render the results.
package valuation

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/ndewijer/mutualfund-tracker/internal/model"
)

// daysPerYear is the compounding horizon used by the annualized return.
const daysPerYear = 365

var (
	// ErrNothingInvested is returned when an aggregate is requested over a
	// zero invested amount.
	ErrNothingInvested = errors.New("nothing invested")

	// ErrInvalidLot indicates a lot with a non-positive amount or unit count,
	// or one purchased after the evaluation date.
	ErrInvalidLot = errors.New("invalid purchase lot")

	// ErrInvalidQuote indicates a quote with a non-positive NAV.
	ErrInvalidQuote = errors.New("invalid quote")
)

// MissingQuoteError is returned when a lot references a fund that has no
// quote. It aborts the whole computation.
type MissingQuoteError struct {
	FundID   string
	FundName string
}

func (e *MissingQuoteError) Error() string {
	if e.FundName == "" {
		return fmt.Sprintf("no quote for fund %s", e.FundID)
	}
	return fmt.Sprintf("no quote for fund %s (%s)", e.FundID, e.FundName)
}

// Return is a percentage that may be not applicable, e.g. an annualized
// return over a zero holding period.
type Return struct {
	Pct   float64
	Valid bool
}

// NotApplicable is the Return reported when a rate cannot be computed.
var NotApplicable = Return{}

func (r Return) String() string {
	if !r.Valid {
		return "NA"
	}
	return strconv.FormatFloat(r.Pct, 'f', 2, 64)
}

// MarshalJSON encodes a not applicable return as null.
func (r Return) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(r.Pct, 'f', -1, 64)), nil
}

// Position is the aggregation of every lot of one fund as of one date.
type Position struct {
	FundID       string  `json:"fundId"`
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	LatestNAV    float64 `json:"latestNav"`
	AvgDays      int     `json:"avgDays"`
	Amount       float64 `json:"amount"`
	Units        float64 `json:"units"`
	CurrentValue float64 `json:"currentValue"`
	Appreciation float64 `json:"appreciation"`
	Annualized   Return  `json:"annualized"`
}

// Total is the portfolio-wide aggregate of a set of positions.
type Total struct {
	AvgDays      int     `json:"avgDays"`
	Amount       float64 `json:"amount"`
	CurrentValue float64 `json:"currentValue"`
	Appreciation Return  `json:"appreciation"`
	Annualized   Return  `json:"annualized"`
}

// ComputePositions groups lots by fund and values each group with the fund's
// quote as of asOf.
//
// Groups are emitted in the order their fund first appears in lots; lots keep
// their order inside a group. A lot whose fund has no quote yields a
// *MissingQuoteError and no positions.
func ComputePositions(lots []model.PurchaseLot, quotes map[string]model.FundQuote, asOf time.Time) ([]Position, error) {
	day := civilDate(asOf)

	var order []string
	groups := make(map[string][]model.PurchaseLot)
	for _, lot := range lots {
		if err := checkLot(lot, day); err != nil {
			return nil, err
		}
		quote, ok := quotes[lot.FundID]
		if !ok {
			return nil, &MissingQuoteError{FundID: lot.FundID, FundName: lot.FundName}
		}
		if quote.NAV <= 0 {
			return nil, fmt.Errorf("%w: fund %s has NAV %v", ErrInvalidQuote, lot.FundID, quote.NAV)
		}
		if _, seen := groups[lot.FundID]; !seen {
			order = append(order, lot.FundID)
		}
		groups[lot.FundID] = append(groups[lot.FundID], lot)
	}

	positions := make([]Position, 0, len(order))
	for _, fundID := range order {
		positions = append(positions, position(groups[fundID], quotes[fundID].NAV, day))
	}
	return positions, nil
}

func position(lots []model.PurchaseLot, nav float64, day time.Time) Position {
	var amount, units, weighted float64
	for _, lot := range lots {
		amount += lot.Amount
		units += lot.Units
		weighted += lot.Amount * float64(ageDays(lot.Date, day))
	}

	avgDays := int(math.Floor(weighted / amount))
	value := math.Floor(units * nav)
	appr := appreciation(value, amount)

	return Position{
		FundID:       lots[0].FundID,
		Name:         lots[0].FundName,
		Type:         lots[0].FundType,
		LatestNAV:    nav,
		AvgDays:      avgDays,
		Amount:       amount,
		Units:        units,
		CurrentValue: value,
		Appreciation: appr,
		Annualized:   annualize(appr, avgDays),
	}
}

// ComputeTotal aggregates positions into a portfolio total. The weighted
// holding period is Σ(amount × avg days) over positions divided by the total
// amount, floored. With nothing invested it returns ErrNothingInvested and a
// Total whose rates are not applicable.
func ComputeTotal(positions []Position) (Total, error) {
	var amount, value, weighted float64
	for _, p := range positions {
		amount += p.Amount
		value += p.CurrentValue
		weighted += p.Amount * float64(p.AvgDays)
	}
	if amount <= 0 {
		return Total{CurrentValue: value}, ErrNothingInvested
	}

	avgDays := int(math.Floor(weighted / amount))
	appr := appreciation(value, amount)

	return Total{
		AvgDays:      avgDays,
		Amount:       amount,
		CurrentValue: value,
		Appreciation: Return{Pct: appr, Valid: true},
		Annualized:   annualize(appr, avgDays),
	}, nil
}

func checkLot(lot model.PurchaseLot, day time.Time) error {
	switch {
	case lot.Amount <= 0:
		return fmt.Errorf("%w: lot %s amount %v", ErrInvalidLot, lot.ID, lot.Amount)
	case lot.Units <= 0:
		return fmt.Errorf("%w: lot %s units %v", ErrInvalidLot, lot.ID, lot.Units)
	case civilDate(lot.Date).After(day):
		return fmt.Errorf("%w: lot %s purchased %s after %s", ErrInvalidLot,
			lot.ID, lot.Date.Format(time.DateOnly), day.Format(time.DateOnly))
	}
	return nil
}

// appreciation is the percentage gain of value over amount, rounded to two
// decimals.
func appreciation(value, amount float64) float64 {
	return round(((value-amount)*100)/amount, 2)
}

// annualize extrapolates a percentage gain held for days to a yearly rate.
// The compounding factor is rounded to four decimals before it is turned back
// into a percentage; existing reports depend on that ordering.
func annualize(apprPct float64, days int) Return {
	if days == 0 {
		return NotApplicable
	}
	factor := round(math.Pow(1+apprPct/100, daysPerYear/float64(days)), 4)
	return Return{Pct: (factor - 1) * 100, Valid: true}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// civilDate drops the clock, keeping the calendar date of t in its own location.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ageDays(purchased, day time.Time) int {
	return int(day.Sub(civilDate(purchased)) / (24 * time.Hour))
}
