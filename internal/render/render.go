// Package render writes reports as text tables or JSON.
package render

import (
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"

	"github.com/ndewijer/mutualfund-tracker/internal/model"
	"github.com/ndewijer/mutualfund-tracker/internal/valuation"
)

// shortIDLen is how many leading characters of a UUID tables show.
const shortIDLen = 8

// HouseURL is one line of the AMFI URL listing.
type HouseURL struct {
	House string `json:"house"`
	URL   string `json:"url"`
}

// JSON writes v as indented JSON followed by a newline.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Status writes the valuation table: one row per position, a blank row and
// the portfolio total.
func Status(w io.Writer, positions []valuation.Position, total valuation.Total) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Index", "Name", "Type", "Ltst NAV", "Avg Days",
		"Amount", "Units", "Crnt val", "Appr", "Pj Yrly Ret"})

	for i, p := range positions {
		table.Append([]string{
			strconv.Itoa(i + 1),
			p.Name,
			p.Type,
			fixed(p.LatestNAV, 4),
			strconv.Itoa(p.AvgDays),
			fixed(p.Amount, 2),
			fixed(p.Units, 3),
			whole(p.CurrentValue),
			fixed(p.Appreciation, 2),
			percent(p.Annualized),
		})
	}
	table.Append(make([]string, 10))
	table.Append([]string{
		"", "Total", "", "",
		strconv.Itoa(total.AvgDays),
		fixed(total.Amount, 2),
		"",
		whole(total.CurrentValue),
		percent(total.Appreciation),
		percent(total.Annualized),
	})
	table.Render()
}

// Funds writes the fund registry. showURLs adds the Moneycontrol page and
// Yahoo symbol of each fund.
func Funds(w io.Writer, funds []model.Fund, showURLs bool) {
	header := []string{"Id", "Folio", "Name", "Type", "Scheme Code"}
	if showURLs {
		header = append(header, "Moneycontrol URL", "Symbol")
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	for _, f := range funds {
		row := []string{ShortID(f.ID), f.Folio, f.Name, f.Type, f.SchemeCode}
		if showURLs {
			row = append(row, f.MoneycontrolURL, f.Symbol)
		}
		table.Append(row)
	}
	table.Render()
}

// Purchases writes purchase lots in the order given, numbered from 1.
func Purchases(w io.Writer, lots []model.PurchaseLot) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Index", "Id", "Name", "Type", "Amount", "Date", "Units", "Purchase NAV"})
	for i, l := range lots {
		table.Append([]string{
			strconv.Itoa(i + 1),
			ShortID(l.ID),
			l.FundName,
			l.FundType,
			fixed(l.Amount, 2),
			date(l.Date),
			fixed(l.Units, 3),
			fixed(l.NAV, 4),
		})
	}
	table.Render()
}

// Distribution writes the amount and share invested per fund type.
func Distribution(w io.Writer, shares []valuation.TypeShare) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Type", "Amount", "Percentage"})
	for _, s := range shares {
		table.Append([]string{s.Type, fixed(s.Amount, 2), fixed(s.Percentage, 2)})
	}
	table.Render()
}

// NavDates writes the dates holding NAV snapshots.
func NavDates(w io.Writer, dates []model.NavSnapshotDate) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Index", "Date", "Funds"})
	for i, d := range dates {
		table.Append([]string{strconv.Itoa(i + 1), date(d.Date), strconv.Itoa(d.Funds)})
	}
	table.Render()
}

// Deposits writes fixed deposits in the order given.
func Deposits(w io.Writer, deposits []model.FixedDeposit) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Index", "Id", "Name", "Amount", "Rate", "Tenure",
		"Deposit Date", "Maturity Date", "Maturity Amount"})
	for i, d := range deposits {
		table.Append([]string{
			strconv.Itoa(i + 1),
			ShortID(d.ID),
			d.Name,
			fixed(d.Amount, 2),
			fixed(d.Rate, 2),
			strconv.Itoa(d.Tenure),
			date(d.DepositDate),
			date(d.MaturityDate),
			fixed(d.MaturityAmount, 2),
		})
	}
	table.Render()
}

// AMFIURLs writes each fund house followed by its NAV history URL and a
// blank line.
func AMFIURLs(w io.Writer, urls []HouseURL) error {
	for _, u := range urls {
		if _, err := io.WriteString(w, u.House+"\n"+u.URL+"\n\n"); err != nil {
			return err
		}
	}
	return nil
}

// ShortID abbreviates a UUID for display. Any unique prefix is accepted back
// as an ID by every command.
func ShortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

func fixed(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places)
}

// whole drops the fraction; current values are shown in whole rupees.
func whole(v float64) string {
	return decimal.NewFromFloat(v).Truncate(0).String()
}

func percent(r valuation.Return) string {
	if !r.Valid {
		return valuation.NotApplicable.String()
	}
	return fixed(r.Pct, 2)
}

func date(t time.Time) string {
	return t.Format(time.DateOnly)
}
