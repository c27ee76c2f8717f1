// Package quote provides the NAV sources a portfolio can be valued against.
//
// Every source answers the same question: for each fund, what is the latest
// NAV on or before a date. Sources that talk to the network fan out one
// request per fund (or per fund house) through fetch.All.
package quote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ndewijer/mutualfund-tracker/internal/model"
)

// Source names accepted by New.
const (
	SourceAMFI         = "amfi"
	SourceMoneycontrol = "moneycontrol"
	SourceYahoo        = "yahoo"
	SourceSnapshot     = "snapshot"
)

var (
	// ErrNoSchemeCode indicates a fund without an AMFI scheme code.
	ErrNoSchemeCode = errors.New("fund has no AMFI scheme code")

	// ErrNoFundHouse indicates a fund whose name matches no known AMFI fund house.
	ErrNoFundHouse = errors.New("fund matches no AMFI fund house")

	// ErrNoMoneycontrolURL indicates a fund without a Moneycontrol page.
	ErrNoMoneycontrolURL = errors.New("fund has no moneycontrol url")

	// ErrNoSymbol indicates a fund without a Yahoo Finance symbol.
	ErrNoSymbol = errors.New("fund has no yahoo symbol")
)

// Source looks up the latest NAV of each fund as of a date.
//
// The returned map is keyed by fund ID. A source may omit funds it has no
// NAV for; callers treat an absent fund as a missing quote.
type Source interface {
	Name() string
	Quotes(ctx context.Context, funds []model.Fund, asOf time.Time) (map[string]model.FundQuote, error)
}

// getBody performs a GET and returns the response body. Any status other
// than 200 is an error.
func getBody(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", url, err)
	}
	return body, nil
}

func civilDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
