package quote

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ndewijer/mutualfund-tracker/internal/apperrors"
	"github.com/ndewijer/mutualfund-tracker/internal/fetch"
	"github.com/ndewijer/mutualfund-tracker/internal/model"
)

var (
	mcNAVPattern  = regexp.MustCompile(`class="bd30tp">([\d,]+\.\d+)`)
	mcDatePattern = regexp.MustCompile(`NAV as on (\d+ \w+, \d+)`)
)

// MoneycontrolSource scrapes the current NAV from each fund's Moneycontrol
// page. The page only shows the latest NAV, so the as-of date is ignored.
type MoneycontrolSource struct {
	client *http.Client
	limit  int
	logger zerolog.Logger
}

// NewMoneycontrolSource creates a Moneycontrol source. limit bounds the
// number of concurrent page fetches; <= 0 means one per fund at once.
func NewMoneycontrolSource(client *http.Client, limit int, logger zerolog.Logger) *MoneycontrolSource {
	return &MoneycontrolSource{
		client: client,
		limit:  limit,
		logger: logger.With().Str("source", SourceMoneycontrol).Logger(),
	}
}

func (s *MoneycontrolSource) Name() string { return SourceMoneycontrol }

func (s *MoneycontrolSource) Quotes(ctx context.Context, funds []model.Fund, _ time.Time) (map[string]model.FundQuote, error) {
	byID := make(map[string]model.Fund, len(funds))
	ids := make([]string, 0, len(funds))
	for _, f := range funds {
		if f.MoneycontrolURL == "" {
			return nil, fmt.Errorf("%s: %w", f.Name, ErrNoMoneycontrolURL)
		}
		byID[f.ID] = f
		ids = append(ids, f.ID)
	}

	return fetch.All(ctx, ids, s.limit, func(ctx context.Context, id string) (model.FundQuote, error) {
		f := byID[id]
		s.logger.Debug().Str("url", f.MoneycontrolURL).Msg("fetching fund page")
		body, err := getBody(ctx, s.client, f.MoneycontrolURL)
		if err != nil {
			return model.FundQuote{}, err
		}
		nav, date, err := ParseMoneycontrolPage(body)
		if err != nil {
			return model.FundQuote{}, fmt.Errorf("%s: %w", f.Name, err)
		}
		return model.FundQuote{
			FundID: f.ID,
			NAV:    nav.InexactFloat64(),
			Date:   date,
			Source: SourceMoneycontrol,
		}, nil
	})
}

// ParseMoneycontrolPage extracts the NAV and its date from a fund page.
// NAVs may carry thousands separators ("1,234.56").
func ParseMoneycontrolPage(page []byte) (decimal.Decimal, time.Time, error) {
	m := mcNAVPattern.FindSubmatch(page)
	if m == nil {
		return decimal.Decimal{}, time.Time{}, apperrors.ErrNAVNotFound
	}
	nav, err := decimal.NewFromString(strings.ReplaceAll(string(m[1]), ",", ""))
	if err != nil {
		return decimal.Decimal{}, time.Time{}, fmt.Errorf("failed to parse nav %q: %w", m[1], err)
	}

	d := mcDatePattern.FindSubmatch(page)
	if d == nil {
		return decimal.Decimal{}, time.Time{}, fmt.Errorf("nav date: %w", apperrors.ErrNAVNotFound)
	}
	date, err := parseMoneycontrolDate(string(d[1]))
	if err != nil {
		return decimal.Decimal{}, time.Time{}, err
	}
	return nav, date, nil
}

func parseMoneycontrolDate(s string) (time.Time, error) {
	for _, layout := range []string{"2 Jan, 2006", "2 January, 2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse nav date %q", s)
}
