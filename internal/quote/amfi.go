package quote

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ndewijer/mutualfund-tracker/internal/fetch"
	"github.com/ndewijer/mutualfund-tracker/internal/model"
)

// DefaultAMFIURL is the AMFI NAV history report endpoint.
const DefaultAMFIURL = "http://portal.amfiindia.com/DownloadNAVHistoryReport_Po.aspx"

// AMFIDateLayout is the date format used in AMFI URLs and feeds (14-Aug-2017).
const AMFIDateLayout = "02-Jan-2006"

// FundHouses maps fund house names to their AMFI ids. A fund belongs to
// every house whose name appears, case-insensitively, in the fund's name.
var FundHouses = map[string]string{
	"ABN  AMRO":          "39",
	"AEGON":              "50",
	"Alliance Capital":   "1",
	"Axis":               "53",
	"Baroda Pioneer":     "4",
	"Benchmark":          "36",
	"Birla Sun Life":     "3",
	"BNP Paribas":        "59",
	"BOI AXA":            "46",
	"Canara Robeco":      "32",
	"Daiwa":              "60",
	"DBS Chola":          "31",
	"Deutsche":           "38",
	"DHFL Pramerica":     "58",
	"DSP BlackRock":      "6",
	"Edelweiss":          "47",
	"Escorts":            "13",
	"Fidelity":           "40",
	"Fortis":             "51",
	"Franklin":           "27",
	"GIC":                "8",
	"Goldman Sachs":      "49",
	"HDFC":               "9",
	"HSBC":               "37",
	"ICICI Prudential":   "20",
	"IDBI":               "57",
	"IDFC":               "48",
	"IIFL":               "62",
	"Indiabulls":         "63",
	"ING":                "14",
	"Invesco":            "42",
	"JM Financial":       "16",
	"JPMorgan":           "43",
	"Kotak":              "17",
	"L&T":                "56",
	"LIC":                "18",
	"Mahindra":           "69",
	"Mirae Asset":        "45",
	"Morgan Stanley":     "19",
	"Motilal Oswal":      "55",
	"Peerless":           "54",
	"PineBridge":         "44",
	"PNB":                "34",
	"PPFAS":              "64",
	"PRINCIPAL":          "10",
	"Quantum":            "41",
	"Reliance":           "21",
	"Sahara":             "35",
	"SBI":                "22",
	"Shinsei":            "52",
	"Shriram":            "67",
	"Standard Chartered": "2",
	"Sundaram":           "33",
	"Tata":               "25",
	"Taurus":             "26",
	"Union":              "61",
	"UTI":                "28",
	"Zurich India":       "29",
}

// FundHouseNames returns the keys of FundHouses in alphabetical order.
func FundHouseNames() []string {
	names := make([]string, 0, len(FundHouses))
	for name := range FundHouses {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})
	return names
}

// MatchFundHouses returns the ids of every fund house named in fundName.
func MatchFundHouses(fundName string) []string {
	lower := strings.ToLower(fundName)
	var ids []string
	for _, name := range FundHouseNames() {
		if strings.Contains(lower, strings.ToLower(name)) {
			ids = append(ids, FundHouses[name])
		}
	}
	return ids
}

// HistoryURL builds the AMFI NAV history URL for one fund house.
//
// Parameters:
//   - base: report endpoint, usually DefaultAMFIURL
//   - houseID: AMFI fund house id
//   - from, to: inclusive report window
func HistoryURL(base, houseID string, from, to time.Time) string {
	q := url.Values{}
	q.Set("mf", houseID)
	q.Set("tp", "1")
	q.Set("frmdt", from.Format(AMFIDateLayout))
	q.Set("todt", to.Format(AMFIDateLayout))
	return base + "?" + q.Encode()
}

// FeedEntry is one scheme's NAV from an AMFI feed.
type FeedEntry struct {
	SchemeCode string
	Name       string
	NAV        decimal.Decimal
	Date       time.Time
}

// ParseFeed reads an AMFI NAV feed. Lines look like
//
//	123651;ICICI Prudential Global Stable Equity Fund - Growth;13.35;12.95;13.35;14-Aug-2017
//
// Lines with a different field count, or whose NAV or date do not parse
// (headers, house names, "N.A." values), are skipped. The feed is ordered by
// date, so the last line for a scheme wins.
func ParseFeed(r io.Reader) (map[string]FeedEntry, error) {
	entries := make(map[string]FeedEntry)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), ";")
		if len(fields) != 6 {
			continue
		}
		nav, err := decimal.NewFromString(strings.TrimSpace(fields[2]))
		if err != nil || !nav.IsPositive() {
			continue
		}
		date, err := time.Parse(AMFIDateLayout, strings.TrimSpace(fields[5]))
		if err != nil {
			continue
		}
		code := strings.TrimSpace(fields[0])
		entries[code] = FeedEntry{
			SchemeCode: code,
			Name:       strings.TrimSpace(fields[1]),
			NAV:        nav,
			Date:       date,
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read amfi feed: %w", err)
	}
	return entries, nil
}

// AMFISource reads NAVs from the AMFI NAV history report. One report is
// fetched per fund house covering the window ending at the as-of date.
type AMFISource struct {
	client  *http.Client
	baseURL string
	window  int
	limit   int
	logger  zerolog.Logger
}

// NewAMFISource creates an AMFI source.
//
// Parameters:
//   - client: HTTP client used for report downloads
//   - baseURL: report endpoint; empty selects DefaultAMFIURL
//   - windowDays: how many days before the as-of date the report starts
//   - limit: maximum concurrent downloads, <= 0 for no limit
func NewAMFISource(client *http.Client, baseURL string, windowDays, limit int, logger zerolog.Logger) *AMFISource {
	if baseURL == "" {
		baseURL = DefaultAMFIURL
	}
	return &AMFISource{
		client:  client,
		baseURL: baseURL,
		window:  windowDays,
		limit:   limit,
		logger:  logger.With().Str("source", SourceAMFI).Logger(),
	}
}

func (s *AMFISource) Name() string { return SourceAMFI }

// Quotes downloads the report of every fund house the funds belong to and
// picks each fund's latest NAV by scheme code.
func (s *AMFISource) Quotes(ctx context.Context, funds []model.Fund, asOf time.Time) (map[string]model.FundQuote, error) {
	to := civilDate(asOf)
	from := to.AddDate(0, 0, -s.window)

	var urls []string
	for _, f := range funds {
		if f.SchemeCode == "" {
			return nil, fmt.Errorf("%s: %w", f.Name, ErrNoSchemeCode)
		}
		houses := MatchFundHouses(f.Name)
		if len(houses) == 0 {
			return nil, fmt.Errorf("%s: %w", f.Name, ErrNoFundHouse)
		}
		for _, id := range houses {
			urls = append(urls, HistoryURL(s.baseURL, id, from, to))
		}
	}

	feeds, err := fetch.All(ctx, urls, s.limit, func(ctx context.Context, u string) (map[string]FeedEntry, error) {
		s.logger.Debug().Str("url", u).Msg("fetching nav history")
		body, err := getBody(ctx, s.client, u)
		if err != nil {
			return nil, err
		}
		return ParseFeed(bytes.NewReader(body))
	})
	if err != nil {
		return nil, err
	}

	entries := make(map[string]FeedEntry)
	for _, feed := range feeds {
		for code, e := range feed {
			if cur, ok := entries[code]; !ok || e.Date.After(cur.Date) {
				entries[code] = e
			}
		}
	}

	quotes := make(map[string]model.FundQuote, len(funds))
	for _, f := range funds {
		e, ok := entries[f.SchemeCode]
		if !ok || e.Date.After(to) {
			s.logger.Warn().Str("fund", f.Name).Str("scheme_code", f.SchemeCode).Msg("scheme code not in amfi feed")
			continue
		}
		quotes[f.ID] = model.FundQuote{
			FundID: f.ID,
			NAV:    e.NAV.InexactFloat64(),
			Date:   e.Date,
			Source: SourceAMFI,
		}
	}
	return quotes, nil
}
