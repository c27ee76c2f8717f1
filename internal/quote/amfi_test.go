package quote

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/mutualfund-tracker/internal/model"
)

const iciciFeed = `Scheme Code;Scheme Name;Net Asset Value;Repurchase Price;Sale Price;Date

Open Ended Schemes ( Income )

ICICI Prudential Mutual Fund

123651;ICICI Prudential Global Stable Equity Fund - Growth;13.35;12.95;13.35;14-Aug-2017
120586;ICICI Prudential Bluechip Fund - Growth;N.A.;;;14-Aug-2017
123651;ICICI Prudential Global Stable Equity Fund - Growth;13.41;13.01;13.41;16-Aug-2017
120586;ICICI Prudential Bluechip Fund - Growth;38.92;38.92;38.92;16-Aug-2017
`

func TestParseFeed(t *testing.T) {
	entries, err := ParseFeed(strings.NewReader(iciciFeed))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	t.Run("last line for a scheme wins", func(t *testing.T) {
		e := entries["123651"]
		assert.Equal(t, "13.41", e.NAV.String())
		assert.Equal(t, time.Date(2017, 8, 16, 0, 0, 0, 0, time.UTC), e.Date)
		assert.Equal(t, "ICICI Prudential Global Stable Equity Fund - Growth", e.Name)
	})

	t.Run("N.A. values are skipped", func(t *testing.T) {
		e := entries["120586"]
		assert.Equal(t, "38.92", e.NAV.String())
	})
}

func TestHistoryURL(t *testing.T) {
	from := time.Date(2017, 8, 9, 0, 0, 0, 0, time.UTC)
	to := time.Date(2017, 8, 16, 0, 0, 0, 0, time.UTC)

	got := HistoryURL(DefaultAMFIURL, "20", from, to)

	assert.Equal(t,
		"http://portal.amfiindia.com/DownloadNAVHistoryReport_Po.aspx?frmdt=09-Aug-2017&mf=20&todt=16-Aug-2017&tp=1",
		got)
}

func TestMatchFundHouses(t *testing.T) {
	assert.Equal(t, []string{"20"}, MatchFundHouses("icici prudential bluechip"))
	assert.Equal(t, []string{"9"}, MatchFundHouses("HDFC Mid-Cap Opportunities"))
	assert.Empty(t, MatchFundHouses("Unknown Capital Growth"))
}

func TestFundHouseNames_Sorted(t *testing.T) {
	names := FundHouseNames()
	require.Len(t, names, len(FundHouses))
	assert.Equal(t, "ABN  AMRO", names[0])
	assert.Equal(t, "Zurich India", names[len(names)-1])
}

func TestAMFISource_Quotes(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "20", r.URL.Query().Get("mf"))
		assert.Equal(t, "16-Aug-2017", r.URL.Query().Get("todt"))
		assert.Equal(t, "09-Aug-2017", r.URL.Query().Get("frmdt"))
		fmt.Fprint(w, iciciFeed)
	}))
	defer srv.Close()

	src := NewAMFISource(srv.Client(), srv.URL, 7, 0, zerolog.Nop())
	funds := []model.Fund{
		{ID: "f1", Name: "ICICI Prudential Global Stable Equity", SchemeCode: "123651"},
		{ID: "f2", Name: "ICICI Prudential Bluechip", SchemeCode: "120586"},
	}

	quotes, err := src.Quotes(context.Background(), funds, time.Date(2017, 8, 16, 18, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, int32(1), hits.Load(), "both funds share one fund house report")
	require.Len(t, quotes, 2)
	assert.InDelta(t, 13.41, quotes["f1"].NAV, 1e-9)
	assert.InDelta(t, 38.92, quotes["f2"].NAV, 1e-9)
	assert.Equal(t, SourceAMFI, quotes["f1"].Source)
}

func TestAMFISource_UnknownSchemeIsOmitted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, iciciFeed)
	}))
	defer srv.Close()

	src := NewAMFISource(srv.Client(), srv.URL, 7, 0, zerolog.Nop())
	funds := []model.Fund{{ID: "f1", Name: "ICICI Prudential Tech", SchemeCode: "999999"}}

	quotes, err := src.Quotes(context.Background(), funds, time.Date(2017, 8, 16, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, quotes)
}

func TestAMFISource_Errors(t *testing.T) {
	asOf := time.Date(2017, 8, 16, 0, 0, 0, 0, time.UTC)

	t.Run("fund without scheme code", func(t *testing.T) {
		src := NewAMFISource(http.DefaultClient, "http://invalid.test", 7, 0, zerolog.Nop())
		_, err := src.Quotes(context.Background(), []model.Fund{{ID: "f1", Name: "HDFC Top 100"}}, asOf)
		assert.ErrorIs(t, err, ErrNoSchemeCode)
	})

	t.Run("fund outside every fund house", func(t *testing.T) {
		src := NewAMFISource(http.DefaultClient, "http://invalid.test", 7, 0, zerolog.Nop())
		_, err := src.Quotes(context.Background(), []model.Fund{{ID: "f1", Name: "Nowhere Fund", SchemeCode: "1"}}, asOf)
		assert.ErrorIs(t, err, ErrNoFundHouse)
	})

	t.Run("server failure fails the batch", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		src := NewAMFISource(srv.Client(), srv.URL, 7, 0, zerolog.Nop())
		quotes, err := src.Quotes(context.Background(), []model.Fund{{ID: "f1", Name: "HDFC Top 100", SchemeCode: "1"}}, asOf)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status 500")
		assert.Nil(t, quotes)
	})
}
