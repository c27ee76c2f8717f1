package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndewijer/mutualfund-tracker/internal/api/handlers"
	"github.com/ndewijer/mutualfund-tracker/internal/testutil"
	"github.com/ndewijer/mutualfund-tracker/internal/valuation"
)

// statusBody mirrors the JSON shape of a status report. Rates may be null.
type statusBody struct {
	Source    string `json:"source"`
	Positions []struct {
		Name         string   `json:"name"`
		AvgDays      int      `json:"avgDays"`
		CurrentValue float64  `json:"currentValue"`
		Appreciation float64  `json:"appreciation"`
		Annualized   *float64 `json:"annualized"`
	} `json:"positions"`
	Total struct {
		Amount       float64  `json:"amount"`
		CurrentValue float64  `json:"currentValue"`
		Appreciation *float64 `json:"appreciation"`
	} `json:"total"`
}

func TestStatusHandler_Status(t *testing.T) {
	t.Run("values portfolio", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		fund := testutil.CreateFund(t, db, "Axis Bluechip", "equity")
		testutil.NewPurchase(fund.ID).
			WithAmount(1000).
			WithNAV(10).
			WithDate(testutil.Date(2024, 1, 1)).
			Build(t, db)
		src := testutil.NewStubSource("amfi").WithNAV(fund.ID, 12, testutil.Date(2024, 12, 31))
		handler := handlers.NewStatusHandler(
			testutil.NewTestStatusService(t, db, &testutil.StubSources{Source: src}))

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/status",
			map[string]string{"date": "2024-12-31"})
		w := httptest.NewRecorder()

		// Execute
		handler.Status(w, req)

		// Assert
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var body statusBody
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(body.Positions) != 1 {
			t.Fatalf("Expected 1 position, got %d", len(body.Positions))
		}
		pos := body.Positions[0]
		if pos.AvgDays != 365 {
			t.Errorf("Expected 365 average days, got %d", pos.AvgDays)
		}
		if pos.CurrentValue != 1200 {
			t.Errorf("Expected current value 1200, got %v", pos.CurrentValue)
		}
		if pos.Appreciation != 20 {
			t.Errorf("Expected appreciation 20, got %v", pos.Appreciation)
		}
		if pos.Annualized == nil {
			t.Error("Expected annualized return, got null")
		}
		if body.Total.Amount != 1000 {
			t.Errorf("Expected total amount 1000, got %v", body.Total.Amount)
		}
	})

	t.Run("passes source override", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		sources := &testutil.StubSources{Source: testutil.NewStubSource("yahoo")}
		handler := handlers.NewStatusHandler(testutil.NewTestStatusService(t, db, sources))

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/status",
			map[string]string{"source": "yahoo", "date": "2024-12-31"})
		w := httptest.NewRecorder()

		handler.Status(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var body statusBody
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if body.Total.Appreciation != nil {
			t.Errorf("Expected null appreciation for empty portfolio, got %v", *body.Total.Appreciation)
		}
		if len(sources.Requested) != 1 || sources.Requested[0] != "yahoo" {
			t.Errorf("Expected source 'yahoo' to be requested, got %v", sources.Requested)
		}
	})

	t.Run("missing quote is a bad gateway", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		fund := testutil.CreateFund(t, db, "Axis Bluechip", "equity")
		testutil.NewPurchase(fund.ID).Build(t, db)
		src := testutil.NewStubSource("amfi")
		handler := handlers.NewStatusHandler(
			testutil.NewTestStatusService(t, db, &testutil.StubSources{Source: src}))

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/status",
			map[string]string{"date": "2024-12-31"})
		w := httptest.NewRecorder()

		handler.Status(w, req)

		if w.Code != http.StatusBadGateway {
			t.Errorf("Expected status 502, got %d", w.Code)
		}
	})

	t.Run("source failure", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		fund := testutil.CreateFund(t, db, "Axis Bluechip", "equity")
		testutil.NewPurchase(fund.ID).Build(t, db)
		src := testutil.NewStubSource("amfi").WithError(errors.New("connection reset"))
		handler := handlers.NewStatusHandler(
			testutil.NewTestStatusService(t, db, &testutil.StubSources{Source: src}))

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/status",
			map[string]string{"date": "2024-12-31"})
		w := httptest.NewRecorder()

		handler.Status(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected status 500, got %d", w.Code)
		}
	})

	t.Run("bad parameters", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewStatusHandler(
			testutil.NewTestStatusService(t, db, &testutil.StubSources{Source: testutil.NewStubSource("amfi")}))

		for _, query := range []map[string]string{
			{"sort": "value"},
			{"type": "equity", "exclude_type": "debt"},
			{"date": "2024/12/31"},
		} {
			req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/status", query)
			w := httptest.NewRecorder()

			handler.Status(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("query %v: expected status 400, got %d", query, w.Code)
			}
		}
	})
}

func TestStatusHandler_Distribution(t *testing.T) {
	t.Run("nothing invested is an empty list", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewStatusHandler(
			testutil.NewTestStatusService(t, db, &testutil.StubSources{Source: testutil.NewStubSource("amfi")}))

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/distribution",
			map[string]string{"date": "2024-12-31"})
		w := httptest.NewRecorder()

		handler.Distribution(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}

		var shares []valuation.TypeShare
		if err := json.NewDecoder(w.Body).Decode(&shares); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(shares) != 0 {
			t.Errorf("Expected no shares, got %v", shares)
		}
	})

	t.Run("splits amount by type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		equity := testutil.CreateFund(t, db, "Axis Bluechip", "equity")
		debt := testutil.CreateFund(t, db, "ICICI Gilt", "debt")
		testutil.NewPurchase(equity.ID).WithAmount(3000).Build(t, db)
		testutil.NewPurchase(debt.ID).WithAmount(1000).Build(t, db)
		handler := handlers.NewStatusHandler(
			testutil.NewTestStatusService(t, db, &testutil.StubSources{Source: testutil.NewStubSource("amfi")}))

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/distribution",
			map[string]string{"date": "2024-12-31"})
		w := httptest.NewRecorder()

		handler.Distribution(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var shares []valuation.TypeShare
		if err := json.NewDecoder(w.Body).Decode(&shares); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(shares) != 2 {
			t.Fatalf("Expected 2 shares, got %d", len(shares))
		}
		if shares[0].Type != "debt" || shares[0].Percentage != 25 {
			t.Errorf("Expected debt at 25%%, got %s at %v", shares[0].Type, shares[0].Percentage)
		}
		if shares[1].Type != "equity" || shares[1].Percentage != 75 {
			t.Errorf("Expected equity at 75%%, got %s at %v", shares[1].Type, shares[1].Percentage)
		}
	})
}
