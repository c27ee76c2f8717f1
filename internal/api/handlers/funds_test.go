package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndewijer/mutualfund-tracker/internal/api/handlers"
	"github.com/ndewijer/mutualfund-tracker/internal/api/request"
	"github.com/ndewijer/mutualfund-tracker/internal/api/response"
	"github.com/ndewijer/mutualfund-tracker/internal/model"
	"github.com/ndewijer/mutualfund-tracker/internal/testutil"
)

func TestFundHandler_Funds(t *testing.T) {
	t.Run("returns empty list when no funds exist", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewFundHandler(testutil.NewTestFundService(t, db))

		req := httptest.NewRequest(http.MethodGet, "/api/fund", nil)
		w := httptest.NewRecorder()

		handler.Funds(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}

		var funds []model.Fund
		if err := json.NewDecoder(w.Body).Decode(&funds); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(funds) != 0 {
			t.Errorf("Expected empty list, got %d funds", len(funds))
		}
	})

	t.Run("returns funds ordered by name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		testutil.CreateFund(t, db, "Zeta Liquid", "debt")
		testutil.CreateFund(t, db, "Alpha Bluechip", "equity")
		handler := handlers.NewFundHandler(testutil.NewTestFundService(t, db))

		req := httptest.NewRequest(http.MethodGet, "/api/fund", nil)
		w := httptest.NewRecorder()

		handler.Funds(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}

		var funds []model.Fund
		if err := json.NewDecoder(w.Body).Decode(&funds); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(funds) != 2 {
			t.Fatalf("Expected 2 funds, got %d", len(funds))
		}
		if funds[0].Name != "Alpha Bluechip" {
			t.Errorf("Expected 'Alpha Bluechip' first, got '%s'", funds[0].Name)
		}
	})
}

func TestFundHandler_Fund(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fund := testutil.NewFund().
		WithID("3f2a0000-0000-4000-8000-000000000001").
		WithName("Axis Midcap").
		Build(t, db)
	handler := handlers.NewFundHandler(testutil.NewTestFundService(t, db))

	tests := []struct {
		name       string
		fundID     string
		wantStatus int
	}{
		{name: "full ID", fundID: fund.ID, wantStatus: http.StatusOK},
		{name: "unique prefix", fundID: "3f2a", wantStatus: http.StatusOK},
		{name: "unknown prefix", fundID: "ffff", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/fund/"+tt.fundID,
				map[string]string{"fundId": tt.fundID})
			w := httptest.NewRecorder()

			handler.Fund(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("Expected status %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			var got model.Fund
			if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if got.ID != fund.ID {
				t.Errorf("Expected fund %s, got %s", fund.ID, got.ID)
			}
		})
	}
}

func TestFundHandler_CreateFund(t *testing.T) {
	t.Run("creates fund", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewFundHandler(testutil.NewTestFundService(t, db))

		req := testutil.NewJSONRequest(http.MethodPost, "/api/fund", request.CreateFundRequest{
			Name:       "HDFC Top 100",
			Type:       "equity",
			Folio:      "1234/56",
			SchemeCode: "102000",
		})
		w := httptest.NewRecorder()

		// Execute
		handler.CreateFund(w, req)

		// Assert
		if w.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
		}

		var fund model.Fund
		if err := json.NewDecoder(w.Body).Decode(&fund); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if fund.ID == "" {
			t.Error("Expected generated ID")
		}
		if fund.SchemeCode != "102000" {
			t.Errorf("Expected scheme code '102000', got '%s'", fund.SchemeCode)
		}
	})

	t.Run("rejects invalid fund with field details", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewFundHandler(testutil.NewTestFundService(t, db))

		req := testutil.NewJSONRequest(http.MethodPost, "/api/fund", request.CreateFundRequest{
			Type:       "equity",
			SchemeCode: "12a",
		})
		w := httptest.NewRecorder()

		handler.CreateFund(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("Expected status 400, got %d", w.Code)
		}

		var body struct {
			Error   string            `json:"error"`
			Details map[string]string `json:"details"`
		}
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if _, ok := body.Details["name"]; !ok {
			t.Errorf("Expected name error, got %v", body.Details)
		}
		if _, ok := body.Details["schemeCode"]; !ok {
			t.Errorf("Expected schemeCode error, got %v", body.Details)
		}
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewFundHandler(testutil.NewTestFundService(t, db))

		req := testutil.NewJSONRequest(http.MethodPost, "/api/fund", `{"name": `)
		w := httptest.NewRecorder()

		handler.CreateFund(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewFundHandler(testutil.NewTestFundService(t, db))

		req := testutil.NewJSONRequest(http.MethodPost, "/api/fund", `{"name":"x","type":"equity","isin":"INF"}`)
		w := httptest.NewRecorder()

		handler.CreateFund(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}

func TestFundHandler_DeleteFund(t *testing.T) {
	t.Run("deletes fund without purchases", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		fund := testutil.CreateFund(t, db, "Kotak Liquid", "debt")
		handler := handlers.NewFundHandler(testutil.NewTestFundService(t, db))

		req := testutil.NewRequestWithURLParams(http.MethodDelete, "/api/fund/"+fund.ID,
			map[string]string{"fundId": fund.ID})
		w := httptest.NewRecorder()

		handler.DeleteFund(w, req)

		if w.Code != http.StatusNoContent {
			t.Fatalf("Expected status 204, got %d: %s", w.Code, w.Body.String())
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM fund").Scan(&count); err != nil {
			t.Fatalf("Failed to count funds: %v", err)
		}
		if count != 0 {
			t.Errorf("Expected fund to be deleted, %d remain", count)
		}
	})

	t.Run("refuses fund with purchases", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		fund := testutil.CreateFund(t, db, "Kotak Liquid", "debt")
		testutil.NewPurchase(fund.ID).Build(t, db)
		handler := handlers.NewFundHandler(testutil.NewTestFundService(t, db))

		req := testutil.NewRequestWithURLParams(http.MethodDelete, "/api/fund/"+fund.ID,
			map[string]string{"fundId": fund.ID})
		w := httptest.NewRecorder()

		handler.DeleteFund(w, req)

		if w.Code != http.StatusConflict {
			t.Errorf("Expected status 409, got %d", w.Code)
		}

		var body response.ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if body.Error != "failed to delete fund" {
			t.Errorf("Unexpected error message %q", body.Error)
		}
	})
}
