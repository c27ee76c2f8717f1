package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ndewijer/mutualfund-tracker/internal/api"
	"github.com/ndewijer/mutualfund-tracker/internal/config"
	"github.com/ndewijer/mutualfund-tracker/internal/model"
	"github.com/ndewijer/mutualfund-tracker/internal/testutil"
)

func newTestRouter(t *testing.T) (http.Handler, *testutil.StubSource, model.Fund) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	fund := testutil.NewFund().
		WithID("3f2a0000-0000-4000-8000-000000000001").
		WithName("Axis Bluechip").
		Build(t, db)
	testutil.NewPurchase(fund.ID).WithAmount(1000).WithNAV(10).Build(t, db)

	src := testutil.NewStubSource("amfi").WithNAV(fund.ID, 12, testutil.Date(2024, 12, 31))
	sources := &testutil.StubSources{Source: src}

	services := api.Services{
		System:   testutil.NewTestSystemService(t, db),
		Fund:     testutil.NewTestFundService(t, db),
		Purchase: testutil.NewTestPurchaseService(t, db),
		Status:   testutil.NewTestStatusService(t, db, sources),
		Nav:      testutil.NewTestNavService(t, db, sources),
		Deposit:  testutil.NewTestDepositService(t, db),
	}
	cfg := &config.Config{}
	cfg.CORS.AllowedOrigins = []string{"http://localhost:3000"}

	return api.NewRouter(services, cfg, zerolog.Nop()), src, fund
}

func TestNewRouter(t *testing.T) {
	router, _, fund := newTestRouter(t)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{name: "health", method: http.MethodGet, path: "/api/system/health", wantStatus: http.StatusOK},
		{name: "version", method: http.MethodGet, path: "/api/system/version", wantStatus: http.StatusOK},
		{name: "funds", method: http.MethodGet, path: "/api/fund", wantStatus: http.StatusOK},
		{name: "fund by prefix", method: http.MethodGet, path: "/api/fund/3f2a", wantStatus: http.StatusOK},
		{name: "fund with bad prefix", method: http.MethodGet, path: "/api/fund/zz", wantStatus: http.StatusBadRequest},
		{name: "fund in use", method: http.MethodDelete, path: "/api/fund/" + fund.ID, wantStatus: http.StatusConflict},
		{name: "purchases", method: http.MethodGet, path: "/api/purchase", wantStatus: http.StatusOK},
		{name: "purchase with bad ID", method: http.MethodDelete, path: "/api/purchase/nope", wantStatus: http.StatusBadRequest},
		{name: "status", method: http.MethodGet, path: "/api/status?date=2024-12-31", wantStatus: http.StatusOK},
		{name: "distribution", method: http.MethodGet, path: "/api/distribution", wantStatus: http.StatusOK},
		{name: "navs", method: http.MethodGet, path: "/api/nav", wantStatus: http.StatusOK},
		{name: "deposits", method: http.MethodGet, path: "/api/deposit", wantStatus: http.StatusOK},
		{name: "unknown route", method: http.MethodGet, path: "/api/portfolio", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("%s %s: expected status %d, got %d: %s", tt.method, tt.path, tt.wantStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestNewRouter_NavUpdateThenList(t *testing.T) {
	router, src, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/nav/update?date=2024-12-31", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if src.Calls != 1 {
		t.Errorf("Expected one source call, got %d", src.Calls)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/nav", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var dates []model.NavSnapshotDate
	if err := json.NewDecoder(w.Body).Decode(&dates); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(dates) != 1 || dates[0].Funds != 1 {
		t.Errorf("Expected one snapshot date with one fund, got %+v", dates)
	}
}
