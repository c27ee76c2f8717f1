package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndewijer/mutualfund-tracker/internal/api/handlers"
	"github.com/ndewijer/mutualfund-tracker/internal/testutil"
)

func TestSystemHandler_Health(t *testing.T) {
	t.Run("returns healthy when database is reachable", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewSystemHandler(testutil.NewTestSystemService(t, db))

		req := httptest.NewRequest(http.MethodGet, "/api/system/health", nil)
		w := httptest.NewRecorder()

		// Execute
		handler.Health(w, req)

		// Assert
		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}

		var response handlers.HealthResponse
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if response.Status != "healthy" {
			t.Errorf("Expected status 'healthy', got '%s'", response.Status)
		}
		if response.Database != "connected" {
			t.Errorf("Expected database 'connected', got '%s'", response.Database)
		}
	})

	t.Run("returns unhealthy when database is closed", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewSystemHandler(testutil.NewTestSystemService(t, db))
		db.Close()

		req := httptest.NewRequest(http.MethodGet, "/api/system/health", nil)
		w := httptest.NewRecorder()

		// Execute
		handler.Health(w, req)

		// Assert
		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("Expected status 503, got %d", w.Code)
		}

		var response handlers.HealthResponse
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if response.Status != "unhealthy" {
			t.Errorf("Expected status 'unhealthy', got '%s'", response.Status)
		}
		if response.Error == "" {
			t.Error("Expected error message, got empty string")
		}
	})
}

func TestSystemHandler_Version(t *testing.T) {
	// Setup
	db := testutil.SetupTestDB(t)
	handler := handlers.NewSystemHandler(testutil.NewTestSystemService(t, db))

	req := httptest.NewRequest(http.MethodGet, "/api/system/version", nil)
	w := httptest.NewRecorder()

	// Execute
	handler.Version(w, req)

	// Assert
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var response handlers.VersionInfoResponse
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.AppVersion != "test" {
		t.Errorf("Expected app version 'test', got '%s'", response.AppVersion)
	}
	if response.DbVersion <= 0 {
		t.Errorf("Expected a positive schema version, got %d", response.DbVersion)
	}
}
