package service_test

import (
	"context"
	"testing"

	"github.com/ndewijer/mutualfund-tracker/internal/testutil"
)

func TestSystemService(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestSystemService(t, db)

	if err := svc.CheckHealth(); err != nil {
		t.Errorf("CheckHealth() returned unexpected error: %v", err)
	}

	info, err := svc.GetVersionInfo(context.Background())
	if err != nil {
		t.Fatalf("GetVersionInfo() returned unexpected error: %v", err)
	}
	if info.AppVersion != "test" {
		t.Errorf("Expected app version test, got %s", info.AppVersion)
	}
	if info.DbVersion != 4 {
		t.Errorf("Expected schema version 4, got %d", info.DbVersion)
	}

	db.Close()
	if err := svc.CheckHealth(); err == nil {
		t.Error("Expected health check to fail on a closed database")
	}
}
