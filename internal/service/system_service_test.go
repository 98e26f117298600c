package service_test

import (
	"testing"

	"github.com/Norn-cloud/tag-scanner/internal/testutil"
)

// TestSystemService_CheckHealth tests the database health probe.
func TestSystemService_CheckHealth(t *testing.T) {
	t.Run("healthy database passes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSystemService(t, db)

		if err := svc.CheckHealth(); err != nil {
			t.Errorf("CheckHealth() returned unexpected error: %v", err)
		}
	})

	t.Run("closed database fails", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSystemService(t, db)
		db.Close()

		if err := svc.CheckHealth(); err == nil {
			t.Error("Expected error from closed database")
		}
	})
}

// TestSystemService_CheckVersion tests the version and feature report.
func TestSystemService_CheckVersion(t *testing.T) {
	t.Run("reports versions and feature flags", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSystemService(t, db)

		info, err := svc.CheckVersion()

		if err != nil {
			t.Fatalf("CheckVersion() returned unexpected error: %v", err)
		}
		if info.AppVersion == "" {
			t.Error("Expected non-empty app version")
		}
		if info.DbVersion == "" {
			t.Error("Expected non-empty schema version")
		}
		if !info.Features["coin_prices"] {
			t.Error("Expected coin_prices feature enabled")
		}
		if !info.Features["tag_scanning"] {
			t.Error("Expected tag_scanning feature enabled")
		}
	})
}
