package service

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/Norn-cloud/tag-scanner/internal/database"
	"github.com/Norn-cloud/tag-scanner/internal/migrations"
	"github.com/Norn-cloud/tag-scanner/internal/model"
	"github.com/Norn-cloud/tag-scanner/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db               *sql.DB
	visionConfigured bool
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB, visionConfigured bool) *SystemService {
	return &SystemService{
		db:               db,
		visionConfigured: visionConfigured,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// CheckVersion returns the application and schema versions plus feature
// availability flags for the frontend.
func (s *SystemService) CheckVersion() (model.VersionInfo, error) {
	dbVersion, err := migrations.Version(s.db)
	if err != nil {
		return model.VersionInfo{}, fmt.Errorf("failed to read schema version: %w", err)
	}

	return model.VersionInfo{
		AppVersion: version.Version,
		DbVersion:  strconv.FormatInt(dbVersion, 10),
		Features: map[string]bool{
			"tag_scanning": s.visionConfigured,
			"coin_prices":  true,
		},
	}, nil
}
