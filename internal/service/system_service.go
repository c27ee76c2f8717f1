package service

import (
	"context"
	"database/sql"

	"github.com/ndewijer/mutualfund-tracker/internal/database"
	"github.com/ndewijer/mutualfund-tracker/internal/model"
)

// SystemService handles system-related operations
type SystemService struct {
	db         *sql.DB
	appVersion string
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB, appVersion string) *SystemService {
	return &SystemService{
		db:         db,
		appVersion: appVersion,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// GetVersionInfo reports the application version and the applied schema version.
func (s *SystemService) GetVersionInfo(ctx context.Context) (model.VersionInfo, error) {
	dbVersion, err := database.Version(ctx, s.db)
	if err != nil {
		return model.VersionInfo{}, err
	}
	return model.VersionInfo{
		AppVersion: s.appVersion,
		DbVersion:  dbVersion,
	}, nil
}
