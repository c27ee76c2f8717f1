package testutil

import (
	"database/sql"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ndewijer/mutualfund-tracker/internal/repository"
	"github.com/ndewijer/mutualfund-tracker/internal/service"
)

func NewTestFundService(t *testing.T, db *sql.DB) *service.FundService {
	t.Helper()

	return service.NewFundService(repository.NewFundRepository(db), zerolog.Nop())
}

func NewTestPurchaseService(t *testing.T, db *sql.DB) *service.PurchaseService {
	t.Helper()

	return service.NewPurchaseService(
		repository.NewPurchaseRepository(db),
		repository.NewFundRepository(db),
		zerolog.Nop(),
	)
}

// NewTestStatusService wires a StatusService whose every source name resolves
// to sources.
func NewTestStatusService(t *testing.T, db *sql.DB, sources service.SourceFactory) *service.StatusService {
	t.Helper()

	return service.NewStatusService(
		repository.NewPurchaseRepository(db),
		repository.NewFundRepository(db),
		sources,
		zerolog.Nop(),
	)
}

func NewTestNavService(t *testing.T, db *sql.DB, sources service.SourceFactory) *service.NavService {
	t.Helper()

	return service.NewNavService(
		db,
		repository.NewFundRepository(db),
		repository.NewNavRepository(db),
		sources,
		zerolog.Nop(),
	)
}

func NewTestDepositService(t *testing.T, db *sql.DB) *service.DepositService {
	t.Helper()

	return service.NewDepositService(repository.NewDepositRepository(db), zerolog.Nop())
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db, "test")
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeFundName generates a unique fund name for testing.
//
// Example usage:
//
//	name := testutil.MakeFundName("HDFC Top 100")
//	// Returns: "HDFC Top 100 XYZ789"
func MakeFundName(base string) string {
	if base == "" {
		base = "Fund"
	}
	return base + " " + randomAlphanumeric(6)
}

// MakeSchemeCode generates a six digit AMFI scheme code.
func MakeSchemeCode() string {
	//nolint:gosec // G404: Using math/rand for test data generation is acceptable
	return fmt.Sprintf("%06d", 100000+rand.Intn(900000))
}

// Date returns midnight UTC of the given calendar date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
