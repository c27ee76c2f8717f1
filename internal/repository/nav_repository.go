package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ndewijer/mutualfund-tracker/internal/model"
)

// NavRepository provides data access methods for stored NAV snapshots.
type NavRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewNavRepository creates a new NavRepository with the provided database connection.
func NewNavRepository(db *sql.DB) *NavRepository {
	return &NavRepository{db: db}
}

func (r *NavRepository) WithTx(tx *sql.Tx) *NavRepository {
	return &NavRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *NavRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// UpsertSnapshot stores the NAV of a fund for a date, replacing any snapshot
// already held for that fund and date. s.ID is set to the stored row's ID,
// which is the existing one on replacement.
func (r *NavRepository) UpsertSnapshot(ctx context.Context, s *model.NavSnapshot) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}

	query := `
        INSERT INTO nav_snapshot (id, fund_id, date, nav, source)
        VALUES (?, ?, ?, ?, ?)
        ON CONFLICT(fund_id, date) DO UPDATE SET
            nav = excluded.nav,
            source = excluded.source
        RETURNING id
    `

	err := r.getQuerier().QueryRowContext(ctx, query,
		s.ID,
		s.FundID,
		FormatDate(s.Date),
		s.NAV,
		s.Source,
	).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert nav snapshot: %w", err)
	}

	return nil
}

// GetLatestSnapshots returns, per fund, the most recent snapshot dated on or
// before asOf. Funds without any such snapshot are absent from the map.
func (r *NavRepository) GetLatestSnapshots(ctx context.Context, fundIDs []string, asOf time.Time) (map[string]model.NavSnapshot, error) {
	result := make(map[string]model.NavSnapshot, len(fundIDs))
	if len(fundIDs) == 0 {
		return result, nil
	}

	marks, args := placeholders(fundIDs)
	args = append(args, FormatDate(asOf))

	//#nosec G202 -- Safe: placeholders are generated programmatically, not from user input
	query := `
        SELECT n.id, n.fund_id, n.date, n.nav, n.source
        FROM nav_snapshot n
        INNER JOIN (
            SELECT fund_id, MAX(date) AS latest_date
            FROM nav_snapshot
            WHERE fund_id IN (` + marks + `)
            AND date <= ?
            GROUP BY fund_id
        ) latest ON n.fund_id = latest.fund_id AND n.date = latest.latest_date
    `

	rows, err := r.getQuerier().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query nav_snapshot table: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			s       model.NavSnapshot
			dateStr string
		)
		if err := rows.Scan(&s.ID, &s.FundID, &dateStr, &s.NAV, &s.Source); err != nil {
			return nil, fmt.Errorf("failed to scan nav_snapshot table results: %w", err)
		}
		s.Date, err = ParseTime(dateStr)
		if err != nil {
			return nil, err
		}
		result[s.FundID] = s
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating nav_snapshot table: %w", err)
	}

	return result, nil
}

// GetSnapshotDates lists every date that has snapshots, newest first, with
// the number of funds captured on it.
func (r *NavRepository) GetSnapshotDates(ctx context.Context) ([]model.NavSnapshotDate, error) {
	query := `
        SELECT date, COUNT(*)
        FROM nav_snapshot
        GROUP BY date
        ORDER BY date DESC
    `

	rows, err := r.getQuerier().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query nav_snapshot dates: %w", err)
	}
	defer rows.Close()

	dates := []model.NavSnapshotDate{}
	for rows.Next() {
		var (
			d       model.NavSnapshotDate
			dateStr string
		)
		if err := rows.Scan(&dateStr, &d.Funds); err != nil {
			return nil, fmt.Errorf("failed to scan nav_snapshot dates: %w", err)
		}
		d.Date, err = ParseTime(dateStr)
		if err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating nav_snapshot dates: %w", err)
	}

	return dates, nil
}
