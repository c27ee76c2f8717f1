package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/ndewijer/mutualfund-tracker/internal/apperrors"
	"github.com/ndewijer/mutualfund-tracker/internal/model"
)

// FundRepository provides data access methods for the fund table.
type FundRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewFundRepository creates a new FundRepository with the provided database connection.
func NewFundRepository(db *sql.DB) *FundRepository {
	return &FundRepository{db: db}
}

func (r *FundRepository) WithTx(tx *sql.Tx) *FundRepository {
	return &FundRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *FundRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// InsertFund stores a new fund. A fresh UUID is assigned when f.ID is empty.
func (r *FundRepository) InsertFund(ctx context.Context, f *model.Fund) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}

	query := `
        INSERT INTO fund (id, name, type, folio, scheme_code, mc_url, symbol)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `

	_, err := r.getQuerier().ExecContext(ctx, query,
		f.ID,
		f.Name,
		f.Type,
		f.Folio,
		f.SchemeCode,
		f.MoneycontrolURL,
		f.Symbol,
	)
	if err != nil {
		return fmt.Errorf("failed to insert fund: %w", err)
	}

	return nil
}

// GetFunds retrieves funds ordered by name. With no IDs every fund is returned;
// otherwise only the listed ones.
func (r *FundRepository) GetFunds(ctx context.Context, fundIDs ...string) ([]model.Fund, error) {
	query := `
        SELECT id, name, type, folio, scheme_code, mc_url, symbol
        FROM fund
    `
	var args []any
	if len(fundIDs) > 0 {
		marks, idArgs := placeholders(fundIDs)
		//#nosec G202 -- Safe: placeholders are generated programmatically, not from user input
		query += ` WHERE id IN (` + marks + `)`
		args = idArgs
	}
	query += ` ORDER BY name ASC, id ASC`

	rows, err := r.getQuerier().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query fund table: %w", err)
	}
	defer rows.Close()

	funds := []model.Fund{}
	for rows.Next() {
		var f model.Fund
		err := rows.Scan(
			&f.ID,
			&f.Name,
			&f.Type,
			&f.Folio,
			&f.SchemeCode,
			&f.MoneycontrolURL,
			&f.Symbol,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fund table results: %w", err)
		}
		funds = append(funds, f)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fund table: %w", err)
	}

	return funds, nil
}

// GetFund retrieves a single fund by its full ID.
// Returns ErrFundNotFound if no fund has that ID.
func (r *FundRepository) GetFund(ctx context.Context, fundID string) (model.Fund, error) {
	query := `
        SELECT id, name, type, folio, scheme_code, mc_url, symbol
        FROM fund
        WHERE id = ?
    `

	var f model.Fund
	err := r.getQuerier().QueryRowContext(ctx, query, fundID).Scan(
		&f.ID,
		&f.Name,
		&f.Type,
		&f.Folio,
		&f.SchemeCode,
		&f.MoneycontrolURL,
		&f.Symbol,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Fund{}, apperrors.ErrFundNotFound
	}
	if err != nil {
		return model.Fund{}, fmt.Errorf("failed to get fund: %w", err)
	}

	return f, nil
}

// ResolveFundID expands a unique fund ID prefix into the full ID.
func (r *FundRepository) ResolveFundID(ctx context.Context, prefix string) (string, error) {
	return resolveID(ctx, r.getQuerier(), "fund", prefix, apperrors.ErrFundNotFound)
}

// HasPurchases reports whether any purchase lot references the fund.
func (r *FundRepository) HasPurchases(ctx context.Context, fundID string) (bool, error) {
	var count int
	err := r.getQuerier().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM purchase WHERE fund_id = ?`, fundID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to count purchases: %w", err)
	}
	return count > 0, nil
}

// DeleteFund removes a fund and its stored NAV snapshots.
//
// Returns ErrFundInUse while purchases still reference the fund and
// ErrFundNotFound if the fund does not exist.
func (r *FundRepository) DeleteFund(ctx context.Context, fundID string) error {
	inUse, err := r.HasPurchases(ctx, fundID)
	if err != nil {
		return err
	}
	if inUse {
		return apperrors.ErrFundInUse
	}

	result, err := r.getQuerier().ExecContext(ctx, `DELETE FROM fund WHERE id = ?`, fundID)
	if err != nil {
		return fmt.Errorf("failed to delete fund: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.ErrFundNotFound
	}

	return nil
}
