package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/ndewijer/mutualfund-tracker/internal/apperrors"
	"github.com/ndewijer/mutualfund-tracker/internal/model"
)

// PurchaseRepository provides data access methods for the purchase table.
// It is the lot source for valuation.
type PurchaseRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewPurchaseRepository creates a new PurchaseRepository with the provided database connection.
func NewPurchaseRepository(db *sql.DB) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

func (r *PurchaseRepository) WithTx(tx *sql.Tx) *PurchaseRepository {
	return &PurchaseRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *PurchaseRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// InsertPurchase stores a purchase lot. A fresh UUID is assigned when p.ID is empty.
func (r *PurchaseRepository) InsertPurchase(ctx context.Context, p *model.PurchaseLot) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	query := `
        INSERT INTO purchase (id, fund_id, amount, nav, units, date)
        VALUES (?, ?, ?, ?, ?, ?)
    `

	_, err := r.getQuerier().ExecContext(ctx, query,
		p.ID,
		p.FundID,
		p.Amount,
		p.NAV,
		p.Units,
		FormatDate(p.Date),
	)
	if err != nil {
		return fmt.Errorf("failed to insert purchase: %w", err)
	}

	return nil
}

// GetLots retrieves the purchase lots matching filter, oldest first.
//
// Lots are joined with their fund so each carries the fund name and type.
// Lots bought on the same date keep the order they were recorded in.
//
// Parameters:
//   - filter: at most one of Types, ExcludeTypes, FundIDs and ExcludeFundIDs;
//     a non-zero AsOf drops lots purchased after that date
//
// Returns ErrInvalidFilter when more than one of the four sets is given.
func (r *PurchaseRepository) GetLots(ctx context.Context, filter model.LotFilter) ([]model.PurchaseLot, error) {
	if err := ValidateLotFilter(filter); err != nil {
		return nil, err
	}

	query := `
        SELECT p.id, p.fund_id, f.name, f.type, p.amount, p.nav, p.units, p.date
        FROM purchase p
        INNER JOIN fund f ON f.id = p.fund_id
        WHERE 1=1
    `
	var args []any

	addIn := func(column string, values []string, negate bool) {
		marks, inArgs := placeholders(values)
		op := "IN"
		if negate {
			op = "NOT IN"
		}
		//#nosec G202 -- Safe: placeholders are generated programmatically, not from user input
		query += ` AND ` + column + ` ` + op + ` (` + marks + `)`
		args = append(args, inArgs...)
	}

	switch {
	case len(filter.Types) > 0:
		addIn("f.type", filter.Types, false)
	case len(filter.ExcludeTypes) > 0:
		addIn("f.type", filter.ExcludeTypes, true)
	case len(filter.FundIDs) > 0:
		addIn("p.fund_id", filter.FundIDs, false)
	case len(filter.ExcludeFundIDs) > 0:
		addIn("p.fund_id", filter.ExcludeFundIDs, true)
	}

	if !filter.AsOf.IsZero() {
		query += ` AND p.date <= ?`
		args = append(args, FormatDate(filter.AsOf))
	}

	query += ` ORDER BY p.date ASC, p.rowid ASC`

	rows, err := r.getQuerier().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchase table: %w", err)
	}
	defer rows.Close()

	lots := []model.PurchaseLot{}
	for rows.Next() {
		var (
			l       model.PurchaseLot
			dateStr string
		)
		err := rows.Scan(
			&l.ID,
			&l.FundID,
			&l.FundName,
			&l.FundType,
			&l.Amount,
			&l.NAV,
			&l.Units,
			&dateStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan purchase table results: %w", err)
		}

		l.Date, err = ParseTime(dateStr)
		if err != nil {
			return nil, err
		}
		lots = append(lots, l)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating purchase table: %w", err)
	}

	return lots, nil
}

// ValidateLotFilter checks that at most one inclusion or exclusion set is used.
func ValidateLotFilter(filter model.LotFilter) error {
	set := 0
	for _, s := range [][]string{filter.Types, filter.ExcludeTypes, filter.FundIDs, filter.ExcludeFundIDs} {
		if len(s) > 0 {
			set++
		}
	}
	if set > 1 {
		return apperrors.ErrInvalidFilter
	}
	return nil
}

// ResolvePurchaseID expands a unique purchase ID prefix into the full ID.
func (r *PurchaseRepository) ResolvePurchaseID(ctx context.Context, prefix string) (string, error) {
	return resolveID(ctx, r.getQuerier(), "purchase", prefix, apperrors.ErrPurchaseNotFound)
}

// DeletePurchase removes a purchase lot.
// Returns ErrPurchaseNotFound if no lot has that ID.
func (r *PurchaseRepository) DeletePurchase(ctx context.Context, purchaseID string) error {
	result, err := r.getQuerier().ExecContext(ctx, `DELETE FROM purchase WHERE id = ?`, purchaseID)
	if err != nil {
		return fmt.Errorf("failed to delete purchase: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.ErrPurchaseNotFound
	}

	return nil
}
