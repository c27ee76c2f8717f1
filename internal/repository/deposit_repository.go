package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/ndewijer/mutualfund-tracker/internal/model"
)

// DepositRepository provides data access methods for the fixed_deposit table.
type DepositRepository struct {
	db *sql.DB
}

// NewDepositRepository creates a new DepositRepository with the provided database connection.
func NewDepositRepository(db *sql.DB) *DepositRepository {
	return &DepositRepository{db: db}
}

// InsertDeposit stores a fixed deposit. A fresh UUID is assigned when d.ID is empty.
func (r *DepositRepository) InsertDeposit(ctx context.Context, d *model.FixedDeposit) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}

	query := `
        INSERT INTO fixed_deposit (id, name, amount, rate, tenure, deposit_date, maturity_date, maturity_amount)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `

	_, err := r.db.ExecContext(ctx, query,
		d.ID,
		d.Name,
		d.Amount,
		d.Rate,
		d.Tenure,
		FormatDate(d.DepositDate),
		FormatDate(d.MaturityDate),
		d.MaturityAmount,
	)
	if err != nil {
		return fmt.Errorf("failed to insert fixed deposit: %w", err)
	}

	return nil
}

// GetDeposits retrieves every fixed deposit in insertion order.
func (r *DepositRepository) GetDeposits(ctx context.Context) ([]model.FixedDeposit, error) {
	query := `
        SELECT id, name, amount, rate, tenure, deposit_date, maturity_date, maturity_amount
        FROM fixed_deposit
        ORDER BY rowid ASC
    `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query fixed_deposit table: %w", err)
	}
	defer rows.Close()

	deposits := []model.FixedDeposit{}
	for rows.Next() {
		var (
			d                     model.FixedDeposit
			depositStr, matureStr string
		)
		err := rows.Scan(
			&d.ID,
			&d.Name,
			&d.Amount,
			&d.Rate,
			&d.Tenure,
			&depositStr,
			&matureStr,
			&d.MaturityAmount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fixed_deposit table results: %w", err)
		}
		if d.DepositDate, err = ParseTime(depositStr); err != nil {
			return nil, err
		}
		if d.MaturityDate, err = ParseTime(matureStr); err != nil {
			return nil, err
		}
		deposits = append(deposits, d)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fixed_deposit table: %w", err)
	}

	return deposits, nil
}
