package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ndewijer/mutualfund-tracker/internal/apperrors"
)

// dateLayout is how calendar dates are stored in every table.
const dateLayout = "2006-01-02"

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// ParseTime parses a date string in "2006-01-02" or RFC3339 format.
func ParseTime(str string) (time.Time, error) {
	returnTime, err := time.Parse(dateLayout, str)
	if err != nil {
		returnTime, err = time.Parse(time.RFC3339, str)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse date: %w", err)
		}
	}
	return returnTime.UTC(), nil
}

// FormatDate renders t as a stored calendar date.
func FormatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// placeholders returns "?,?,..." with n entries and the matching argument slice.
func placeholders(values []string) (string, []any) {
	marks := make([]string, len(values))
	args := make([]any, len(values))
	for i, v := range values {
		marks[i] = "?"
		args[i] = v
	}
	return strings.Join(marks, ","), args
}

// resolveID expands a unique ID prefix into the full ID stored in table.
//
// Returns notFound when nothing matches and apperrors.ErrAmbiguousID when
// more than one row starts with prefix.
func resolveID(ctx context.Context, q querier, table, prefix string, notFound error) (string, error) {
	if prefix == "" {
		return "", apperrors.ErrEmptyID
	}

	//#nosec G202 -- Safe: table names are constants supplied by the repositories
	query := `SELECT id FROM ` + table + ` WHERE id LIKE ? ESCAPE '\' LIMIT 2`

	rows, err := q.QueryContext(ctx, query, escapeLike(strings.ToLower(prefix))+"%")
	if err != nil {
		return "", fmt.Errorf("failed to query %s ids: %w", table, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("failed to scan %s id: %w", table, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("error iterating %s ids: %w", table, err)
	}

	switch len(ids) {
	case 0:
		return "", notFound
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("%w: %q", apperrors.ErrAmbiguousID, prefix)
	}
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
