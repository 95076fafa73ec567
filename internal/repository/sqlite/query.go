package sqlite

import (
	"context"
	"fmt"

	"github.com/sakif/ecommerce-api/internal/repository"
)

var _ repository.QueryExecutor = (*DB)(nil)

// Execute runs caller-supplied SQL verbatim and returns the result rows as
// column-name → value maps.
//
// THIS IS THE ADMIN BACKDOOR — ON PURPOSE.
// No statement whitelist, no row limit, no timeout beyond the request
// context. Non-SELECT statements work too (the driver steps them; they
// produce zero columns and zero rows), and autocommit applies whatever they
// changed. Any execution fault is wrapped and handed back to the caller;
// the handler surfaces its text verbatim. The trust boundary is entirely
// "the caller holds the admin token".
func (db *DB) Execute(ctx context.Context, query string) ([]map[string]any, error) {
	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sqlite: executing query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("sqlite: reading result columns: %w", err)
	}

	results := []map[string]any{}
	for rows.Next() {
		// Scan into a slice of *any so the driver picks the native Go
		// type for each column (int64, float64, string, []byte, nil).
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}

		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("sqlite: scanning query row: %w", err)
		}

		row := make(map[string]any, len(cols))
		for i, col := range cols {
			// []byte is how the driver returns BLOBs and some TEXT
			// values; as raw bytes it would JSON-encode to base64, so
			// convert to string for readable output.
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating query rows: %w", err)
	}

	return results, nil
}
