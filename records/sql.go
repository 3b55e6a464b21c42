package records

import (
	"context"
	"database/sql"
)

// Query executes a query and packages every row as a Record, with column
// names as field names. It is the database counterpart of Open.
func Query(ctx context.Context, db *sql.DB, query string, args ...any) ([]Record, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var recs []Record
	for rows.Next() {
		values := make([]any, len(columns))
		dests := make([]any, len(columns))
		for i := range values {
			dests[i] = &values[i]
		}
		if err := rows.Scan(dests...); err != nil {
			return nil, err
		}
		recs = append(recs, Record{names: columns, values: values})
	}
	return recs, rows.Err()
}
