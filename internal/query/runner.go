// Package query is the read-only analytical surface over the stored series.
// Callers either submit parameterized SQL directly or execute a named entry
// from the registry; values are always bound, never spliced into the text.
package query

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Result is a tabular query result.
type Result struct {
	Columns []string
	Rows    [][]any
}

// Runner executes read-only queries. Errors are returned to the caller and
// never affect stored data or other queries.
type Runner struct {
	db *sql.DB
}

// NewRunner creates a Runner on the given database handle. Pass
// store.ReadDB(): read-only-ness is enforced by the handle's query_only
// pragma, which catches mutations the prefix check below cannot, such as
// a DELETE hidden behind a WITH clause.
func NewRunner(db *sql.DB) *Runner {
	return &Runner{db: db}
}

// Run executes a SELECT (or WITH ... SELECT) statement with bound
// parameters and returns the full result set. The prefix check only gives
// obvious mutations a clearer error up front; the handle is the guarantee.
func (r *Runner) Run(ctx context.Context, queryText string, args ...any) (*Result, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(queryText))
	if !strings.HasPrefix(trimmed, "SELECT") && !strings.HasPrefix(trimmed, "WITH") {
		return nil, fmt.Errorf("only read queries are allowed")
	}

	rows, err := r.db.QueryContext(ctx, queryText, args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}

	res := &Result{Columns: cols}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		res.Rows = append(res.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate: %w", err)
	}
	return res, nil
}

// RunNamed looks up a registry entry and executes it with the given
// parameter values, which must match the entry's declared parameters.
func (r *Runner) RunNamed(ctx context.Context, name string, args ...any) (*Result, error) {
	q, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown query %q", name)
	}
	if len(args) != len(q.Params) {
		return nil, fmt.Errorf("query %q wants %d params %v, got %d",
			name, len(q.Params), q.Params, len(args))
	}
	return r.Run(ctx, q.SQL, args...)
}
