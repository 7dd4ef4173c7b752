package querier

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of pgxpool.Pool and pgx.Tx used by the stores.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Column is one column assignment for an INSERT or UPDATE.
type Column struct {
	Name  string
	Value any
}

// Insert renders an INSERT of cols into table returning the new id.
func Insert(table string, cols []Column) (string, []any) {
	names := make([]string, 0, len(cols))
	holders := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols))
	for i, col := range cols {
		names = append(names, col.Name)
		holders = append(holders, fmt.Sprintf("$%d", i+1))
		args = append(args, col.Value)
	}
	if len(cols) == 0 {
		return fmt.Sprintf("INSERT INTO %s DEFAULT VALUES RETURNING id", table), nil
	}
	sql := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		table, strings.Join(names, ", "), strings.Join(holders, ", "),
	)
	return sql, args
}

// Update renders a partial UPDATE of the row with the given id. updated_at is
// always refreshed, so an empty column list still touches the row.
func Update(table string, id int64, cols []Column) (string, []any) {
	sets := make([]string, 0, len(cols)+1)
	args := make([]any, 0, len(cols)+1)
	for _, col := range cols {
		args = append(args, col.Value)
		sets = append(sets, fmt.Sprintf("%s = $%d", col.Name, len(args)))
	}
	sets = append(sets, "updated_at = now()")
	args = append(args, id)
	sql := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d", table, strings.Join(sets, ", "), len(args))
	return sql, args
}

// Where accumulates AND-ed predicates with positional arguments.
type Where struct {
	clauses []string
	args    []any
}

// Add appends a predicate. Every %d in format receives the placeholder index
// of value, so "(a ILIKE $%d OR b ILIKE $%d)" binds value twice by position.
func (w *Where) Add(format string, value any) {
	w.args = append(w.args, value)
	n := strings.Count(format, "%d")
	idx := make([]any, n)
	for i := range idx {
		idx[i] = len(w.args)
	}
	w.clauses = append(w.clauses, fmt.Sprintf(format, idx...))
}

// Raw appends a predicate that takes no arguments.
func (w *Where) Raw(clause string) {
	w.clauses = append(w.clauses, clause)
}

func (w *Where) SQL() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

func (w *Where) Args() []any {
	out := make([]any, len(w.args))
	copy(out, w.args)
	return out
}

// Next returns the placeholder index for one more argument appended after the
// accumulated ones.
func (w *Where) Next(extra int) int {
	return len(w.args) + extra
}
