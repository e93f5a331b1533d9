package utils

import (
	"strconv"
	"strings"
)

// JoinWithAnd joins a slice of strings with AND operator
func JoinWithAnd(clauses []string) string {
	return strings.Join(clauses, " AND ")
}

// JoinWithOr joins a slice of strings with OR operator
func JoinWithOr(clauses []string) string {
	return strings.Join(clauses, " OR ")
}

// Dialect selects placeholder and LIKE syntax.
type Dialect int

const (
	Postgres Dialect = iota
	SQLite
)

// Placeholder returns the n-th (1-based) bind placeholder.
func (d Dialect) Placeholder(n int) string {
	if d == Postgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// FoldFunc is the SQLite scalar function that lower-cases Unicode text.
// The SQLite driver registers it; built-in LIKE only folds ASCII.
const FoldFunc = "fold"

// containsMatch renders a case-insensitive LIKE of column against placeholder.
func (d Dialect) containsMatch(column, placeholder string) string {
	if d == Postgres {
		return column + " ILIKE " + placeholder + ` ESCAPE '\'`
	}
	return FoldFunc + "(" + column + ") LIKE " + FoldFunc + "(" + placeholder + `) ESCAPE '\'`
}

// LikeContains escapes LIKE wildcards in s and wraps it for a substring match.
func LikeContains(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

// Where accumulates AND-ed conditions and their bind arguments.
type Where struct {
	dialect Dialect
	clauses []string
	Args    []any
}

func NewWhere(d Dialect) *Where {
	return &Where{dialect: d}
}

// Arg appends v and returns its placeholder.
func (w *Where) Arg(v any) string {
	w.Args = append(w.Args, v)
	return w.dialect.Placeholder(len(w.Args))
}

// EqualIfSet adds "column = value" unless value is empty.
func (w *Where) EqualIfSet(column, value string) {
	if value == "" {
		return
	}
	w.clauses = append(w.clauses, column+" = "+w.Arg(value))
}

// ContainsAny adds a case-insensitive substring match OR-ed across columns.
func (w *Where) ContainsAny(text string, columns ...string) {
	pattern := LikeContains(text)
	ors := make([]string, 0, len(columns))
	for _, col := range columns {
		ors = append(ors, w.dialect.containsMatch(col, w.Arg(pattern)))
	}
	w.clauses = append(w.clauses, "("+JoinWithOr(ors)+")")
}

// SQL renders " WHERE ..." or an empty string.
func (w *Where) SQL() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + JoinWithAnd(w.clauses)
}
