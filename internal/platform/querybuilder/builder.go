// Package querybuilder renders the handful of statement shapes the
// postgres repositories need, with $n placeholders numbered across the
// whole statement.
package querybuilder

import (
	"errors"
	"strconv"
	"strings"
)

// stmt accumulates SQL text and its bound arguments.
type stmt struct {
	sql  strings.Builder
	args []any
}

func (s *stmt) write(parts ...string) {
	for _, p := range parts {
		s.sql.WriteString(p)
	}
}

// bind appends v as the next argument and writes its placeholder.
func (s *stmt) bind(v any) {
	s.args = append(s.args, v)
	s.sql.WriteString("$")
	s.sql.WriteString(strconv.Itoa(len(s.args)))
}

// expand writes expr, binding exprArgs to its '?' markers in order. Extra
// markers are written as-is.
func (s *stmt) expand(expr string, exprArgs []any) {
	for expr != "" {
		i := strings.IndexByte(expr, '?')
		if i < 0 || len(exprArgs) == 0 {
			s.sql.WriteString(expr)
			return
		}
		s.sql.WriteString(expr[:i])
		s.bind(exprArgs[0])
		exprArgs = exprArgs[1:]
		expr = expr[i+1:]
	}
}

func (s *stmt) where(conds []Condition) {
	for i, c := range conds {
		if i == 0 {
			s.write(" WHERE ")
		} else {
			s.write(" AND ")
		}
		c.render(s)
	}
}

func (s *stmt) list(keyword string, items []string) {
	if len(items) > 0 {
		s.write(" ", keyword, " ", strings.Join(items, ", "))
	}
}

func (s *stmt) suffix(sql string) {
	if sql != "" {
		s.write(" ")
		s.expand(sql, nil)
	}
}

func (s *stmt) result() (string, []any, error) {
	return s.sql.String(), s.args, nil
}

// Condition is one AND-ed predicate of a WHERE clause.
type Condition interface {
	render(s *stmt)
}

type conditionFunc func(s *stmt)

func (f conditionFunc) render(s *stmt) { f(s) }

// Eq renders "column = $n".
func Eq(column string, value any) Condition {
	return conditionFunc(func(s *stmt) {
		s.write(column, " = ")
		s.bind(value)
	})
}

func IsNull(column string) Condition {
	return conditionFunc(func(s *stmt) { s.write(column, " IS NULL") })
}

func NotNull(column string) Condition {
	return conditionFunc(func(s *stmt) { s.write(column, " IS NOT NULL") })
}

// Expr embeds raw SQL; each '?' consumes the next of args.
func Expr(expr string, args ...any) Condition {
	return conditionFunc(func(s *stmt) { s.expand(expr, args) })
}

type SelectBuilder struct {
	columns   []string
	table     string
	where     []Condition
	orderBy   []string
	limit     int
	offset    int
	forUpdate bool
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

// Limit and Offset are omitted from the statement when not positive.
func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) Offset(offset int) *SelectBuilder {
	b.offset = offset
	return b
}

// ForUpdate appends a row lock; only meaningful inside a transaction.
func (b *SelectBuilder) ForUpdate() *SelectBuilder {
	b.forUpdate = true
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	switch {
	case len(b.columns) == 0:
		return "", nil, errors.New("select: no columns")
	case strings.TrimSpace(b.table) == "":
		return "", nil, errors.New("select: no table")
	}

	var s stmt
	s.write("SELECT ", strings.Join(b.columns, ", "), " FROM ", b.table)
	s.where(b.where)
	s.list("ORDER BY", b.orderBy)
	if b.limit > 0 {
		s.write(" LIMIT ", strconv.Itoa(b.limit))
	}
	if b.offset > 0 {
		s.write(" OFFSET ", strconv.Itoa(b.offset))
	}
	if b.forUpdate {
		s.write(" FOR UPDATE")
	}
	return s.result()
}

type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

// Values adds one row; call it once per row for multi-row inserts.
func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

// Suffix is appended verbatim, e.g. ON CONFLICT or RETURNING.
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(b.table) == "":
		return "", nil, errors.New("insert: no table")
	case len(b.columns) == 0:
		return "", nil, errors.New("insert: no columns")
	case len(b.rows) == 0:
		return "", nil, errors.New("insert: no rows")
	}

	var s stmt
	s.args = make([]any, 0, len(b.rows)*len(b.columns))
	s.write("INSERT INTO ", b.table, " (", strings.Join(b.columns, ", "), ") VALUES ")
	for r, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, errors.New("insert: row " + strconv.Itoa(r) + " has " +
				strconv.Itoa(len(row)) + " values for " + strconv.Itoa(len(b.columns)) + " columns")
		}
		if r > 0 {
			s.write(", ")
		}
		s.write("(")
		for c, v := range row {
			if c > 0 {
				s.write(", ")
			}
			s.bind(v)
		}
		s.write(")")
	}
	s.suffix(b.suffix)
	return s.result()
}

type UpdateBuilder struct {
	table  string
	sets   []Condition
	where  []Condition
	suffix string
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, Eq(column, value))
	return b
}

// SetExpr assigns raw SQL such as NOW() or "col + ?".
func (b *UpdateBuilder) SetExpr(column, expr string, args ...any) *UpdateBuilder {
	b.sets = append(b.sets, conditionFunc(func(s *stmt) {
		s.write(column, " = ")
		s.expand(expr, args)
	}))
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *UpdateBuilder) Suffix(sql string) *UpdateBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(b.table) == "":
		return "", nil, errors.New("update: no table")
	case len(b.sets) == 0:
		return "", nil, errors.New("update: no assignments")
	}

	var s stmt
	s.write("UPDATE ", b.table, " SET ")
	for i, set := range b.sets {
		if i > 0 {
			s.write(", ")
		}
		set.render(&s)
	}
	s.where(b.where)
	s.suffix(b.suffix)
	return s.result()
}

type DeleteBuilder struct {
	table string
	where []Condition
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conditions ...Condition) *DeleteBuilder {
	b.where = append(b.where, conditions...)
	return b
}

// ToSQL refuses to build a DELETE without a WHERE clause.
func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(b.table) == "":
		return "", nil, errors.New("delete: no table")
	case len(b.where) == 0:
		return "", nil, errors.New("delete: refusing to run without a where clause")
	}

	var s stmt
	s.write("DELETE FROM ", b.table)
	s.where(b.where)
	return s.result()
}
