// Package querybuilder renders the small subset of SQL the repositories
// need: plain selects, single-row inserts with an optional upsert suffix,
// and updates. Placeholders are numbered in render order, matching lib/pq.
package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// argList collects bind arguments and hands out the matching placeholder.
type argList []any

func (a *argList) bind(value any) string {
	*a = append(*a, value)
	return "$" + strconv.Itoa(len(*a))
}

// Condition renders one WHERE predicate. Conditions are always joined with
// AND; the repositories never need OR.
type Condition struct {
	render func(args *argList) string
}

func Eq(column string, value any) Condition {
	return Condition{render: func(args *argList) string {
		return column + " = " + args.bind(value)
	}}
}

func IsNull(column string) Condition {
	return Condition{render: func(*argList) string {
		return column + " IS NULL"
	}}
}

func whereSQL(conditions []Condition, args *argList) string {
	if len(conditions) == 0 {
		return ""
	}
	rendered := make([]string, len(conditions))
	for i, c := range conditions {
		rendered[i] = c.render(args)
	}
	return " WHERE " + strings.Join(rendered, " AND ")
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: columns}
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

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}

	var args argList
	sql := "SELECT " + strings.Join(b.columns, ", ") + " FROM " + b.table
	sql += whereSQL(b.where, &args)
	if len(b.orderBy) > 0 {
		sql += " ORDER BY " + strings.Join(b.orderBy, ", ")
	}

	return sql, args, nil
}

type InsertBuilder struct {
	table   string
	columns []string
	values  []any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = columns
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.values = values
	return b
}

// Suffix appends trailing SQL, typically an ON CONFLICT clause.
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("insert table is required")
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("insert columns are required")
	}
	if len(b.values) != len(b.columns) {
		return "", nil, fmt.Errorf("insert has %d values, expected %d", len(b.values), len(b.columns))
	}

	var args argList
	placeholders := make([]string, len(b.values))
	for i, value := range b.values {
		placeholders[i] = args.bind(value)
	}

	sql := "INSERT INTO " + b.table +
		" (" + strings.Join(b.columns, ", ") + ")" +
		" VALUES (" + strings.Join(placeholders, ", ") + ")"
	if b.suffix != "" {
		sql += " " + b.suffix
	}

	return sql, args, nil
}

type UpdateBuilder struct {
	table string
	sets  []func(args *argList) string
	where []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, func(args *argList) string {
		return column + " = " + args.bind(value)
	})
	return b
}

// SetExpr assigns a raw SQL expression, e.g. NOW() for soft deletes.
func (b *UpdateBuilder) SetExpr(column, expr string) *UpdateBuilder {
	b.sets = append(b.sets, func(*argList) string {
		return column + " = " + expr
	})
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("update table is required")
	}
	if len(b.sets) == 0 {
		return "", nil, fmt.Errorf("update sets are required")
	}

	var args argList
	assignments := make([]string, len(b.sets))
	for i, set := range b.sets {
		assignments[i] = set(&args)
	}

	sql := "UPDATE " + b.table + " SET " + strings.Join(assignments, ", ")
	sql += whereSQL(b.where, &args)

	return sql, args, nil
}
