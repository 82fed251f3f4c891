package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

type Condition interface {
	appendSQL(buf *strings.Builder, args *[]any, argIndex *int)
}

type eqCondition struct {
	column string
	value  any
}

func Eq(column string, value any) Condition {
	return eqCondition{column: column, value: value}
}

func (c eqCondition) appendSQL(buf *strings.Builder, args *[]any, argIndex *int) {
	buf.WriteString(c.column)
	buf.WriteString(" = ")
	buf.WriteString(placeholder(*argIndex))
	*args = append(*args, c.value)
	*argIndex = *argIndex + 1
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	limit   int
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

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}

	var buf strings.Builder
	buf.WriteString("SELECT ")
	buf.WriteString(strings.Join(b.columns, ", "))
	buf.WriteString(" FROM ")
	buf.WriteString(b.table)

	args := make([]any, 0, len(b.where))
	argIndex := 1
	appendWhereClause(&buf, b.where, &args, &argIndex)
	if b.limit > 0 {
		buf.WriteString(" LIMIT ")
		buf.WriteString(strconv.Itoa(b.limit))
	}

	return buf.String(), args, nil
}

type mergeMode uint8

const (
	mergeOverwrite mergeMode = iota
	mergeCoalesce
)

type mergeClause struct {
	column string
	mode   mergeMode
}

// ConflictClause renders an ON CONFLICT action for an insert.
type ConflictClause struct {
	target    []string
	merges    []mergeClause
	doNothing bool
}

func OnConflict(target ...string) *ConflictClause {
	return &ConflictClause{target: append([]string(nil), target...)}
}

func (c *ConflictClause) DoNothing() *ConflictClause {
	c.doNothing = true
	return c
}

// Overwrite sets each column to the incoming value.
func (c *ConflictClause) Overwrite(columns ...string) *ConflictClause {
	return c.add(mergeOverwrite, columns)
}

// Coalesce keeps the stored value when the incoming one is NULL.
func (c *ConflictClause) Coalesce(columns ...string) *ConflictClause {
	return c.add(mergeCoalesce, columns)
}

func (c *ConflictClause) add(mode mergeMode, columns []string) *ConflictClause {
	for _, col := range columns {
		c.merges = append(c.merges, mergeClause{column: col, mode: mode})
	}
	return c
}

func (c *ConflictClause) appendSQL(buf *strings.Builder, table string) error {
	buf.WriteString(" ON CONFLICT")
	if len(c.target) > 0 {
		buf.WriteString(" (")
		buf.WriteString(strings.Join(c.target, ", "))
		buf.WriteString(")")
	}
	if c.doNothing || len(c.merges) == 0 {
		buf.WriteString(" DO NOTHING")
		return nil
	}
	if len(c.target) == 0 {
		return fmt.Errorf("conflict target is required for DO UPDATE")
	}

	buf.WriteString(" DO UPDATE SET ")
	for i, m := range c.merges {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(m.column)
		buf.WriteString(" = ")
		switch m.mode {
		case mergeCoalesce:
			buf.WriteString("COALESCE(EXCLUDED.")
			buf.WriteString(m.column)
			buf.WriteString(", ")
			buf.WriteString(table)
			buf.WriteString(".")
			buf.WriteString(m.column)
			buf.WriteString(")")
		default:
			buf.WriteString("EXCLUDED.")
			buf.WriteString(m.column)
		}
	}
	return nil
}

type InsertBuilder struct {
	table     string
	columns   []string
	rows      [][]any
	conflict  *ConflictClause
	returning []string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

func (b *InsertBuilder) OnConflict(clause *ConflictClause) *InsertBuilder {
	b.conflict = clause
	return b
}

func (b *InsertBuilder) Returning(columns ...string) *InsertBuilder {
	b.returning = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("insert table is required")
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("insert columns are required")
	}
	if len(b.rows) == 0 {
		return "", nil, fmt.Errorf("insert values are required")
	}

	var buf strings.Builder
	buf.WriteString("INSERT INTO ")
	buf.WriteString(b.table)
	buf.WriteString(" (")
	buf.WriteString(strings.Join(b.columns, ", "))
	buf.WriteString(") VALUES ")

	args := make([]any, 0, len(b.rows)*len(b.columns))
	argIndex := 1
	for rowIdx, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", rowIdx, len(row), len(b.columns))
		}
		if rowIdx > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString("(")
		for colIdx, value := range row {
			if colIdx > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(placeholder(argIndex))
			args = append(args, value)
			argIndex++
		}
		buf.WriteString(")")
	}

	if b.conflict != nil {
		if err := b.conflict.appendSQL(&buf, b.table); err != nil {
			return "", nil, err
		}
	}
	if len(b.returning) > 0 {
		buf.WriteString(" RETURNING ")
		buf.WriteString(strings.Join(b.returning, ", "))
	}

	return buf.String(), args, nil
}

func appendWhereClause(buf *strings.Builder, conditions []Condition, args *[]any, argIndex *int) {
	if len(conditions) == 0 {
		return
	}
	buf.WriteString(" WHERE ")
	for i, c := range conditions {
		if i > 0 {
			buf.WriteString(" AND ")
		}
		c.appendSQL(buf, args, argIndex)
	}
}

func placeholder(i int) string {
	return "$" + strconv.Itoa(i)
}
