// Package query composes parameterized SQL predicates. Filters are
// always conjunctive: every added condition is ANDed onto the WHERE
// clause, and every value travels as a $n placeholder argument, never
// as concatenated SQL text.
package query

import (
	"fmt"
	"strings"
)

// Operator is a SQL comparison operator.
type Operator string

const (
	OpEqual       Operator = "="
	OpGreaterOrEq Operator = ">="
	OpLessOrEq    Operator = "<="
	OpLess        Operator = "<"
	OpGreater     Operator = ">"
	OpAny         Operator = "= ANY"
)

// Condition is a single column comparison against a parameterized value.
type Condition struct {
	Column   string
	Operator Operator
	Value    any
}

// Eq builds a column = value condition.
func Eq(column string, value any) Condition {
	return Condition{Column: column, Operator: OpEqual, Value: value}
}

// Gte builds a column >= value condition.
func Gte(column string, value any) Condition {
	return Condition{Column: column, Operator: OpGreaterOrEq, Value: value}
}

// Lte builds a column <= value condition.
func Lte(column string, value any) Condition {
	return Condition{Column: column, Operator: OpLessOrEq, Value: value}
}

// Lt builds a column < value condition.
func Lt(column string, value any) Condition {
	return Condition{Column: column, Operator: OpLess, Value: value}
}

// Gt builds a column > value condition.
func Gt(column string, value any) Condition {
	return Condition{Column: column, Operator: OpGreater, Value: value}
}

// AnyOf builds a column = ANY(values) condition; values should be a
// slice type the driver can bind as an array.
func AnyOf(column string, values any) Condition {
	return Condition{Column: column, Operator: OpAny, Value: values}
}

// Builder accumulates AND conditions and renders a WHERE clause with
// sequential placeholders.
type Builder struct {
	conds []Condition
}

// New returns an empty builder.
func New() *Builder {
	return &Builder{}
}

// Where appends a condition.
func (b *Builder) Where(c Condition) *Builder {
	b.conds = append(b.conds, c)
	return b
}

// WhereIf appends the condition only when ok is true; optional filters
// compose with this without branching at the call site.
func (b *Builder) WhereIf(ok bool, c Condition) *Builder {
	if ok {
		return b.Where(c)
	}
	return b
}

// SQL renders the accumulated conditions as a WHERE clause starting at
// placeholder $1 and returns it with the bound arguments in order. An
// empty builder renders an empty string.
func (b *Builder) SQL() (string, []any) {
	return b.SQLFrom(1)
}

// SQLFrom renders the clause with placeholders starting at $start, for
// callers that already bound earlier arguments.
func (b *Builder) SQLFrom(start int) (string, []any) {
	if len(b.conds) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(b.conds))
	args := make([]any, 0, len(b.conds))
	n := start
	for _, c := range b.conds {
		if c.Operator == OpAny {
			parts = append(parts, fmt.Sprintf("%s = ANY($%d)", c.Column, n))
		} else {
			parts = append(parts, fmt.Sprintf("%s %s $%d", c.Column, c.Operator, n))
		}
		args = append(args, c.Value)
		n++
	}
	return "WHERE " + strings.Join(parts, " AND "), args
}
