package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilderEmpty(t *testing.T) {
	where, args := New().SQL()
	assert.Empty(t, where)
	assert.Nil(t, args)
}

func TestBuilderSingleCondition(t *testing.T) {
	where, args := New().Where(Eq("user_id", "u1")).SQL()
	assert.Equal(t, "WHERE user_id = $1", where)
	assert.Equal(t, []any{"u1"}, args)
}

func TestBuilderConjunction(t *testing.T) {
	where, args := New().
		Where(Eq("user_id", "u1")).
		Where(Gte("date", "2025-01-01")).
		Where(Lte("date", "2025-01-31")).
		SQL()
	assert.Equal(t, "WHERE user_id = $1 AND date >= $2 AND date <= $3", where)
	assert.Equal(t, []any{"u1", "2025-01-01", "2025-01-31"}, args)
}

func TestBuilderWhereIf(t *testing.T) {
	where, args := New().
		Where(Eq("user_id", "u1")).
		WhereIf(false, Eq("account_id", "skip")).
		WhereIf(true, Lt("amount", 0)).
		SQL()
	assert.Equal(t, "WHERE user_id = $1 AND amount < $2", where)
	assert.Equal(t, []any{"u1", 0}, args)
}

func TestBuilderAnyOf(t *testing.T) {
	where, args := New().
		Where(AnyOf("id", []string{"a", "b"})).
		Where(Eq("user_id", "u1")).
		SQL()
	assert.Equal(t, "WHERE id = ANY($1) AND user_id = $2", where)
	assert.Equal(t, []any{[]string{"a", "b"}, "u1"}, args)
}

func TestBuilderSQLFrom(t *testing.T) {
	where, args := New().Where(Gt("amount", 100)).SQLFrom(3)
	assert.Equal(t, "WHERE amount > $3", where)
	assert.Equal(t, []any{100}, args)
}
