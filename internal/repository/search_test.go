package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-shop-admin/internal/tabular"
)

var testFields = FieldMap{
	"name":     "name",
	"category": "category",
	"active":   "active",
	"price":    "price",
}

func TestWhereClause(t *testing.T) {
	t.Parallel()

	t.Run("string filters become substring matches", func(t *testing.T) {
		q := tabular.Query{Filters: map[string]any{"name": "mug"}}

		where, args := whereClause(q, testFields, 1)

		assert.Equal(t, "WHERE name ILIKE $1", where)
		assert.Equal(t, []any{"%mug%"}, args)
	})

	t.Run("non-string filters match by equality", func(t *testing.T) {
		q := tabular.Query{Filters: map[string]any{"active": true}}

		where, args := whereClause(q, testFields, 1)

		assert.Equal(t, "WHERE active = $1", where)
		assert.Equal(t, []any{true}, args)
	})

	t.Run("unknown fields are ignored, keys applied in sorted order", func(t *testing.T) {
		q := tabular.Query{Filters: map[string]any{
			"name":            "a",
			"category":        "b",
			"drop table bobs": "x",
		}}

		where, args := whereClause(q, testFields, 1)

		assert.Equal(t, "WHERE category ILIKE $1 AND name ILIKE $2", where)
		assert.Equal(t, []any{"%b%", "%a%"}, args)
	})

	t.Run("global search ORs across whitelisted fields with one arg", func(t *testing.T) {
		q := tabular.Query{
			Filters: map[string]any{"active": true},
			Global:  &tabular.GlobalSearch{Value: "blue", Fields: []string{"name", "category", "unknown"}},
		}

		where, args := whereClause(q, testFields, 1)

		assert.Equal(t, "WHERE active = $1 AND (name ILIKE $2 OR category ILIKE $2)", where)
		assert.Equal(t, []any{true, "%blue%"}, args)
	})

	t.Run("empty query yields no clause", func(t *testing.T) {
		where, args := whereClause(tabular.Query{}, testFields, 1)

		assert.Empty(t, where)
		assert.Empty(t, args)
	})
}

func TestOrderClause(t *testing.T) {
	t.Parallel()

	q := tabular.Query{Sorts: []tabular.Sort{{Field: "price", Direction: tabular.Descending}}}
	assert.Equal(t, "ORDER BY price DESC", orderClause(q, testFields, "created_at DESC"))

	q = tabular.Query{Sorts: []tabular.Sort{{Field: "nope", Direction: tabular.Ascending}}}
	assert.Equal(t, "ORDER BY created_at DESC", orderClause(q, testFields, "created_at DESC"))

	assert.Equal(t, "ORDER BY created_at DESC", orderClause(tabular.Query{}, testFields, "created_at DESC"))
}

func TestClampPaging(t *testing.T) {
	t.Parallel()

	limit, offset := clampPaging(tabular.Query{Page: 3, Size: 20})
	assert.Equal(t, 20, limit)
	assert.Equal(t, 40, offset)

	limit, offset = clampPaging(tabular.Query{})
	assert.Equal(t, 10, limit)
	assert.Equal(t, 0, offset)

	limit, _ = clampPaging(tabular.Query{Size: 10000})
	assert.Equal(t, 200, limit)
}
