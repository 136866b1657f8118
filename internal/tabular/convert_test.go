package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertTableEvent(t *testing.T) {
	t.Parallel()

	t.Run("applies paging defaults", func(t *testing.T) {
		q := ConvertTableEvent(TableEvent{})

		assert.Equal(t, 1, q.Page)
		assert.Equal(t, 10, q.Size)
		assert.Nil(t, q.Sorts)
		assert.Nil(t, q.Global)
	})

	t.Run("merges global search marker alongside column filters", func(t *testing.T) {
		q := ConvertTableEvent(TableEvent{
			Page:         2,
			Size:         25,
			Filters:      map[string]any{"category": "mugs"},
			GlobalValue:  "  blue  ",
			GlobalFields: []string{"name", "description"},
		})

		assert.Equal(t, "mugs", q.Filters["category"])
		assert.NotNil(t, q.Global)
		assert.Equal(t, "blue", q.Global.Value)
		assert.Equal(t, []string{"name", "description"}, q.Global.Fields)
	})

	t.Run("drops empty filter values", func(t *testing.T) {
		q := ConvertTableEvent(TableEvent{
			Filters: map[string]any{"name": "  ", "active": true, "gone": nil},
		})

		assert.Equal(t, map[string]any{"active": true}, q.Filters)
	})

	t.Run("unknown sort direction falls back to ascending", func(t *testing.T) {
		q := ConvertTableEvent(TableEvent{SortField: "price", SortDirection: "sideways"})

		assert.Equal(t, []Sort{{Field: "price", Direction: Ascending}}, q.Sorts)
	})
}

func TestPageCount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, PageCount(0, 10))
	assert.Equal(t, 1, PageCount(10, 10))
	assert.Equal(t, 2, PageCount(11, 10))
	assert.Equal(t, 0, PageCount(5, 0))
}
