package tabular

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDisplayValue(t *testing.T) {
	t.Parallel()

	t.Run("currency", func(t *testing.T) {
		col := Column{Field: "price", Type: ColumnNumber, DisplayFormat: "currency"}

		assert.Equal(t, "$9.99", DisplayValue(col, 9.99))
		assert.Equal(t, "$1,250.00", DisplayValue(col, 1250))
	})

	t.Run("rating", func(t *testing.T) {
		col := Column{Field: "rating", Type: ColumnNumber, DisplayFormat: "rating"}

		assert.Equal(t, "4.5 ★", DisplayValue(col, 4.5))
	})

	t.Run("boolean", func(t *testing.T) {
		col := Column{Field: "active", Type: ColumnBoolean}

		assert.Equal(t, "Yes", DisplayValue(col, true))
		assert.Equal(t, "No", DisplayValue(col, false))
	})

	t.Run("enum label lookup with raw fallback", func(t *testing.T) {
		col := Column{Field: "status", Type: ColumnEnum, Options: []Option{
			{Label: "New", Value: "new"},
			{Label: "Resolved", Value: "resolved"},
		}}

		assert.Equal(t, "Resolved", DisplayValue(col, "resolved"))
		assert.Equal(t, "archived", DisplayValue(col, "archived"))
	})

	t.Run("date", func(t *testing.T) {
		col := Column{Field: "createdAt", Type: ColumnDate}
		ts := time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)

		assert.Equal(t, "Mar 14, 2026", DisplayValue(col, ts))
		assert.Equal(t, "Mar 14, 2026", DisplayValue(col, "2026-03-14"))
	})

	t.Run("truncate", func(t *testing.T) {
		col := Column{Field: "description", Type: ColumnText, DisplayFormat: "truncate:5"}

		assert.Equal(t, "abcde...", DisplayValue(col, "abcdefgh"))
		assert.Equal(t, "abc", DisplayValue(col, "abc"))
	})

	t.Run("missing renders placeholder", func(t *testing.T) {
		col := Column{Field: "sku", Type: ColumnText}

		assert.Equal(t, "-", DisplayValue(col, nil))
		assert.Equal(t, "-", DisplayValue(col, ""))
	})
}
