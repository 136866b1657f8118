package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_BufferPrecedence(t *testing.T) {
	t.Parallel()

	t.Run("buffer wins while editing, record wins while viewing", func(t *testing.T) {
		s := NewSession("r1", Row{"name": "old", "quantity": 2})

		require.Equal(t, "old", s.Value("name"))

		s.Edit()
		s.Set("name", "new")
		assert.Equal(t, "new", s.Value("name"))
		assert.Equal(t, 2, s.Value("quantity"))

		s.Cancel()
		assert.Equal(t, "old", s.Value("name"))
	})

	t.Run("explicit nil in the buffer is not masked by the record", func(t *testing.T) {
		s := NewSession("r1", Row{"category": "books"})
		s.Edit()
		s.Set("category", nil)

		assert.Nil(t, s.Value("category"))
	})
}

func TestSession_SubtotalConsistency(t *testing.T) {
	t.Parallel()

	s := NewSession("r1", Row{"quantity": 2, "productPrice": 9.99})
	s.Edit()
	s.Set("quantity", 3)

	assert.InDelta(t, 29.97, s.Value("subtotal"), 1e-9)

	s.Set("productPrice", 10.0)
	assert.InDelta(t, 30.0, s.Value("subtotal"), 1e-9)
}

func TestSession_CartTotalValue(t *testing.T) {
	t.Parallel()

	s := NewSession("u1", Row{"cart": []Row{
		{"quantity": 2, "productPrice": 10.0},
		{"quantity": 1, "price": 4.5},
	}})

	assert.InDelta(t, 24.5, s.Value("cartTotalValue"), 1e-9)
}

func TestSession_ValidationAggregation(t *testing.T) {
	t.Parallel()

	columns := []Column{
		{Field: "name", Header: "Name", Type: ColumnText, Editable: true, Required: true},
		{Field: "status", Header: "Status", Type: ColumnEnum, Editable: true, Required: true,
			Options: []Option{{Label: "Active", Value: "active"}, {Label: "Inactive", Value: "inactive"}}},
		{Field: "notes", Header: "Notes", Type: ColumnText, Editable: true},
	}

	s := NewSession("r1", Row{"name": "", "status": "bogus", "notes": ""})
	s.Edit()

	saved, err := s.Save(columns)
	require.Nil(t, saved)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ElementsMatch(t, []string{"Name", "Status"}, verr.Fields)
	assert.NotContains(t, verr.Fields, "Notes")
}

func TestSession_SaveMergesBufferOverRecord(t *testing.T) {
	t.Parallel()

	t.Run("existing row merges record and buffer", func(t *testing.T) {
		s := NewSession("r1", Row{"id": "r1", "name": "old", "price": 5.0})
		s.Edit()
		s.Set("name", "new")

		merged, err := s.Save([]Column{{Field: "name", Header: "Name", Type: ColumnText, Editable: true, Required: true}})
		require.NoError(t, err)

		assert.Equal(t, "new", merged["name"])
		assert.Equal(t, "r1", merged["id"])
		assert.Equal(t, 5.0, merged["price"])
		assert.Equal(t, StateSaving, s.State())
	})

	t.Run("new row emits the raw buffer", func(t *testing.T) {
		s := NewDraft("draft", Row{"quantity": 1})
		s.Set("name", "thing")

		merged, err := s.Save(nil)
		require.NoError(t, err)

		assert.Equal(t, Row{"name": "thing"}, merged)
	})

	t.Run("complete installs the saved row and returns to viewing", func(t *testing.T) {
		s := NewSession("r1", Row{"name": "old"})
		s.Edit()
		s.Set("name", "new")

		merged, err := s.Save(nil)
		require.NoError(t, err)

		s.Complete(merged)
		assert.Equal(t, StateViewing, s.State())
		assert.Equal(t, "new", s.Value("name"))
	})
}

func TestSession_SelectProductAtomicWrite(t *testing.T) {
	t.Parallel()

	s := NewSession("u1_p1", Row{"productId": "p1", "productName": "Mug", "productPrice": 3.0, "quantity": 4})
	s.Edit()

	s.SelectProduct(ProductSelection{ProductID: "p2", Name: "Lamp", Price: 19.5, StockQuantity: 7})

	assert.Equal(t, "p2", s.Value("productId"))
	assert.Equal(t, "Lamp", s.Value("productName"))
	assert.Equal(t, 19.5, s.Value("productPrice"))
	assert.Equal(t, 7, s.Value("productStockQuantity"))
	assert.Equal(t, 1, s.Value("quantity"))
	assert.InDelta(t, 19.5, s.Value("subtotal"), 1e-9)
}

func TestSessionManager_Lifecycle(t *testing.T) {
	t.Parallel()

	m := NewSessionManager()

	first := m.Begin("a", Row{"id": "a"})
	second := m.Begin("a", Row{"id": "a"})
	assert.Same(t, first, second)

	m.BeginDraft("new_b", Row{"quantity": 1})
	assert.Equal(t, 2, m.Active())

	m.End("a")
	_, ok := m.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, m.Active())
}
