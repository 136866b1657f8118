package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-shop-admin/internal/tabular"
)

func TestExportServiceCSVUsesDisplayFormatting(t *testing.T) {
	t.Parallel()

	columns := []tabular.Column{
		{Field: "name", Header: "Name", Type: tabular.ColumnText},
		{Field: "price", Header: "Price", Type: tabular.ColumnNumber, DisplayFormat: "currency"},
		{Field: "active", Header: "Active", Type: tabular.ColumnBoolean},
		{Field: "actions", Header: "", Type: tabular.ColumnActions},
	}
	rows := []tabular.Row{
		{"name": "Laptop Pro", "price": 1299.5, "active": true},
		{"name": "USB Cable", "price": 4.0, "active": false},
	}

	data, err := NewExportService().CSV(columns, rows)
	require.NoError(t, err)

	assert.Equal(t, "Name,Price,Active\n"+
		"Laptop Pro,\"$1,299.50\",Yes\n"+
		"USB Cable,$4.00,No\n", string(data))
}

func TestExportServiceCSVMissingFieldsRenderDash(t *testing.T) {
	t.Parallel()

	columns := []tabular.Column{
		{Field: "name", Header: "Name", Type: tabular.ColumnText},
		{Field: "rating", Header: "Rating", Type: tabular.ColumnNumber, DisplayFormat: "rating"},
	}
	rows := []tabular.Row{{"name": "Desk Lamp"}}

	data, err := NewExportService().CSV(columns, rows)
	require.NoError(t, err)

	assert.Equal(t, "Name,Rating\nDesk Lamp,-\n", string(data))
}

func TestExportServiceCSVEmptyRowsStillWritesHeader(t *testing.T) {
	t.Parallel()

	columns := []tabular.Column{{Field: "username", Header: "User", Type: tabular.ColumnText}}

	data, err := NewExportService().CSV(columns, nil)
	require.NoError(t, err)

	assert.Equal(t, "User\n", string(data))
}
