package reports

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/DRSN-tech/inventory-backend/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCSV(t *testing.T) {
	view := usecase.NewInventoryView(
		[]usecase.InventoryRow{
			{ID: 1, Name: "Cola", Quantity: 10, Price: 5999, CategoryName: "Drinks"},
			{ID: 2, Name: "Mystery", Quantity: 1, Price: 100, CategoryName: "none"},
		},
		usecase.InventorySummary{TotalUnits: 11, TotalValue: 60090, CategoryCount: 2, MostExpensive: "Cola"},
	)

	data, err := renderCSV(view)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4) // заголовок + 2 строки + итог

	assert.Equal(t, []string{"id", "name", "quantity", "unit_price", "category"}, records[0])
	assert.Equal(t, []string{"1", "Cola", "10", "59.99", "Drinks"}, records[1])
	assert.Equal(t, []string{"2", "Mystery", "1", "1.00", "none"}, records[2])
	assert.Equal(t, []string{"TOTAL", "Cola", "11", "600.90", "2"}, records[3])
}

func TestRenderCSV_EmptyInventory(t *testing.T) {
	view := usecase.NewInventoryView(nil, usecase.InventorySummary{})

	data, err := renderCSV(view)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"TOTAL", "", "0", "0.00", "0"}, records[1])
}
