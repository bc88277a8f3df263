package usecase

import (
	"testing"

	"github.com/DRSN-tech/inventory-backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestComputeSummary(t *testing.T) {
	tests := []struct {
		name string
		rows []InventoryRow
		want InventorySummary
	}{
		{
			name: "empty inventory",
			rows: nil,
			want: InventorySummary{
				TotalUnits:    0,
				TotalValue:    0,
				CategoryCount: 0,
				MostExpensive: "",
			},
		},
		{
			name: "single product",
			rows: []InventoryRow{
				{ID: 1, Name: "Cola", Quantity: 10, Price: 5000, CategoryName: "Drinks"},
			},
			want: InventorySummary{
				TotalUnits:    10,
				TotalValue:    50000,
				CategoryCount: 1,
				MostExpensive: "Cola",
			},
		},
		{
			name: "totals across categories",
			rows: []InventoryRow{
				{ID: 1, Name: "Cola", Quantity: 10, Price: 5000, CategoryName: "Drinks"},
				{ID: 2, Name: "Chips", Quantity: 4, Price: 12000, CategoryName: "Snacks"},
				{ID: 3, Name: "Water", Quantity: 100, Price: 2500, CategoryName: "Drinks"},
			},
			want: InventorySummary{
				TotalUnits:    114,
				TotalValue:    10*5000 + 4*12000 + 100*2500,
				CategoryCount: 2,
				MostExpensive: "Chips",
			},
		},
		{
			name: "uncategorized products count as their own category",
			rows: []InventoryRow{
				{ID: 1, Name: "Cola", Quantity: 1, Price: 5000, CategoryName: "Drinks"},
				{ID: 2, Name: "Mystery", Quantity: 1, Price: 100, CategoryName: domain.CategoryNone},
			},
			want: InventorySummary{
				TotalUnits:    2,
				TotalValue:    5100,
				CategoryCount: 2,
				MostExpensive: "Cola",
			},
		},
		{
			name: "price tie keeps first product in name order",
			rows: []InventoryRow{
				{ID: 2, Name: "Apple", Quantity: 1, Price: 3000, CategoryName: "Fruit"},
				{ID: 1, Name: "Banana", Quantity: 1, Price: 3000, CategoryName: "Fruit"},
			},
			want: InventorySummary{
				TotalUnits:    2,
				TotalValue:    6000,
				CategoryCount: 1,
				MostExpensive: "Apple",
			},
		},
		{
			name: "zero quantity rows still participate",
			rows: []InventoryRow{
				{ID: 1, Name: "Cola", Quantity: 0, Price: 9000, CategoryName: "Drinks"},
				{ID: 2, Name: "Water", Quantity: 5, Price: 1000, CategoryName: "Drinks"},
			},
			want: InventorySummary{
				TotalUnits:    5,
				TotalValue:    5000,
				CategoryCount: 1,
				MostExpensive: "Cola",
			},
		},
		{
			name: "free product is still the most expensive on an all-zero-price stock",
			rows: []InventoryRow{
				{ID: 1, Name: "Flyer", Quantity: 3, Price: 0, CategoryName: domain.CategoryNone},
			},
			want: InventorySummary{
				TotalUnits:    3,
				TotalValue:    0,
				CategoryCount: 1,
				MostExpensive: "Flyer",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeSummary(tt.rows)
			assert.Equal(t, tt.want, got)
		})
	}
}
