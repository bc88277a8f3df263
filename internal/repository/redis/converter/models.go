package converter

// InventoryRowRedisModel — строка склада в JSON-представлении кэша.
type InventoryRowRedisModel struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Quantity     int64  `json:"quantity"`
	Price        int64  `json:"price"`
	CategoryName string `json:"category_name"`
}

// InventorySummaryRedisModel — агрегированные метрики в JSON-представлении кэша.
type InventorySummaryRedisModel struct {
	TotalUnits    int64  `json:"total_units"`
	TotalValue    int64  `json:"total_value"`
	CategoryCount int    `json:"category_count"`
	MostExpensive string `json:"most_expensive"`
}

// InventoryViewRedisModel — полное представление склада, как оно лежит в Redis.
type InventoryViewRedisModel struct {
	Rows    []InventoryRowRedisModel   `json:"rows"`
	Summary InventorySummaryRedisModel `json:"summary"`
}
