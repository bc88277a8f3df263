package usecase

// ComputeSummary считает агрегированные метрики по строкам склада.
// Чистая функция: пустой набор строк даёт нулевые метрики и пустое имя
// самого дорогого товара. При равных ценах выигрывает первая строка
// в переданном порядке (строки приходят отсортированными по имени).
func ComputeSummary(rows []InventoryRow) InventorySummary {
	var summary InventorySummary

	categories := make(map[string]struct{}, len(rows))
	maxPrice := int64(-1)

	for _, row := range rows {
		summary.TotalUnits += row.Quantity
		summary.TotalValue += row.Quantity * row.Price

		categories[row.CategoryName] = struct{}{}

		if row.Price > maxPrice {
			maxPrice = row.Price
			summary.MostExpensive = row.Name
		}
	}

	summary.CategoryCount = len(categories)

	return summary
}
