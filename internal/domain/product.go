package domain

import "time"

// Product описывает товар на складе
type Product struct {
	ID         int64
	Name       string
	Quantity   int64
	Price      int64 // Цена за единицу хранится в копейках
	CategoryID *int64
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

func NewProduct(name string, quantity int64, price int64, categoryID int64) *Product {
	return &Product{
		Name:       name,
		Quantity:   quantity,
		Price:      price,
		CategoryID: &categoryID,
	}
}
