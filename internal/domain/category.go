package domain

import "time"

// CategoryNone — имя категории для товаров без привязанной категории
// (LEFT JOIN без совпадения).
const CategoryNone = "none"

// Category описывает категорию товара
type Category struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

func NewCategory(name string) *Category {
	return &Category{
		Name: name,
	}
}
