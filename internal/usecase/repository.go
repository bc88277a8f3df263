package usecase

import (
	"context"

	"github.com/DRSN-tech/inventory-backend/internal/domain"
)

// ProductRepository — операции над таблицей products.
// GetByID, Insert, UpdateQuantity и Delete выполняются внутри транзакции usecase-а
// (pgx.Tx извлекается из контекста).
type ProductRepository interface {
	ListInventory(ctx context.Context) ([]InventoryRow, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Insert(ctx context.Context, product *domain.Product) (*domain.Product, error)
	UpdateQuantity(ctx context.Context, id int64, quantity int64) error
	Delete(ctx context.Context, id int64) error
}

// CategoryRepository — операции над таблицей categories.
type CategoryRepository interface {
	List(ctx context.Context) ([]CategoryInfo, error)
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
}

// ReportRepository — объектное хранилище снимков склада.
type ReportRepository interface {
	Upload(ctx context.Context, report *domain.Report) (string, error)
	Delete(ctx context.Context, key string) error
}

// OutboxRepository — таблица outbox_events.
type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
}

// CacheRepository — кэш собранного представления склада.
// GetView возвращает (nil, nil) при промахе.
type CacheRepository interface {
	GetView(ctx context.Context) (*InventoryView, error)
	SetView(ctx context.Context, view *InventoryView) error
	DeleteView(ctx context.Context) error
}
