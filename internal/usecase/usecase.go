package usecase

import "context"

type InventoryUC interface {
	GetInventory(ctx context.Context) (*InventoryView, error)
	ListCategories(ctx context.Context) ([]CategoryInfo, error)
	AddCategory(ctx context.Context, req *AddCategoryReq) (*CategoryInfo, error)
	AddProduct(ctx context.Context, req *AddProductReq) (*OutboxEvent, error)
	WithdrawStock(ctx context.Context, req *WithdrawStockReq) (*OutboxEvent, error)
	DeleteProduct(ctx context.Context, productID int64) (*OutboxEvent, error)
	ExportReport(ctx context.Context) (*ExportSnapshotRes, error)
}
