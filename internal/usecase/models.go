package usecase

// INVENTORY USECASE

// AddCategoryReq — запрос на создание категории.
type AddCategoryReq struct {
	Name string
}

// AddProductReq — запрос на добавление нового товара.
type AddProductReq struct {
	Name       string
	Quantity   int64
	Price      int64 // в копейках
	CategoryID int64
}

// WithdrawStockReq — запрос на списание товара со склада.
type WithdrawStockReq struct {
	ProductID int64
	Amount    int64
}

// InventoryRow — DTO одной строки склада: товар, развёрнутый вместе с категорией.
type InventoryRow struct {
	ID           int64
	Name         string
	Quantity     int64
	Price        int64 // в копейках
	CategoryName string
}

// InventorySummary — агрегированные метрики по текущему состоянию склада.
type InventorySummary struct {
	TotalUnits    int64
	TotalValue    int64 // в копейках
	CategoryCount int
	MostExpensive string // пустая строка для пустого склада
}

// InventoryView — полное представление склада: строки плюс метрики.
type InventoryView struct {
	Rows    []InventoryRow
	Summary InventorySummary
}

// CategoryInfo — DTO категории для внешнего использования.
type CategoryInfo struct {
	ID   int64
	Name string
}

// INFRASTRUCTURE

// WriteRawMessageReq — готовый к отправке payload события.
type WriteRawMessageReq struct {
	ProductID int64
	Payload   []byte
}

// ExportSnapshotReq — запрос на выгрузку снимка склада в объектное хранилище.
type ExportSnapshotReq struct {
	View *InventoryView
}

// ExportSnapshotRes — результат выгрузки (ключ объекта в MinIO).
type ExportSnapshotRes struct {
	ObjectKey string
}

// MAPPERS

func NewAddCategoryReq(name string) *AddCategoryReq {
	return &AddCategoryReq{Name: name}
}

func NewAddProductReq(name string, quantity, price, categoryID int64) *AddProductReq {
	return &AddProductReq{
		Name:       name,
		Quantity:   quantity,
		Price:      price,
		CategoryID: categoryID,
	}
}

func NewWithdrawStockReq(productID, amount int64) *WithdrawStockReq {
	return &WithdrawStockReq{
		ProductID: productID,
		Amount:    amount,
	}
}

func NewInventoryRow(id int64, name string, quantity, price int64, categoryName string) InventoryRow {
	return InventoryRow{
		ID:           id,
		Name:         name,
		Quantity:     quantity,
		Price:        price,
		CategoryName: categoryName,
	}
}

func NewInventoryView(rows []InventoryRow, summary InventorySummary) *InventoryView {
	return &InventoryView{
		Rows:    rows,
		Summary: summary,
	}
}

func NewCategoryInfo(id int64, name string) CategoryInfo {
	return CategoryInfo{
		ID:   id,
		Name: name,
	}
}

func NewWriteRawMessageReq(productID int64, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		ProductID: productID,
		Payload:   payload,
	}
}

func NewExportSnapshotReq(view *InventoryView) *ExportSnapshotReq {
	return &ExportSnapshotReq{View: view}
}

func NewExportSnapshotRes(objectKey string) *ExportSnapshotRes {
	return &ExportSnapshotRes{ObjectKey: objectKey}
}
