package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/DRSN-tech/inventory-backend/internal/domain"
	"github.com/DRSN-tech/inventory-backend/pkg/e"
	"github.com/DRSN-tech/inventory-backend/pkg/logger"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
)

// InventoryUseCase реализует бизнес-логику управления складом:
// сборку представления склада с метриками, добавление категорий и товаров,
// списание остатков и удаление товаров.
type InventoryUseCase struct {
	productRepo  ProductRepository
	categoryRepo CategoryRepository
	dbPool       transaction.Transactional
	outboxRepo   OutboxRepository
	cacheRepo    CacheRepository
	reportsInfra ReportsInfra
	logger       logger.Logger
}

func NewInventoryUC(
	productRepo ProductRepository,
	categoryRepo CategoryRepository,
	dbPool transaction.Transactional,
	outboxRepo OutboxRepository,
	cacheRepo CacheRepository,
	reportsInfra ReportsInfra,
	logger logger.Logger,
) *InventoryUseCase {
	return &InventoryUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		dbPool:       dbPool,
		outboxRepo:   outboxRepo,
		cacheRepo:    cacheRepo,
		reportsInfra: reportsInfra,
		logger:       logger,
	}
}

// GetInventory собирает представление склада: строки LEFT JOIN-а товаров
// с категориями, отсортированные по имени, плюс агрегированные метрики.
// Сначала проверяется кэш; промах или ошибка кэша уводят в БД,
// после чего представление фоново кэшируется.
func (i *InventoryUseCase) GetInventory(ctx context.Context) (*InventoryView, error) {
	const op = "InventoryUseCase.GetInventory"

	view, err := i.cacheRepo.GetView(ctx)
	if err != nil {
		i.logger.Warnf("Cache lookup failed, falling back to DB: %v", e.Wrap(op, err))
	}
	if view != nil {
		return view, nil
	}

	rows, err := i.productRepo.ListInventory(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	view = NewInventoryView(rows, ComputeSummary(rows))

	// Фоновое добавление представления в кэш
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		if err := i.cacheRepo.SetView(bgCtx, view); err != nil {
			i.logger.Warnf("Failed to cache inventory view in background: %v", e.Wrap(op, err))
		}
	}()

	return view, nil
}

// ListCategories возвращает все категории для выбора при добавлении товара.
func (i *InventoryUseCase) ListCategories(ctx context.Context) ([]CategoryInfo, error) {
	const op = "InventoryUseCase.ListCategories"

	categories, err := i.categoryRepo.List(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return categories, nil
}

// AddCategory создаёт категорию с непустым именем.
// Уникальность имён не проверяется: дубликаты допустимы.
func (i *InventoryUseCase) AddCategory(ctx context.Context, req *AddCategoryReq) (*CategoryInfo, error) {
	const op = "InventoryUseCase.AddCategory"

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, e.Wrap(op, e.ErrCategoryNameRequired)
	}

	var err error
	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, i.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	category, err := i.categoryRepo.Create(ctx, domain.NewCategory(name))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	i.invalidateView(ctx, op)

	info := NewCategoryInfo(category.ID, category.Name)
	return &info, nil
}

// AddProduct добавляет новый товар. Название обязательно, количество и цена
// неотрицательны, категория должна существовать. Вставка товара и outbox-событие
// пишутся в одной транзакции.
func (i *InventoryUseCase) AddProduct(ctx context.Context, req *AddProductReq) (*OutboxEvent, error) {
	const op = "InventoryUseCase.AddProduct"

	var err error
	if err = i.validateProduct(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, i.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	// Категория обязана существовать на момент добавления
	_, err = i.categoryRepo.GetByID(ctx, req.CategoryID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	product, err := i.productRepo.Insert(ctx, domain.NewProduct(strings.TrimSpace(req.Name), req.Quantity, req.Price, req.CategoryID))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	event, err := i.createOutboxEvent(ctx, ProductAdded, product.ID, product.Name, 0, product.Quantity)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	i.invalidateView(ctx, op)

	return event, nil
}

// WithdrawStock списывает amount единиц товара. Верхняя граница всегда
// пересчитывается от актуального количества, прочитанного внутри транзакции,
// а не от состояния, которое видел клиент. Количество не может стать
// отрицательным; нулевой остаток сохраняет запись.
func (i *InventoryUseCase) WithdrawStock(ctx context.Context, req *WithdrawStockReq) (*OutboxEvent, error) {
	const op = "InventoryUseCase.WithdrawStock"

	var err error
	if req.Amount < 1 {
		err = e.ErrAmountTooSmall
		return nil, e.Wrap(op, err)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, i.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	product, err := i.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if req.Amount > product.Quantity {
		err = e.ErrAmountExceedsStock
		return nil, e.Wrap(op, err)
	}

	newQuantity := product.Quantity - req.Amount

	err = i.productRepo.UpdateQuantity(ctx, product.ID, newQuantity)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	event, err := i.createOutboxEvent(ctx, StockAdjusted, product.ID, product.Name, req.Amount, newQuantity)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	i.invalidateView(ctx, op)

	return event, nil
}

// DeleteProduct удаляет товар безвозвратно, независимо от остатка.
func (i *InventoryUseCase) DeleteProduct(ctx context.Context, productID int64) (*OutboxEvent, error) {
	const op = "InventoryUseCase.DeleteProduct"

	var err error
	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, i.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	product, err := i.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	err = i.productRepo.Delete(ctx, product.ID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	event, err := i.createOutboxEvent(ctx, ProductDeleted, product.ID, product.Name, 0, 0)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	i.invalidateView(ctx, op)

	return event, nil
}

// ExportReport выгружает свежий снимок склада в объектное хранилище.
// Кэш не используется: отчёт всегда строится от актуального состояния БД.
func (i *InventoryUseCase) ExportReport(ctx context.Context) (*ExportSnapshotRes, error) {
	const op = "InventoryUseCase.ExportReport"

	rows, err := i.productRepo.ListInventory(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	view := NewInventoryView(rows, ComputeSummary(rows))

	res, err := i.reportsInfra.ExportSnapshot(ctx, NewExportSnapshotReq(view))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return res, nil
}

// createOutboxEvent пишет событие изменения склада в outbox внутри текущей транзакции.
func (i *InventoryUseCase) createOutboxEvent(ctx context.Context, eventType OutboxEventType, productID int64, productName string, amount, quantity int64) (*OutboxEvent, error) {
	event, err := NewOutboxEvent(eventType, productID, productName, amount, quantity)
	if err != nil {
		return nil, err
	}

	return i.outboxRepo.Create(ctx, event)
}

// invalidateView сбрасывает кэш представления склада после успешной мутации.
// Ошибка кэша не фатальна: следующий запрос просто пойдёт в БД по TTL.
func (i *InventoryUseCase) invalidateView(ctx context.Context, op string) {
	if err := i.cacheRepo.DeleteView(ctx); err != nil {
		i.logger.Warnf("Failed to invalidate inventory view cache: %v", e.Wrap(op, err))
	}
}

// validateProduct проверяет корректность входных данных запроса на добавление товара.
func (i *InventoryUseCase) validateProduct(req *AddProductReq) error {
	if strings.TrimSpace(req.Name) == "" {
		return e.ErrProductNameRequired
	}

	if req.Quantity < 0 {
		return e.ErrInvalidQuantity
	}

	if req.Price < 0 {
		return e.ErrInvalidPrice
	}

	if req.CategoryID <= 0 {
		return e.ErrCategoryRequired
	}

	return nil
}
