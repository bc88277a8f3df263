package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DRSN-tech/inventory-backend/internal/domain"
	"github.com/DRSN-tech/inventory-backend/pkg/e"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...any)            {}
func (nopLogger) Infof(format string, args ...any)             {}
func (nopLogger) Warnf(format string, args ...any)             {}
func (nopLogger) Errorf(err error, format string, args ...any) {}

// fakeTx подменяет pgx.Tx: мок-репозитории не трогают транзакцию,
// нужны только Commit и Rollback.
type fakeTx struct{ pgx.Tx }

func (fakeTx) Commit(ctx context.Context) error   { return nil }
func (fakeTx) Rollback(ctx context.Context) error { return nil }

type fakeDB struct{}

func (fakeDB) BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error) {
	return fakeTx{}, nil
}

type mockProductRepo struct {
	rows     []InventoryRow
	listErr  error
	products map[int64]*domain.Product

	inserted  []*domain.Product
	updates   map[int64]int64
	deleted   []int64
	insertErr error
}

func newMockProductRepo(products ...*domain.Product) *mockProductRepo {
	m := &mockProductRepo{
		products: make(map[int64]*domain.Product),
		updates:  make(map[int64]int64),
	}
	for _, pr := range products {
		m.products[pr.ID] = pr
	}
	return m
}

func (m *mockProductRepo) ListInventory(ctx context.Context) ([]InventoryRow, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.rows, nil
}

func (m *mockProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	pr, ok := m.products[id]
	if !ok {
		return nil, e.ErrProductNotFound
	}
	cp := *pr
	return &cp, nil
}

func (m *mockProductRepo) Insert(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if m.insertErr != nil {
		return nil, m.insertErr
	}
	product.ID = int64(len(m.products) + len(m.inserted) + 1)
	m.inserted = append(m.inserted, product)
	return product, nil
}

func (m *mockProductRepo) UpdateQuantity(ctx context.Context, id int64, quantity int64) error {
	pr, ok := m.products[id]
	if !ok {
		return e.ErrProductNotFound
	}
	pr.Quantity = quantity
	m.updates[id] = quantity
	return nil
}

func (m *mockProductRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.products[id]; !ok {
		return e.ErrProductNotFound
	}
	delete(m.products, id)
	m.deleted = append(m.deleted, id)
	return nil
}

type mockCategoryRepo struct {
	categories map[int64]*domain.Category
	list       []CategoryInfo
	created    []*domain.Category
	listErr    error
}

func newMockCategoryRepo(categories ...*domain.Category) *mockCategoryRepo {
	m := &mockCategoryRepo{categories: make(map[int64]*domain.Category)}
	for _, cat := range categories {
		m.categories[cat.ID] = cat
	}
	return m
}

func (m *mockCategoryRepo) List(ctx context.Context) ([]CategoryInfo, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.list, nil
}

func (m *mockCategoryRepo) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	cat, ok := m.categories[id]
	if !ok {
		return nil, e.ErrCategoryNotFound
	}
	return cat, nil
}

func (m *mockCategoryRepo) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	category.ID = int64(len(m.categories) + len(m.created) + 1)
	m.created = append(m.created, category)
	m.categories[category.ID] = category
	return category, nil
}

type mockOutboxRepo struct {
	created   []*OutboxEvent
	createErr error
}

func (m *mockOutboxRepo) Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	event.ID = int64(len(m.created) + 1)
	m.created = append(m.created, event)
	return event, nil
}

func (m *mockOutboxRepo) GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error) {
	return nil, nil
}

func (m *mockOutboxRepo) MarkAsProcessed(ctx context.Context, id int64) error {
	return nil
}

type mockCacheRepo struct {
	mu          sync.Mutex
	view        *InventoryView
	getErr      error
	setDone     chan struct{}
	deleteCalls int
}

func newMockCacheRepo() *mockCacheRepo {
	return &mockCacheRepo{setDone: make(chan struct{}, 1)}
}

func (m *mockCacheRepo) GetView(ctx context.Context) (*InventoryView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.view, nil
}

func (m *mockCacheRepo) SetView(ctx context.Context, view *InventoryView) error {
	m.mu.Lock()
	m.view = view
	m.mu.Unlock()
	select {
	case m.setDone <- struct{}{}:
	default:
	}
	return nil
}

func (m *mockCacheRepo) DeleteView(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.view = nil
	m.deleteCalls++
	return nil
}

type mockReportsInfra struct {
	lastView *InventoryView
	res      *ExportSnapshotRes
	err      error
}

func (m *mockReportsInfra) ExportSnapshot(ctx context.Context, req *ExportSnapshotReq) (*ExportSnapshotRes, error) {
	m.lastView = req.View
	if m.err != nil {
		return nil, m.err
	}
	return m.res, nil
}

func newTestUC(pr *mockProductRepo, cr *mockCategoryRepo, or *mockOutboxRepo,
	cache *mockCacheRepo, reports *mockReportsInfra) *InventoryUseCase {
	return NewInventoryUC(pr, cr, fakeDB{}, or, cache, reports, nopLogger{})
}

func decodePayload(t *testing.T, event *OutboxEvent) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.Unmarshal(event.Payload, &payload))
	return payload
}

func TestGetInventory_CacheHit(t *testing.T) {
	cached := NewInventoryView(
		[]InventoryRow{{ID: 1, Name: "Cola", Quantity: 3, Price: 5000, CategoryName: "Drinks"}},
		InventorySummary{TotalUnits: 3, TotalValue: 15000, CategoryCount: 1, MostExpensive: "Cola"},
	)

	productRepo := newMockProductRepo()
	productRepo.listErr = errors.New("db must not be touched on cache hit")
	cache := newMockCacheRepo()
	cache.view = cached

	uc := newTestUC(productRepo, newMockCategoryRepo(), &mockOutboxRepo{}, cache, &mockReportsInfra{})

	view, err := uc.GetInventory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cached, view)
}

func TestGetInventory_CacheMissBuildsViewAndCachesInBackground(t *testing.T) {
	productRepo := newMockProductRepo()
	productRepo.rows = []InventoryRow{
		{ID: 1, Name: "Chips", Quantity: 4, Price: 12000, CategoryName: "Snacks"},
		{ID: 2, Name: "Cola", Quantity: 10, Price: 5000, CategoryName: "Drinks"},
	}
	cache := newMockCacheRepo()

	uc := newTestUC(productRepo, newMockCategoryRepo(), &mockOutboxRepo{}, cache, &mockReportsInfra{})

	view, err := uc.GetInventory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, productRepo.rows, view.Rows)
	assert.Equal(t, int64(14), view.Summary.TotalUnits)
	assert.Equal(t, int64(4*12000+10*5000), view.Summary.TotalValue)
	assert.Equal(t, 2, view.Summary.CategoryCount)
	assert.Equal(t, "Chips", view.Summary.MostExpensive)

	select {
	case <-cache.setDone:
	case <-time.After(time.Second):
		t.Fatal("view was not cached in background")
	}
}

func TestGetInventory_CacheErrorFallsBackToDB(t *testing.T) {
	productRepo := newMockProductRepo()
	productRepo.rows = []InventoryRow{{ID: 1, Name: "Cola", Quantity: 1, Price: 100, CategoryName: domain.CategoryNone}}
	cache := newMockCacheRepo()
	cache.getErr = errors.New("redis down")

	uc := newTestUC(productRepo, newMockCategoryRepo(), &mockOutboxRepo{}, cache, &mockReportsInfra{})

	view, err := uc.GetInventory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, productRepo.rows, view.Rows)
}

func TestAddCategory(t *testing.T) {
	tests := []struct {
		name     string
		reqName  string
		wantErr  error
		wantName string
	}{
		{name: "valid name", reqName: "Drinks", wantName: "Drinks"},
		{name: "name is trimmed", reqName: "  Snacks  ", wantName: "Snacks"},
		{name: "empty name", reqName: "", wantErr: e.ErrCategoryNameRequired},
		{name: "whitespace only name", reqName: "   ", wantErr: e.ErrCategoryNameRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			categoryRepo := newMockCategoryRepo()
			cache := newMockCacheRepo()
			uc := newTestUC(newMockProductRepo(), categoryRepo, &mockOutboxRepo{}, cache, &mockReportsInfra{})

			info, err := uc.AddCategory(context.Background(), NewAddCategoryReq(tt.reqName))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, categoryRepo.created)
				assert.Zero(t, cache.deleteCalls)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantName, info.Name)
			assert.NotZero(t, info.ID)
			assert.Equal(t, 1, cache.deleteCalls)
		})
	}
}

func TestAddCategory_DuplicateNamesAllowed(t *testing.T) {
	categoryRepo := newMockCategoryRepo()
	uc := newTestUC(newMockProductRepo(), categoryRepo, &mockOutboxRepo{}, newMockCacheRepo(), &mockReportsInfra{})

	first, err := uc.AddCategory(context.Background(), NewAddCategoryReq("Drinks"))
	require.NoError(t, err)
	second, err := uc.AddCategory(context.Background(), NewAddCategoryReq("Drinks"))
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, categoryRepo.created, 2)
}

func TestAddProduct_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     *AddProductReq
		wantErr error
	}{
		{name: "empty name", req: NewAddProductReq("", 1, 100, 1), wantErr: e.ErrProductNameRequired},
		{name: "whitespace name", req: NewAddProductReq("   ", 1, 100, 1), wantErr: e.ErrProductNameRequired},
		{name: "negative quantity", req: NewAddProductReq("Cola", -1, 100, 1), wantErr: e.ErrInvalidQuantity},
		{name: "negative price", req: NewAddProductReq("Cola", 1, -100, 1), wantErr: e.ErrInvalidPrice},
		{name: "missing category", req: NewAddProductReq("Cola", 1, 100, 0), wantErr: e.ErrCategoryRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			productRepo := newMockProductRepo()
			outboxRepo := &mockOutboxRepo{}
			uc := newTestUC(productRepo, newMockCategoryRepo(), outboxRepo, newMockCacheRepo(), &mockReportsInfra{})

			_, err := uc.AddProduct(context.Background(), tt.req)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, productRepo.inserted)
			assert.Empty(t, outboxRepo.created)
		})
	}
}

func TestAddProduct_CategoryMustExist(t *testing.T) {
	productRepo := newMockProductRepo()
	uc := newTestUC(productRepo, newMockCategoryRepo(), &mockOutboxRepo{}, newMockCacheRepo(), &mockReportsInfra{})

	_, err := uc.AddProduct(context.Background(), NewAddProductReq("Cola", 10, 5000, 42))
	require.ErrorIs(t, err, e.ErrCategoryNotFound)
	assert.Empty(t, productRepo.inserted)
}

func TestAddProduct_Success(t *testing.T) {
	drinks := &domain.Category{ID: 7, Name: "Drinks"}
	productRepo := newMockProductRepo()
	outboxRepo := &mockOutboxRepo{}
	cache := newMockCacheRepo()
	uc := newTestUC(productRepo, newMockCategoryRepo(drinks), outboxRepo, cache, &mockReportsInfra{})

	event, err := uc.AddProduct(context.Background(), NewAddProductReq("  Cola  ", 10, 5000, 7))
	require.NoError(t, err)

	require.Len(t, productRepo.inserted, 1)
	inserted := productRepo.inserted[0]
	assert.Equal(t, "Cola", inserted.Name)
	assert.Equal(t, int64(10), inserted.Quantity)
	assert.Equal(t, int64(5000), inserted.Price)
	require.NotNil(t, inserted.CategoryID)
	assert.Equal(t, int64(7), *inserted.CategoryID)

	require.Len(t, outboxRepo.created, 1)
	assert.Equal(t, ProductAdded, event.EventType)
	assert.Equal(t, Pending, event.Status)
	payload := decodePayload(t, event)
	assert.Equal(t, "Cola", payload["product_name"])
	assert.Equal(t, float64(10), payload["quantity"])

	assert.Equal(t, 1, cache.deleteCalls)
}

func TestAddProduct_ZeroQuantityAllowed(t *testing.T) {
	drinks := &domain.Category{ID: 1, Name: "Drinks"}
	productRepo := newMockProductRepo()
	uc := newTestUC(productRepo, newMockCategoryRepo(drinks), &mockOutboxRepo{}, newMockCacheRepo(), &mockReportsInfra{})

	_, err := uc.AddProduct(context.Background(), NewAddProductReq("Cola", 0, 5000, 1))
	require.NoError(t, err)
	require.Len(t, productRepo.inserted, 1)
	assert.Zero(t, productRepo.inserted[0].Quantity)
}

func TestWithdrawStock(t *testing.T) {
	tests := []struct {
		name         string
		stock        int64
		amount       int64
		wantErr      error
		wantQuantity int64
	}{
		{name: "partial withdrawal", stock: 10, amount: 3, wantQuantity: 7},
		{name: "withdraw everything keeps the record at zero", stock: 10, amount: 10, wantQuantity: 0},
		{name: "zero amount", stock: 10, amount: 0, wantErr: e.ErrAmountTooSmall},
		{name: "negative amount", stock: 10, amount: -5, wantErr: e.ErrAmountTooSmall},
		{name: "amount exceeds stock", stock: 10, amount: 11, wantErr: e.ErrAmountExceedsStock},
		{name: "any withdrawal from empty stock fails", stock: 0, amount: 1, wantErr: e.ErrAmountExceedsStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			productRepo := newMockProductRepo(&domain.Product{ID: 1, Name: "Cola", Quantity: tt.stock, Price: 5000})
			outboxRepo := &mockOutboxRepo{}
			cache := newMockCacheRepo()
			uc := newTestUC(productRepo, newMockCategoryRepo(), outboxRepo, cache, &mockReportsInfra{})

			event, err := uc.WithdrawStock(context.Background(), NewWithdrawStockReq(1, tt.amount))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, productRepo.updates)
				assert.Empty(t, outboxRepo.created)
				assert.Zero(t, cache.deleteCalls)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantQuantity, productRepo.updates[1])
			// запись остаётся даже при нулевом остатке
			assert.Empty(t, productRepo.deleted)

			require.Len(t, outboxRepo.created, 1)
			assert.Equal(t, StockAdjusted, event.EventType)
			payload := decodePayload(t, event)
			assert.Equal(t, float64(tt.amount), payload["amount"])
			assert.Equal(t, float64(tt.wantQuantity), payload["quantity"])

			assert.Equal(t, 1, cache.deleteCalls)
		})
	}
}

func TestWithdrawStock_SequentialWithdrawalsCompose(t *testing.T) {
	productRepo := newMockProductRepo(&domain.Product{ID: 1, Name: "Cola", Quantity: 10, Price: 5000})
	uc := newTestUC(productRepo, newMockCategoryRepo(), &mockOutboxRepo{}, newMockCacheRepo(), &mockReportsInfra{})

	_, err := uc.WithdrawStock(context.Background(), NewWithdrawStockReq(1, 4))
	require.NoError(t, err)
	_, err = uc.WithdrawStock(context.Background(), NewWithdrawStockReq(1, 5))
	require.NoError(t, err)

	assert.Equal(t, int64(1), productRepo.products[1].Quantity)

	// остаток пересчитан, третий раз списать 2 уже нельзя
	_, err = uc.WithdrawStock(context.Background(), NewWithdrawStockReq(1, 2))
	require.ErrorIs(t, err, e.ErrAmountExceedsStock)
}

func TestWithdrawStock_ProductNotFound(t *testing.T) {
	uc := newTestUC(newMockProductRepo(), newMockCategoryRepo(), &mockOutboxRepo{}, newMockCacheRepo(), &mockReportsInfra{})

	_, err := uc.WithdrawStock(context.Background(), NewWithdrawStockReq(99, 1))
	require.ErrorIs(t, err, e.ErrProductNotFound)
}

func TestDeleteProduct(t *testing.T) {
	productRepo := newMockProductRepo(&domain.Product{ID: 1, Name: "Cola", Quantity: 10, Price: 5000})
	outboxRepo := &mockOutboxRepo{}
	cache := newMockCacheRepo()
	uc := newTestUC(productRepo, newMockCategoryRepo(), outboxRepo, cache, &mockReportsInfra{})

	event, err := uc.DeleteProduct(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, []int64{1}, productRepo.deleted)
	assert.NotContains(t, productRepo.products, int64(1))
	assert.Equal(t, ProductDeleted, event.EventType)
	assert.Equal(t, 1, cache.deleteCalls)

	// повторное удаление того же товара
	_, err = uc.DeleteProduct(context.Background(), 1)
	require.ErrorIs(t, err, e.ErrProductNotFound)
}

func TestExportReport_AlwaysBuildsFreshSnapshot(t *testing.T) {
	productRepo := newMockProductRepo()
	productRepo.rows = []InventoryRow{
		{ID: 1, Name: "Cola", Quantity: 10, Price: 5000, CategoryName: "Drinks"},
	}
	cache := newMockCacheRepo()
	cache.view = NewInventoryView(nil, InventorySummary{}) // устаревший кэш не должен попасть в отчёт
	reports := &mockReportsInfra{res: NewExportSnapshotRes("reports/inventory-test.csv")}

	uc := newTestUC(productRepo, newMockCategoryRepo(), &mockOutboxRepo{}, cache, reports)

	res, err := uc.ExportReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "reports/inventory-test.csv", res.ObjectKey)

	require.NotNil(t, reports.lastView)
	assert.Equal(t, productRepo.rows, reports.lastView.Rows)
	assert.Equal(t, int64(10), reports.lastView.Summary.TotalUnits)
}

func TestAddWithdrawScenario(t *testing.T) {
	productRepo := newMockProductRepo()
	categoryRepo := newMockCategoryRepo()
	uc := newTestUC(productRepo, categoryRepo, &mockOutboxRepo{}, newMockCacheRepo(), &mockReportsInfra{})

	drinks, err := uc.AddCategory(context.Background(), NewAddCategoryReq("Drinks"))
	require.NoError(t, err)

	_, err = uc.AddProduct(context.Background(), NewAddProductReq("Cola", 10, 5999, drinks.ID))
	require.NoError(t, err)
	require.Len(t, productRepo.inserted, 1)

	cola := productRepo.inserted[0]
	productRepo.products[cola.ID] = cola

	_, err = uc.WithdrawStock(context.Background(), NewWithdrawStockReq(cola.ID, 3))
	require.NoError(t, err)
	assert.Equal(t, int64(7), cola.Quantity)

	rows := []InventoryRow{
		{ID: cola.ID, Name: cola.Name, Quantity: cola.Quantity, Price: cola.Price, CategoryName: drinks.Name},
	}
	summary := ComputeSummary(rows)
	assert.Equal(t, int64(7), summary.TotalUnits)
	assert.Equal(t, int64(7*5999), summary.TotalValue)
	assert.Equal(t, 1, summary.CategoryCount)
	assert.Equal(t, "Cola", summary.MostExpensive)
}

func TestListCategories(t *testing.T) {
	categoryRepo := newMockCategoryRepo()
	categoryRepo.list = []CategoryInfo{{ID: 1, Name: "Drinks"}, {ID: 2, Name: "Snacks"}}
	uc := newTestUC(newMockProductRepo(), categoryRepo, &mockOutboxRepo{}, newMockCacheRepo(), &mockReportsInfra{})

	categories, err := uc.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, categoryRepo.list, categories)
}
