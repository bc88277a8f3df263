package http

import (
	"encoding/json"
	"net/http"

	"github.com/DRSN-tech/inventory-backend/internal/usecase"
	"github.com/DRSN-tech/inventory-backend/pkg/e"
	"github.com/DRSN-tech/inventory-backend/pkg/logger"
)

type InventoryHandler struct {
	inventoryUsecase usecase.InventoryUC
	logger           logger.Logger
}

func NewInventoryHandler(inventoryUsecase usecase.InventoryUC, logger logger.Logger) *InventoryHandler {
	return &InventoryHandler{inventoryUsecase: inventoryUsecase, logger: logger}
}

type AddCategoryRequest struct {
	Name string `json:"name"`
}

type AddProductRequest struct {
	Name       string `json:"name"`
	Quantity   int64  `json:"quantity"`
	Price      string `json:"price"`
	CategoryID int64  `json:"category_id"`
}

type WithdrawStockRequest struct {
	Amount int64 `json:"amount"`
}

type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type InventoryRowResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
	Price    string `json:"price"`
	Category string `json:"category"`
}

type InventorySummaryResponse struct {
	TotalUnits    int64  `json:"total_units"`
	TotalValue    string `json:"total_value"`
	CategoryCount int    `json:"category_count"`
	MostExpensive string `json:"most_expensive"`
}

type InventoryViewResponse struct {
	Rows    []InventoryRowResponse   `json:"rows"`
	Summary InventorySummaryResponse `json:"summary"`
}

// getInventory
//
//	@Summary		Текущее состояние склада
//	@Description	Возвращает все товары с категориями и агрегированные метрики
//	@Tags			inventory
//	@Produce		json
//	@Success		200	{object}	InventoryViewResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/inventory [get]
func (h *InventoryHandler) getInventory(w http.ResponseWriter, r *http.Request) {
	view, err := h.inventoryUsecase.GetInventory(r.Context())
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toInventoryViewResponse(view))
}

// listCategories
//
//	@Summary		Список категорий
//	@Tags			categories
//	@Produce		json
//	@Success		200	{array}		CategoryResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/categories [get]
func (h *InventoryHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.inventoryUsecase.ListCategories(r.Context())
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	resp := make([]CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		resp = append(resp, CategoryResponse{ID: cat.ID, Name: cat.Name})
	}

	WriteSuccess(w, http.StatusOK, resp)
}

// addCategory
//
//	@Summary		Создание категории
//	@Tags			categories
//	@Accept			json
//	@Produce		json
//	@Param			request	body		AddCategoryRequest	true	"Название категории"
//	@Success		201		{object}	CategoryResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/categories [post]
func (h *InventoryHandler) addCategory(w http.ResponseWriter, r *http.Request) {
	var req AddCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	category, err := h.inventoryUsecase.AddCategory(r.Context(), usecase.NewAddCategoryReq(req.Name))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, CategoryResponse{ID: category.ID, Name: category.Name})
}

// addProduct
//
//	@Summary		Добавление товара
//	@Description	Создает товар с привязкой к существующей категории
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			request	body		AddProductRequest		true	"Данные товара, цена строкой с точностью до копеек"
//	@Success		201		{object}	map[string]interface{}	"EventID созданного события"
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse	"Категория не найдена"
//	@Router			/products [post]
func (h *InventoryHandler) addProduct(w http.ResponseWriter, r *http.Request) {
	var req AddProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	priceCents, err := parsePriceToCents(req.Price)
	if err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	event, err := h.inventoryUsecase.AddProduct(r.Context(), usecase.NewAddProductReq(req.Name, req.Quantity, priceCents, req.CategoryID))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, map[string]interface{}{
		"EventID": event.EventID,
	})
}

// withdrawStock
//
//	@Summary		Списание товара со склада
//	@Description	Уменьшает количество товара, не опуская его ниже нуля
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"ID товара"
//	@Param			request	body		WithdrawStockRequest	true	"Количество к списанию"
//	@Success		200		{object}	map[string]interface{}	"EventID события списания"
//	@Failure		400		{object}	ErrorResponse	"Некорректное количество"
//	@Failure		404		{object}	ErrorResponse	"Товар не найден"
//	@Router			/products/{id}/withdraw [post]
func (h *InventoryHandler) withdrawStock(w http.ResponseWriter, r *http.Request) {
	productID, err := parseIDParam(r, "id")
	if err != nil {
		h.logger.Warnf("%d %s", http.StatusBadRequest, e.ErrInvalidID.Error())
		WriteError(w, err)
		return
	}

	var req WithdrawStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	event, err := h.inventoryUsecase.WithdrawStock(r.Context(), usecase.NewWithdrawStockReq(productID, req.Amount))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"EventID": event.EventID,
	})
}

// deleteProduct
//
//	@Summary		Удаление товара
//	@Description	Безвозвратно удаляет товар из каталога
//	@Tags			products
//	@Produce		json
//	@Param			id	path		int						true	"ID товара"
//	@Success		200	{object}	map[string]interface{}	"EventID события удаления"
//	@Failure		404	{object}	ErrorResponse	"Товар не найден"
//	@Router			/products/{id} [delete]
func (h *InventoryHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := parseIDParam(r, "id")
	if err != nil {
		h.logger.Warnf("%d %s", http.StatusBadRequest, e.ErrInvalidID.Error())
		WriteError(w, err)
		return
	}

	event, err := h.inventoryUsecase.DeleteProduct(r.Context(), productID)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"EventID": event.EventID,
	})
}

// exportReport
//
//	@Summary		Экспорт CSV-отчёта
//	@Description	Выгружает текущий снимок склада в объектное хранилище
//	@Tags			inventory
//	@Produce		json
//	@Success		201	{object}	map[string]interface{}	"Ключ объекта в хранилище"
//	@Failure		500	{object}	ErrorResponse
//	@Router			/inventory/reports [post]
func (h *InventoryHandler) exportReport(w http.ResponseWriter, r *http.Request) {
	res, err := h.inventoryUsecase.ExportReport(r.Context())
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, map[string]interface{}{
		"ObjectKey": res.ObjectKey,
	})
}

func toInventoryViewResponse(view *usecase.InventoryView) *InventoryViewResponse {
	rows := make([]InventoryRowResponse, 0, len(view.Rows))
	for _, row := range view.Rows {
		rows = append(rows, InventoryRowResponse{
			ID:       row.ID,
			Name:     row.Name,
			Quantity: row.Quantity,
			Price:    centsToPrice(row.Price),
			Category: row.CategoryName,
		})
	}

	return &InventoryViewResponse{
		Rows: rows,
		Summary: InventorySummaryResponse{
			TotalUnits:    view.Summary.TotalUnits,
			TotalValue:    centsToPrice(view.Summary.TotalValue),
			CategoryCount: view.Summary.CategoryCount,
			MostExpensive: view.Summary.MostExpensive,
		},
	}
}
