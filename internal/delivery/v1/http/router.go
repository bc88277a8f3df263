package http

import (
	_ "github.com/DRSN-tech/inventory-backend/docs" // Импорт сгенерированных файлов
	"github.com/DRSN-tech/inventory-backend/internal/usecase"
	"github.com/DRSN-tech/inventory-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(invUC usecase.InventoryUC) {
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"), // ссылка на JSON
	))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		invHandler := NewInventoryHandler(invUC, r.logger)
		registerInventoryRoutes(v1, invHandler)
	})
}

func registerInventoryRoutes(router chi.Router, invHandler *InventoryHandler) {
	router.Route("/inventory", func(inv chi.Router) {
		inv.Get("/", invHandler.getInventory)
		inv.Post("/reports", invHandler.exportReport)
	})

	router.Route("/categories", func(cat chi.Router) {
		cat.Get("/", invHandler.listCategories)
		cat.Post("/", invHandler.addCategory)
	})

	router.Route("/products", func(pr chi.Router) {
		pr.Post("/", invHandler.addProduct)
		pr.Route("/{id}", func(item chi.Router) {
			item.Post("/withdraw", invHandler.withdrawStock)
			item.Delete("/", invHandler.deleteProduct)
		})
	})
}
