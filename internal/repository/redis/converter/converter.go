//go:generate goverter gen github.com/DRSN-tech/inventory-backend/internal/repository/redis/converter

package converter

import (
	"github.com/DRSN-tech/inventory-backend/internal/usecase"
)

// InventoryViewConverter преобразует представление склада между usecase и Redis-моделью.
// goverter:converter
type InventoryViewConverter interface {
	ToRedisModel(view *usecase.InventoryView) *InventoryViewRedisModel
	ToUseCase(model *InventoryViewRedisModel) *usecase.InventoryView
}
