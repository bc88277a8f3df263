package main

import (
	"github.com/DRSN-tech/inventory-backend/internal/app"
)

//	@title			Inventory Backend API
//	@version		1.0
//	@description	Сервис управления складом: товары, категории, списание и отчёты

//	@host		localhost:8080
//	@BasePath	/api/v1

func main() {
	app.Run()
}
