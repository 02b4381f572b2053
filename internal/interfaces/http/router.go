package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/sweetshop-api/internal/application/auth"
	"github.com/jhoicas/sweetshop-api/internal/application/inventory"
	"github.com/jhoicas/sweetshop-api/internal/application/usecase"
	"github.com/jhoicas/sweetshop-api/internal/domain/entity"
	"github.com/jhoicas/sweetshop-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserUC      *usecase.UserUseCase
	SweetUC     *usecase.SweetUseCase
	InventoryUC *inventory.InventoryUseCase
	ReportUC    *inventory.ReportUseCase
	JWTSecret   string
	// CatalogWritesAdminOnly exige ADMIN también para crear y editar dulces.
	CatalogWritesAdminOnly bool
	Logger                 *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api")

	// Auth (público salvo /me)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Sweets (protegido, requiere Bearer Token)
	sweets := api.Group("/sweets", AuthMiddleware(deps.JWTSecret))
	sweetHandler := NewSweetHandler(deps.SweetUC)
	inventoryHandler := NewInventoryHandler(deps.InventoryUC, deps.ReportUC, log)
	adminOnly := RequireRole(entity.RoleAdmin)

	writeGuards := []fiber.Handler{}
	if deps.CatalogWritesAdminOnly {
		writeGuards = append(writeGuards, adminOnly)
	}

	sweets.Get("/", sweetHandler.List)
	sweets.Post("/", append(writeGuards, sweetHandler.Create)...)
	// Rutas fijas antes de /:id
	sweets.Get("/search", sweetHandler.Search)
	sweets.Get("/report.pdf", adminOnly, inventoryHandler.StockReport)
	sweets.Get("/:id", sweetHandler.GetByID)
	sweets.Put("/:id", append(writeGuards, sweetHandler.Update)...)
	sweets.Delete("/:id", adminOnly, sweetHandler.Delete)

	// Inventario
	sweets.Post("/:id/purchase", inventoryHandler.Purchase)
	sweets.Post("/:id/restock", adminOnly, inventoryHandler.Restock)
}
