package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mybodega/productos-api/internal/application/auth"
	"github.com/mybodega/productos-api/internal/application/inventory"
	"github.com/mybodega/productos-api/internal/application/usecase"
	"github.com/mybodega/productos-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Engine     *inventory.UseCase
	ProductUC  *usecase.ProductQueryUseCase
	MovementUC *usecase.MovementUseCase
	AuthUC     *auth.UseCase
	JWTSecret  string
}

// Router registra las rutas de la API. Las rutas con segmento fijo
// (/search, /recientes, etc.) van antes que las de parámetro /:id para
// que fiber no las capture como ID.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Productos (protegido)
	products := protected.Group("/productos")
	productHandler := NewProductHandler(deps.Engine, deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/search", productHandler.Search)
	products.Get("/stock-bajo", productHandler.LowStock)
	products.Get("/agotados", productHandler.OutOfStock)
	products.Get("/categorias", productHandler.Categories)
	products.Get("/categoria/:categoria", productHandler.ByCategory)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Post("/:id/consumir", productHandler.Consume)
	products.Post("/:id/reabastecer", productHandler.Restock)

	// Movimientos (protegido)
	movements := protected.Group("/movimientos")
	movementHandler := NewMovementHandler(deps.MovementUC)
	movements.Get("/", movementHandler.List)
	movements.Post("/", movementHandler.Create)
	movements.Get("/recientes", movementHandler.Recent)
	movements.Get("/hoy", movementHandler.Today)
	movements.Get("/semana", movementHandler.Week)
	movements.Get("/rango", movementHandler.Range)
	movements.Get("/estadisticas", movementHandler.Stats)
	movements.Get("/tipo/:tipo", movementHandler.ByType)
	movements.Get("/producto/:productoId", movementHandler.ByProduct)
	movements.Delete("/limpiar", RequireRole(entity.RoleAdmin), movementHandler.ClearAll)
	movements.Get("/:id", movementHandler.GetByID)
}
