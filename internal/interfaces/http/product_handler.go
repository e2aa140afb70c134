package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mybodega/productos-api/internal/application/dto"
	"github.com/mybodega/productos-api/internal/application/inventory"
	"github.com/mybodega/productos-api/internal/application/usecase"
)

// ProductHandler maneja las peticiones HTTP de productos. Las mutaciones
// pasan por el motor de inventario; las consultas por el caso de uso de
// solo lectura.
type ProductHandler struct {
	engine *inventory.UseCase
	query  *usecase.ProductQueryUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(engine *inventory.UseCase, query *usecase.ProductQueryUseCase) *ProductHandler {
	return &ProductHandler{engine: engine, query: query}
}

// Create POST /api/productos
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if !parseBody(c, &in) {
		return nil
	}
	product, err := h.engine.CreateProduct(c.Context(), inventory.CreateProductInput{
		Name:        in.Name,
		Category:    in.Category,
		Quantity:    in.Quantity,
		Description: in.Description,
		Location:    in.Location,
		ImageURL:    in.ImageURL,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewProductResponse(product))
}

// Update PUT /api/productos/:id
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.UpdateProductRequest
	if !parseBody(c, &in) {
		return nil
	}
	product, err := h.engine.UpdateProduct(c.Context(), id, inventory.UpdateProductInput{
		Name:        in.Name,
		Category:    in.Category,
		Quantity:    in.Quantity,
		Description: in.Description,
		Location:    in.Location,
		ImageURL:    in.ImageURL,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.NewProductResponse(product))
}

// Delete DELETE /api/productos/:id
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.engine.DeleteProduct(c.Context(), c.Params("id")); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Consume POST /api/productos/:id/consumir
func (h *ProductHandler) Consume(c *fiber.Ctx) error {
	var in dto.StockOperationRequest
	if !parseBody(c, &in) {
		return nil
	}
	product, err := h.engine.Consume(c.Context(), c.Params("id"), in.Quantity)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.NewProductResponse(product))
}

// Restock POST /api/productos/:id/reabastecer
func (h *ProductHandler) Restock(c *fiber.Ctx) error {
	var in dto.StockOperationRequest
	if !parseBody(c, &in) {
		return nil
	}
	product, err := h.engine.Restock(c.Context(), c.Params("id"), in.Quantity)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.NewProductResponse(product))
}

// List GET /api/productos
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.query.List()
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// GetByID GET /api/productos/:id
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.query.GetByID(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Search GET /api/productos/search?nombre=...
func (h *ProductHandler) Search(c *fiber.Ctx) error {
	nombre := c.Query("nombre")
	if nombre == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nombre es requerido"})
	}
	out, err := h.query.SearchByName(nombre)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// ByCategory GET /api/productos/categoria/:categoria
func (h *ProductHandler) ByCategory(c *fiber.Ctx) error {
	out, err := h.query.ListByCategory(c.Params("categoria"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// LowStock GET /api/productos/stock-bajo?limite=N
func (h *ProductHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.query.ListLowStock(c.QueryInt("limite", usecase.DefaultLowStockLimit))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// OutOfStock GET /api/productos/agotados
func (h *ProductHandler) OutOfStock(c *fiber.Ctx) error {
	out, err := h.query.ListOutOfStock()
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Categories GET /api/productos/categorias
func (h *ProductHandler) Categories(c *fiber.Ctx) error {
	out, err := h.query.ListCategories()
	if err != nil {
		return domainError(c, err)
	}
	if out == nil {
		out = []string{}
	}
	return c.JSON(out)
}
