package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mybodega/productos-api/internal/application/dto"
	"github.com/mybodega/productos-api/internal/application/usecase"
)

// Formatos aceptados para los parámetros de fecha de /rango.
var rangeLayouts = []string{"2006-01-02T15:04:05", time.RFC3339}

// MovementHandler maneja las peticiones HTTP del historial de movimientos.
type MovementHandler struct {
	uc *usecase.MovementUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *usecase.MovementUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// List GET /api/movimientos
func (h *MovementHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// GetByID GET /api/movimientos/:id
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Create POST /api/movimientos (registro manual)
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ByType GET /api/movimientos/tipo/:tipo
func (h *MovementHandler) ByType(c *fiber.Ctx) error {
	out, err := h.uc.ListByType(c.Params("tipo"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// ByProduct GET /api/movimientos/producto/:productoId
func (h *MovementHandler) ByProduct(c *fiber.Ctx) error {
	out, err := h.uc.ListByProductID(c.Params("productoId"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Recent GET /api/movimientos/recientes
func (h *MovementHandler) Recent(c *fiber.Ctx) error {
	out, err := h.uc.ListRecent()
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Today GET /api/movimientos/hoy
func (h *MovementHandler) Today(c *fiber.Ctx) error {
	out, err := h.uc.ListToday()
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Week GET /api/movimientos/semana
func (h *MovementHandler) Week(c *fiber.Ctx) error {
	out, err := h.uc.ListWeek()
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Range GET /api/movimientos/rango?inicio=...&fin=...
func (h *MovementHandler) Range(c *fiber.Ctx) error {
	from, okFrom := parseDateTime(c.Query("inicio"))
	to, okTo := parseDateTime(c.Query("fin"))
	if !okFrom || !okTo {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "inicio y fin deben ser fechas ISO"})
	}
	out, err := h.uc.ListBetween(from, to)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Stats GET /api/movimientos/estadisticas
func (h *MovementHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats()
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// ClearAll DELETE /api/movimientos/limpiar (solo ADMIN)
func (h *MovementHandler) ClearAll(c *fiber.Ctx) error {
	if err := h.uc.ClearAll(); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func parseDateTime(s string) (time.Time, bool) {
	for _, layout := range rangeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
