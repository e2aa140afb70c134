package dto

import (
	"time"

	"github.com/mybodega/productos-api/internal/domain/entity"
)

// CreateMovementRequest cuerpo de POST /api/movimientos (registro manual).
// El tipo debe pertenecer al vocabulario conocido; el caso de uso lo verifica.
type CreateMovementRequest struct {
	Type           string  `json:"tipo" validate:"required,max=50"`
	ProductName    string  `json:"producto" validate:"required,max=100"`
	ProductID      *string `json:"productoId"`
	QuantityBefore *int    `json:"cantidadAnterior"`
	QuantityAfter  *int    `json:"cantidadNueva"`
	Details        *string `json:"detalles" validate:"omitempty,max=500"`
}

// MovementResponse representación HTTP de un movimiento.
type MovementResponse struct {
	ID             int64     `json:"id"`
	Type           string    `json:"tipo"`
	ProductName    string    `json:"producto"`
	ProductID      *string   `json:"productoId"`
	QuantityBefore *int      `json:"cantidadAnterior"`
	QuantityAfter  *int      `json:"cantidadNueva"`
	Date           time.Time `json:"fecha"`
	Details        *string   `json:"detalles"`
}

// NewMovementResponse convierte la entidad a su DTO de respuesta.
func NewMovementResponse(m *entity.Movement) *MovementResponse {
	if m == nil {
		return nil
	}
	return &MovementResponse{
		ID:             m.ID,
		Type:           string(m.Type),
		ProductName:    m.ProductName,
		ProductID:      m.ProductID,
		QuantityBefore: m.QuantityBefore,
		QuantityAfter:  m.QuantityAfter,
		Date:           m.Date,
		Details:        m.Details,
	}
}

// NewMovementListResponse convierte un slice de entidades.
func NewMovementListResponse(list []*entity.Movement) []MovementResponse {
	items := make([]MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *NewMovementResponse(m))
	}
	return items
}

// MovementStatsResponse estadísticas agregadas del historial.
type MovementStatsResponse struct {
	Total     int64            `json:"totalMovimientos"`
	ByType    map[string]int64 `json:"movimientosPorTipo"`
	Today     int64            `json:"movimientosHoy"`
	ThisWeek  int64            `json:"movimientosEstaSemana"`
	ThisMonth int64            `json:"movimientosEsteMes"`
}
