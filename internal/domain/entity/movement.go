package entity

import "time"

// MovementType tipo de movimiento del historial (vocabulario cerrado).
// Los valores en BD son los mismos que escribía el servicio original,
// para no romper el historial ni los filtros del frontend.
type MovementType string

const (
	MovementTypeCreate  MovementType = "Agregar"
	MovementTypeEdit    MovementType = "Editar"
	MovementTypeDelete  MovementType = "Eliminar"
	MovementTypeConsume MovementType = "Consumo"
	MovementTypeRestock MovementType = "Reabastecimiento"
)

// Valid indica si el tipo pertenece al vocabulario conocido.
func (t MovementType) Valid() bool {
	switch t {
	case MovementTypeCreate, MovementTypeEdit, MovementTypeDelete,
		MovementTypeConsume, MovementTypeRestock:
		return true
	}
	return false
}

// MovementDetailsMaxLen límite del texto libre de detalles.
const MovementDetailsMaxLen = 500

// Movement registro inmutable del historial de inventario: una vez escrito
// nunca se modifica ni se reordena. ProductName es un snapshot denormalizado
// que sobrevive al borrado del producto; ProductID puede quedar apuntando a
// un producto que ya no existe.
type Movement struct {
	ID             int64 // secuencial, desempata movimientos con la misma fecha
	Type           MovementType
	ProductName    string
	ProductID      *string
	QuantityBefore *int
	QuantityAfter  *int
	Date           time.Time // asignada por el servidor al insertar
	Details        *string
}
