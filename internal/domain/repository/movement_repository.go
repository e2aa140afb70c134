package repository

import (
	"time"

	"github.com/mybodega/productos-api/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia del historial de
// movimientos. Es append-only: no existe Update. Los listados ordenan por
// fecha descendente con el ID secuencial como desempate, de modo que el
// orden de inserción se conserva aun con fechas iguales.
type MovementRepository interface {
	// Create inserta el movimiento y asigna su ID secuencial.
	Create(movement *entity.Movement) error
	GetByID(id int64) (*entity.Movement, error)
	List() ([]*entity.Movement, error)
	ListByType(movType entity.MovementType) ([]*entity.Movement, error)
	ListByProductID(productID string) ([]*entity.Movement, error)
	ListTopN(n int) ([]*entity.Movement, error)
	ListBetween(from, to time.Time) ([]*entity.Movement, error)
	Count() (int64, error)
	CountByType() (map[entity.MovementType]int64, error)
	CountSince(since time.Time) (int64, error)
	DeleteAll() error
}
