package inventory

import (
	"context"

	"github.com/mybodega/productos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Si fn devuelve error se hace Rollback; si
// no, Commit. Garantiza la atomicidad mutación-de-producto + movimiento
// del motor de inventario.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movRepo repository.MovementRepository,
	) error) error
}
