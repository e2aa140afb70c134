package memory

import (
	"context"
	"sync"

	"github.com/mybodega/productos-api/internal/application/inventory"
	"github.com/mybodega/productos-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner implementación en memoria de inventory.TxRunner. Serializa
// todas las operaciones con un mutex global, que para el volumen de los
// tests equivale al bloqueo de fila del adaptador PostgreSQL. No
// implementa rollback: los casos de uso validan antes de escribir, así
// que un fallo ocurre antes de la primera escritura.
type TxRunner struct {
	mu           sync.Mutex
	ProductRepo  *ProductRepo
	MovementRepo *MovementRepo
}

// NewTxRunner construye el runner sobre los repositorios dados.
func NewTxRunner(productRepo *ProductRepo, movRepo *MovementRepo) *TxRunner {
	return &TxRunner{ProductRepo: productRepo, MovementRepo: movRepo}
}

// Run ejecuta fn bajo el mutex global.
func (r *TxRunner) Run(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.MovementRepository,
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.ProductRepo, r.MovementRepo)
}
