package repository

import "github.com/mybodega/productos-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// Las lecturas devuelven (nil, nil) cuando el producto no existe; el caller
// decide si eso es domain.ErrNotFound.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE). Solo
	// tiene sentido dentro de una transacción; serializa las operaciones
	// concurrentes sobre el mismo producto.
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error
	ExistsByName(name string) (bool, error) // case-insensitive
	List() ([]*entity.Product, error)
	ListByCategory(category string) ([]*entity.Product, error)
	SearchByName(name string) ([]*entity.Product, error)
	ListByQuantityLTE(limit int) ([]*entity.Product, error)
	ListOutOfStock() ([]*entity.Product, error)
	ListCategories() ([]string, error)
}
