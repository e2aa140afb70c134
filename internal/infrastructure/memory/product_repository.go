// Package memory contiene adaptadores de persistencia en memoria.
// Implementan los mismos puertos que los adaptadores PostgreSQL y se usan
// en los tests de los casos de uso y de la capa HTTP.
package memory

import (
	"sort"
	"strings"
	"sync"

	"github.com/mybodega/productos-api/internal/domain"
	"github.com/mybodega/productos-api/internal/domain/entity"
	"github.com/mybodega/productos-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository. Devuelve
// copias de las entidades para que el caller no mute el estado interno.
type ProductRepo struct {
	mu       sync.RWMutex
	products map[string]*entity.Product
}

// NewProductRepository construye el repositorio vacío.
func NewProductRepository() *ProductRepo {
	return &ProductRepo{products: make(map[string]*entity.Product)}
}

// Create almacena un producto nuevo.
func (r *ProductRepo) Create(product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if strings.EqualFold(p.Name, product.Name) {
			return domain.ErrDuplicate
		}
	}
	cp := *product
	r.products[product.ID] = &cp
	return nil
}

// GetByID devuelve una copia del producto o (nil, nil) si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

// GetForUpdate equivale a GetByID: la serialización la aporta el mutex
// global del TxRunner en memoria.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

// Update reemplaza el producto almacenado.
func (r *ProductRepo) Update(product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[product.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, p := range r.products {
		if id != product.ID && strings.EqualFold(p.Name, product.Name) {
			return domain.ErrDuplicate
		}
	}
	cp := *product
	r.products[product.ID] = &cp
	return nil
}

// Delete elimina el producto.
func (r *ProductRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

// ExistsByName compara nombres case-insensitive.
func (r *ProductRepo) ExistsByName(name string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.products {
		if strings.EqualFold(p.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

// List devuelve todos los productos, creación más reciente primero.
func (r *ProductRepo) List() ([]*entity.Product, error) {
	return r.filter(func(*entity.Product) bool { return true }), nil
}

// ListByCategory filtra por categoría exacta.
func (r *ProductRepo) ListByCategory(category string) ([]*entity.Product, error) {
	return r.filter(func(p *entity.Product) bool { return p.Category == category }), nil
}

// SearchByName busca por nombre parcial, case-insensitive.
func (r *ProductRepo) SearchByName(name string) ([]*entity.Product, error) {
	needle := strings.ToLower(name)
	return r.filter(func(p *entity.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), needle)
	}), nil
}

// ListByQuantityLTE productos con cantidad <= limit.
func (r *ProductRepo) ListByQuantityLTE(limit int) ([]*entity.Product, error) {
	return r.filter(func(p *entity.Product) bool { return p.Quantity <= limit }), nil
}

// ListOutOfStock productos con cantidad 0.
func (r *ProductRepo) ListOutOfStock() ([]*entity.Product, error) {
	return r.filter(func(p *entity.Product) bool { return p.Quantity == 0 }), nil
}

// ListCategories categorías únicas ordenadas.
func (r *ProductRepo) ListCategories() ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]bool)
	var list []string
	for _, p := range r.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			list = append(list, p.Category)
		}
	}
	sort.Strings(list)
	return list, nil
}

func (r *ProductRepo) filter(keep func(*entity.Product) bool) []*entity.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*entity.Product
	for _, p := range r.products {
		if keep(p) {
			cp := *p
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list
}
