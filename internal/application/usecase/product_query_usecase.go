package usecase

import (
	"github.com/mybodega/productos-api/internal/application/dto"
	"github.com/mybodega/productos-api/internal/domain"
	"github.com/mybodega/productos-api/internal/domain/repository"
)

// DefaultLowStockLimit umbral por defecto de stock bajo.
const DefaultLowStockLimit = 2

// ProductQueryUseCase consultas de solo lectura sobre productos. Las
// mutaciones viven en el motor de inventario (application/inventory).
type ProductQueryUseCase struct {
	repo repository.ProductRepository
}

// NewProductQueryUseCase construye el caso de uso.
func NewProductQueryUseCase(repo repository.ProductRepository) *ProductQueryUseCase {
	return &ProductQueryUseCase{repo: repo}
}

// List devuelve todos los productos.
func (uc *ProductQueryUseCase) List() ([]dto.ProductResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	return dto.NewProductListResponse(list), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductQueryUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return dto.NewProductResponse(product), nil
}

// SearchByName busca productos cuyo nombre contenga el texto (case-insensitive).
func (uc *ProductQueryUseCase) SearchByName(name string) ([]dto.ProductResponse, error) {
	list, err := uc.repo.SearchByName(name)
	if err != nil {
		return nil, err
	}
	return dto.NewProductListResponse(list), nil
}

// ListByCategory filtra por categoría exacta.
func (uc *ProductQueryUseCase) ListByCategory(category string) ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListByCategory(category)
	if err != nil {
		return nil, err
	}
	return dto.NewProductListResponse(list), nil
}

// ListLowStock productos con cantidad <= limit. Con limit <= 0 se usa el
// umbral por defecto.
func (uc *ProductQueryUseCase) ListLowStock(limit int) ([]dto.ProductResponse, error) {
	if limit <= 0 {
		limit = DefaultLowStockLimit
	}
	list, err := uc.repo.ListByQuantityLTE(limit)
	if err != nil {
		return nil, err
	}
	return dto.NewProductListResponse(list), nil
}

// ListOutOfStock productos agotados (cantidad exactamente 0).
func (uc *ProductQueryUseCase) ListOutOfStock() ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListOutOfStock()
	if err != nil {
		return nil, err
	}
	return dto.NewProductListResponse(list), nil
}

// ListCategories devuelve las categorías únicas ordenadas.
func (uc *ProductQueryUseCase) ListCategories() ([]string, error) {
	return uc.repo.ListCategories()
}
