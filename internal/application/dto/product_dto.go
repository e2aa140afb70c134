package dto

import (
	"time"

	"github.com/mybodega/productos-api/internal/domain/entity"
)

// Los nombres JSON conservan el contrato del servicio original (en español)
// para no romper los clientes existentes.

// CreateProductRequest cuerpo de POST /api/productos.
type CreateProductRequest struct {
	Name        string `json:"nombre" validate:"required,max=100"`
	Category    string `json:"categoria" validate:"required,max=50"`
	Quantity    int    `json:"cantidad" validate:"gte=0"`
	Description string `json:"descripcion" validate:"max=500"`
	Location    string `json:"ubicacion" validate:"max=200"`
	ImageURL    string `json:"imagenUrl" validate:"max=500"`
}

// UpdateProductRequest cuerpo de PUT /api/productos/:id. Campos nulos no se tocan.
type UpdateProductRequest struct {
	Name        *string `json:"nombre" validate:"omitempty,min=1,max=100"`
	Category    *string `json:"categoria" validate:"omitempty,min=1,max=50"`
	Quantity    *int    `json:"cantidad" validate:"omitempty,gte=0"`
	Description *string `json:"descripcion" validate:"omitempty,max=500"`
	Location    *string `json:"ubicacion" validate:"omitempty,max=200"`
	ImageURL    *string `json:"imagenUrl" validate:"omitempty,max=500"`
}

// StockOperationRequest cuerpo de consumir/reabastecer; el producto va en
// la ruta.
type StockOperationRequest struct {
	Quantity int `json:"cantidad" validate:"required,gte=1"`
}

// ProductResponse representación HTTP de un producto.
type ProductResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"nombre"`
	Category    string    `json:"categoria"`
	Quantity    int       `json:"cantidad"`
	Description string    `json:"descripcion,omitempty"`
	Location    string    `json:"ubicacion,omitempty"`
	ImageURL    string    `json:"imagenUrl,omitempty"`
	CreatedAt   time.Time `json:"fechaCreacion"`
	UpdatedAt   time.Time `json:"fechaActualizacion"`
}

// NewProductResponse convierte la entidad a su DTO de respuesta.
func NewProductResponse(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Quantity:    p.Quantity,
		Description: p.Description,
		Location:    p.Location,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// NewProductListResponse convierte un slice de entidades.
func NewProductListResponse(list []*entity.Product) []ProductResponse {
	items := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *NewProductResponse(p))
	}
	return items
}
