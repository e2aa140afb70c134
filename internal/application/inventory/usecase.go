package inventory

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/mybodega/productos-api/internal/domain"
	"github.com/mybodega/productos-api/internal/domain/entity"
	"github.com/mybodega/productos-api/internal/domain/repository"
)

// UseCase es el motor de inventario: toda operación que crea, modifica o
// elimina un producto pasa por aquí y queda registrada con exactamente un
// movimiento, en la misma transacción. Si cualquiera de los dos pasos
// falla, la transacción completa se revierte: nunca queda una mutación sin
// movimiento ni un movimiento sin mutación.
type UseCase struct {
	txRunner TxRunner
	now      func() time.Time // inyectable en tests
}

// NewUseCase construye el motor de inventario.
func NewUseCase(txRunner TxRunner) *UseCase {
	return &UseCase{txRunner: txRunner, now: time.Now}
}

// CreateProductInput entrada para CreateProduct. Quantity debe ser >= 0.
type CreateProductInput struct {
	Name        string
	Category    string
	Quantity    int
	Description string
	Location    string
	ImageURL    string
}

// UpdateProductInput entrada para UpdateProduct. Solo los campos no nulos
// se aplican; los demás conservan su valor anterior.
type UpdateProductInput struct {
	Name        *string
	Category    *string
	Quantity    *int
	Description *string
	Location    *string
	ImageURL    *string
}

// CreateProduct crea un producto y registra un movimiento "Agregar" con
// cantidadAnterior=0 y cantidadNueva=Quantity. Devuelve domain.ErrDuplicate
// si ya existe un producto con el mismo nombre (case-insensitive).
func (uc *UseCase) CreateProduct(ctx context.Context, in CreateProductInput) (*entity.Product, error) {
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Category:    in.Category,
		Quantity:    in.Quantity,
		Description: in.Description,
		Location:    in.Location,
		ImageURL:    in.ImageURL,
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movRepo repository.MovementRepository) error {
		exists, err := productRepo.ExistsByName(product.Name)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrDuplicate
		}
		// La fecha se toma dentro de la transacción: así el orden de los
		// timestamps coincide con el orden de commit sobre el producto.
		now := uc.now()
		product.CreatedAt = now
		product.UpdatedAt = now
		if err := productRepo.Create(product); err != nil {
			return err
		}
		details := fmt.Sprintf("Producto creado con %d unidades", product.Quantity)
		return movRepo.Create(newMovement(entity.MovementTypeCreate, product, intPtr(0), intPtr(product.Quantity), details, now))
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct aplica una actualización parcial y SIEMPRE registra un
// movimiento "Editar": con cantidadAnterior/cantidadNueva si la cantidad
// cambió, o con ambas nulas si solo cambió metadata.
func (uc *UseCase) UpdateProduct(ctx context.Context, id string, in UpdateProductInput) (*entity.Product, error) {
	var updated *entity.Product

	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movRepo repository.MovementRepository) error {
		product, err := productRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		// Fecha tomada con la fila ya bloqueada (ver CreateProduct).
		now := uc.now()
		prevQty := product.Quantity

		if in.Name != nil {
			product.Name = *in.Name
		}
		if in.Category != nil {
			product.Category = *in.Category
		}
		if in.Quantity != nil {
			product.Quantity = *in.Quantity
		}
		if in.Description != nil {
			product.Description = *in.Description
		}
		if in.Location != nil {
			product.Location = *in.Location
		}
		if in.ImageURL != nil {
			product.ImageURL = *in.ImageURL
		}
		if err := validateProduct(product); err != nil {
			return err
		}
		product.UpdatedAt = now
		if err := productRepo.Update(product); err != nil {
			return err
		}

		var mov *entity.Movement
		if in.Quantity != nil && prevQty != product.Quantity {
			details := fmt.Sprintf("Cantidad actualizada de %d a %d", prevQty, product.Quantity)
			mov = newMovement(entity.MovementTypeEdit, product, intPtr(prevQty), intPtr(product.Quantity), details, now)
		} else {
			mov = newMovement(entity.MovementTypeEdit, product, nil, nil, "Información del producto actualizada", now)
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteProduct registra el movimiento "Eliminar" (cantidadAnterior=stock
// actual, cantidadNueva=0) y borra la fila, todo en la misma transacción:
// el movimiento existe si y solo si el borrado quedó en firme.
func (uc *UseCase) DeleteProduct(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movRepo repository.MovementRepository) error {
		product, err := productRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		mov := newMovement(entity.MovementTypeDelete, product, intPtr(product.Quantity), intPtr(0), "Producto eliminado del inventario", uc.now())
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		return productRepo.Delete(product.ID)
	})
}

// Consume resta quantity unidades del stock. Consumir exactamente el stock
// disponible es válido (deja el producto en cero); pedir más devuelve
// domain.ErrInsufficientStock sin tocar nada.
func (uc *UseCase) Consume(ctx context.Context, productID string, quantity int) (*entity.Product, error) {
	if quantity < 1 {
		return nil, domain.ErrInvalidInput
	}
	var updated *entity.Product

	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movRepo repository.MovementRepository) error {
		product, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if product.Quantity < quantity {
			return domain.ErrInsufficientStock
		}
		now := uc.now()
		prevQty := product.Quantity
		product.Quantity -= quantity
		product.UpdatedAt = now
		if err := productRepo.Update(product); err != nil {
			return err
		}
		details := fmt.Sprintf("Consumo de %d unidad(es)", quantity)
		if err := movRepo.Create(newMovement(entity.MovementTypeConsume, product, intPtr(prevQty), intPtr(product.Quantity), details, now)); err != nil {
			return err
		}
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Restock suma quantity unidades al stock. Sin tope superior.
func (uc *UseCase) Restock(ctx context.Context, productID string, quantity int) (*entity.Product, error) {
	if quantity < 1 {
		return nil, domain.ErrInvalidInput
	}
	var updated *entity.Product

	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movRepo repository.MovementRepository) error {
		product, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		now := uc.now()
		prevQty := product.Quantity
		product.Quantity += quantity
		product.UpdatedAt = now
		if err := productRepo.Update(product); err != nil {
			return err
		}
		details := fmt.Sprintf("Reabastecimiento de %d unidad(es)", quantity)
		if err := movRepo.Create(newMovement(entity.MovementTypeRestock, product, intPtr(prevQty), intPtr(product.Quantity), details, now)); err != nil {
			return err
		}
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// validateProduct re-valida las restricciones del producto como última
// defensa; la capa HTTP ya las valida en los DTOs.
func validateProduct(p *entity.Product) error {
	if p.Name == "" || utf8.RuneCountInString(p.Name) > entity.ProductNameMaxLen {
		return domain.ErrInvalidInput
	}
	if p.Category == "" || utf8.RuneCountInString(p.Category) > entity.ProductCategoryMaxLen {
		return domain.ErrInvalidInput
	}
	if p.Quantity < 0 {
		return domain.ErrInvalidInput
	}
	if utf8.RuneCountInString(p.Description) > entity.ProductDescriptionMaxLen {
		return domain.ErrInvalidInput
	}
	if utf8.RuneCountInString(p.Location) > entity.ProductLocationMaxLen {
		return domain.ErrInvalidInput
	}
	if utf8.RuneCountInString(p.ImageURL) > entity.ProductImageURLMaxLen {
		return domain.ErrInvalidInput
	}
	return nil
}

func newMovement(movType entity.MovementType, product *entity.Product, before, after *int, details string, now time.Time) *entity.Movement {
	productID := product.ID
	return &entity.Movement{
		Type:           movType,
		ProductName:    product.Name,
		ProductID:      &productID,
		QuantityBefore: before,
		QuantityAfter:  after,
		Date:           now,
		Details:        &details,
	}
}

func intPtr(v int) *int { return &v }
