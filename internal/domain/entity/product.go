package entity

import "time"

// Límites de longitud de los campos de Product. La capa HTTP los valida en
// los DTOs y el motor de inventario los re-valida como última defensa.
const (
	ProductNameMaxLen        = 100
	ProductCategoryMaxLen    = 50
	ProductDescriptionMaxLen = 500
	ProductLocationMaxLen    = 200
	ProductImageURLMaxLen    = 500
)

// Product representa un producto almacenado en la bodega.
// Quantity nunca es negativa y solo se modifica a través del motor de
// inventario, que registra cada cambio en el historial de movimientos.
type Product struct {
	ID          string
	Name        string // único por bodega, case-insensitive
	Category    string
	Quantity    int
	Description string
	Location    string
	ImageURL    string
	CreatedAt   time.Time // inmutable
	UpdatedAt   time.Time // se refresca en cada mutación exitosa
}
