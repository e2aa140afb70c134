package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mybodega/productos-api/internal/domain"
	"github.com/mybodega/productos-api/internal/domain/entity"
	"github.com/mybodega/productos-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, nombre, categoria, cantidad, descripcion, ubicacion, imagen_url, fecha_creacion, fecha_actualizacion`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (tabla productos, usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un producto. La unicidad case-insensitive del nombre la
// respalda un índice único sobre LOWER(nombre); una violación se traduce a
// domain.ErrDuplicate.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO productos (id, nombre, categoria, cantidad, descripcion, ubicacion, imagen_url, fecha_creacion, fecha_actualizacion)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Category, product.Quantity,
		product.Description, product.Location, product.ImageURL,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert producto: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. Devuelve (nil, nil) si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM productos WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get producto")
}

// GetForUpdate obtiene el producto y bloquea su fila (SELECT FOR UPDATE).
// Serializa las operaciones concurrentes sobre el mismo producto; solo
// tiene sentido dentro de una transacción del TxRunner.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM productos WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get producto for update")
}

// Update actualiza todos los campos mutables del producto.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE productos
		SET nombre = $2, categoria = $3, cantidad = $4, descripcion = $5, ubicacion = $6, imagen_url = $7, fecha_actualizacion = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Category, product.Quantity,
		product.Description, product.Location, product.ImageURL, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update producto: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un producto por ID. Los movimientos del historial no se
// tocan: conservan el snapshot del nombre y el ID.
func (r *ProductRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM productos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete producto: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ExistsByName verifica si existe un producto con ese nombre (case-insensitive).
func (r *ProductRepo) ExistsByName(name string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM productos WHERE LOWER(nombre) = LOWER($1))`, name,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists producto by nombre: %w", err)
	}
	return exists, nil
}

// List devuelve todos los productos ordenados por fecha de creación.
func (r *ProductRepo) List() ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM productos ORDER BY fecha_creacion DESC`
	return r.queryMany(query)
}

// ListByCategory filtra por categoría exacta.
func (r *ProductRepo) ListByCategory(category string) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM productos WHERE categoria = $1 ORDER BY nombre`
	return r.queryMany(query, category)
}

// SearchByName busca por nombre parcial, case-insensitive.
func (r *ProductRepo) SearchByName(name string) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM productos WHERE nombre ILIKE '%' || $1 || '%' ORDER BY nombre`
	return r.queryMany(query, name)
}

// ListByQuantityLTE productos con cantidad menor o igual al límite.
func (r *ProductRepo) ListByQuantityLTE(limit int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM productos WHERE cantidad <= $1 ORDER BY cantidad, nombre`
	return r.queryMany(query, limit)
}

// ListOutOfStock productos agotados (cantidad = 0).
func (r *ProductRepo) ListOutOfStock() ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM productos WHERE cantidad = 0 ORDER BY nombre`
	return r.queryMany(query)
}

// ListCategories devuelve las categorías únicas ordenadas.
func (r *ProductRepo) ListCategories() ([]string, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT DISTINCT categoria FROM productos ORDER BY categoria`)
	if err != nil {
		return nil, fmt.Errorf("list categorias: %w", err)
	}
	defer rows.Close()
	var list []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan categoria: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *ProductRepo) scanOne(row pgx.Row, op string) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Quantity,
		&p.Description, &p.Location, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

func (r *ProductRepo) queryMany(query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Quantity,
			&p.Description, &p.Location, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
