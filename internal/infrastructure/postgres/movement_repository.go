package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/mybodega/productos-api/internal/domain/entity"
	"github.com/mybodega/productos-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, tipo, producto, producto_id, cantidad_anterior, cantidad_nueva, fecha, detalles`

// MovementRepo implementación del puerto MovementRepository sobre
// PostgreSQL (tabla movimientos, usable con pool o tx). La tabla es
// append-only: este adaptador no expone UPDATE.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserta un movimiento. El ID es un BIGSERIAL: con fechas iguales,
// el ID conserva el orden de inserción para los listados.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	query := `
		INSERT INTO movimientos (tipo, producto, producto_id, cantidad_anterior, cantidad_nueva, fecha, detalles)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		string(movement.Type), movement.ProductName, movement.ProductID,
		movement.QuantityBefore, movement.QuantityAfter, movement.Date, movement.Details,
	).Scan(&movement.ID)
	if err != nil {
		return fmt.Errorf("insert movimiento: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID. Devuelve (nil, nil) si no existe.
func (r *MovementRepo) GetByID(id int64) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movimientos WHERE id = $1`
	var m entity.Movement
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.Type, &m.ProductName, &m.ProductID,
		&m.QuantityBefore, &m.QuantityAfter, &m.Date, &m.Details,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movimiento: %w", err)
	}
	return &m, nil
}

// List devuelve todo el historial, más reciente primero.
func (r *MovementRepo) List() ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movimientos ORDER BY fecha DESC, id DESC`
	return r.queryMany(query)
}

// ListByType filtra por tipo de movimiento.
func (r *MovementRepo) ListByType(movType entity.MovementType) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movimientos WHERE tipo = $1 ORDER BY fecha DESC, id DESC`
	return r.queryMany(query, string(movType))
}

// ListByProductID historial de un producto, incluidos productos ya borrados.
func (r *MovementRepo) ListByProductID(productID string) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movimientos WHERE producto_id = $1 ORDER BY fecha DESC, id DESC`
	return r.queryMany(query, productID)
}

// ListTopN últimos n movimientos.
func (r *MovementRepo) ListTopN(n int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movimientos ORDER BY fecha DESC, id DESC LIMIT $1`
	return r.queryMany(query, n)
}

// ListBetween movimientos con fecha en [from, to].
func (r *MovementRepo) ListBetween(from, to time.Time) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movimientos WHERE fecha BETWEEN $1 AND $2 ORDER BY fecha DESC, id DESC`
	return r.queryMany(query, from, to)
}

// Count total de movimientos.
func (r *MovementRepo) Count() (int64, error) {
	var count int64
	err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM movimientos`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count movimientos: %w", err)
	}
	return count, nil
}

// CountByType total agrupado por tipo. Tipos sin movimientos no aparecen.
func (r *MovementRepo) CountByType() (map[entity.MovementType]int64, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT tipo, COUNT(*) FROM movimientos GROUP BY tipo`)
	if err != nil {
		return nil, fmt.Errorf("count movimientos by tipo: %w", err)
	}
	defer rows.Close()
	result := make(map[entity.MovementType]int64)
	for rows.Next() {
		var tipo string
		var count int64
		if err := rows.Scan(&tipo, &count); err != nil {
			return nil, fmt.Errorf("scan count by tipo: %w", err)
		}
		result[entity.MovementType(tipo)] = count
	}
	return result, rows.Err()
}

// CountSince movimientos con fecha >= since.
func (r *MovementRepo) CountSince(since time.Time) (int64, error) {
	var count int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM movimientos WHERE fecha >= $1`, since).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count movimientos since: %w", err)
	}
	return count, nil
}

// DeleteAll limpia todo el historial.
func (r *MovementRepo) DeleteAll() error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM movimientos`); err != nil {
		return fmt.Errorf("delete movimientos: %w", err)
	}
	return nil
}

func (r *MovementRepo) queryMany(query string, args ...any) ([]*entity.Movement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movimientos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.Type, &m.ProductName, &m.ProductID,
			&m.QuantityBefore, &m.QuantityAfter, &m.Date, &m.Details); err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
