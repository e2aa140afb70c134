package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/mybodega/productos-api/internal/domain/entity"
	"github.com/mybodega/productos-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación en memoria de MovementRepository.
// Append-only: el slice solo crece (salvo DeleteAll) y el ID secuencial
// conserva el orden de inserción, igual que el BIGSERIAL en PostgreSQL.
type MovementRepo struct {
	mu        sync.RWMutex
	movements []*entity.Movement
	nextID    int64
}

// NewMovementRepository construye el repositorio vacío.
func NewMovementRepository() *MovementRepo {
	return &MovementRepo{nextID: 1}
}

// Create asigna el ID secuencial y guarda una copia del movimiento.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	movement.ID = r.nextID
	r.nextID++
	cp := *movement
	r.movements = append(r.movements, &cp)
	return nil
}

// GetByID devuelve una copia o (nil, nil) si no existe.
func (r *MovementRepo) GetByID(id int64) (*entity.Movement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

// List historial completo, más reciente primero.
func (r *MovementRepo) List() ([]*entity.Movement, error) {
	return r.filter(func(*entity.Movement) bool { return true }), nil
}

// ListByType filtra por tipo.
func (r *MovementRepo) ListByType(movType entity.MovementType) ([]*entity.Movement, error) {
	return r.filter(func(m *entity.Movement) bool { return m.Type == movType }), nil
}

// ListByProductID historial de un producto.
func (r *MovementRepo) ListByProductID(productID string) ([]*entity.Movement, error) {
	return r.filter(func(m *entity.Movement) bool {
		return m.ProductID != nil && *m.ProductID == productID
	}), nil
}

// ListTopN últimos n movimientos.
func (r *MovementRepo) ListTopN(n int) ([]*entity.Movement, error) {
	list := r.filter(func(*entity.Movement) bool { return true })
	if len(list) > n {
		list = list[:n]
	}
	return list, nil
}

// ListBetween movimientos con fecha en [from, to].
func (r *MovementRepo) ListBetween(from, to time.Time) ([]*entity.Movement, error) {
	return r.filter(func(m *entity.Movement) bool {
		return !m.Date.Before(from) && !m.Date.After(to)
	}), nil
}

// Count total de movimientos.
func (r *MovementRepo) Count() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.movements)), nil
}

// CountByType total agrupado por tipo.
func (r *MovementRepo) CountByType() (map[entity.MovementType]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make(map[entity.MovementType]int64)
	for _, m := range r.movements {
		result[m.Type]++
	}
	return result, nil
}

// CountSince movimientos con fecha >= since.
func (r *MovementRepo) CountSince(since time.Time) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var count int64
	for _, m := range r.movements {
		if !m.Date.Before(since) {
			count++
		}
	}
	return count, nil
}

// DeleteAll limpia el historial.
func (r *MovementRepo) DeleteAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.movements = nil
	return nil
}

func (r *MovementRepo) filter(keep func(*entity.Movement) bool) []*entity.Movement {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*entity.Movement
	for _, m := range r.movements {
		if keep(m) {
			cp := *m
			list = append(list, &cp)
		}
	}
	// fecha desc, ID desc como desempate (mismo orden que el adaptador SQL)
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.After(list[j].Date)
		}
		return list[i].ID > list[j].ID
	})
	return list
}
