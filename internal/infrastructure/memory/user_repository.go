package memory

import (
	"sort"
	"sync"

	"github.com/mybodega/productos-api/internal/domain"
	"github.com/mybodega/productos-api/internal/domain/entity"
	"github.com/mybodega/productos-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación en memoria de UserRepository.
type UserRepo struct {
	mu    sync.RWMutex
	users map[string]*entity.User
}

// NewUserRepository construye el repositorio vacío.
func NewUserRepository() *UserRepo {
	return &UserRepo{users: make(map[string]*entity.User)}
}

// Create almacena un usuario nuevo.
func (r *UserRepo) Create(user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

// GetByID devuelve una copia o (nil, nil) si no existe.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

// GetByEmail devuelve una copia o (nil, nil) si no existe.
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// ExistsByEmail verifica si ya hay un usuario con ese email.
func (r *UserRepo) ExistsByEmail(email string) (bool, error) {
	u, err := r.GetByEmail(email)
	return u != nil, err
}

// Update reemplaza el usuario almacenado.
func (r *UserRepo) Update(user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

// List devuelve todos los usuarios por fecha de creación.
func (r *UserRepo) List() ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*entity.User
	for _, u := range r.users {
		cp := *u
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list, nil
}
