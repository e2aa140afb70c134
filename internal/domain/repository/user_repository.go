package repository

import "github.com/mybodega/productos-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	ExistsByEmail(email string) (bool, error)
	Update(user *entity.User) error
	List() ([]*entity.User, error)
}
