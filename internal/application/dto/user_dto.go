package dto

import (
	"time"

	"github.com/mybodega/productos-api/internal/domain/entity"
)

// RegisterRequest cuerpo de POST /api/auth/register.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"nombre" validate:"required,max=100"`
	Role     string `json:"rol" validate:"omitempty,oneof=ADMIN GERENTE EMPLEADO USUARIO"`
}

// LoginRequest cuerpo de POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse respuesta del login: token Bearer y datos del usuario.
type LoginResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"usuario"`
}

// UserResponse representación HTTP de un usuario (nunca incluye el hash).
type UserResponse struct {
	ID         string     `json:"id"`
	Email      string     `json:"email"`
	Name       string     `json:"nombre"`
	Role       string     `json:"rol"`
	Active     bool       `json:"activo"`
	CreatedAt  time.Time  `json:"fechaCreacion"`
	LastAccess *time.Time `json:"ultimoAcceso"`
}

// NewUserResponse convierte la entidad a su DTO de respuesta.
func NewUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Role:       u.Role,
		Active:     u.Active,
		CreatedAt:  u.CreatedAt,
		LastAccess: u.LastAccess,
	}
}
