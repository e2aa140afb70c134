package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin    = "ADMIN"
	RoleGerente  = "GERENTE"
	RoleEmpleado = "EMPLEADO"
	RoleUsuario  = "USUARIO"
)

// User usuario de la aplicación. Password siempre almacena el hash bcrypt.
type User struct {
	ID         string
	Email      string
	Password   string
	Name       string
	Role       string
	Active     bool
	CreatedAt  time.Time
	LastAccess *time.Time
}
