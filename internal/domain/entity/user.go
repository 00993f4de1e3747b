package entity

import "time"

// User identidad registrada en el proveedor de sesión.
// Los roles no forman parte del usuario: viven en user_roles.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	CreatedAt    time.Time
}

// UserWithRoles vista de administración: usuario y sus roles actuales.
type UserWithRoles struct {
	UserID string
	Email  string
	Roles  []Role
}
