package dto

// RoleDTO rol disponible.
type RoleDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// UserWithRolesDTO fila de la pantalla de administración.
type UserWithRolesDTO struct {
	UserID string    `json:"user_id"`
	Email  string    `json:"email,omitempty"`
	Roles  []RoleDTO `json:"roles"`
}

// AssignRoleRequest cuerpo de POST /api/users/:id/roles.
type AssignRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// NavItem enlace de navegación visible para la identidad.
type NavItem struct {
	Path  string `json:"path"`
	Label string `json:"label"`
}

// MeResponse identidad actual con sus roles y la navegación permitida.
type MeResponse struct {
	UserID string    `json:"user_id"`
	Email  string    `json:"email,omitempty"`
	Roles  []RoleDTO `json:"roles"`
	// RolesUnavailable true si no se pudieron consultar los roles (se muestra aviso en lugar de "sin rol").
	RolesUnavailable bool      `json:"roles_unavailable,omitempty"`
	Navigation       []NavItem `json:"navigation"`
}

// AdminDTO datos de la pantalla de administración de roles.
type AdminDTO struct {
	Users []UserWithRolesDTO `json:"users"`
	Roles []RoleDTO          `json:"roles"`
}
