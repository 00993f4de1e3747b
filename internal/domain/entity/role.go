package entity

import "time"

// RoleName enumera los roles conocidos por la aplicación.
// Cualquier nombre que no esté en la lista se representa como RoleUnrecognized:
// se tolera (no es un error) pero nunca concede acceso.
type RoleName int

const (
	RoleUnrecognized RoleName = iota
	RoleAdmin
	RoleCaja
	RoleRegistrador
)

var roleNames = map[RoleName]string{
	RoleAdmin:       "admin",
	RoleCaja:        "Caja",
	RoleRegistrador: "Registrador",
}

// KnownRoleNames devuelve los roles reconocidos en orden estable.
func KnownRoleNames() []RoleName {
	return []RoleName{RoleAdmin, RoleCaja, RoleRegistrador}
}

// ParseRoleName traduce el nombre almacenado en la tabla roles.
// La comparación es exacta (los nombres distinguen mayúsculas: "Caja", no "caja").
func ParseRoleName(s string) RoleName {
	for k, v := range roleNames {
		if v == s {
			return k
		}
	}
	return RoleUnrecognized
}

// String devuelve el nombre tal como se guarda en la base de datos.
func (r RoleName) String() string {
	if s, ok := roleNames[r]; ok {
		return s
	}
	return "unrecognized"
}

// Known informa si el rol pertenece al conjunto cerrado.
func (r RoleName) Known() bool {
	_, ok := roleNames[r]
	return ok
}

// Role es un grupo de permisos definido globalmente (tabla roles).
type Role struct {
	ID          string
	Name        string
	Description string
}

// Kind devuelve el RoleName correspondiente al nombre del rol.
func (r Role) Kind() RoleName {
	return ParseRoleName(r.Name)
}

// UserRole asignación usuario ↔ rol. El par (UserID, RoleID) es único.
type UserRole struct {
	ID        string
	UserID    string
	RoleID    string
	CreatedAt time.Time
}
