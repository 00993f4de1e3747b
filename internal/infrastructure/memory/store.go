// Package memory implementa los repositorios del dominio en proceso.
// Se usa con DB_DRIVER=memory (desarrollo local) y en los tests de integración HTTP.
package memory

import (
	"sync"

	"github.com/jhoicas/FacturaOCR/internal/domain/entity"
)

// Store estado compartido por los repositorios en memoria.
type Store struct {
	mu          sync.RWMutex
	users       map[string]entity.User // key: user ID
	emails      map[string]string      // email -> user ID
	userOrder   []string
	roles       map[string]entity.Role // key: role ID
	roleOrder   []string
	assignments []entity.UserRole
	invoices    map[string]entity.Invoice
	invOrder    []string
}

// NewStore inicializa un store vacío con los roles dados (ver SeedRoles).
func NewStore(roles ...entity.Role) *Store {
	s := &Store{
		users:    make(map[string]entity.User),
		emails:   make(map[string]string),
		roles:    make(map[string]entity.Role),
		invoices: make(map[string]entity.Invoice),
	}
	for _, r := range roles {
		s.roles[r.ID] = r
		s.roleOrder = append(s.roleOrder, r.ID)
	}
	return s
}

// SeedRoles los tres roles de la aplicación, con los mismos nombres que la migración inicial.
func SeedRoles() []entity.Role {
	return []entity.Role{
		{ID: "role-admin", Name: entity.RoleAdmin.String(), Description: "Administrador: acceso total y gestión de roles"},
		{ID: "role-caja", Name: entity.RoleCaja.String(), Description: "Caja: punto de venta"},
		{ID: "role-registrador", Name: entity.RoleRegistrador.String(), Description: "Registrador: registro de facturas"},
	}
}

// Roles devuelve el repositorio de roles respaldado por este store.
func (s *Store) Roles() *RoleRepository { return &RoleRepository{s: s} }

// Users devuelve el repositorio de usuarios respaldado por este store.
func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

// Invoices devuelve el repositorio de facturas respaldado por este store.
func (s *Store) Invoices() *InvoiceRepository { return &InvoiceRepository{s: s} }
