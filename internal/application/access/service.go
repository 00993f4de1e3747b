// Package access orquesta el motor de control de acceso: resuelve los roles de
// una identidad contra el store, decide el acceso a rutas y administra las asignaciones.
package access

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/FacturaOCR/internal/application/dto"
	"github.com/jhoicas/FacturaOCR/internal/domain"
	domaccess "github.com/jhoicas/FacturaOCR/internal/domain/access"
	"github.com/jhoicas/FacturaOCR/internal/domain/entity"
	"github.com/jhoicas/FacturaOCR/internal/domain/repository"
	"github.com/jhoicas/FacturaOCR/pkg/logger"
)

// Identity identidad autenticada (emitida por el proveedor de sesión).
// Un valor vacío (UserID == "") representa una petición anónima.
type Identity struct {
	UserID string
	Email  string
}

// Authenticated informa si la petición trae una identidad válida.
func (i Identity) Authenticated() bool { return i.UserID != "" }

// Authorization resultado de Authorize.
type Authorization struct {
	Decision domaccess.Decision
	Roles    []entity.Role
	// LookupFailed true si la consulta de roles falló y se decidió con el conjunto vacío.
	LookupFailed bool
}

// Service motor de control de acceso. Sin estado propio: los roles se consultan en cada llamada.
type Service struct {
	roles  repository.RoleRepository
	users  repository.UserRepository
	policy *domaccess.Policy
	log    *logger.Logger
	now    func() time.Time
}

// NewService construye el servicio. policy nil usa domaccess.DefaultPolicy().
func NewService(roles repository.RoleRepository, users repository.UserRepository, policy *domaccess.Policy, log *logger.Logger) *Service {
	if policy == nil {
		policy = domaccess.DefaultPolicy()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{roles: roles, users: users, policy: policy, log: log, now: time.Now}
}

// Policy devuelve la tabla de acceso en uso.
func (s *Service) Policy() *domaccess.Policy { return s.policy }

// ResolveRoles devuelve los roles asignados al usuario.
// Sin usuario → conjunto vacío. Si el store falla devuelve el conjunto vacío junto con
// un error que envuelve domain.ErrCollaboratorUnavailable; el llamador decide qué hacer.
func (s *Service) ResolveRoles(ctx context.Context, userID string) ([]entity.Role, error) {
	if userID == "" {
		return []entity.Role{}, nil
	}
	roles, err := s.roles.ListByUser(ctx, userID)
	if err != nil {
		return []entity.Role{}, fmt.Errorf("resolver roles de %s: %w: %v", userID, domain.ErrCollaboratorUnavailable, err)
	}
	if roles == nil {
		roles = []entity.Role{}
	}
	return roles, nil
}

// Authorize decide si la identidad puede acceder al recurso.
// Ante un fallo del store se aplica el conjunto vacío (falla cerrado) y se marca LookupFailed.
func (s *Service) Authorize(ctx context.Context, id Identity, resource string) Authorization {
	return s.AuthorizeRequest(ctx, id, "", resource)
}

// AuthorizeRequest como Authorize, teniendo en cuenta el método HTTP de la petición.
func (s *Service) AuthorizeRequest(ctx context.Context, id Identity, method, resource string) Authorization {
	var (
		result   Authorization
		resolved bool
	)
	result.Decision = domaccess.DecideMethod(s.policy, method, resource, id.Authenticated(), func() domaccess.RoleSet {
		resolved = true
		roles, err := s.ResolveRoles(ctx, id.UserID)
		if err != nil {
			s.log.Warn().Err(err).Str("user_id", id.UserID).Str("resource", resource).
				Msg("consulta de roles fallida; se decide sin roles")
			result.LookupFailed = true
		}
		result.Roles = roles
		return domaccess.RoleSetFrom(roles)
	})
	if !resolved {
		result.Roles = []entity.Role{}
	}
	s.log.Debug().
		Str("user_id", id.UserID).
		Str("method", method).
		Str("resource", resource).
		Str("decision", result.Decision.String()).
		Msg("decisión de acceso")
	return result
}

// AssignRole asigna el rol (por nombre) al usuario.
// Errores: domain.ErrUserNotFound, domain.ErrRoleNotFound, domain.ErrAlreadyAssigned o error del store.
//
// La comprobación previa no sustituye a la restricción UNIQUE(user_id, role_id) del store:
// entre la comprobación y el insert puede colarse otra asignación, y en ese caso
// el repositorio traduce la violación de unicidad a ErrAlreadyAssigned.
func (s *Service) AssignRole(ctx context.Context, userID, roleName string) error {
	if userID == "" {
		return fmt.Errorf("user_id es obligatorio: %w", domain.ErrInvalidInput)
	}
	role, err := s.lookupRole(ctx, roleName)
	if err != nil {
		return err
	}
	exists, err := s.roles.AssignmentExists(ctx, userID, role.ID)
	if err != nil {
		return fmt.Errorf("verificar asignación: %w: %w", domain.ErrCollaboratorUnavailable, err)
	}
	if exists {
		return domain.ErrAlreadyAssigned
	}
	err = s.roles.Assign(ctx, &entity.UserRole{
		ID:        uuid.New().String(),
		UserID:    userID,
		RoleID:    role.ID,
		CreatedAt: s.now(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyAssigned) || errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("asignar rol: %w: %w", domain.ErrCollaboratorUnavailable, err)
	}
	s.log.Info().Str("user_id", userID).Str("role", role.Name).Msg("rol asignado")
	return nil
}

// GrantByEmail asigna el rol al usuario registrado con ese email.
// domain.ErrUserNotFound si no existe; si ya lo tenía no es error.
func (s *Service) GrantByEmail(ctx context.Context, email, roleName string) (*entity.User, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, fmt.Errorf("buscar usuario: %w: %w", domain.ErrCollaboratorUnavailable, err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := s.AssignRole(ctx, user.ID, roleName); err != nil && !errors.Is(err, domain.ErrAlreadyAssigned) {
		return nil, err
	}
	return user, nil
}

// RemoveRole quita el rol al usuario. Es idempotente: si no lo tenía, no es error.
func (s *Service) RemoveRole(ctx context.Context, userID, roleName string) error {
	if userID == "" {
		return fmt.Errorf("user_id es obligatorio: %w", domain.ErrInvalidInput)
	}
	role, err := s.lookupRole(ctx, roleName)
	if err != nil {
		return err
	}
	if err := s.roles.Unassign(ctx, userID, role.ID); err != nil {
		return fmt.Errorf("remover rol: %w: %w", domain.ErrCollaboratorUnavailable, err)
	}
	s.log.Info().Str("user_id", userID).Str("role", role.Name).Msg("rol removido")
	return nil
}

func (s *Service) lookupRole(ctx context.Context, roleName string) (*entity.Role, error) {
	if roleName == "" {
		return nil, domain.ErrRoleNotFound
	}
	role, err := s.roles.GetByName(ctx, roleName)
	if err != nil {
		return nil, fmt.Errorf("buscar rol %q: %w: %w", roleName, domain.ErrCollaboratorUnavailable, err)
	}
	if role == nil {
		return nil, domain.ErrRoleNotFound
	}
	return role, nil
}

// ListRoles devuelve todos los roles definidos.
func (s *Service) ListRoles(ctx context.Context) ([]dto.RoleDTO, error) {
	roles, err := s.roles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar roles: %w: %w", domain.ErrCollaboratorUnavailable, err)
	}
	return toRoleDTOs(roles), nil
}

// ListUsersWithRoles devuelve todos los usuarios registrados con sus roles actuales
// (incluidos los que aún no tienen ninguno y esperan asignación).
func (s *Service) ListUsersWithRoles(ctx context.Context) ([]dto.UserWithRolesDTO, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar usuarios: %w: %w", domain.ErrCollaboratorUnavailable, err)
	}
	assignments, err := s.roles.ListAssignments(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar asignaciones: %w: %w", domain.ErrCollaboratorUnavailable, err)
	}
	out := make([]dto.UserWithRolesDTO, 0, len(users))
	for _, u := range users {
		out = append(out, dto.UserWithRolesDTO{
			UserID: u.ID,
			Email:  u.Email,
			Roles:  toRoleDTOs(assignments[u.ID]),
		})
	}
	return out, nil
}

// Me describe la identidad actual: roles y páginas a las que puede navegar.
// Si la consulta de roles falla, responde igualmente (RolesUnavailable) para que la UI
// muestre un aviso distinto de "sin rol".
func (s *Service) Me(ctx context.Context, id Identity) dto.MeResponse {
	roles, err := s.ResolveRoles(ctx, id.UserID)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", id.UserID).Msg("roles no disponibles")
	}
	return dto.MeResponse{
		UserID:           id.UserID,
		Email:            id.Email,
		Roles:            toRoleDTOs(roles),
		RolesUnavailable: err != nil,
		Navigation:       s.Navigation(domaccess.RoleSetFrom(roles)),
	}
}

// pageLabels etiquetas de las pantallas gobernadas.
var pageLabels = map[string]string{
	"/":                 "Inicio",
	"/dashboard":        "Dashboard",
	"/register-invoice": "Registrar factura",
	"/pos":              "Punto de venta",
	"/admin":            "Administración",
}

// Navigation páginas gobernadas que el conjunto de roles puede alcanzar.
// Es solo una ayuda para pintar la UI; el control real lo hace el middleware.
func (s *Service) Navigation(roles domaccess.RoleSet) []dto.NavItem {
	items := []dto.NavItem{}
	for _, page := range s.policy.GovernedPages() {
		label, ok := pageLabels[page]
		if !ok {
			continue
		}
		if domaccess.CanReach(s.policy, page, roles) {
			items = append(items, dto.NavItem{Path: page, Label: label})
		}
	}
	return items
}

func toRoleDTOs(roles []entity.Role) []dto.RoleDTO {
	out := make([]dto.RoleDTO, 0, len(roles))
	for _, r := range roles {
		out = append(out, dto.RoleDTO{ID: r.ID, Name: r.Name, Description: r.Description})
	}
	return out
}
