package repository

import (
	"context"

	"github.com/jhoicas/FacturaOCR/internal/domain/entity"
)

// RoleRepository define el puerto de persistencia para roles y asignaciones (DIP).
type RoleRepository interface {
	// GetByName devuelve (nil, nil) si no existe un rol con ese nombre.
	GetByName(ctx context.Context, name string) (*entity.Role, error)
	List(ctx context.Context) ([]entity.Role, error)
	// ListByUser devuelve los roles asignados al usuario (join user_roles → roles).
	ListByUser(ctx context.Context, userID string) ([]entity.Role, error)
	// ListAssignments devuelve los roles de todos los usuarios, agrupados por user_id.
	ListAssignments(ctx context.Context) (map[string][]entity.Role, error)
	// AssignmentExists informa si el par (userID, roleID) ya existe.
	AssignmentExists(ctx context.Context, userID, roleID string) (bool, error)
	// Assign inserta la asignación; devuelve domain.ErrAlreadyAssigned si viola la unicidad.
	Assign(ctx context.Context, assignment *entity.UserRole) error
	// Unassign elimina la asignación si existe (idempotente).
	Unassign(ctx context.Context, userID, roleID string) error
}
