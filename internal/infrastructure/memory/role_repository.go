package memory

import (
	"context"

	"github.com/jhoicas/FacturaOCR/internal/domain"
	"github.com/jhoicas/FacturaOCR/internal/domain/entity"
	"github.com/jhoicas/FacturaOCR/internal/domain/repository"
)

// RoleRepository implementa repository.RoleRepository sobre Store.
type RoleRepository struct {
	s *Store
}

var _ repository.RoleRepository = (*RoleRepository)(nil)

func (r *RoleRepository) GetByName(ctx context.Context, name string) (*entity.Role, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, id := range r.s.roleOrder {
		if role := r.s.roles[id]; role.Name == name {
			return &role, nil
		}
	}
	return nil, nil
}

func (r *RoleRepository) List(ctx context.Context) ([]entity.Role, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]entity.Role, 0, len(r.s.roleOrder))
	for _, id := range r.s.roleOrder {
		out = append(out, r.s.roles[id])
	}
	return out, nil
}

func (r *RoleRepository) ListByUser(ctx context.Context, userID string) ([]entity.Role, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []entity.Role{}
	for _, a := range r.s.assignments {
		if a.UserID != userID {
			continue
		}
		if role, ok := r.s.roles[a.RoleID]; ok {
			out = append(out, role)
		}
	}
	return out, nil
}

func (r *RoleRepository) ListAssignments(ctx context.Context) (map[string][]entity.Role, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make(map[string][]entity.Role)
	for _, a := range r.s.assignments {
		if role, ok := r.s.roles[a.RoleID]; ok {
			out[a.UserID] = append(out[a.UserID], role)
		}
	}
	return out, nil
}

func (r *RoleRepository) AssignmentExists(ctx context.Context, userID, roleID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.indexOfAssignment(userID, roleID) >= 0, nil
}

// Assign aplica las mismas restricciones que la tabla user_roles: claves foráneas
// a users y roles, y unicidad de (user_id, role_id).
func (r *RoleRepository) Assign(ctx context.Context, a *entity.UserRole) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[a.UserID]; !ok {
		return domain.ErrUserNotFound
	}
	if _, ok := r.s.roles[a.RoleID]; !ok {
		return domain.ErrRoleNotFound
	}
	if r.s.indexOfAssignment(a.UserID, a.RoleID) >= 0 {
		return domain.ErrAlreadyAssigned
	}
	r.s.assignments = append(r.s.assignments, *a)
	return nil
}

func (r *RoleRepository) Unassign(ctx context.Context, userID, roleID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if i := r.s.indexOfAssignment(userID, roleID); i >= 0 {
		r.s.assignments = append(r.s.assignments[:i], r.s.assignments[i+1:]...)
	}
	return nil
}

// indexOfAssignment requiere mu tomado.
func (s *Store) indexOfAssignment(userID, roleID string) int {
	for i, a := range s.assignments {
		if a.UserID == userID && a.RoleID == roleID {
			return i
		}
	}
	return -1
}
