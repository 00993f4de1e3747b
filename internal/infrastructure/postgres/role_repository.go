package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/FacturaOCR/internal/domain"
	"github.com/jhoicas/FacturaOCR/internal/domain/entity"
	"github.com/jhoicas/FacturaOCR/internal/domain/repository"
)

var _ repository.RoleRepository = (*RoleRepo)(nil)

// RoleRepo roles y asignaciones (tablas roles y user_roles).
type RoleRepo struct {
	q Querier
}

// NewRoleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRoleRepository(q Querier) *RoleRepo {
	return &RoleRepo{q: q}
}

// GetByName busca por el nombre único; (nil, nil) si no existe.
func (r *RoleRepo) GetByName(ctx context.Context, name string) (*entity.Role, error) {
	var role entity.Role
	err := r.q.QueryRow(ctx,
		`SELECT id, name, COALESCE(description, '') FROM roles WHERE name = $1`, name,
	).Scan(&role.ID, &role.Name, &role.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role by name: %w", err)
	}
	return &role, nil
}

func (r *RoleRepo) List(ctx context.Context) ([]entity.Role, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, COALESCE(description, '') FROM roles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	out := []entity.Role{}
	for rows.Next() {
		var role entity.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		out = append(out, role)
	}
	return out, rows.Err()
}

// ListByUser join user_roles → roles.
func (r *RoleRepo) ListByUser(ctx context.Context, userID string) ([]entity.Role, error) {
	query := `
		SELECT r.id, r.name, COALESCE(r.description, '')
		FROM user_roles ur
		JOIN roles r ON r.id = ur.role_id
		WHERE ur.user_id = $1
		ORDER BY r.name`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list roles by user: %w", err)
	}
	defer rows.Close()

	out := []entity.Role{}
	for rows.Next() {
		var role entity.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		out = append(out, role)
	}
	return out, rows.Err()
}

func (r *RoleRepo) ListAssignments(ctx context.Context) (map[string][]entity.Role, error) {
	query := `
		SELECT ur.user_id, r.id, r.name, COALESCE(r.description, '')
		FROM user_roles ur
		JOIN roles r ON r.id = ur.role_id
		ORDER BY ur.user_id, r.name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]entity.Role)
	for rows.Next() {
		var (
			userID string
			role   entity.Role
		)
		if err := rows.Scan(&userID, &role.ID, &role.Name, &role.Description); err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		out[userID] = append(out[userID], role)
	}
	return out, rows.Err()
}

func (r *RoleRepo) AssignmentExists(ctx context.Context, userID, roleID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM user_roles WHERE user_id = $1 AND role_id = $2)`, userID, roleID,
	).Scan(&exists)
	if err != nil {
		if isInvalidUUID(err) {
			return false, nil
		}
		return false, fmt.Errorf("check assignment: %w", err)
	}
	return exists, nil
}

// Assign inserta la asignación. UNIQUE(user_id, role_id) decide ante inserciones concurrentes.
func (r *RoleRepo) Assign(ctx context.Context, a *entity.UserRole) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO user_roles (id, user_id, role_id, created_at) VALUES ($1, $2, $3, $4)`,
		a.ID, a.UserID, a.RoleID, a.CreatedAt,
	)
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return domain.ErrAlreadyAssigned
	case isForeignKeyViolation(err), isInvalidUUID(err):
		return domain.ErrUserNotFound
	default:
		return fmt.Errorf("insert user_role: %w", err)
	}
}

func (r *RoleRepo) Unassign(ctx context.Context, userID, roleID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1 AND role_id = $2`, userID, roleID)
	if err != nil && !isInvalidUUID(err) {
		return fmt.Errorf("delete user_role: %w", err)
	}
	return nil
}
