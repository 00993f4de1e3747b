package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/FacturaOCR/internal/application/access"
	"github.com/jhoicas/FacturaOCR/internal/application/dto"
)

// RoleHandler administración de roles (solo admin, lo asegura AccessGate) y /api/me.
type RoleHandler struct {
	svc *access.Service
}

// NewRoleHandler construye el handler.
func NewRoleHandler(svc *access.Service) *RoleHandler {
	return &RoleHandler{svc: svc}
}

// Me godoc
// @Summary      Identidad actual
// @Description  Roles del usuario y páginas a las que puede navegar.
// @Tags         access
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MeResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/me [get]
func (h *RoleHandler) Me(c *fiber.Ctx) error {
	return c.JSON(h.svc.Me(c.Context(), GetIdentity(c)))
}

// ListUsers godoc
// @Summary      Usuarios con sus roles
// @Tags         access
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.UserWithRolesDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/users [get]
func (h *RoleHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.svc.ListUsersWithRoles(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(users)
}

// ListRoles godoc
// @Summary      Roles disponibles
// @Tags         access
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.RoleDTO
// @Router       /api/roles [get]
func (h *RoleHandler) ListRoles(c *fiber.Ctx) error {
	roles, err := h.svc.ListRoles(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(roles)
}

// AssignRole godoc
// @Summary      Asignar rol a un usuario
// @Tags         access
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del usuario"
// @Param        body  body  dto.AssignRoleRequest  true  "role: admin | Caja | Registrador"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/users/{id}/roles [post]
func (h *RoleHandler) AssignRole(c *fiber.Ctx) error {
	var in dto.AssignRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := dto.Validate(in); err != nil {
		return writeError(c, err)
	}
	if err := h.svc.AssignRole(c.Context(), c.Params("id"), in.Role); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RemoveRole godoc
// @Summary      Quitar rol a un usuario
// @Description  Idempotente: quitar un rol que el usuario no tiene responde 204.
// @Tags         access
// @Security     Bearer
// @Param        id    path  string  true  "ID del usuario"
// @Param        role  path  string  true  "nombre del rol"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id}/roles/{role} [delete]
func (h *RoleHandler) RemoveRole(c *fiber.Ctx) error {
	if err := h.svc.RemoveRole(c.Context(), c.Params("id"), c.Params("role")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
