package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/FacturaOCR/internal/application/access"
	"github.com/jhoicas/FacturaOCR/internal/application/dto"
	"github.com/jhoicas/FacturaOCR/internal/application/usecase"
	"github.com/jhoicas/FacturaOCR/internal/domain/invoicing"
)

// PageHandler entrega los datos de cada pantalla (la UI los pinta).
// Cuando llega aquí, AccessGate ya autorizó la ruta.
type PageHandler struct {
	access   *access.Service
	invoices *usecase.InvoiceUseCase
}

// NewPageHandler construye el handler de páginas.
func NewPageHandler(accessSvc *access.Service, invoices *usecase.InvoiceUseCase) *PageHandler {
	return &PageHandler{access: accessSvc, invoices: invoices}
}

// Home GET /
// Identidad, roles y enlaces de navegación permitidos.
func (h *PageHandler) Home(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"page": "home",
		"me":   h.access.Me(c.Context(), GetIdentity(c)),
	})
}

// Dashboard GET /dashboard?window=day|week|month|all
// Si el store de facturas falla, responde con listas vacías y degraded=true.
func (h *PageHandler) Dashboard(c *fiber.Ctx) error {
	w, err := invoicing.ParseWindow(c.Query("window"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(h.invoices.Dashboard(c.Context(), w))
}

// RegisterInvoice GET /register-invoice
func (h *PageHandler) RegisterInvoice(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"page":       "register-invoice",
		"categories": invoicing.SuggestedCategories,
		"ocr":        "/api/extract-invoice",
	})
}

// POS GET /pos
// Resumen del día para la caja.
func (h *PageHandler) POS(c *fiber.Ctx) error {
	summary, err := h.invoices.Summary(c.Context(), invoicing.WindowDay)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"page": "pos", "summary": summary})
}

// Admin GET /admin
// Usuarios registrados con sus roles y el catálogo de roles asignables.
func (h *PageHandler) Admin(c *fiber.Ctx) error {
	users, err := h.access.ListUsersWithRoles(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	roles, err := h.access.ListRoles(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.AdminDTO{Users: users, Roles: roles})
}

// NoRole GET /no-role
// Pantalla para cuentas autenticadas que aún no tienen rol asignado.
func (h *PageHandler) NoRole(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"page":    "no-role",
		"email":   GetEmail(c),
		"message": "Tu cuenta aún no tiene un rol asignado. Contacta a un administrador.",
	})
}
