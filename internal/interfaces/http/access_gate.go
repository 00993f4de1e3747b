package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/FacturaOCR/internal/application/access"
	"github.com/jhoicas/FacturaOCR/internal/application/dto"
	domaccess "github.com/jhoicas/FacturaOCR/internal/domain/access"
)

// LocalAuthorization key de c.Locals con el access.Authorization de la petición.
const LocalAuthorization = "authorization"

// authorizer es el contrato mínimo que necesita el gate. Lo implementa *access.Service.
type authorizer interface {
	AuthorizeRequest(ctx context.Context, id access.Identity, method, resource string) access.Authorization
}

// AccessGate decide cada petición con el motor de acceso. Debe usarse DESPUÉS de SessionMiddleware.
//
// Páginas: Allow → siguiente handler; el resto → 302 a /login, /no-role o /dashboard.
// Rutas /api: 401 UNAUTHENTICATED, 403 NO_ROLE o 403 FORBIDDEN con la página sugerida en "redirect".
func AccessGate(svc authorizer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		resource := normalizePath(c.Path())
		auth := svc.AuthorizeRequest(c.Context(), GetIdentity(c), c.Method(), resource)
		c.Locals(LocalAuthorization, auth)

		if auth.Decision == domaccess.Allow {
			return c.Next()
		}
		if !isAPI(resource) {
			return c.Redirect(auth.Decision.Location(), fiber.StatusFound)
		}
		return c.Status(deniedStatus(auth.Decision)).JSON(deniedBody(auth))
	}
}

// GetAuthorization devuelve la decisión tomada por AccessGate para esta petición.
func GetAuthorization(c *fiber.Ctx) (access.Authorization, bool) {
	a, ok := c.Locals(LocalAuthorization).(access.Authorization)
	return a, ok
}

func deniedStatus(d domaccess.Decision) int {
	if d == domaccess.RedirectToLogin {
		return fiber.StatusUnauthorized
	}
	return fiber.StatusForbidden
}

func deniedBody(auth access.Authorization) dto.ErrorResponse {
	res := dto.ErrorResponse{Redirect: auth.Decision.Location()}
	switch auth.Decision {
	case domaccess.RedirectToLogin:
		res.Code, res.Message = "UNAUTHENTICATED", "inicia sesión para continuar"
	case domaccess.RedirectToNoRole:
		res.Code, res.Message = "NO_ROLE", "tu usuario no tiene roles asignados; contacta a un administrador"
		if auth.LookupFailed {
			res.Message = "no se pudieron verificar tus roles; intenta de nuevo más tarde"
		}
	default:
		res.Code, res.Message = "FORBIDDEN", "no tienes permisos para acceder a este recurso"
	}
	return res
}

// normalizePath aplica a la ruta las mismas reglas que el router (sin distinguir
// mayúsculas ni barra final), para que /Admin/ se decida igual que /admin.
func normalizePath(p string) string {
	p = strings.ToLower(p)
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}
	if p == "" {
		return "/"
	}
	return p
}

func isAPI(p string) bool {
	return p == "/api" || strings.HasPrefix(p, "/api/")
}
