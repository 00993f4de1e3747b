package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/FacturaOCR/internal/application/access"
	"github.com/jhoicas/FacturaOCR/pkg/jwt"
)

// Locals keys para la identidad de la sesión en Fiber.
const (
	LocalUserID = "user_id"
	LocalEmail  = "email"
)

// SessionMiddleware lee el token de sesión (cookie o Bearer) y carga la identidad en c.Locals.
// No rechaza peticiones: un token ausente, inválido o expirado deja la petición como anónima
// y la decisión la toma AccessGate.
func SessionMiddleware(jwtSecret, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := sessionToken(c, cookieName)
		if token == "" {
			return c.Next()
		}
		userID, email, err := jwt.Parse(jwtSecret, token)
		if err != nil {
			return c.Next()
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalEmail, email)
		return c.Next()
	}
}

// sessionToken prioriza el header Authorization (clientes API) sobre la cookie (navegador).
func sessionToken(c *fiber.Ctx, cookieName string) string {
	if authHeader := c.Get(fiber.HeaderAuthorization); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	return c.Cookies(cookieName)
}

// GetUserID devuelve el UserID del contexto (vacío si la petición es anónima).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetEmail devuelve el email de la sesión.
func GetEmail(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalEmail).(string)
	return s
}

// GetIdentity identidad de la petición para el motor de acceso.
func GetIdentity(c *fiber.Ctx) access.Identity {
	return access.Identity{UserID: GetUserID(c), Email: GetEmail(c)}
}
