package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/FacturaOCR/internal/application/auth"
	"github.com/jhoicas/FacturaOCR/internal/application/dto"
)

// AuthHandler maneja registro, login y logout. La sesión viaja en una cookie HttpOnly
// (y también se devuelve el token para clientes que usan Bearer).
type AuthHandler struct {
	uc           *auth.AuthUseCase
	cookieName   string
	secureCookie bool
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, cookieName string, secureCookie bool) *AuthHandler {
	return &AuthHandler{uc: uc, cookieName: cookieName, secureCookie: secureCookie}
}

// LoginPage describe el formulario de login.
// GET /login
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": "login", "fields": []string{"email", "password"}, "register": "/register"})
}

// RegisterPage describe el formulario de registro.
// GET /register
func (h *AuthHandler) RegisterPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": "register", "fields": []string{"email", "password"}, "login": "/login"})
}

// Register godoc
// @Summary      Registrar usuario
// @Description  El usuario queda sin roles hasta que un administrador le asigne uno.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	user, err := h.uc.RegisterUser(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    out.Token,
		Path:     "/",
		Expires:  out.ExpiresAt,
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Success      204
// @Router       /logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.SendStatus(fiber.StatusNoContent)
}
