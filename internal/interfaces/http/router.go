package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/FacturaOCR/internal/application/access"
	"github.com/jhoicas/FacturaOCR/internal/application/auth"
	"github.com/jhoicas/FacturaOCR/internal/application/usecase"
	"github.com/jhoicas/FacturaOCR/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Access       *access.Service
	AuthUC       *auth.AuthUseCase
	InvoiceUC    *usecase.InvoiceUseCase
	OCRUC        *usecase.OCRUseCase
	JWTSecret    string
	CookieName   string
	SecureCookie bool
	Logger       *logger.Logger
}

// Router registra el middleware de sesión y acceso y las rutas de la aplicación.
// Lo registrado en app antes de llamar a Router (health, docs) queda fuera del gate.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	app.Use(SessionMiddleware(deps.JWTSecret, deps.CookieName))
	app.Use(RequestLogger(log))
	app.Use(AccessGate(deps.Access))

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.CookieName, deps.SecureCookie)
	app.Get("/login", authHandler.LoginPage)
	app.Post("/login", authHandler.Login)
	app.Get("/register", authHandler.RegisterPage)
	app.Post("/register", authHandler.Register)
	app.Post("/logout", authHandler.Logout)

	// Páginas
	pages := NewPageHandler(deps.Access, deps.InvoiceUC)
	app.Get("/", pages.Home)
	app.Get("/dashboard", pages.Dashboard)
	app.Get("/register-invoice", pages.RegisterInvoice)
	app.Get("/pos", pages.POS)
	app.Get("/admin", pages.Admin)
	app.Get("/no-role", pages.NoRole)

	api := app.Group("/api")

	roleHandler := NewRoleHandler(deps.Access)
	api.Get("/me", roleHandler.Me)
	api.Get("/roles", roleHandler.ListRoles)
	users := api.Group("/users")
	users.Get("/", roleHandler.ListUsers)
	users.Post("/:id/roles", roleHandler.AssignRole)
	users.Delete("/:id/roles/:role", roleHandler.RemoveRole)

	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC)
	invoices := api.Group("/invoices")
	invoices.Get("/", invoiceHandler.List)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/summary", invoiceHandler.Summary)
	invoices.Get("/summary/pdf", invoiceHandler.SummaryPDF)
	invoices.Delete("/:id", invoiceHandler.Delete)

	ocrHandler := NewOCRHandler(deps.OCRUC)
	api.Post("/extract-invoice", ocrHandler.ExtractInvoice)
}
