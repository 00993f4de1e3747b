package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/FacturaOCR/internal/application/access"
	"github.com/jhoicas/FacturaOCR/internal/application/auth"
	"github.com/jhoicas/FacturaOCR/internal/application/dto"
	"github.com/jhoicas/FacturaOCR/internal/application/ports"
	"github.com/jhoicas/FacturaOCR/internal/application/usecase"
	"github.com/jhoicas/FacturaOCR/internal/domain"
	"github.com/jhoicas/FacturaOCR/internal/domain/entity"
	"github.com/jhoicas/FacturaOCR/internal/domain/repository"
	infraai "github.com/jhoicas/FacturaOCR/internal/infrastructure/ai"
	"github.com/jhoicas/FacturaOCR/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/FacturaOCR/internal/infrastructure/pdf"
	"github.com/jhoicas/FacturaOCR/internal/infrastructure/postgres"
	"github.com/jhoicas/FacturaOCR/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/FacturaOCR/internal/interfaces/http"
	"github.com/jhoicas/FacturaOCR/pkg/config"
	"github.com/jhoicas/FacturaOCR/pkg/logger"
)

type repositories struct {
	roles    repository.RoleRepository
	users    repository.UserRepository
	invoices repository.InvoiceRepository
	close    func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	level := "info"
	if cfg.App.Env == "development" {
		level = "debug"
	}
	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Str("ai_provider", cfg.AI.Provider).
		Msg("iniciando aplicación")

	ctx := context.Background()
	repos, err := openRepositories(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer repos.close()

	loc := cfg.App.Location()
	accessSvc := access.NewService(repos.roles, repos.users, nil, log.Named("access"))
	authUC := auth.NewAuthUseCase(repos.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// PDF: reporte del resumen de facturas
	pdfGenerator := infrapdf.NewMarotoSummaryGenerator(cfg.App.Name)
	invoiceUC := usecase.NewInvoiceUseCase(repos.invoices, pdfGenerator, loc, log.Named("invoices"))

	// Imágenes de facturas en MinIO (opcional).
	var images ports.ImageStore
	if cfg.Storage.Enabled() {
		store, err := storage.NewMinioStore(ctx, cfg.Storage)
		if err != nil {
			log.Warn().Err(err).Str("endpoint", cfg.Storage.Endpoint).Msg("MinIO no disponible; se continúa sin guardar imágenes")
		} else {
			images = store
		}
	}
	ocrUC := usecase.NewOCRUseCase(newExtractor(cfg.AI), images, cfg.AI.MaxImageBytes, loc, log.Named("ocr"))

	if cfg.Admin.Enabled() {
		if err := ensureAdmin(ctx, authUC, accessSvc, cfg.Admin); err != nil {
			log.Error().Err(err).Str("email", cfg.Admin.Email).Msg("no se pudo garantizar el administrador inicial")
		} else {
			log.Info().Str("email", cfg.Admin.Email).Msg("administrador inicial listo")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 45,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    cfg.AI.MaxImageBytes*2 + 1<<20, // base64 infla ~4/3
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "FacturaOCR API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Access:       accessSvc,
		AuthUC:       authUC,
		InvoiceUC:    invoiceUC,
		OCRUC:        ocrUC,
		JWTSecret:    cfg.JWT.Secret,
		CookieName:   cfg.JWT.CookieName,
		SecureCookie: cfg.App.Env == "production",
		Logger:       log.Named("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openRepositories elige el backend según DB_DRIVER. "memory" no persiste entre reinicios.
func openRepositories(ctx context.Context, cfg config.DBConfig) (*repositories, error) {
	if cfg.Driver == "memory" {
		store := memory.NewStore(memory.SeedRoles()...)
		return &repositories{
			roles:    store.Roles(),
			users:    store.Users(),
			invoices: store.Invoices(),
			close:    func() {},
		}, nil
	}
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &repositories{
		roles:    postgres.NewRoleRepository(pool),
		users:    postgres.NewUserRepository(pool),
		invoices: postgres.NewInvoiceRepository(pool),
		close:    pool.Close,
	}, nil
}

func newExtractor(cfg config.AIConfig) ports.InvoiceExtractor {
	if cfg.Provider == "anthropic" {
		return infraai.NewAnthropicExtractor(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	}
	return infraai.NewGeminiExtractor(cfg.GeminiAPIKey, cfg.GeminiModel)
}

// ensureAdmin registra el administrador inicial si no existe y le asigna el rol admin.
func ensureAdmin(ctx context.Context, authUC *auth.AuthUseCase, accessSvc *access.Service, cfg config.AdminConfig) error {
	if cfg.Password != "" {
		_, err := authUC.RegisterUser(ctx, dto.RegisterRequest{Email: cfg.Email, Password: cfg.Password})
		if err != nil && !errors.Is(err, domain.ErrEmailAlreadyExists) {
			return err
		}
	}
	_, err := accessSvc.GrantByEmail(ctx, cfg.Email, entity.RoleAdmin.String())
	return err
}
