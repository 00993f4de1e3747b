// grant_role asigna un rol a un usuario ya registrado, directamente contra PostgreSQL.
// Sirve para nombrar al primer administrador de una base nueva.
//
// Uso: go run ./cmd/grant_role <email> [rol]
// El rol por defecto es "admin". Roles válidos: admin, Caja, Registrador.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/FacturaOCR/internal/application/access"
	"github.com/jhoicas/FacturaOCR/internal/domain/entity"
	"github.com/jhoicas/FacturaOCR/internal/infrastructure/postgres"
	"github.com/jhoicas/FacturaOCR/pkg/config"
	"github.com/jhoicas/FacturaOCR/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Uso: grant_role <email> [rol]")
		os.Exit(2)
	}
	email := os.Args[1]
	role := entity.RoleAdmin.String()
	if len(os.Args) > 2 {
		role = os.Args[2]
	}
	if !entity.ParseRoleName(role).Known() {
		fmt.Fprintf(os.Stderr, "Rol desconocido %q (admin, Caja, Registrador)\n", role)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	if cfg.DB.Driver != "postgres" {
		fmt.Fprintln(os.Stderr, "grant_role requiere DB_DRIVER=postgres")
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	svc := access.NewService(postgres.NewRoleRepository(pool), postgres.NewUserRepository(pool), nil, log)
	user, err := svc.GrantByEmail(ctx, email, role)
	if err != nil {
		log.Error().Err(err).Str("email", email).Str("role", role).Msg("no se pudo asignar el rol")
		pool.Close()
		os.Exit(1)
	}
	log.Info().Str("user_id", user.ID).Str("email", user.Email).Str("role", role).Msg("rol asignado")
}
