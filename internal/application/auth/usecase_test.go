package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/FacturaOCR/internal/application/auth"
	"github.com/jhoicas/FacturaOCR/internal/application/dto"
	"github.com/jhoicas/FacturaOCR/internal/domain"
	"github.com/jhoicas/FacturaOCR/internal/infrastructure/memory"
	"github.com/jhoicas/FacturaOCR/pkg/jwt"
)

const secret = "test-secret"

func newAuth() *auth.AuthUseCase {
	return auth.NewAuthUseCase(memory.NewStore().Users(), auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "facturaocr"})
}

func TestRegisterYLogin(t *testing.T) {
	ctx := context.Background()
	uc := newAuth()

	user, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: " Ana@Example.com ", Password: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ana@example.com", Password: "otraclave1"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	res, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "secreto123"})
	require.NoError(t, err)
	userID, email, err := jwt.Parse(secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, "ana@example.com", email)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	ctx := context.Background()
	uc := newAuth()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "luis@example.com", Password: "secreto123"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "luis@example.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@example.com", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRegister_Validacion(t *testing.T) {
	_, err := newAuth().RegisterUser(context.Background(), dto.RegisterRequest{Email: "no-es-email", Password: "corta"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
