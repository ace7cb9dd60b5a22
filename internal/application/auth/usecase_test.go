package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/internal/application/auth"
	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/memory"
	"github.com/jhoicas/catalogo-api/pkg/jwt"
)

const secret = "test-secret"

func newAuth(t *testing.T) (*auth.AuthUseCase, *memory.UserRepo) {
	t.Helper()
	users := memory.NewUserRepository(memory.NewStore())
	uc := auth.NewAuthUseCase(users, auth.JWTConfig{Secret: secret, ExpMinutes: 5, RefreshExpMinutes: 60, Issuer: "catalogo-api"})
	_, err := uc.RegisterUser(context.Background(), "staff", "s3cret!", "staff")
	require.NoError(t, err)
	return uc, users
}

func TestToken_EmiteAccessYRefresh(t *testing.T) {
	uc, _ := newAuth(t)

	out, err := uc.Token(context.Background(), dto.TokenRequest{Username: "staff", Password: "s3cret!"})
	require.NoError(t, err)

	access, err := jwt.Parse(secret, out.Access)
	require.NoError(t, err)
	assert.Equal(t, jwt.TypeAccess, access.Type)
	assert.Equal(t, "staff", access.Role)
	assert.Equal(t, "catalogo-api", access.Issuer)

	refresh, err := jwt.Parse(secret, out.Refresh)
	require.NoError(t, err)
	assert.Equal(t, jwt.TypeRefresh, refresh.Type)
	assert.NotEqual(t, access.ID, refresh.ID)
}

func TestToken_CredencialesInvalidas(t *testing.T) {
	uc, _ := newAuth(t)

	_, err := uc.Token(context.Background(), dto.TokenRequest{Username: "staff", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Token(context.Background(), dto.TokenRequest{Username: "nadie", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRefresh(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()
	pair, err := uc.Token(ctx, dto.TokenRequest{Username: "staff", Password: "s3cret!"})
	require.NoError(t, err)

	out, err := uc.Refresh(ctx, dto.RefreshRequest{Refresh: pair.Refresh})
	require.NoError(t, err)
	claims, err := jwt.Parse(secret, out.Access)
	require.NoError(t, err)
	assert.Equal(t, jwt.TypeAccess, claims.Type)

	_, err = uc.Refresh(ctx, dto.RefreshRequest{Refresh: pair.Access})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "un access token no sirve para renovar")

	_, err = uc.Refresh(ctx, dto.RefreshRequest{Refresh: "basura"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRegisterUser_RolInvalido(t *testing.T) {
	uc, _ := newAuth(t)
	_, err := uc.RegisterUser(context.Background(), "otro", "x", "root")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterUser(context.Background(), "staff", "x", "admin")
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}
