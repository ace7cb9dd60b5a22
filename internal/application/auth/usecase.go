package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
	"github.com/jhoicas/catalogo-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret            string
	ExpMinutes        int
	RefreshExpMinutes int
	Issuer            string
}

// AuthUseCase emisión y renovación de tokens.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// RegisterUser crea un usuario con el password hasheado (bcrypt). Lo usa el importador.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, username, password, role string) (*entity.User, error) {
	switch role {
	case entity.RoleAdmin, entity.RoleStaff, entity.RoleCustomer:
	default:
		return nil, domain.NewValidationError("role", "rol inválido: "+role)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Token verifica username/password y emite el par access + refresh.
func (uc *AuthUseCase) Token(ctx context.Context, in dto.TokenRequest) (*dto.TokenResponse, error) {
	user, err := uc.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Active {
		return nil, domain.ErrForbidden
	}
	access, err := uc.accessToken(user)
	if err != nil {
		return nil, err
	}
	refresh, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, jwt.TypeRefresh, uc.jwtCfg.Issuer, uc.jwtCfg.RefreshExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("generar refresh token: %w", err)
	}
	return &dto.TokenResponse{Access: access, Refresh: refresh}, nil
}

// Refresh canjea un refresh token válido por un nuevo access token.
// El rol se relee de la base por si cambió desde la emisión.
func (uc *AuthUseCase) Refresh(ctx context.Context, in dto.RefreshRequest) (*dto.RefreshResponse, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, in.Refresh)
	if err != nil || claims.Type != jwt.TypeRefresh {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Active {
		return nil, domain.ErrForbidden
	}
	access, err := uc.accessToken(user)
	if err != nil {
		return nil, err
	}
	return &dto.RefreshResponse{Access: access}, nil
}

func (uc *AuthUseCase) accessToken(user *entity.User) (string, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, jwt.TypeAccess, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return "", fmt.Errorf("generar access token: %w", err)
	}
	return token, nil
}
