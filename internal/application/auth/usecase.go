package auth

import (
	"context"
	"strings"

	"github.com/jhoicas/tenant-admin/internal/application/dto"
	"github.com/jhoicas/tenant-admin/internal/application/ports"
	"github.com/jhoicas/tenant-admin/internal/domain"
)

// allowChecker lista de emails que pueden entrar a la consola.
type allowChecker interface {
	Allowed(email string) bool
}

// AuthUseCase login con email y contraseña contra el proveedor de identidad local.
type AuthUseCase struct {
	signIn ports.PasswordSignIn
	allow  allowChecker
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(signIn ports.PasswordSignIn, allow allowChecker) *AuthUseCase {
	return &AuthUseCase{signIn: signIn, allow: allow}
}

// Login verifica email/password, aplica la lista de emails permitidos y devuelve el token.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.NewInputError("Email and password are required")
	}
	if !uc.allow.Allowed(email) {
		return nil, domain.ErrEmailNotAllowed
	}
	token, ident, err := uc.signIn.SignIn(ctx, email, in.Password)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Success: true,
		Token:   token,
		UID:     ident.UID,
		Email:   ident.Email,
	}, nil
}
