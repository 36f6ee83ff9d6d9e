package usecase

import (
	"context"
	"errors"

	"github.com/jhoicas/tenant-admin/internal/application/dto"
	"github.com/jhoicas/tenant-admin/internal/domain"
	"github.com/jhoicas/tenant-admin/internal/domain/access"
	"github.com/jhoicas/tenant-admin/internal/domain/entity"
	"github.com/jhoicas/tenant-admin/internal/domain/repository"
)

// AccessUseCase decide quién puede entrar a la consola y quién puede modificar cuentas.
type AccessUseCase struct {
	users        repository.UserRepository
	allow        *access.Allowlist
	enforceRoles bool
}

// NewAccessUseCase construye el caso de uso. Con enforceRoles=false cualquier sesión
// verificada puede modificar.
func NewAccessUseCase(users repository.UserRepository, allow *access.Allowlist, enforceRoles bool) *AccessUseCase {
	return &AccessUseCase{users: users, allow: allow, enforceRoles: enforceRoles}
}

// Allowed aplica la lista de emails permitidos.
func (uc *AccessUseCase) Allowed(email string) bool {
	return uc.allow.Allowed(email)
}

// IsAdmin informa si el llamador puede modificar otras cuentas: su propio registro tiene
// rol admin o, sin registro, su email figura en la lista de operadores. Sin lista
// configurada, un llamador sin registro cuenta como operador de arranque.
func (uc *AccessUseCase) IsAdmin(ctx context.Context, uid, email string) (bool, error) {
	if !uc.enforceRoles {
		return true, nil
	}
	admin, _, err := uc.resolve(ctx, uid, email)
	return admin, err
}

// Session describe al llamador verificado.
func (uc *AccessUseCase) Session(ctx context.Context, ident entity.Identity) (*dto.SessionResponse, error) {
	admin, role, err := uc.resolve(ctx, ident.UID, ident.Email)
	if err != nil {
		return nil, err
	}
	if !uc.enforceRoles {
		admin = true
	}
	return &dto.SessionResponse{
		Success: true,
		UID:     ident.UID,
		Email:   ident.Email,
		Role:    role,
		Admin:   admin,
		Allowed: uc.allow.Allowed(ident.Email),
	}, nil
}

func (uc *AccessUseCase) resolve(ctx context.Context, uid, email string) (admin bool, role string, err error) {
	u, err := uc.users.GetByID(ctx, uid)
	if errors.Is(err, domain.ErrNotFound) {
		if !uc.allow.Restricted() {
			return true, "", nil
		}
		return uc.allow.Listed(email), "", nil
	}
	if err != nil {
		return false, "", err
	}
	return u.Role == entity.RoleAdmin, u.Role, nil
}
