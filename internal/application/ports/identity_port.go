package ports

import (
	"context"

	"github.com/jhoicas/tenant-admin/internal/domain/entity"
)

// IdentityProvider puerto de salida hacia el proveedor de identidad gestionado.
// Los adaptadores traducen sus errores a los sentinelas de domain:
// ErrAlreadyExists (email duplicado), ErrInvalidInput (email o contraseña rechazados),
// ErrNotFound (uid inexistente) y ErrUnauthorized (token inválido o expirado).
type IdentityProvider interface {
	CreateUser(ctx context.Context, in entity.NewIdentity) (uid string, err error)
	DeleteUser(ctx context.Context, uid string) error
	VerifyToken(ctx context.Context, token string) (*entity.Identity, error)
}
