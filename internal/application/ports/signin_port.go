package ports

import (
	"context"

	"github.com/jhoicas/tenant-admin/internal/domain/entity"
)

// PasswordSignIn emisión de tokens con email y contraseña. Solo la implementa el
// proveedor de identidad local; con Firebase el cliente obtiene el token directamente.
type PasswordSignIn interface {
	SignIn(ctx context.Context, email, password string) (token string, ident *entity.Identity, err error)
}
