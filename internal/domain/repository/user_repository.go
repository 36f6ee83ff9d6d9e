package repository

import (
	"context"

	"github.com/jhoicas/tenant-admin/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para los registros de usuario (DIP).
// El id del registro es el uid del proveedor de identidad.
type UserRepository interface {
	// Create persiste un registro nuevo con u.ID como clave.
	Create(ctx context.Context, u *entity.User) error
	// GetByID devuelve domain.ErrUserNotFound si no existe.
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// List devuelve todos los registros en el orden natural del almacén.
	List(ctx context.Context) ([]*entity.User, error)
	// Update aplica los campos presentes del patch y fija updatedAt.
	Update(ctx context.Context, id string, patch entity.UserPatch) (*entity.User, error)
	Delete(ctx context.Context, id string) error
}
