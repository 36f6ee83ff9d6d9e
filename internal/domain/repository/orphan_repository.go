package repository

import (
	"context"

	"github.com/jhoicas/tenant-admin/internal/domain/entity"
)

// OrphanRepository registro de uids con identidad y documento desincronizados.
type OrphanRepository interface {
	// Record inserta o reemplaza la entrada del uid.
	Record(ctx context.Context, o *entity.Orphan) error
	List(ctx context.Context) ([]*entity.Orphan, error)
	// Get devuelve domain.ErrNotFound si el uid no está registrado.
	Get(ctx context.Context, uid string) (*entity.Orphan, error)
	Resolve(ctx context.Context, uid string) error
}
