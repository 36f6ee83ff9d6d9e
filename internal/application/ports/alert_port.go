package ports

import (
	"context"

	"github.com/jhoicas/tenant-admin/internal/domain/entity"
)

// AlertPublisher publica avisos operativos cuando queda una identidad huérfana.
type AlertPublisher interface {
	PublishOrphan(ctx context.Context, o *entity.Orphan) error
}
