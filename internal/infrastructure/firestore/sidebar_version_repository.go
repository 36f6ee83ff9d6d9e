package firestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	fs "cloud.google.com/go/firestore"

	"github.com/jhoicas/tenant-admin/internal/domain"
	"github.com/jhoicas/tenant-admin/internal/domain/repository"
)

var _ repository.SidebarVersionRepository = (*SidebarVersionRepo)(nil)

// SidebarVersionRepo contador de versión por scope, un documento por scope.
type SidebarVersionRepo struct {
	client *fs.Client
}

// NewSidebarVersionRepository construye el repositorio.
func NewSidebarVersionRepository(client *fs.Client) *SidebarVersionRepo {
	return &SidebarVersionRepo{client: client}
}

// Current devuelve 0 si el scope nunca se escribió.
func (r *SidebarVersionRepo) Current(ctx context.Context, scope string) (int64, error) {
	snap, err := r.client.Collection(SidebarVersionCollection).Doc(scope).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("firestore: leer versión %s: %w", scope, err)
	}
	return versionOf(snap), nil
}

// Advance incrementa la versión dentro de una transacción.
func (r *SidebarVersionRepo) Advance(ctx context.Context, scope string, expected int64) (int64, error) {
	ref := r.client.Collection(SidebarVersionCollection).Doc(scope)
	var next int64
	err := r.client.RunTransaction(ctx, func(_ context.Context, tx *fs.Transaction) error {
		var current int64
		snap, err := tx.Get(ref)
		switch {
		case err == nil:
			current = versionOf(snap)
		case isNotFound(err):
			current = 0
		default:
			return err
		}
		if current != expected {
			return domain.ErrConflict
		}
		next = current + 1
		return tx.Set(ref, map[string]any{"version": next, "updatedAt": time.Now()})
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return 0, err
		}
		return 0, fmt.Errorf("firestore: avanzar versión %s: %w", scope, err)
	}
	return next, nil
}

func versionOf(snap *fs.DocumentSnapshot) int64 {
	v, _ := snap.Data()["version"].(int64)
	return v
}
