package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/tenant-admin/internal/domain"
	"github.com/jhoicas/tenant-admin/internal/domain/entity"
	"github.com/jhoicas/tenant-admin/internal/domain/repository"
)

var _ repository.OrphanRepository = (*OrphanRepo)(nil)

// OrphanRepo registro de huérfanos en memoria.
type OrphanRepo struct {
	mu      sync.RWMutex
	orphans map[string]entity.Orphan
}

// NewOrphanRepository construye un registro vacío.
func NewOrphanRepository() *OrphanRepo {
	return &OrphanRepo{orphans: make(map[string]entity.Orphan)}
}

// Record inserta o reemplaza la entrada del uid.
func (r *OrphanRepo) Record(_ context.Context, o *entity.Orphan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orphans[o.UID] = *o
	return nil
}

// List devuelve las entradas por fecha de detección.
func (r *OrphanRepo) List(_ context.Context) ([]*entity.Orphan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Orphan, 0, len(r.orphans))
	for _, o := range r.orphans {
		out = append(out, &o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DetectedAt.Before(out[j].DetectedAt) })
	return out, nil
}

// Get obtiene la entrada de un uid.
func (r *OrphanRepo) Get(_ context.Context, uid string) (*entity.Orphan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orphans[uid]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &o, nil
}

// Resolve quita la entrada.
func (r *OrphanRepo) Resolve(_ context.Context, uid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.orphans, uid)
	return nil
}
