package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/tenant-admin/internal/domain"
	"github.com/jhoicas/tenant-admin/internal/domain/repository"
)

var _ repository.SidebarVersionRepository = (*SidebarVersionRepo)(nil)

// SidebarVersionRepo contador de versiones en memoria.
type SidebarVersionRepo struct {
	mu       sync.Mutex
	versions map[string]int64
}

// NewSidebarVersionRepository construye el contador con todas las versiones en 0.
func NewSidebarVersionRepository() *SidebarVersionRepo {
	return &SidebarVersionRepo{versions: make(map[string]int64)}
}

// Current devuelve la versión vigente.
func (r *SidebarVersionRepo) Current(_ context.Context, scope string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.versions[scope], nil
}

// Advance incrementa la versión si coincide con expected.
func (r *SidebarVersionRepo) Advance(_ context.Context, scope string, expected int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.versions[scope] != expected {
		return 0, domain.ErrConflict
	}
	r.versions[scope] = expected + 1
	return expected + 1, nil
}
