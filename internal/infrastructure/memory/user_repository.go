// Package memory implementa los repositorios en memoria para desarrollo local y tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/tenant-admin/internal/domain"
	"github.com/jhoicas/tenant-admin/internal/domain/entity"
	"github.com/jhoicas/tenant-admin/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo registros de usuario en memoria; List respeta el orden de inserción.
type UserRepo struct {
	mu    sync.RWMutex
	order []string
	users map[string]entity.User
	now   func() time.Time
}

// NewUserRepository construye un repositorio vacío.
func NewUserRepository() *UserRepo {
	return &UserRepo{users: make(map[string]entity.User), now: time.Now}
}

// Create persiste un registro nuevo.
func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; ok {
		return domain.ErrAlreadyExists
	}
	r.users[u.ID] = *u
	r.order = append(r.order, u.ID)
	return nil
}

// GetByID obtiene un registro por uid.
func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

// List devuelve todos los registros.
func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.User, 0, len(r.order))
	for _, id := range r.order {
		u := r.users[id]
		out = append(out, &u)
	}
	return out, nil
}

// Update aplica el patch y fija updatedAt.
func (r *UserRepo) Update(_ context.Context, id string, patch entity.UserPatch) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	patch.Apply(&u)
	u.UpdatedAt = r.now()
	r.users[id] = u
	return &u, nil
}

// Delete elimina el registro; borrar un uid inexistente no es error.
func (r *UserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return nil
	}
	delete(r.users, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
