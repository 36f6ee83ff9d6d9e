// Package firestore implementa los repositorios sobre Cloud Firestore.
package firestore

import (
	"context"
	"fmt"
	"sort"
	"time"

	fs "cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/jhoicas/tenant-admin/internal/domain"
	"github.com/jhoicas/tenant-admin/internal/domain/entity"
	"github.com/jhoicas/tenant-admin/internal/domain/repository"
	"github.com/jhoicas/tenant-admin/internal/domain/user"
)

// Colecciones.
const (
	UsersCollection          = "users"
	OrphansCollection        = "identity_orphans"
	SidebarVersionCollection = "sidebar_versions"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo registros de usuario; el id del documento es el uid de Firebase Auth.
type UserRepo struct {
	client *fs.Client
	now    func() time.Time
}

// NewUserRepository construye el repositorio.
func NewUserRepository(client *fs.Client) *UserRepo {
	return &UserRepo{client: client, now: time.Now}
}

func (r *UserRepo) col() *fs.CollectionRef {
	return r.client.Collection(UsersCollection)
}

// Create persiste un documento nuevo; falla con domain.ErrAlreadyExists si el uid ya existe.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	if _, err := r.col().Doc(u.ID).Create(ctx, user.ToDocument(u)); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("firestore: crear usuario %s: %w", u.ID, err)
	}
	return nil
}

// GetByID obtiene un documento por uid.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("firestore: leer usuario %s: %w", id, err)
	}
	return user.FromDocument(snap.Ref.ID, snap.Data()), nil
}

// List devuelve todos los documentos de la colección.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	snaps, err := r.col().Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("firestore: listar usuarios: %w", err)
	}
	out := make([]*entity.User, 0, len(snaps))
	for _, s := range snaps {
		out = append(out, user.FromDocument(s.Ref.ID, s.Data()))
	}
	return out, nil
}

// Update escribe solo los campos presentes y devuelve el documento resultante.
func (r *UserRepo) Update(ctx context.Context, id string, patch entity.UserPatch) (*entity.User, error) {
	updates := buildUpdates(user.PatchDocument(patch, r.now()))
	if _, err := r.col().Doc(id).Update(ctx, updates); err != nil {
		if isNotFound(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("firestore: actualizar usuario %s: %w", id, err)
	}
	return r.GetByID(ctx, id)
}

// Delete borra el documento. Firestore no falla si no existe.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.col().Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("firestore: borrar usuario %s: %w", id, err)
	}
	return nil
}

// buildUpdates convierte un mapa de campos en updates de Firestore en orden estable.
func buildUpdates(fields map[string]any) []fs.Update {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	updates := make([]fs.Update, 0, len(keys))
	for _, k := range keys {
		updates = append(updates, fs.Update{Path: k, Value: fields[k]})
	}
	return updates
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}
