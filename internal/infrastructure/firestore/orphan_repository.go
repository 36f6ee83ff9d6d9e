package firestore

import (
	"context"
	"fmt"
	"time"

	fs "cloud.google.com/go/firestore"

	"github.com/jhoicas/tenant-admin/internal/domain"
	"github.com/jhoicas/tenant-admin/internal/domain/entity"
	"github.com/jhoicas/tenant-admin/internal/domain/repository"
)

var _ repository.OrphanRepository = (*OrphanRepo)(nil)

type orphanDoc struct {
	UID        string    `firestore:"-"`
	Email      string    `firestore:"email"`
	Kind       string    `firestore:"kind"`
	Reason     string    `firestore:"reason"`
	DetectedAt time.Time `firestore:"detectedAt"`
}

// OrphanRepo registro de huérfanos; el id del documento es el uid.
type OrphanRepo struct {
	client *fs.Client
}

// NewOrphanRepository construye el repositorio.
func NewOrphanRepository(client *fs.Client) *OrphanRepo {
	return &OrphanRepo{client: client}
}

func (r *OrphanRepo) col() *fs.CollectionRef {
	return r.client.Collection(OrphansCollection)
}

// Record inserta o reemplaza la entrada.
func (r *OrphanRepo) Record(ctx context.Context, o *entity.Orphan) error {
	d := orphanDoc{Email: o.Email, Kind: o.Kind, Reason: o.Reason, DetectedAt: o.DetectedAt}
	if _, err := r.col().Doc(o.UID).Set(ctx, d); err != nil {
		return fmt.Errorf("firestore: registrar huérfano %s: %w", o.UID, err)
	}
	return nil
}

// List devuelve los huérfanos por fecha de detección.
func (r *OrphanRepo) List(ctx context.Context) ([]*entity.Orphan, error) {
	snaps, err := r.col().OrderBy("detectedAt", fs.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("firestore: listar huérfanos: %w", err)
	}
	out := make([]*entity.Orphan, 0, len(snaps))
	for _, s := range snaps {
		o, err := decodeOrphan(s)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

// Get devuelve domain.ErrNotFound si el uid no está registrado.
func (r *OrphanRepo) Get(ctx context.Context, uid string) (*entity.Orphan, error) {
	snap, err := r.col().Doc(uid).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("firestore: leer huérfano %s: %w", uid, err)
	}
	return decodeOrphan(snap)
}

// Resolve quita la entrada.
func (r *OrphanRepo) Resolve(ctx context.Context, uid string) error {
	if _, err := r.col().Doc(uid).Delete(ctx); err != nil {
		return fmt.Errorf("firestore: resolver huérfano %s: %w", uid, err)
	}
	return nil
}

func decodeOrphan(s *fs.DocumentSnapshot) (*entity.Orphan, error) {
	var d orphanDoc
	if err := s.DataTo(&d); err != nil {
		return nil, fmt.Errorf("firestore: decodificar huérfano %s: %w", s.Ref.ID, err)
	}
	return &entity.Orphan{
		UID:        s.Ref.ID,
		Email:      d.Email,
		Kind:       d.Kind,
		Reason:     d.Reason,
		DetectedAt: d.DetectedAt,
	}, nil
}
