package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/tenant-admin/internal/domain"
	"github.com/jhoicas/tenant-admin/internal/domain/entity"
	"github.com/jhoicas/tenant-admin/internal/domain/repository"
)

var _ repository.OrphanRepository = (*OrphanRepo)(nil)

// OrphanRepo registro de huérfanos en la tabla identity_orphans.
type OrphanRepo struct {
	pool *pgxpool.Pool
}

// NewOrphanRepository construye el adaptador.
func NewOrphanRepository(pool *pgxpool.Pool) *OrphanRepo {
	return &OrphanRepo{pool: pool}
}

// Record inserta o reemplaza la entrada del uid.
func (r *OrphanRepo) Record(ctx context.Context, o *entity.Orphan) error {
	query := `
		INSERT INTO identity_orphans (uid, email, kind, reason, detected_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (uid) DO UPDATE
		SET email = EXCLUDED.email, kind = EXCLUDED.kind, reason = EXCLUDED.reason, detected_at = EXCLUDED.detected_at`
	if _, err := r.pool.Exec(ctx, query, o.UID, o.Email, o.Kind, o.Reason, o.DetectedAt); err != nil {
		return fmt.Errorf("record orphan: %w", err)
	}
	return nil
}

// List devuelve los huérfanos por fecha de detección.
func (r *OrphanRepo) List(ctx context.Context) ([]*entity.Orphan, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT uid, email, kind, reason, detected_at FROM identity_orphans ORDER BY detected_at, uid`)
	if err != nil {
		return nil, fmt.Errorf("list orphans: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Orphan, 0)
	for rows.Next() {
		var o entity.Orphan
		if err := rows.Scan(&o.UID, &o.Email, &o.Kind, &o.Reason, &o.DetectedAt); err != nil {
			return nil, fmt.Errorf("scan orphan: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// Get devuelve domain.ErrNotFound si el uid no está registrado.
func (r *OrphanRepo) Get(ctx context.Context, uid string) (*entity.Orphan, error) {
	var o entity.Orphan
	err := r.pool.QueryRow(ctx, `
		SELECT uid, email, kind, reason, detected_at FROM identity_orphans WHERE uid = $1`, uid,
	).Scan(&o.UID, &o.Email, &o.Kind, &o.Reason, &o.DetectedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get orphan: %w", err)
	}
	return &o, nil
}

// Resolve quita la entrada.
func (r *OrphanRepo) Resolve(ctx context.Context, uid string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM identity_orphans WHERE uid = $1`, uid); err != nil {
		return fmt.Errorf("resolve orphan: %w", err)
	}
	return nil
}
