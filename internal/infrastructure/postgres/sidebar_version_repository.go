package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/tenant-admin/internal/domain"
	"github.com/jhoicas/tenant-admin/internal/domain/repository"
)

var _ repository.SidebarVersionRepository = (*SidebarVersionRepo)(nil)

// SidebarVersionRepo contador de versión por scope en la tabla sidebar_versions.
type SidebarVersionRepo struct {
	pool *pgxpool.Pool
}

// NewSidebarVersionRepository construye el adaptador.
func NewSidebarVersionRepository(pool *pgxpool.Pool) *SidebarVersionRepo {
	return &SidebarVersionRepo{pool: pool}
}

// Current devuelve 0 si el scope no tiene fila.
func (r *SidebarVersionRepo) Current(ctx context.Context, scope string) (int64, error) {
	var v int64
	err := r.pool.QueryRow(ctx, `SELECT version FROM sidebar_versions WHERE scope = $1`, scope).Scan(&v)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("get sidebar version: %w", err)
	}
	return v, nil
}

// Advance hace el compare-and-set en una sola sentencia: sin fila afectada hay conflicto.
func (r *SidebarVersionRepo) Advance(ctx context.Context, scope string, expected int64) (int64, error) {
	var query string
	if expected == 0 {
		query = `
			INSERT INTO sidebar_versions (scope, version, updated_at) VALUES ($1, 1, now())
			ON CONFLICT (scope) DO UPDATE SET version = 1, updated_at = now()
			WHERE sidebar_versions.version = $2
			RETURNING version`
	} else {
		query = `
			UPDATE sidebar_versions SET version = version + 1, updated_at = now()
			WHERE scope = $1 AND version = $2
			RETURNING version`
	}
	var next int64
	if err := r.pool.QueryRow(ctx, query, scope, expected).Scan(&next); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrConflict
		}
		return 0, fmt.Errorf("advance sidebar version: %w", err)
	}
	return next, nil
}
