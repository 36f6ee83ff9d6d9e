package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/tenant-admin/internal/domain"
	"github.com/jhoicas/tenant-admin/internal/domain/entity"
	"github.com/jhoicas/tenant-admin/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, email, display_name, company_name, role, status, department, position,
	subscription_type, photo_url, created_at, created_by, updated_at, last_login_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
	tx   *TxRunner
	now  func() time.Time
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool, tx: NewTxRunner(pool), now: time.Now}
}

// Create persiste un nuevo registro.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.pool.Exec(ctx, query,
		u.ID, u.Email, u.DisplayName, u.CompanyName, u.Role, u.Status, u.Department, u.Position,
		u.SubscriptionType, u.PhotoURL, u.CreatedAt, u.CreatedBy, u.UpdatedAt, u.LastLoginAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un registro por uid.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return findUser(ctx, r.pool, id, false)
}

// List devuelve todos los registros por fecha de alta.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// Update bloquea la fila, aplica el patch y reescribe los campos editables.
func (r *UserRepo) Update(ctx context.Context, id string, patch entity.UserPatch) (*entity.User, error) {
	var out *entity.User
	err := r.tx.Run(ctx, func(q Querier) error {
		u, err := findUser(ctx, q, id, true)
		if err != nil {
			return err
		}
		patch.Apply(u)
		u.UpdatedAt = r.now()
		query := `
			UPDATE users SET display_name = $2, company_name = $3, role = $4, status = $5,
				department = $6, position = $7, subscription_type = $8, updated_at = $9
			WHERE id = $1`
		if _, err := q.Exec(ctx, query,
			u.ID, u.DisplayName, u.CompanyName, u.Role, u.Status,
			u.Department, u.Position, u.SubscriptionType, u.UpdatedAt,
		); err != nil {
			return fmt.Errorf("update user: %w", err)
		}
		out = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete elimina un registro por uid.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func findUser(ctx context.Context, q Querier, id string, forUpdate bool) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	u, err := scanUser(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.Email, &u.DisplayName, &u.CompanyName, &u.Role, &u.Status, &u.Department, &u.Position,
		&u.SubscriptionType, &u.PhotoURL, &u.CreatedAt, &u.CreatedBy, &u.UpdatedAt, &u.LastLoginAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
