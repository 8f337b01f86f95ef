package repository

import (
	"context"
	"time"

	"github.com/donorops/backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UsersRepository persists staff accounts.
type UsersRepository struct {
	pool *pgxpool.Pool
}

const userColumns = `id, email, name, password_hash, role, is_active, last_login_at, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.PasswordHash,
		&u.Role,
		&u.IsActive,
		&u.LastLoginAt,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &u, nil
}

// Create inserts a new user. A duplicate email surfaces as a unique
// violation on unique_users_email, which sqlerr maps to a friendly
// conflict response.
func (r *UsersRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (id, email, name, password_hash, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+userColumns,
		u.ID, u.Email, u.Name, u.PasswordHash, u.Role, u.IsActive,
	)
	return scanUser(row)
}

// GetByID fetches a user by primary key.
func (r *UsersRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// GetByEmail fetches a user by email. Email comparison is exact; the
// service lowercases emails before storage and lookup.
func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// Update persists email, name, and role changes. The service merges
// partial updates onto the stored record before calling this.
func (r *UsersRepository) Update(ctx context.Context, u *domain.User) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE users
		SET email = $2, name = $3, role = $4, updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns,
		u.ID, u.Email, u.Name, u.Role,
	)
	return scanUser(row)
}

// SetPassword replaces a user's password hash.
func (r *UsersRepository) SetPassword(ctx context.Context, id uuid.UUID, hash string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1
	`, id, hash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetActive activates or deactivates an account. Deactivated users can
// no longer log in but their history is preserved.
func (r *UsersRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE users
		SET is_active = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns,
		id, active,
	)
	return scanUser(row)
}

// TouchLastLogin stamps the user's last successful login time.
func (r *UsersRepository) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET last_login_at = $2 WHERE id = $1`, id, at)
	return err
}

// List returns users ordered by creation time, optionally filtered by
// role, with limit/offset pagination. It also reports the total count
// for the filter.
func (r *UsersRepository) List(ctx context.Context, role *domain.UserRole, limit, offset int) ([]domain.User, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM users WHERE ($1::text IS NULL OR role = $1)
	`, role).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE ($1::text IS NULL OR role = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, role, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return users, total, nil
}
