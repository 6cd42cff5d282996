package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mtogo/auth/internal/models"
)

// AdminRepository is read-only; admin accounts are provisioned out of band.
type AdminRepository struct {
	pool *pgxpool.Pool
}

func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (models.Principal, error) {
	const query = `
		SELECT id, email, password_hash, role, created_at
		FROM admins WHERE email = $1
	`

	var (
		admin models.Admin
		role  string
	)
	if err := r.pool.QueryRow(ctx, query, email).Scan(
		&admin.ID,
		&admin.Email,
		&admin.PasswordHash,
		&role,
		&admin.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Principal{}, ErrNotFound
		}
		return models.Principal{}, err
	}

	parsed, err := models.ParseRole(role)
	if err != nil {
		return models.Principal{}, fmt.Errorf("admin %s: %w", admin.ID, err)
	}
	admin.Role = parsed
	return admin.Principal(), nil
}
