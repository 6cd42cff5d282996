package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mtogo/auth/internal/models"
)

type CustomerRepository struct {
	pool *pgxpool.Pool
}

func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

const customerColumns = `id, first_name, last_name, phone, email, password_hash, role, created_at, updated_at`

func (r *CustomerRepository) Create(ctx context.Context, customer models.Customer) (models.Customer, error) {
	query := `
		INSERT INTO customers (id, first_name, last_name, phone, email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING ` + customerColumns

	row := r.pool.QueryRow(ctx, query,
		customer.ID,
		customer.FirstName,
		customer.LastName,
		customer.Phone,
		customer.Email,
		customer.PasswordHash,
		customer.Role.String(),
	)
	created, err := scanCustomer(row)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Customer{}, ErrDuplicateEmail
		}
		return models.Customer{}, err
	}
	return created, nil
}

// FindByEmail matches the email exactly as stored.
func (r *CustomerRepository) FindByEmail(ctx context.Context, email string) (models.Principal, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE email = $1`
	customer, err := scanCustomer(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		return models.Principal{}, err
	}
	return customer.Principal(), nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id string) (models.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	return scanCustomer(r.pool.QueryRow(ctx, query, id))
}

func scanCustomer(row pgx.Row) (models.Customer, error) {
	var (
		customer models.Customer
		role     string
	)
	if err := row.Scan(
		&customer.ID,
		&customer.FirstName,
		&customer.LastName,
		&customer.Phone,
		&customer.Email,
		&customer.PasswordHash,
		&role,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Customer{}, ErrNotFound
		}
		return models.Customer{}, err
	}

	parsed, err := models.ParseRole(role)
	if err != nil {
		return models.Customer{}, fmt.Errorf("customer %s: %w", customer.ID, err)
	}
	customer.Role = parsed
	return customer, nil
}
