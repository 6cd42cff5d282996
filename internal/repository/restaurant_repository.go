package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mtogo/auth/internal/ids"
	"mtogo/auth/internal/models"
)

type RestaurantRepository struct {
	pool *pgxpool.Pool
}

func NewRestaurantRepository(pool *pgxpool.Pool) *RestaurantRepository {
	return &RestaurantRepository{pool: pool}
}

const restaurantSelect = `
	SELECT r.id, r.name, r.email, r.phone, r.password_hash, r.role, r.reg_no, r.account_no,
	       a.street, a.city, a.zip, a.x, a.y, r.created_at, r.updated_at
	FROM restaurants r
	JOIN addresses a ON a.id = r.address_id
`

// Create inserts the address and the restaurant in one transaction.
func (r *RestaurantRepository) Create(ctx context.Context, restaurant models.Restaurant) (models.Restaurant, error) {
	var created models.Restaurant

	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		addressID := ids.New()
		if _, err := tx.Exec(ctx, `
			INSERT INTO addresses (id, street, city, zip, x, y)
			VALUES ($1, $2, $3, $4, $5, $6)
		`,
			addressID,
			restaurant.Address.Street,
			restaurant.Address.City,
			restaurant.Address.Zip,
			restaurant.Address.X,
			restaurant.Address.Y,
		); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO restaurants (
				id, name, email, phone, password_hash, role, address_id, reg_no, account_no, created_at, updated_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW()
			)
		`,
			restaurant.ID,
			restaurant.Name,
			restaurant.Email,
			restaurant.Phone,
			restaurant.PasswordHash,
			restaurant.Role.String(),
			addressID,
			restaurant.RegNo,
			restaurant.AccountNo,
		); err != nil {
			return err
		}

		var err error
		created, err = scanRestaurant(tx.QueryRow(ctx, restaurantSelect+` WHERE r.id = $1`, restaurant.ID))
		return err
	})
	if err != nil {
		if isUniqueViolation(err) {
			return models.Restaurant{}, ErrDuplicateEmail
		}
		return models.Restaurant{}, err
	}
	return created, nil
}

func (r *RestaurantRepository) FindByEmail(ctx context.Context, email string) (models.Principal, error) {
	restaurant, err := scanRestaurant(r.pool.QueryRow(ctx, restaurantSelect+` WHERE r.email = $1`, email))
	if err != nil {
		return models.Principal{}, err
	}
	return restaurant.Principal(), nil
}

func (r *RestaurantRepository) GetByID(ctx context.Context, id string) (models.Restaurant, error) {
	return scanRestaurant(r.pool.QueryRow(ctx, restaurantSelect+` WHERE r.id = $1`, id))
}

func (r *RestaurantRepository) ListByZip(ctx context.Context, zip string) ([]models.Restaurant, error) {
	rows, err := r.pool.Query(ctx, restaurantSelect+` WHERE a.zip = $1 ORDER BY r.name`, zip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	restaurants := []models.Restaurant{}
	for rows.Next() {
		restaurant, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		restaurants = append(restaurants, restaurant)
	}
	return restaurants, rows.Err()
}

func scanRestaurant(row pgx.Row) (models.Restaurant, error) {
	var (
		restaurant models.Restaurant
		role       string
	)
	if err := row.Scan(
		&restaurant.ID,
		&restaurant.Name,
		&restaurant.Email,
		&restaurant.Phone,
		&restaurant.PasswordHash,
		&role,
		&restaurant.RegNo,
		&restaurant.AccountNo,
		&restaurant.Address.Street,
		&restaurant.Address.City,
		&restaurant.Address.Zip,
		&restaurant.Address.X,
		&restaurant.Address.Y,
		&restaurant.CreatedAt,
		&restaurant.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Restaurant{}, ErrNotFound
		}
		return models.Restaurant{}, err
	}

	parsed, err := models.ParseRole(role)
	if err != nil {
		return models.Restaurant{}, fmt.Errorf("restaurant %s: %w", restaurant.ID, err)
	}
	restaurant.Role = parsed
	return restaurant, nil
}
