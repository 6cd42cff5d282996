package service

import (
	"context"
	"errors"

	"mtogo/auth/internal/models"
	"mtogo/auth/internal/repository"
)

var (
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrRestaurantNotFound = errors.New("restaurant not found")
)

// ProfileService serves the read-only profile lookups other services use.
type ProfileService struct {
	customers   CustomerStore
	restaurants RestaurantStore
}

func NewProfileService(customers CustomerStore, restaurants RestaurantStore) *ProfileService {
	return &ProfileService{customers: customers, restaurants: restaurants}
}

func (s *ProfileService) Restaurant(ctx context.Context, id string) (models.Restaurant, error) {
	restaurant, err := s.restaurants.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Restaurant{}, ErrRestaurantNotFound
	}
	return restaurant, err
}

func (s *ProfileService) RestaurantsByZip(ctx context.Context, zip string) ([]models.Restaurant, error) {
	return s.restaurants.ListByZip(ctx, zip)
}

type CustomerAndRestaurant struct {
	Customer   models.Customer
	Restaurant models.Restaurant
}

// CustomerAndRestaurant loads both records. When both are missing the
// restaurant error wins.
func (s *ProfileService) CustomerAndRestaurant(ctx context.Context, customerID, restaurantID string) (CustomerAndRestaurant, error) {
	customer, customerErr := s.customers.GetByID(ctx, customerID)
	if customerErr != nil && !errors.Is(customerErr, repository.ErrNotFound) {
		return CustomerAndRestaurant{}, customerErr
	}
	restaurant, restaurantErr := s.restaurants.GetByID(ctx, restaurantID)
	if restaurantErr != nil && !errors.Is(restaurantErr, repository.ErrNotFound) {
		return CustomerAndRestaurant{}, restaurantErr
	}

	switch {
	case restaurantErr != nil:
		return CustomerAndRestaurant{}, ErrRestaurantNotFound
	case customerErr != nil:
		return CustomerAndRestaurant{}, ErrCustomerNotFound
	}
	return CustomerAndRestaurant{Customer: customer, Restaurant: restaurant}, nil
}
