package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"mtogo/auth/internal/geocode"
	"mtogo/auth/internal/ids"
	"mtogo/auth/internal/metrics"
	"mtogo/auth/internal/models"
	"mtogo/auth/internal/repository"
	"mtogo/auth/internal/security"
	"mtogo/auth/internal/session"
)

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrCustomerExists     = errors.New("customer email already registered")
	ErrRestaurantExists   = errors.New("restaurant email already registered")
	ErrAddressNotResolved = errors.New("address could not be geocoded")
)

const (
	KindCustomer   = "customer"
	KindRestaurant = "restaurant"
	KindManagement = "management"
)

type CredentialStore interface {
	FindByEmail(ctx context.Context, email string) (models.Principal, error)
}

type CustomerStore interface {
	CredentialStore
	Create(ctx context.Context, customer models.Customer) (models.Customer, error)
	GetByID(ctx context.Context, id string) (models.Customer, error)
}

type RestaurantStore interface {
	CredentialStore
	Create(ctx context.Context, restaurant models.Restaurant) (models.Restaurant, error)
	GetByID(ctx context.Context, id string) (models.Restaurant, error)
	ListByZip(ctx context.Context, zip string) ([]models.Restaurant, error)
}

type AuditPublisher interface {
	Publish(ctx context.Context, event models.AuditEvent) error
}

type AuthService struct {
	customers   CustomerStore
	restaurants RestaurantStore
	admins      CredentialStore
	sessions    *session.Manager
	geocoder    geocode.Geocoder
	audit       AuditPublisher
	log         zerolog.Logger
}

func NewAuthService(
	customers CustomerStore,
	restaurants RestaurantStore,
	admins CredentialStore,
	sessions *session.Manager,
	geocoder geocode.Geocoder,
	audit AuditPublisher,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		customers:   customers,
		restaurants: restaurants,
		admins:      admins,
		sessions:    sessions,
		geocoder:    geocoder,
		audit:       audit,
		log:         log,
	}
}

type LoginInput struct {
	Email         string
	Password      string
	RememberMe    bool
	CorrelationID string
}

type LoginResult struct {
	Session     session.Issued
	PrincipalID string
	Role        models.Role
}

func (s *AuthService) CustomerLogin(ctx context.Context, input LoginInput) (LoginResult, error) {
	return s.login(ctx, KindCustomer, s.customers, input)
}

func (s *AuthService) RestaurantLogin(ctx context.Context, input LoginInput) (LoginResult, error) {
	return s.login(ctx, KindRestaurant, s.restaurants, input)
}

func (s *AuthService) ManagementLogin(ctx context.Context, input LoginInput) (LoginResult, error) {
	return s.login(ctx, KindManagement, s.admins, input)
}

func (s *AuthService) login(ctx context.Context, kind string, store CredentialStore, input LoginInput) (LoginResult, error) {
	principal, err := verifyCredentials(ctx, store, input.Email, input.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			s.log.Warn().
				Str("correlation_id", input.CorrelationID).
				Str("kind", kind).
				Str("email", input.Email).
				Msg("invalid credentials")
			metrics.Logins.WithLabelValues(kind, "invalid_credentials").Inc()
			s.publish(ctx, models.AuditEvent{
				Type:          models.AuditLoginFailed,
				Kind:          kind,
				CorrelationID: input.CorrelationID,
			})
		} else {
			metrics.Logins.WithLabelValues(kind, "error").Inc()
		}
		return LoginResult{}, err
	}

	issued, err := s.sessions.Issue(ctx, principal.Email, principal.ID, principal.Role, input.RememberMe)
	if err != nil {
		metrics.Logins.WithLabelValues(kind, "error").Inc()
		return LoginResult{}, fmt.Errorf("issue session: %w", err)
	}

	if issued.Evicted != "" {
		metrics.SessionsEvicted.Inc()
		s.publish(ctx, models.AuditEvent{
			Type:          models.AuditSessionEvicted,
			PrincipalID:   principal.ID,
			Kind:          kind,
			CorrelationID: input.CorrelationID,
		})
	}

	metrics.Logins.WithLabelValues(kind, "success").Inc()
	s.publish(ctx, models.AuditEvent{
		Type:          models.AuditLoginSucceeded,
		PrincipalID:   principal.ID,
		Kind:          kind,
		CorrelationID: input.CorrelationID,
	})
	s.log.Info().
		Str("correlation_id", input.CorrelationID).
		Str("kind", kind).
		Str("principal_id", principal.ID).
		Bool("remember_me", input.RememberMe).
		Msg("login succeeded")

	return LoginResult{
		Session:     issued,
		PrincipalID: principal.ID,
		Role:        principal.Role,
	}, nil
}

// verifyCredentials never reveals whether the email exists: a missing
// principal, a wrong password and an unreadable hash all return
// ErrInvalidCredentials.
func verifyCredentials(ctx context.Context, store CredentialStore, email, password string) (models.Principal, error) {
	principal, err := store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Principal{}, ErrInvalidCredentials
		}
		return models.Principal{}, fmt.Errorf("find principal: %w", err)
	}

	ok, err := security.VerifyPassword(password, principal.PasswordHash)
	if err != nil || !ok {
		return models.Principal{}, ErrInvalidCredentials
	}
	return principal, nil
}

func (s *AuthService) Validate(ctx context.Context, token string) (session.Identity, error) {
	return s.sessions.Validate(ctx, token)
}

func (s *AuthService) Logout(ctx context.Context, token string, correlationID string) error {
	if err := s.sessions.Revoke(ctx, token); err != nil {
		outcome := "error"
		if errors.Is(err, session.ErrInvalidOrExpiredSession) {
			outcome = "invalid_session"
		}
		metrics.Logouts.WithLabelValues(outcome).Inc()
		return err
	}

	metrics.Logouts.WithLabelValues("success").Inc()
	s.publish(ctx, models.AuditEvent{
		Type:          models.AuditSessionRevoked,
		CorrelationID: correlationID,
	})
	return nil
}

func (s *AuthService) ListSessions(ctx context.Context, principalID string) ([]session.Listed, error) {
	return s.sessions.List(ctx, principalID)
}

type RegisterCustomerInput struct {
	FirstName string
	LastName  string
	Phone     string
	Email     string
	Password  string
}

func (s *AuthService) RegisterCustomer(ctx context.Context, input RegisterCustomerInput) (models.Customer, error) {
	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return models.Customer{}, err
	}

	customer, err := s.customers.Create(ctx, models.Customer{
		ID:           ids.New(),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Phone:        input.Phone,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         models.RoleCustomer,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return models.Customer{}, ErrCustomerExists
		}
		return models.Customer{}, fmt.Errorf("create customer: %w", err)
	}
	return customer, nil
}

type RegisterRestaurantInput struct {
	Name      string
	Email     string
	Phone     string
	Password  string
	Address   models.Address
	RegNo     string
	AccountNo string
}

func (s *AuthService) RegisterRestaurant(ctx context.Context, input RegisterRestaurantInput) (models.Restaurant, error) {
	lon, lat, err := s.geocoder.Lookup(ctx, input.Address)
	if err != nil {
		s.log.Warn().Err(err).Str("zip", input.Address.Zip).Msg("geocoding failed")
		return models.Restaurant{}, fmt.Errorf("%w: %v", ErrAddressNotResolved, err)
	}

	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return models.Restaurant{}, err
	}

	address := input.Address
	address.X = lon
	address.Y = lat

	restaurant, err := s.restaurants.Create(ctx, models.Restaurant{
		ID:           ids.New(),
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: hash,
		Role:         models.RoleRestaurant,
		Address:      address,
		RegNo:        input.RegNo,
		AccountNo:    input.AccountNo,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return models.Restaurant{}, ErrRestaurantExists
		}
		return models.Restaurant{}, fmt.Errorf("create restaurant: %w", err)
	}
	return restaurant, nil
}

// publish is best effort; an audit outage never fails the request.
func (s *AuthService) publish(ctx context.Context, event models.AuditEvent) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Publish(ctx, event); err != nil {
		s.log.Warn().Err(err).Str("event", string(event.Type)).Msg("audit publish failed")
	}
}
