package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mtogo/auth/internal/models"
	"mtogo/auth/internal/session"
)

func TestCustomerLoginIssuesSession(t *testing.T) {
	f := newFixture(t)
	f.customers.principalTable["a@x.dk"] = models.Principal{
		ID: "c1", Email: "a@x.dk", PasswordHash: mustHash(t, "secret"), Role: models.RoleCustomer,
	}

	res, err := f.svc.CustomerLogin(context.Background(), LoginInput{Email: "a@x.dk", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "c1", res.PrincipalID)
	assert.Equal(t, models.RoleCustomer, res.Role)
	assert.Equal(t, int64(86400), res.Session.TTLSeconds())

	identity, err := f.svc.Validate(context.Background(), res.Session.Token)
	require.NoError(t, err)
	assert.Equal(t, "c1", identity.PrincipalID)
	assert.Equal(t, []models.AuditEventType{models.AuditLoginSucceeded}, f.audit.types())
}

func TestRememberMeExtendsTTL(t *testing.T) {
	f := newFixture(t)
	f.restaurants.principalTable["r@x.dk"] = models.Principal{
		ID: "r1", Email: "r@x.dk", PasswordHash: mustHash(t, "pw"), Role: models.RoleRestaurant,
	}

	res, err := f.svc.RestaurantLogin(context.Background(), LoginInput{Email: "r@x.dk", Password: "pw", RememberMe: true})
	require.NoError(t, err)
	assert.Equal(t, "r1", res.PrincipalID)
	assert.Equal(t, int64(2592000), res.Session.TTLSeconds())
}

func TestInvalidCredentialsAreIndistinguishable(t *testing.T) {
	f := newFixture(t)
	f.admins["boss@x.dk"] = models.Principal{
		ID: "a1", Email: "boss@x.dk", PasswordHash: mustHash(t, "right"), Role: models.RoleAdmin,
	}

	_, unknownErr := f.svc.ManagementLogin(context.Background(), LoginInput{Email: "nobody@x.dk", Password: "right"})
	_, wrongErr := f.svc.ManagementLogin(context.Background(), LoginInput{Email: "boss@x.dk", Password: "wrong"})

	require.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	require.ErrorIs(t, wrongErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
	assert.Empty(t, f.redis.Keys())
	assert.Equal(t, []models.AuditEventType{models.AuditLoginFailed, models.AuditLoginFailed}, f.audit.types())
}

func TestCorruptHashIsInvalidCredentials(t *testing.T) {
	f := newFixture(t)
	f.customers.principalTable["a@x.dk"] = models.Principal{
		ID: "c1", Email: "a@x.dk", PasswordHash: []byte("plaintext"), Role: models.RoleCustomer,
	}

	_, err := f.svc.CustomerLogin(context.Background(), LoginInput{Email: "a@x.dk", Password: "plaintext"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLookupFailureIsNotInvalidCredentials(t *testing.T) {
	f := newFixture(t)
	f.svc.admins = failingFinder{}

	_, err := f.svc.ManagementLogin(context.Background(), LoginInput{Email: "boss@x.dk", Password: "pw"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestFourthLoginEvictsOldest(t *testing.T) {
	f := newFixture(t)
	f.customers.principalTable["a@x.dk"] = models.Principal{
		ID: "c1", Email: "a@x.dk", PasswordHash: mustHash(t, "pw"), Role: models.RoleCustomer,
	}

	var tokens []string
	for i := 0; i < 4; i++ {
		res, err := f.svc.CustomerLogin(context.Background(), LoginInput{Email: "a@x.dk", Password: "pw"})
		require.NoError(t, err)
		tokens = append(tokens, res.Session.Token)
	}

	_, err := f.svc.Validate(context.Background(), tokens[0])
	assert.ErrorIs(t, err, session.ErrInvalidOrExpiredSession)
	assert.Contains(t, f.audit.types(), models.AuditSessionEvicted)

	listed, err := f.svc.ListSessions(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, tokens[1], listed[0].Token)
}

func TestLogoutRevokesSession(t *testing.T) {
	f := newFixture(t)
	f.customers.principalTable["a@x.dk"] = models.Principal{
		ID: "c1", Email: "a@x.dk", PasswordHash: mustHash(t, "pw"), Role: models.RoleCustomer,
	}
	res, err := f.svc.CustomerLogin(context.Background(), LoginInput{Email: "a@x.dk", Password: "pw"})
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(context.Background(), res.Session.Token, "corr-1"))
	_, err = f.svc.Validate(context.Background(), res.Session.Token)
	assert.ErrorIs(t, err, session.ErrInvalidOrExpiredSession)

	err = f.svc.Logout(context.Background(), res.Session.Token, "corr-2")
	assert.ErrorIs(t, err, session.ErrInvalidOrExpiredSession)
}

func TestAuditFailureDoesNotFailLogin(t *testing.T) {
	f := newFixture(t)
	f.audit.err = errors.New("stream unavailable")
	f.customers.principalTable["a@x.dk"] = models.Principal{
		ID: "c1", Email: "a@x.dk", PasswordHash: mustHash(t, "pw"), Role: models.RoleCustomer,
	}

	_, err := f.svc.CustomerLogin(context.Background(), LoginInput{Email: "a@x.dk", Password: "pw"})
	assert.NoError(t, err)
}

func TestRegisterCustomerThenLogin(t *testing.T) {
	f := newFixture(t)

	customer, err := f.svc.RegisterCustomer(context.Background(), RegisterCustomerInput{
		FirstName: "John", LastName: "Doe", Phone: "12345678", Email: "john@x.dk", Password: "pw",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, customer.ID)
	assert.Equal(t, models.RoleCustomer, customer.Role)
	assert.NotEqual(t, []byte("pw"), customer.PasswordHash)

	res, err := f.svc.CustomerLogin(context.Background(), LoginInput{Email: "john@x.dk", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, customer.ID, res.PrincipalID)

	_, err = f.svc.RegisterCustomer(context.Background(), RegisterCustomerInput{Email: "john@x.dk", Password: "other"})
	assert.ErrorIs(t, err, ErrCustomerExists)
}

func TestRegisterRestaurantGeocodes(t *testing.T) {
	f := newFixture(t)

	restaurant, err := f.svc.RegisterRestaurant(context.Background(), RegisterRestaurantInput{
		Name:     "Pizza Place",
		Email:    "pizza@x.dk",
		Password: "pw",
		Address:  models.Address{Street: "Vesterbrogade 1", City: "København", Zip: "1620"},
	})
	require.NoError(t, err)
	assert.Equal(t, 12.5683, restaurant.Address.X)
	assert.Equal(t, 55.6761, restaurant.Address.Y)

	_, err = f.svc.RegisterRestaurant(context.Background(), RegisterRestaurantInput{
		Email: "pizza@x.dk", Password: "pw", Address: models.Address{Zip: "1620"},
	})
	assert.ErrorIs(t, err, ErrRestaurantExists)
}

func TestRegisterRestaurantUnresolvableAddress(t *testing.T) {
	f := newFixture(t)
	f.svc.geocoder = fakeGeocoder{err: errors.New("no coordinates found for address")}

	_, err := f.svc.RegisterRestaurant(context.Background(), RegisterRestaurantInput{Email: "r@x.dk", Password: "pw"})
	assert.ErrorIs(t, err, ErrAddressNotResolved)
	assert.Empty(t, f.restaurants.byID)
}

func TestNilAuditPublisher(t *testing.T) {
	f := newFixture(t)
	f.svc = NewAuthService(f.customers, f.restaurants, f.admins, f.svc.sessions, fakeGeocoder{}, nil, zerolog.Nop())
	f.customers.principalTable["a@x.dk"] = models.Principal{
		ID: "c1", Email: "a@x.dk", PasswordHash: mustHash(t, "pw"), Role: models.RoleCustomer,
	}

	_, err := f.svc.CustomerLogin(context.Background(), LoginInput{Email: "a@x.dk", Password: "pw"})
	assert.NoError(t, err)
}
