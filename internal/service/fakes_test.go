package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"mtogo/auth/internal/models"
	"mtogo/auth/internal/repository"
	"mtogo/auth/internal/security"
	"mtogo/auth/internal/session"
)

var fastParams = security.Argon2Params{Time: 1, Memory: 1024, Threads: 1, KeyLen: 16, SaltLen: 8}

func mustHash(t *testing.T, password string) []byte {
	t.Helper()
	hash, err := security.HashPasswordWithParams(password, fastParams)
	require.NoError(t, err)
	return hash
}

type principalTable map[string]models.Principal

func (p principalTable) FindByEmail(_ context.Context, email string) (models.Principal, error) {
	principal, ok := p[email]
	if !ok {
		return models.Principal{}, repository.ErrNotFound
	}
	return principal, nil
}

type fakeCustomers struct {
	principalTable
	byID map[string]models.Customer
}

func newFakeCustomers() *fakeCustomers {
	return &fakeCustomers{principalTable: principalTable{}, byID: map[string]models.Customer{}}
}

func (f *fakeCustomers) Create(_ context.Context, c models.Customer) (models.Customer, error) {
	if _, ok := f.principalTable[c.Email]; ok {
		return models.Customer{}, repository.ErrDuplicateEmail
	}
	f.principalTable[c.Email] = c.Principal()
	f.byID[c.ID] = c
	return c, nil
}

func (f *fakeCustomers) GetByID(_ context.Context, id string) (models.Customer, error) {
	c, ok := f.byID[id]
	if !ok {
		return models.Customer{}, repository.ErrNotFound
	}
	return c, nil
}

type fakeRestaurants struct {
	principalTable
	byID map[string]models.Restaurant
}

func newFakeRestaurants() *fakeRestaurants {
	return &fakeRestaurants{principalTable: principalTable{}, byID: map[string]models.Restaurant{}}
}

func (f *fakeRestaurants) Create(_ context.Context, r models.Restaurant) (models.Restaurant, error) {
	if _, ok := f.principalTable[r.Email]; ok {
		return models.Restaurant{}, repository.ErrDuplicateEmail
	}
	f.principalTable[r.Email] = r.Principal()
	f.byID[r.ID] = r
	return r, nil
}

func (f *fakeRestaurants) GetByID(_ context.Context, id string) (models.Restaurant, error) {
	r, ok := f.byID[id]
	if !ok {
		return models.Restaurant{}, repository.ErrNotFound
	}
	return r, nil
}

func (f *fakeRestaurants) ListByZip(_ context.Context, zip string) ([]models.Restaurant, error) {
	var out []models.Restaurant
	for _, r := range f.byID {
		if r.Address.Zip == zip {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeGeocoder struct {
	lon, lat float64
	err      error
}

func (g fakeGeocoder) Lookup(context.Context, models.Address) (float64, float64, error) {
	return g.lon, g.lat, g.err
}

type recordingAudit struct {
	mu     sync.Mutex
	events []models.AuditEvent
	err    error
}

func (r *recordingAudit) Publish(_ context.Context, event models.AuditEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return r.err
}

func (r *recordingAudit) types() []models.AuditEventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.AuditEventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

type failingFinder struct{}

func (failingFinder) FindByEmail(context.Context, string) (models.Principal, error) {
	return models.Principal{}, errors.New("connection reset")
}

type fixture struct {
	svc         *AuthService
	customers   *fakeCustomers
	restaurants *fakeRestaurants
	admins      principalTable
	audit       *recordingAudit
	redis       *miniredis.Miniredis
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	f := &fixture{
		customers:   newFakeCustomers(),
		restaurants: newFakeRestaurants(),
		admins:      principalTable{},
		audit:       &recordingAudit{},
		redis:       mr,
	}
	manager := session.NewManager(session.NewRedisStore(client), session.Options{})
	f.svc = NewAuthService(f.customers, f.restaurants, f.admins, manager,
		fakeGeocoder{lon: 12.5683, lat: 55.6761}, f.audit, zerolog.Nop())
	return f
}
