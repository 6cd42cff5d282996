package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"mtogo/auth/internal/models"
	"mtogo/auth/internal/security"
)

const (
	DefaultMaxSessions   = 3
	DefaultTTL           = 24 * time.Hour
	DefaultRememberMeTTL = 30 * 24 * time.Hour
)

// createdAt is written with millisecond precision in UTC, e.g.
// 2024-05-01T10:00:00.000Z.
const createdAtLayout = "2006-01-02T15:04:05.000Z07:00"

type Options struct {
	MaxSessions   int
	TTL           time.Duration
	RememberMeTTL time.Duration
	NewToken      func() string
	Now           func() time.Time
}

func (o Options) withDefaults() Options {
	if o.MaxSessions <= 0 {
		o.MaxSessions = DefaultMaxSessions
	}
	if o.TTL <= 0 {
		o.TTL = DefaultTTL
	}
	if o.RememberMeTTL <= 0 {
		o.RememberMeTTL = DefaultRememberMeTTL
	}
	if o.NewToken == nil {
		o.NewToken = security.NewSessionToken
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

type Manager struct {
	store Store
	opts  Options
}

func NewManager(store Store, opts Options) *Manager {
	return &Manager{
		store: store,
		opts:  opts.withDefaults(),
	}
}

func (m *Manager) MaxSessions() int {
	return m.opts.MaxSessions
}

// Issued is the result of a successful issuance.
type Issued struct {
	Token string
	TTL   time.Duration
	// Evicted is the token that was dropped to make room, if any.
	Evicted string
}

func (i Issued) TTLSeconds() int64 {
	return int64(i.TTL / time.Second)
}

// Identity is what a valid session vouches for.
type Identity struct {
	Email       string
	PrincipalID string
	Role        models.Role
	CreatedAt   time.Time
}

type record struct {
	Email     string `json:"email"`
	UserID    string `json:"userId"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
}

// Issue creates a session for the principal, evicting its oldest session
// first when the index is already at MaxSessions.
func (m *Manager) Issue(ctx context.Context, email, principalID string, role models.Role, rememberMe bool) (Issued, error) {
	if email == "" || principalID == "" {
		return Issued{}, fmt.Errorf("session: email and principal id are required")
	}
	if !role.Valid() {
		return Issued{}, fmt.Errorf("session: %w", models.ErrUnknownRole)
	}

	index := indexKey(principalID)

	tokens, err := m.store.LRange(ctx, index)
	if err != nil {
		return Issued{}, unavailable("read index", err)
	}

	var evicted string
	if len(tokens) >= m.opts.MaxSessions {
		evicted = tokens[0]
		if err := m.store.Del(ctx, recordKey(evicted)); err != nil {
			return Issued{}, unavailable("evict session", err)
		}
		if err := m.store.LPop(ctx, index); err != nil {
			return Issued{}, unavailable("pop index", err)
		}
	}

	ttl := m.opts.TTL
	if rememberMe {
		ttl = m.opts.RememberMeTTL
	}

	token := m.opts.NewToken()
	payload, err := json.Marshal(record{
		Email:     email,
		UserID:    principalID,
		Role:      role.String(),
		CreatedAt: m.opts.Now().UTC().Format(createdAtLayout),
	})
	if err != nil {
		return Issued{}, fmt.Errorf("session: marshal record: %w", err)
	}

	if err := m.store.Set(ctx, recordKey(token), string(payload), ttl); err != nil {
		return Issued{}, unavailable("write session", err)
	}
	if err := m.store.RPush(ctx, index, token); err != nil {
		return Issued{}, unavailable("append index", err)
	}
	if err := m.store.Expire(ctx, index, ttl); err != nil {
		return Issued{}, unavailable("expire index", err)
	}

	return Issued{Token: token, TTL: ttl, Evicted: evicted}, nil
}

// Validate resolves a token to the identity it was issued for.
func (m *Manager) Validate(ctx context.Context, token string) (Identity, error) {
	raw, err := m.load(ctx, token)
	if err != nil {
		return Identity{}, err
	}
	return decodeRecord(raw)
}

// Revoke deletes the session and drops it from its owner's index. Revoking an
// unknown or expired token is an error, not a no-op.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	raw, err := m.load(ctx, token)
	if err != nil {
		return err
	}

	var errs []error

	// The index may already be gone (see package doc); LREM on a missing key
	// is harmless, and the record is deleted regardless.
	var rec record
	if json.Unmarshal([]byte(raw), &rec) == nil && rec.UserID != "" {
		if err := m.store.LRem(ctx, indexKey(rec.UserID), token); err != nil {
			errs = append(errs, unavailable("remove from index", err))
		}
	}
	if err := m.store.Del(ctx, recordKey(token)); err != nil {
		errs = append(errs, unavailable("delete session", err))
	}

	return errors.Join(errs...)
}

// Listed is one entry of a principal's session index.
type Listed struct {
	Token    string
	Identity Identity
	// Stale marks an index entry whose record has expired, been deleted, or
	// no longer decodes.
	Stale bool
}

// List returns the principal's indexed sessions, oldest first. Stale entries
// are reported, not repaired.
func (m *Manager) List(ctx context.Context, principalID string) ([]Listed, error) {
	tokens, err := m.store.LRange(ctx, indexKey(principalID))
	if err != nil {
		return nil, unavailable("read index", err)
	}

	out := make([]Listed, 0, len(tokens))
	for _, token := range tokens {
		entry := Listed{Token: token}
		identity, err := m.Validate(ctx, token)
		switch {
		case err == nil:
			entry.Identity = identity
		case errors.Is(err, ErrInvalidOrExpiredSession), errors.Is(err, ErrMalformedSession):
			entry.Stale = true
		default:
			return nil, err
		}
		out = append(out, entry)
	}
	return out, nil
}

func (m *Manager) load(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrInvalidOrExpiredSession
	}
	raw, err := m.store.Get(ctx, recordKey(token))
	if errors.Is(err, ErrNotFound) {
		return "", ErrInvalidOrExpiredSession
	}
	if err != nil {
		return "", unavailable("read session", err)
	}
	return raw, nil
}

func decodeRecord(raw string) (Identity, error) {
	var rec record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrMalformedSession, err)
	}
	if rec.Email == "" || rec.UserID == "" {
		return Identity{}, fmt.Errorf("%w: missing email or userId", ErrMalformedSession)
	}
	role, err := models.ParseRole(rec.Role)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrMalformedSession, err)
	}

	identity := Identity{
		Email:       rec.Email,
		PrincipalID: rec.UserID,
		Role:        role,
	}
	if ts, err := time.Parse(time.RFC3339Nano, rec.CreatedAt); err == nil {
		identity.CreatedAt = ts
	}
	return identity, nil
}
