package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Role int

const (
	RoleCustomer Role = iota + 1
	RoleRestaurant
	RoleAdmin
)

var ErrUnknownRole = errors.New("unknown role")

func (r Role) String() string {
	switch r {
	case RoleCustomer:
		return "customer"
	case RoleRestaurant:
		return "restaurant"
	case RoleAdmin:
		return "admin"
	default:
		return ""
	}
}

// ParseRole maps a stored role tag onto the closed role set. Matching is
// case-insensitive so tags written by older services as "ADMIN" still resolve.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "customer":
		return RoleCustomer, nil
	case "restaurant":
		return RoleRestaurant, nil
	case "admin":
		return RoleAdmin, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

func (r Role) Valid() bool {
	return r >= RoleCustomer && r <= RoleAdmin
}

// In reports whether r is one of allowed. The zero Role is never a member.
func (r Role) In(allowed ...Role) bool {
	if !r.Valid() {
		return false
	}
	for _, a := range allowed {
		if a == r {
			return true
		}
	}
	return false
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, ErrUnknownRole
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Principal is the credential view of any account kind.
type Principal struct {
	ID           string
	Email        string
	PasswordHash []byte
	Role         Role
}

type Customer struct {
	ID           string
	FirstName    string
	LastName     string
	Phone        string
	Email        string
	PasswordHash []byte
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (c Customer) Principal() Principal {
	return Principal{ID: c.ID, Email: c.Email, PasswordHash: c.PasswordHash, Role: c.Role}
}

type Address struct {
	Street string
	City   string
	Zip    string
	X      float64
	Y      float64
}

type Restaurant struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	PasswordHash []byte
	Role         Role
	Address      Address
	RegNo        string
	AccountNo    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (r Restaurant) Principal() Principal {
	return Principal{ID: r.ID, Email: r.Email, PasswordHash: r.PasswordHash, Role: r.Role}
}

type Admin struct {
	ID           string
	Email        string
	PasswordHash []byte
	Role         Role
	CreatedAt    time.Time
}

func (a Admin) Principal() Principal {
	return Principal{ID: a.ID, Email: a.Email, PasswordHash: a.PasswordHash, Role: a.Role}
}
