package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for in, want := range map[string]Role{
		"customer":   RoleCustomer,
		"Restaurant": RoleRestaurant,
		" ADMIN ":    RoleAdmin,
	} {
		got, err := ParseRole(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseRole("driver")
	assert.ErrorIs(t, err, ErrUnknownRole)
	_, err = ParseRole("")
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestRoleIn(t *testing.T) {
	assert.True(t, RoleAdmin.In(RoleCustomer, RoleAdmin))
	assert.False(t, RoleRestaurant.In(RoleCustomer, RoleAdmin))
	assert.False(t, RoleCustomer.In())
	assert.False(t, Role(0).In(Role(0)), "no role is never allowed")
}

func TestRoleJSON(t *testing.T) {
	out, err := json.Marshal(map[string]Role{"role": RoleRestaurant})
	require.NoError(t, err)
	assert.JSONEq(t, `{"role":"restaurant"}`, string(out))

	var back struct {
		Role Role `json:"role"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"role":"Admin"}`), &back))
	assert.Equal(t, RoleAdmin, back.Role)

	_, err = json.Marshal(Role(0))
	assert.Error(t, err)
}
