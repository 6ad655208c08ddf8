package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	t.Run("accepts canonical codes and display names", func(t *testing.T) {
		for _, info := range Roles {
			role, err := ParseRole(string(info.Code))
			require.NoError(t, err)
			assert.Equal(t, info.Code, role)

			role, err = ParseRole(info.Name)
			require.NoError(t, err)
			assert.Equal(t, info.Code, role)
		}
	})

	t.Run("is case-sensitive", func(t *testing.T) {
		for _, s := range []string{"manager", "MANAGER", "superadmin", "super admin", " Manager"} {
			_, err := ParseRole(s)
			assert.ErrorIs(t, err, ErrUnknownRole, s)
		}
	})

	t.Run("rejects roles outside the catalog", func(t *testing.T) {
		_, err := ParseRole("Owner")
		assert.ErrorIs(t, err, ErrUnknownRole)
		_, err = ParseRole("")
		assert.ErrorIs(t, err, ErrUnknownRole)
	})
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleCashier.Valid())
	assert.False(t, Role("cashier").Valid())
	assert.False(t, Role("").Valid())
	assert.Equal(t, "Inventory Clerk", RoleInventoryClerk.DisplayName())
	assert.Equal(t, "Owner", Role("Owner").DisplayName())
}
