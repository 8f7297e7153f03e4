package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwitchRoleKeepsActiveRoleInHeldSet(t *testing.T) {
	user := User{
		Roles:      []Role{RoleBuyer, RoleDriver},
		ActiveRole: RoleBuyer,
	}

	err := user.SwitchRole(RoleSeller)
	require.ErrorIs(t, err, ErrRoleNotHeld)
	assert.Equal(t, RoleBuyer, user.ActiveRole, "rejected switch must not mutate state")

	require.NoError(t, user.SwitchRole(RoleDriver))
	assert.Equal(t, RoleDriver, user.ActiveRole)
	assert.True(t, user.HasRole(user.ActiveRole))
}

func TestEnrollRoleIsIdempotent(t *testing.T) {
	user := User{Roles: []Role{RoleBuyer}, ActiveRole: RoleBuyer}

	user.EnrollRole(RoleSeller)
	user.EnrollRole(RoleSeller)

	assert.Equal(t, []Role{RoleBuyer, RoleSeller}, user.Roles)
	assert.Equal(t, RoleBuyer, user.ActiveRole, "enrollment never changes the active role")
}

func TestCanAccess(t *testing.T) {
	seller := &User{Roles: []Role{RoleBuyer, RoleSeller}, ActiveRole: RoleBuyer}

	assert.True(t, CanAccess(nil, nil), "no requirements admits anonymous")
	assert.True(t, CanAccess(nil, []Role{}))
	assert.True(t, CanAccess(seller, nil))

	assert.False(t, CanAccess(nil, []Role{RoleSeller}), "anonymous fails any requirement")
	assert.True(t, CanAccess(seller, []Role{RoleSeller}), "held role grants access even while inactive")
	assert.False(t, CanAccess(seller, []Role{RoleDriver}))
	assert.True(t, CanAccess(seller, []Role{RoleDriver, RoleBuyer}), "any intersection suffices")
}

func TestParseRoleRejectsUnknown(t *testing.T) {
	for _, valid := range []string{"buyer", "seller", "driver"} {
		role, err := ParseRole(valid)
		require.NoError(t, err)
		assert.Equal(t, Role(valid), role)
	}

	_, err := ParseRole("admin")
	assert.Error(t, err)
}

func TestWorkerRoles(t *testing.T) {
	assert.False(t, RoleBuyer.IsWorker())
	assert.True(t, RoleSeller.IsWorker())
	assert.True(t, RoleDriver.IsWorker())
}
