package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tawsila/internal/ids"
	"tawsila/internal/models"
	"tawsila/internal/repository"
)

func seedUser(t *testing.T, users *repository.MemoryUserStore, roles []models.Role, active models.Role) models.User {
	t.Helper()
	user := models.User{
		ID:           ids.New(),
		Email:        "u@b.dz",
		Roles:        roles,
		ActiveRole:   active,
		Availability: models.AvailabilityOffline,
		Status:       models.UserStatusActive,
	}
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func TestSwitchRoleRequiresHeldRole(t *testing.T) {
	users := repository.NewMemoryUserStore()
	svc := NewProfileService(users, nil, zerolog.Nop())
	ctx := context.Background()

	user := seedUser(t, users, []models.Role{models.RoleBuyer, models.RoleDriver}, models.RoleBuyer)

	_, err := svc.SwitchRole(ctx, user.ID, models.RoleSeller)
	assert.ErrorIs(t, err, models.ErrRoleNotHeld)

	stored, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleBuyer, stored.ActiveRole, "rejected switch leaves the profile untouched")

	updated, err := svc.SwitchRole(ctx, user.ID, models.RoleDriver)
	require.NoError(t, err)
	assert.Equal(t, models.RoleDriver, updated.ActiveRole)
	assert.ElementsMatch(t, []models.Role{models.RoleBuyer, models.RoleDriver}, updated.Roles, "held set is unchanged by switching")
}

func TestEnrollRoleIsIdempotent(t *testing.T) {
	users := repository.NewMemoryUserStore()
	svc := NewProfileService(users, nil, zerolog.Nop())
	ctx := context.Background()

	user := seedUser(t, users, []models.Role{models.RoleBuyer}, models.RoleBuyer)

	updated, err := svc.EnrollRole(ctx, user.ID, models.RoleSeller)
	require.NoError(t, err)
	assert.ElementsMatch(t, []models.Role{models.RoleBuyer, models.RoleSeller}, updated.Roles)
	assert.Equal(t, models.RoleBuyer, updated.ActiveRole, "enrolling never changes the active role")

	again, err := svc.EnrollRole(ctx, user.ID, models.RoleSeller)
	require.NoError(t, err)
	assert.ElementsMatch(t, updated.Roles, again.Roles)
}

func TestSetAvailability(t *testing.T) {
	users := repository.NewMemoryUserStore()
	svc := NewProfileService(users, nil, zerolog.Nop())
	ctx := context.Background()

	t.Run("driver can go online", func(t *testing.T) {
		user := seedUser(t, users, []models.Role{models.RoleDriver}, models.RoleDriver)
		updated, err := svc.SetAvailability(ctx, user.ID, models.AvailabilityOnline)
		require.NoError(t, err)
		assert.Equal(t, models.AvailabilityOnline, updated.Availability)
	})

	t.Run("buyer has no availability", func(t *testing.T) {
		user := seedUser(t, users, []models.Role{models.RoleBuyer, models.RoleSeller}, models.RoleBuyer)
		_, err := svc.SetAvailability(ctx, user.ID, models.AvailabilityOnline)
		assert.ErrorIs(t, err, ErrNotWorkerRole)
	})
}
