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

func newRequestFixture() (*RequestService, *repository.MemoryRequestStore) {
	requests := repository.NewMemoryRequestStore()
	return NewRequestService(requests, zerolog.Nop()), requests
}

func buyerWithPhone(phone string) models.User {
	user := models.User{
		ID:         ids.New(),
		Email:      "buyer@b.dz",
		Roles:      []models.Role{models.RoleBuyer},
		ActiveRole: models.RoleBuyer,
	}
	if phone != "" {
		user.Phone = &phone
	}
	return user
}

func validInput() CreateRequestInput {
	return CreateRequestInput{
		Title:       "Colis Alger centre",
		PickupText:  "Didouche Mourad, Alger",
		DropoffText: "Bab Ezzouar",
		BudgetDZD:   800,
	}
}

func TestCreateRequest(t *testing.T) {
	svc, _ := newRequestFixture()
	ctx := context.Background()

	req, err := svc.Create(ctx, buyerWithPhone("0550123456"), validInput())
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusOpen, req.Status)
	assert.Equal(t, models.EscrowAwaitingPayment, req.Escrow)
	assert.Equal(t, "0550123456", req.Contact, "contact falls back to the buyer's phone")

	req, err = svc.Create(ctx, buyerWithPhone(""), validInput())
	require.NoError(t, err)
	assert.Equal(t, "buyer@b.dz", req.Contact, "then to the buyer's email")
}

func TestCreateRequestValidation(t *testing.T) {
	svc, _ := newRequestFixture()
	ctx := context.Background()
	buyer := buyerWithPhone("")

	input := validInput()
	input.Title = "  "
	_, err := svc.Create(ctx, buyer, input)
	assert.ErrorIs(t, err, ErrRequestInvalid)

	input = validInput()
	input.BudgetDZD = 0
	_, err = svc.Create(ctx, buyer, input)
	assert.ErrorIs(t, err, ErrRequestInvalid)
}

func TestAcceptRequest(t *testing.T) {
	svc, _ := newRequestFixture()
	ctx := context.Background()

	buyer := buyerWithPhone("0550123456")
	req, err := svc.Create(ctx, buyer, validInput())
	require.NoError(t, err)

	driver := models.User{ID: ids.New(), Roles: []models.Role{models.RoleDriver}, ActiveRole: models.RoleDriver}

	t.Run("buyer cannot take own request", func(t *testing.T) {
		_, err := svc.Accept(ctx, buyer, req.ID)
		assert.ErrorIs(t, err, ErrOwnRequest)
	})

	t.Run("driver accepts an open request", func(t *testing.T) {
		accepted, err := svc.Accept(ctx, driver, req.ID)
		require.NoError(t, err)
		assert.Equal(t, models.RequestStatusAccepted, accepted.Status)
		assert.Equal(t, models.EscrowHeld, accepted.Escrow)
		require.NotNil(t, accepted.DriverID)
		assert.Equal(t, driver.ID, *accepted.DriverID)
	})

	t.Run("accepted request is no longer open", func(t *testing.T) {
		other := models.User{ID: ids.New(), Roles: []models.Role{models.RoleDriver}, ActiveRole: models.RoleDriver}
		_, err := svc.Accept(ctx, other, req.ID)
		assert.ErrorIs(t, err, models.ErrRequestNotOpen)

		open, err := svc.ListOpen(ctx, 10, 0)
		require.NoError(t, err)
		assert.Empty(t, open)
	})
}
