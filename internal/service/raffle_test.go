package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sorteo-app/raffles-api/internal/domain"
)

func TestRaffleService_Sell(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()

	owner := s.registerEntity(t, "AcmeCorp")
	alice := s.registerManager(t, owner, "alice")
	project := s.createProject(t, owner, "Spring Drive")
	s.createRaffleSet(t, owner, project.ProjectNumber, 5)
	buyer := s.createBuyer(t, owner, "Jane Roe", "555-0100")

	t.Run("a manager always sells as themselves", func(t *testing.T) {
		forged := uint(42)
		sold, err := s.raffles.Sell(ctx, alice, project.ProjectNumber, 1, buyer.BuyerNumber, domain.PaymentCash, &forged)
		require.NoError(t, err)
		require.NotNil(t, sold.SoldByManagerNumber)
		assert.Equal(t, alice.ManagerNumber, *sold.SoldByManagerNumber)
	})

	t.Run("an entity may name a seller", func(t *testing.T) {
		sold, err := s.raffles.Sell(ctx, owner, project.ProjectNumber, 2, buyer.BuyerNumber, domain.PaymentCard, &alice.ManagerNumber)
		require.NoError(t, err)
		require.NotNil(t, sold.SoldByManagerNumber)
		assert.Equal(t, alice.ManagerNumber, *sold.SoldByManagerNumber)
	})

	t.Run("an entity may sell with no seller at all", func(t *testing.T) {
		sold, err := s.raffles.Sell(ctx, owner, project.ProjectNumber, 3, buyer.BuyerNumber, domain.PaymentTransfer, nil)
		require.NoError(t, err)
		assert.Nil(t, sold.SoldByManagerNumber)
	})

	t.Run("a named seller must exist", func(t *testing.T) {
		ghost := uint(99)
		_, err := s.raffles.Sell(ctx, owner, project.ProjectNumber, 4, buyer.BuyerNumber, domain.PaymentCash, &ghost)
		assert.ErrorIs(t, err, ErrManagerNotFound)
	})

	t.Run("selling twice fails the second time", func(t *testing.T) {
		_, err := s.raffles.Sell(ctx, owner, project.ProjectNumber, 1, buyer.BuyerNumber, domain.PaymentCash, nil)
		assert.ErrorIs(t, err, ErrRaffleNotSellable)
	})
}

func TestRaffleService_OwnershipOnMutation(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()

	owner := s.registerEntity(t, "AcmeCorp")
	alice := s.registerManager(t, owner, "alice")
	bob := s.registerManager(t, owner, "bob")
	project := s.createProject(t, owner, "Spring Drive")
	s.createRaffleSet(t, owner, project.ProjectNumber, 5)
	buyer := s.createBuyer(t, owner, "Jane Roe", "555-0100")

	_, err := s.raffles.Sell(ctx, alice, project.ProjectNumber, 2, buyer.BuyerNumber, domain.PaymentCash, nil)
	require.NoError(t, err)

	reserved := domain.RaffleReserved

	t.Run("another manager may not touch a sold raffle", func(t *testing.T) {
		_, err := s.raffles.Update(ctx, bob, project.ProjectNumber, 2, RaffleUpdate{State: &reserved})
		assert.ErrorIs(t, err, ErrPermissionDenied)

		assert.ErrorIs(t, s.raffles.Delete(ctx, bob, project.ProjectNumber, 2), ErrPermissionDenied)
	})

	t.Run("an unsold raffle has no owner, so managers are locked out", func(t *testing.T) {
		_, err := s.raffles.Update(ctx, bob, project.ProjectNumber, 3, RaffleUpdate{State: &reserved})
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("the selling manager and the entity may", func(t *testing.T) {
		_, err := s.raffles.Update(ctx, alice, project.ProjectNumber, 2, RaffleUpdate{})
		assert.NoError(t, err)

		updated, err := s.raffles.Update(ctx, owner, project.ProjectNumber, 3, RaffleUpdate{State: &reserved})
		require.NoError(t, err)
		assert.Equal(t, domain.RaffleReserved, updated.State)
	})

	t.Run("both roles may read", func(t *testing.T) {
		_, err := s.raffles.Get(ctx, bob, project.ProjectNumber, 2)
		assert.NoError(t, err)
	})
}

func TestRaffleSetService_Create(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()

	owner := s.registerEntity(t, "AcmeCorp")
	alice := s.registerManager(t, owner, "alice")
	project := s.createProject(t, owner, "Spring Drive")

	t.Run("zero quantity is rejected before touching the store", func(t *testing.T) {
		_, err := s.raffleSets.Create(ctx, owner, domain.RaffleSet{
			ProjectNumber: project.ProjectNumber,
			Name:          "empty",
			Type:          domain.SetTypeOnline,
		}, 0)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("managers may not create sets", func(t *testing.T) {
		_, err := s.raffleSets.Create(ctx, alice, domain.RaffleSet{
			ProjectNumber: project.ProjectNumber,
			Name:          "batch",
			Type:          domain.SetTypeOnline,
		}, 3)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})
}
