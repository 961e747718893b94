package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sorteo-app/raffles-api/internal/domain"
)

func TestBuyerService_Create(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()

	owner := s.registerEntity(t, "AcmeCorp")
	alice := s.registerManager(t, owner, "alice")

	t.Run("manager callers are recorded as creator", func(t *testing.T) {
		buyer, err := s.buyers.Create(ctx, alice, domain.Buyer{
			Name:  "Jane Roe",
			Phone: "555-0100",
		})
		require.NoError(t, err)
		require.NotNil(t, buyer.CreatedByManagerNumber)
		assert.Equal(t, alice.ManagerNumber, *buyer.CreatedByManagerNumber)
		assert.Equal(t, owner.EntityID, buyer.EntityID)
	})

	t.Run("entity callers leave the creator empty", func(t *testing.T) {
		buyer, err := s.buyers.Create(ctx, owner, domain.Buyer{
			Name:  "John Doe",
			Phone: "555-0101",
		})
		require.NoError(t, err)
		assert.Nil(t, buyer.CreatedByManagerNumber)
	})

	t.Run("duplicates surface the constraint error", func(t *testing.T) {
		_, err := s.buyers.Create(ctx, owner, domain.Buyer{
			Name:  "Jane Roe",
			Phone: "555-0100",
		})
		assert.ErrorIs(t, err, ErrBuyerExists)
	})
}

func TestBuyerService_List(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()

	owner := s.registerEntity(t, "AcmeCorp")
	alice := s.registerManager(t, owner, "alice")
	bob := s.registerManager(t, owner, "bob")

	s.createBuyer(t, alice, "Jane Roe", "555-0100")
	s.createBuyer(t, bob, "John Doe", "555-0101")
	s.createBuyer(t, owner, "Mary Major", "555-0102")

	t.Run("entity sees everyone", func(t *testing.T) {
		buyers, err := s.buyers.List(ctx, owner, nil, 0, 0)
		require.NoError(t, err)
		assert.Len(t, buyers, 3)
	})

	t.Run("entity may narrow by creator", func(t *testing.T) {
		buyers, err := s.buyers.List(ctx, owner, &bob.ManagerNumber, 0, 0)
		require.NoError(t, err)
		require.Len(t, buyers, 1)
		assert.Equal(t, "John Doe", buyers[0].Name)
	})

	t.Run("manager only sees its own, despite a foreign filter", func(t *testing.T) {
		buyers, err := s.buyers.List(ctx, alice, &bob.ManagerNumber, 0, 0)
		require.NoError(t, err)
		require.Len(t, buyers, 1)
		assert.Equal(t, "Jane Roe", buyers[0].Name)
	})
}

func TestBuyerService_OwnershipOnMutation(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()

	owner := s.registerEntity(t, "AcmeCorp")
	alice := s.registerManager(t, owner, "alice")
	bob := s.registerManager(t, owner, "bob")

	buyer := s.createBuyer(t, alice, "Jane Roe", "555-0100")
	newName := "Jane R. Roe"

	t.Run("creator may update", func(t *testing.T) {
		updated, err := s.buyers.Update(ctx, alice, buyer.BuyerNumber, BuyerUpdate{Name: &newName})
		require.NoError(t, err)
		assert.Equal(t, newName, updated.Name)
	})

	t.Run("another manager may not", func(t *testing.T) {
		_, err := s.buyers.Update(ctx, bob, buyer.BuyerNumber, BuyerUpdate{Name: &newName})
		assert.ErrorIs(t, err, ErrPermissionDenied)

		assert.ErrorIs(t, s.buyers.Delete(ctx, bob, buyer.BuyerNumber), ErrPermissionDenied)
	})

	t.Run("the entity always may", func(t *testing.T) {
		_, err := s.buyers.Update(ctx, owner, buyer.BuyerNumber, BuyerUpdate{Name: &newName})
		assert.NoError(t, err)
	})

	t.Run("a nulled creator locks managers out", func(t *testing.T) {
		require.NoError(t, s.managers.Delete(ctx, owner, alice.ManagerNumber))

		_, err := s.buyers.Update(ctx, alice, buyer.BuyerNumber, BuyerUpdate{Name: &newName})
		assert.ErrorIs(t, err, ErrPermissionDenied)

		_, err = s.buyers.Update(ctx, owner, buyer.BuyerNumber, BuyerUpdate{Name: &newName})
		assert.NoError(t, err)
	})
}
