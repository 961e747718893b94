package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sorteo-app/raffles-api/internal/domain"
	"github.com/sorteo-app/raffles-api/internal/repository"
)

// End-to-end walk through a tenant's first campaign: registration, project
// and set creation, a manager-mediated sale, and an ownership rejection.
func TestCampaignLifecycle(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()

	owner := s.registerEntity(t, "AcmeCorp")

	project := s.createProject(t, owner, "Spring Drive")
	assert.Equal(t, uint(1), project.ProjectNumber)

	set, err := s.raffleSets.Create(ctx, owner, domain.RaffleSet{
		ProjectNumber: project.ProjectNumber,
		Name:          "Spring Drive online",
		Type:          domain.SetTypeOnline,
		UnitPrice:     500,
	}, 3)
	require.NoError(t, err)
	assert.Equal(t, uint(1), set.SetNumber)
	assert.Equal(t, uint(1), set.Init)
	assert.Equal(t, uint(3), set.Final)

	raffles, err := s.raffles.List(ctx, owner, project.ProjectNumber, repository.ListFilter{}, 0, 0)
	require.NoError(t, err)
	require.Len(t, raffles, 3)
	for i, raffle := range raffles {
		assert.Equal(t, uint(i+1), raffle.RaffleNumber)
		assert.Equal(t, domain.RaffleAvailable, raffle.State)
	}

	alice := s.registerManager(t, owner, "alice")
	require.Equal(t, uint(1), alice.ManagerNumber)

	buyer := s.createBuyer(t, alice, "Jane Roe", "555-0100")
	require.Equal(t, uint(1), buyer.BuyerNumber)

	sold, err := s.raffles.Sell(ctx, alice, project.ProjectNumber, 2, buyer.BuyerNumber, domain.PaymentCash, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.RaffleSold, sold.State)
	require.NotNil(t, sold.BuyerNumber)
	assert.Equal(t, uint(1), *sold.BuyerNumber)
	require.NotNil(t, sold.SoldByManagerNumber)
	assert.Equal(t, uint(1), *sold.SoldByManagerNumber)

	bob := s.registerManager(t, owner, "bob")
	require.Equal(t, uint(2), bob.ManagerNumber)

	reserved := domain.RaffleReserved
	_, err = s.raffles.Update(ctx, bob, project.ProjectNumber, 2, RaffleUpdate{State: &reserved})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}
