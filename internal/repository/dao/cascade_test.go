package dao

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCascadeDAO_DeleteRaffleSet(t *testing.T) {
	db := setupTestDB(t)
	d := NewCascadeDAO(db)
	raffles := NewRaffleDAO(db)
	ctx := context.Background()

	entity := seedEntity(t, db, "acme")
	project := seedProject(t, db, entity.ID, "spring gala")
	first := seedRaffleSet(t, db, entity.ID, project.ProjectNumber, 5)
	seedRaffleSet(t, db, entity.ID, project.ProjectNumber, 5)

	require.NoError(t, d.DeleteRaffleSet(ctx, entity.ID, project.ProjectNumber, first.SetNumber))

	_, err := NewRaffleSetDAO(db).FindByKey(ctx, entity.ID, project.ProjectNumber, first.SetNumber)
	assert.ErrorIs(t, err, ErrRaffleSetNotFound)

	remaining, err := raffles.List(ctx, entity.ID, project.ProjectNumber, RaffleFilter{}, 0, 0)
	require.NoError(t, err)
	require.Len(t, remaining, 5, "only the second set's raffles survive")
	for _, raffle := range remaining {
		assert.NotEqual(t, first.SetNumber, raffle.SetNumber)
	}

	assert.ErrorIs(t, d.DeleteRaffleSet(ctx, entity.ID, project.ProjectNumber, first.SetNumber), ErrRaffleSetNotFound)
}

func TestCascadeDAO_DeleteProject(t *testing.T) {
	db := setupTestDB(t)
	d := NewCascadeDAO(db)
	ctx := context.Background()

	entity := seedEntity(t, db, "acme")
	doomed := seedProject(t, db, entity.ID, "doomed")
	kept := seedProject(t, db, entity.ID, "kept")
	seedRaffleSet(t, db, entity.ID, doomed.ProjectNumber, 5)
	seedRaffleSet(t, db, entity.ID, kept.ProjectNumber, 3)

	require.NoError(t, d.DeleteProject(ctx, entity.ID, doomed.ProjectNumber))

	_, err := NewProjectDAO(db).FindByKey(ctx, entity.ID, doomed.ProjectNumber)
	assert.ErrorIs(t, err, ErrProjectNotFound)

	sets, err := NewRaffleSetDAO(db).List(ctx, entity.ID, doomed.ProjectNumber, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, sets)

	orphans, err := NewRaffleDAO(db).List(ctx, entity.ID, doomed.ProjectNumber, RaffleFilter{}, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, orphans)

	survivors, err := NewRaffleDAO(db).List(ctx, entity.ID, kept.ProjectNumber, RaffleFilter{}, 0, 0)
	require.NoError(t, err)
	assert.Len(t, survivors, 3)

	assert.ErrorIs(t, d.DeleteProject(ctx, entity.ID, 99), ErrProjectNotFound)
}

func TestCascadeDAO_DeleteManager(t *testing.T) {
	db := setupTestDB(t)
	d := NewCascadeDAO(db)
	ctx := context.Background()

	entity := seedEntity(t, db, "acme")
	manager := seedManager(t, db, entity.ID, "alice")
	other := seedManager(t, db, entity.ID, "bob")
	owned := seedBuyer(t, db, entity.ID, "Jane Roe", "555-0100", &manager.ManagerNumber)
	foreign := seedBuyer(t, db, entity.ID, "John Doe", "555-0101", &other.ManagerNumber)

	require.NoError(t, d.DeleteManager(ctx, entity.ID, manager.ManagerNumber))

	_, err := NewManagerDAO(db).FindByKey(ctx, entity.ID, manager.ManagerNumber)
	assert.ErrorIs(t, err, ErrManagerNotFound)

	t.Run("buyers survive with the creator reference nulled", func(t *testing.T) {
		buyer, err := NewBuyerDAO(db).FindByKey(ctx, entity.ID, owned.BuyerNumber)
		require.NoError(t, err)
		assert.Nil(t, buyer.CreatedByManagerNumber)
	})

	t.Run("other managers' buyers keep their reference", func(t *testing.T) {
		buyer, err := NewBuyerDAO(db).FindByKey(ctx, entity.ID, foreign.BuyerNumber)
		require.NoError(t, err)
		require.NotNil(t, buyer.CreatedByManagerNumber)
		assert.Equal(t, other.ManagerNumber, *buyer.CreatedByManagerNumber)
	})

	assert.ErrorIs(t, d.DeleteManager(ctx, entity.ID, manager.ManagerNumber), ErrManagerNotFound)
}

func TestCascadeDAO_DeleteEntity(t *testing.T) {
	db := setupTestDB(t)
	d := NewCascadeDAO(db)
	ctx := context.Background()

	doomed := seedEntity(t, db, "acme")
	project := seedProject(t, db, doomed.ID, "spring gala")
	seedRaffleSet(t, db, doomed.ID, project.ProjectNumber, 5)
	seedManager(t, db, doomed.ID, "alice")
	seedBuyer(t, db, doomed.ID, "Jane Roe", "555-0100", nil)

	kept := seedEntity(t, db, "globex")
	keptProject := seedProject(t, db, kept.ID, "winter fair")
	seedRaffleSet(t, db, kept.ID, keptProject.ProjectNumber, 2)

	require.NoError(t, d.DeleteEntity(ctx, doomed.ID))

	_, err := NewEntityDAO(db).FindByID(ctx, doomed.ID)
	assert.ErrorIs(t, err, ErrEntityNotFound)

	projects, err := NewProjectDAO(db).List(ctx, doomed.ID, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, projects)

	managers, err := NewManagerDAO(db).List(ctx, doomed.ID, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, managers)

	buyers, err := NewBuyerDAO(db).List(ctx, doomed.ID, nil, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, buyers)

	raffles, err := NewRaffleDAO(db).List(ctx, doomed.ID, project.ProjectNumber, RaffleFilter{}, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, raffles)

	t.Run("the other tenant is untouched", func(t *testing.T) {
		raffles, err := NewRaffleDAO(db).List(ctx, kept.ID, keptProject.ProjectNumber, RaffleFilter{}, 0, 0)
		require.NoError(t, err)
		assert.Len(t, raffles, 2)
	})

	assert.ErrorIs(t, d.DeleteEntity(ctx, doomed.ID), ErrEntityNotFound)
}
