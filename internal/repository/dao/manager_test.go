package dao

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerDAO_Insert(t *testing.T) {
	db := setupTestDB(t)
	d := NewManagerDAO(db)
	ctx := context.Background()

	entity := seedEntity(t, db, "acme")

	t.Run("numbers are allocated from 1 without gaps", func(t *testing.T) {
		for i, username := range []string{"alice", "bob", "carol"} {
			manager, err := d.Insert(ctx, Manager{
				EntityID: entity.ID,
				Username: username,
				Password: "hash",
			})
			require.NoError(t, err)
			assert.Equal(t, uint(i+1), manager.ManagerNumber)
			assert.True(t, manager.IsActive)
		}
	})

	t.Run("duplicate username within the entity is rejected", func(t *testing.T) {
		_, err := d.Insert(ctx, Manager{
			EntityID: entity.ID,
			Username: "alice",
			Password: "hash",
		})
		assert.ErrorIs(t, err, ErrManagerUsernameExists)
	})

	t.Run("numbering and usernames are scoped per entity", func(t *testing.T) {
		other := seedEntity(t, db, "globex")

		manager, err := d.Insert(ctx, Manager{
			EntityID: other.ID,
			Username: "alice",
			Password: "hash",
		})
		require.NoError(t, err)
		assert.Equal(t, uint(1), manager.ManagerNumber)
	})
}

func TestManagerDAO_FindByKey(t *testing.T) {
	db := setupTestDB(t)
	d := NewManagerDAO(db)
	ctx := context.Background()

	entity := seedEntity(t, db, "acme")
	seedManager(t, db, entity.ID, "alice")

	t.Run("existing key", func(t *testing.T) {
		manager, err := d.FindByKey(ctx, entity.ID, 1)
		require.NoError(t, err)
		assert.Equal(t, "alice", manager.Username)
	})

	t.Run("unknown number", func(t *testing.T) {
		_, err := d.FindByKey(ctx, entity.ID, 99)
		assert.ErrorIs(t, err, ErrManagerNotFound)
	})

	t.Run("number of another entity is invisible", func(t *testing.T) {
		other := seedEntity(t, db, "globex")
		_, err := d.FindByKey(ctx, other.ID, 1)
		assert.ErrorIs(t, err, ErrManagerNotFound)
	})
}

func TestManagerDAO_List(t *testing.T) {
	db := setupTestDB(t)
	d := NewManagerDAO(db)
	ctx := context.Background()

	entity := seedEntity(t, db, "acme")
	for _, username := range []string{"alice", "bob", "carol", "dave"} {
		seedManager(t, db, entity.ID, username)
	}

	t.Run("zero limit returns everything in number order", func(t *testing.T) {
		managers, err := d.List(ctx, entity.ID, 0, 0)
		require.NoError(t, err)
		require.Len(t, managers, 4)
		assert.Equal(t, uint(1), managers[0].ManagerNumber)
		assert.Equal(t, uint(4), managers[3].ManagerNumber)
	})

	t.Run("limit and offset page through", func(t *testing.T) {
		managers, err := d.List(ctx, entity.ID, 2, 2)
		require.NoError(t, err)
		require.Len(t, managers, 2)
		assert.Equal(t, "carol", managers[0].Username)
		assert.Equal(t, "dave", managers[1].Username)
	})

	t.Run("other entities contribute nothing", func(t *testing.T) {
		other := seedEntity(t, db, "globex")
		managers, err := d.List(ctx, other.ID, 0, 0)
		require.NoError(t, err)
		assert.Empty(t, managers)
	})
}

func TestManagerDAO_UpdateFields(t *testing.T) {
	db := setupTestDB(t)
	d := NewManagerDAO(db)
	ctx := context.Background()

	entity := seedEntity(t, db, "acme")
	seedManager(t, db, entity.ID, "alice")
	seedManager(t, db, entity.ID, "bob")

	t.Run("only supplied fields change", func(t *testing.T) {
		updated, err := d.UpdateFields(ctx, entity.ID, 1, map[string]interface{}{
			"is_active": false,
		})
		require.NoError(t, err)
		assert.False(t, updated.IsActive)
		assert.Equal(t, "alice", updated.Username)
	})

	t.Run("no fields is a plain read", func(t *testing.T) {
		manager, err := d.UpdateFields(ctx, entity.ID, 1, nil)
		require.NoError(t, err)
		assert.Equal(t, "alice", manager.Username)
	})

	t.Run("renaming onto a taken username is rejected", func(t *testing.T) {
		_, err := d.UpdateFields(ctx, entity.ID, 2, map[string]interface{}{
			"username": "alice",
		})
		assert.ErrorIs(t, err, ErrManagerUsernameExists)
	})

	t.Run("unknown manager", func(t *testing.T) {
		_, err := d.UpdateFields(ctx, entity.ID, 99, map[string]interface{}{
			"is_active": false,
		})
		assert.ErrorIs(t, err, ErrManagerNotFound)
	})
}
