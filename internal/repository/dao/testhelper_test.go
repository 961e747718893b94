package dao

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens an in-memory sqlite store. The pool is capped at one
// connection: sqlite's :memory: mode gives every connection its own
// database, and the cap also makes concurrent transactions serialize.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, InitTables(db))

	return db
}

func seedEntity(t *testing.T, db *gorm.DB, name string) Entity {
	t.Helper()

	entity, err := NewEntityDAO(db).Insert(context.Background(), Entity{
		Name:     name,
		Password: "hashed-password",
	})
	require.NoError(t, err)

	return entity
}

func seedProject(t *testing.T, db *gorm.DB, entityID uint, name string) Project {
	t.Helper()

	project, err := NewProjectDAO(db).Insert(context.Background(), Project{
		EntityID: entityID,
		Name:     name,
	})
	require.NoError(t, err)

	return project
}

func seedRaffleSet(t *testing.T, db *gorm.DB, entityID, projectNumber, quantity uint) RaffleSet {
	t.Helper()

	set, err := NewRaffleSetDAO(db).InsertWithRaffles(context.Background(), RaffleSet{
		EntityID:      entityID,
		ProjectNumber: projectNumber,
		Name:          "set",
		Type:          SetTypePhysical,
		UnitPrice:     500,
	}, quantity)
	require.NoError(t, err)

	return set
}

func seedManager(t *testing.T, db *gorm.DB, entityID uint, username string) Manager {
	t.Helper()

	manager, err := NewManagerDAO(db).Insert(context.Background(), Manager{
		EntityID: entityID,
		Username: username,
		Password: "hashed-password",
	})
	require.NoError(t, err)

	return manager
}

func seedBuyer(t *testing.T, db *gorm.DB, entityID uint, name, phone string, createdBy *uint) Buyer {
	t.Helper()

	buyer, err := NewBuyerDAO(db).Insert(context.Background(), Buyer{
		EntityID:               entityID,
		Name:                   name,
		Phone:                  phone,
		CreatedByManagerNumber: createdBy,
	})
	require.NoError(t, err)

	return buyer
}
