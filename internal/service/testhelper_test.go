package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sorteo-app/raffles-api/internal/domain"
	"github.com/sorteo-app/raffles-api/internal/repository"
	"github.com/sorteo-app/raffles-api/internal/repository/dao"
)

// testStack wires the full service stack over an in-memory sqlite store,
// the same way the server does over postgres.
type testStack struct {
	auth       *AuthService
	entities   *EntityService
	managers   *ManagerService
	projects   *ProjectService
	raffleSets *RaffleSetService
	raffles    *RaffleService
	buyers     *BuyerService
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, dao.InitTables(db))

	cascadeDAO := dao.NewCascadeDAO(db)
	entityRepo := repository.NewEntityRepository(dao.NewEntityDAO(db), cascadeDAO)
	managerRepo := repository.NewManagerRepository(dao.NewManagerDAO(db), cascadeDAO)
	projectRepo := repository.NewProjectRepository(dao.NewProjectDAO(db), cascadeDAO)
	raffleSetRepo := repository.NewRaffleSetRepository(dao.NewRaffleSetDAO(db), cascadeDAO)
	raffleRepo := repository.NewRaffleRepository(dao.NewRaffleDAO(db))
	buyerRepo := repository.NewBuyerRepository(dao.NewBuyerDAO(db))

	return &testStack{
		auth:       NewAuthService(entityRepo, managerRepo),
		entities:   NewEntityService(entityRepo),
		managers:   NewManagerService(managerRepo),
		projects:   NewProjectService(projectRepo),
		raffleSets: NewRaffleSetService(raffleSetRepo),
		raffles:    NewRaffleService(raffleRepo, managerRepo),
		buyers:     NewBuyerService(buyerRepo),
	}
}

// registerEntity creates a tenant and returns its owner principal.
func (s *testStack) registerEntity(t *testing.T, name string) domain.Principal {
	t.Helper()

	entity, err := s.auth.RegisterEntity(context.Background(), domain.Entity{
		Name:     name,
		Password: "s3cret-pw1",
	})
	require.NoError(t, err)

	return domain.Principal{EntityID: entity.ID, Role: domain.RoleEntity}
}

// registerManager creates a manager under the owner and returns its
// principal.
func (s *testStack) registerManager(t *testing.T, owner domain.Principal, username string) domain.Principal {
	t.Helper()

	manager, err := s.auth.RegisterManager(context.Background(), owner, domain.Manager{
		Username: username,
		Password: "s3cret-pw1",
	})
	require.NoError(t, err)

	return domain.Principal{
		EntityID:      manager.EntityID,
		Role:          domain.RoleManager,
		ManagerNumber: manager.ManagerNumber,
	}
}

func (s *testStack) createProject(t *testing.T, owner domain.Principal, name string) domain.Project {
	t.Helper()

	project, err := s.projects.Create(context.Background(), owner, domain.Project{Name: name})
	require.NoError(t, err)

	return project
}

func (s *testStack) createRaffleSet(t *testing.T, owner domain.Principal, projectNumber, quantity uint) domain.RaffleSet {
	t.Helper()

	set, err := s.raffleSets.Create(context.Background(), owner, domain.RaffleSet{
		ProjectNumber: projectNumber,
		Name:          "batch",
		Type:          domain.SetTypeOnline,
		UnitPrice:     500,
	}, quantity)
	require.NoError(t, err)

	return set
}

func (s *testStack) createBuyer(t *testing.T, caller domain.Principal, name, phone string) domain.Buyer {
	t.Helper()

	buyer, err := s.buyers.Create(context.Background(), caller, domain.Buyer{
		Name:  name,
		Phone: phone,
	})
	require.NoError(t, err)

	return buyer
}
