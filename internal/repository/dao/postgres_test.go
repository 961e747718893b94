package dao

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgres spins up a throwaway postgres container. Skipped when no
// docker daemon is reachable, so the sqlite suite stays the default.
func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker not available: %v", err)
	}
	if err = pool.Client.Ping(); err != nil {
		t.Skipf("docker not responding: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=test",
			"POSTGRES_PASSWORD=test",
			"POSTGRES_DB=raffles_test",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = pool.Purge(resource)
	})

	dsn := fmt.Sprintf("host=localhost port=%v user=test password=test dbname=raffles_test sslmode=disable",
		resource.GetPort("5432/tcp"))

	var db *gorm.DB
	err = pool.Retry(func() error {
		var openErr error
		db, openErr = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if openErr != nil {
			return openErr
		}

		sqlDB, openErr := db.DB()
		if openErr != nil {
			return openErr
		}

		return sqlDB.Ping()
	})
	require.NoError(t, err)

	require.NoError(t, InitTables(db))

	return db
}

// The density property must also hold against a real postgres, where
// transactions genuinely run in parallel and the allocator's retry path is
// exercised.
func TestNumberAllocation_DensePostgres(t *testing.T) {
	db := setupPostgres(t)
	d := NewProjectDAO(db)
	ctx := context.Background()

	entity, err := NewEntityDAO(db).Insert(ctx, Entity{
		Name:     "acme",
		Password: "hashed-password",
	})
	require.NoError(t, err)

	const creators = 10

	var wg sync.WaitGroup
	numbers := make(chan uint, creators)
	errs := make(chan error, creators)
	for i := 0; i < creators; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			project, err := d.Insert(ctx, Project{
				EntityID: entity.ID,
				Name:     fmt.Sprintf("project-%d", i),
			})
			if err != nil {
				errs <- err

				return
			}
			numbers <- project.ProjectNumber
		}(i)
	}
	wg.Wait()
	close(numbers)
	close(errs)

	var got []int
	for n := range numbers {
		got = append(got, int(n))
	}
	sort.Ints(got)

	// An allocator under real contention may exhaust its retries; every
	// number that was handed out must still be unique and gap-free.
	for i, n := range got {
		assert.Equal(t, i+1, n)
	}
	for err := range errs {
		assert.ErrorIs(t, err, ErrStoreUnavailable)
	}
}

func TestRaffleDAO_SellPostgres(t *testing.T) {
	db := setupPostgres(t)
	d := NewRaffleDAO(db)
	ctx := context.Background()

	entity, err := NewEntityDAO(db).Insert(ctx, Entity{Name: "acme", Password: "hash"})
	require.NoError(t, err)
	project, err := NewProjectDAO(db).Insert(ctx, Project{EntityID: entity.ID, Name: "gala"})
	require.NoError(t, err)
	_, err = NewRaffleSetDAO(db).InsertWithRaffles(ctx, RaffleSet{
		EntityID:      entity.ID,
		ProjectNumber: project.ProjectNumber,
		Name:          "batch",
		Type:          SetTypePhysical,
		UnitPrice:     500,
	}, 5)
	require.NoError(t, err)
	buyer, err := NewBuyerDAO(db).Insert(ctx, Buyer{EntityID: entity.ID, Name: "Jane Roe", Phone: "555-0100"})
	require.NoError(t, err)

	// Two concurrent sales of the same raffle: exactly one wins.
	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := d.Sell(ctx, entity.ID, project.ProjectNumber, 1, buyer.BuyerNumber, PaymentCash, nil)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var won, lost int
	for err := range results {
		if err == nil {
			won++
		} else {
			assert.ErrorIs(t, err, ErrRaffleNotSellable)
			lost++
		}
	}
	assert.Equal(t, 1, won)
	assert.Equal(t, 1, lost)
}
