package dao

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Concurrent creators within one scope must end up with a dense number
// sequence: no duplicates, no gaps, regardless of interleaving.
func TestNumberAllocation_DenseUnderConcurrency(t *testing.T) {
	db := setupTestDB(t)
	d := NewProjectDAO(db)
	ctx := context.Background()

	entity := seedEntity(t, db, "acme")

	const creators = 20

	var wg sync.WaitGroup
	numbers := make(chan uint, creators)
	for i := 0; i < creators; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			project, err := d.Insert(ctx, Project{
				EntityID: entity.ID,
				Name:     fmt.Sprintf("project-%d", i),
			})
			assert.NoError(t, err)
			numbers <- project.ProjectNumber
		}(i)
	}
	wg.Wait()
	close(numbers)

	var got []int
	for n := range numbers {
		got = append(got, int(n))
	}
	sort.Ints(got)

	require.Len(t, got, creators)
	for i, n := range got {
		assert.Equal(t, i+1, n, "allocation must be dense")
	}
}

// Scopes do not share counters: parallel allocation in two entities yields
// two independent dense sequences.
func TestNumberAllocation_IndependentScopes(t *testing.T) {
	db := setupTestDB(t)
	d := NewManagerDAO(db)
	ctx := context.Background()

	acme := seedEntity(t, db, "acme")
	globex := seedEntity(t, db, "globex")

	const perEntity = 5

	var wg sync.WaitGroup
	for _, entityID := range []uint{acme.ID, globex.ID} {
		for i := 0; i < perEntity; i++ {
			wg.Add(1)
			go func(entityID uint, i int) {
				defer wg.Done()

				_, err := d.Insert(ctx, Manager{
					EntityID: entityID,
					Username: fmt.Sprintf("mgr-%d", i),
					Password: "hash",
				})
				assert.NoError(t, err)
			}(entityID, i)
		}
	}
	wg.Wait()

	for _, entityID := range []uint{acme.ID, globex.ID} {
		managers, err := d.List(ctx, entityID, 0, 0)
		require.NoError(t, err)
		require.Len(t, managers, perEntity)
		for i, manager := range managers {
			assert.Equal(t, uint(i+1), manager.ManagerNumber)
		}
	}
}
