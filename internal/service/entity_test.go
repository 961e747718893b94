package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityService_Delete(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()

	owner := s.registerEntity(t, "AcmeCorp")
	alice := s.registerManager(t, owner, "alice")
	project := s.createProject(t, owner, "Spring Drive")
	s.createRaffleSet(t, owner, project.ProjectNumber, 3)

	t.Run("managers cannot delete the tenant", func(t *testing.T) {
		assert.ErrorIs(t, s.entities.Delete(ctx, alice), ErrPermissionDenied)
	})

	t.Run("the owner takes everything down with it", func(t *testing.T) {
		require.NoError(t, s.entities.Delete(ctx, owner))

		_, err := s.entities.Get(ctx, owner)
		assert.ErrorIs(t, err, ErrEntityNotFound)

		_, err = s.projects.Get(ctx, owner, project.ProjectNumber)
		assert.ErrorIs(t, err, ErrProjectNotFound)

		_, err = s.managers.Get(ctx, owner, alice.ManagerNumber)
		assert.ErrorIs(t, err, ErrManagerNotFound)
	})
}
