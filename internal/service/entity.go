package service

import (
	"context"
	"fmt"

	"github.com/sorteo-app/raffles-api/internal/domain"
	"github.com/sorteo-app/raffles-api/internal/repository"
)

var (
	ErrStoreUnavailable = repository.ErrStoreUnavailable
	ErrDeleteFailed     = repository.ErrDeleteFailed
)

type EntityRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Entity, error)
	Delete(ctx context.Context, entityID uint) error
}

type EntityService struct {
	repo EntityRepository
}

func NewEntityService(repo EntityRepository) *EntityService {
	return &EntityService{
		repo: repo,
	}
}

func (s *EntityService) Get(ctx context.Context, caller domain.Principal) (domain.Entity, error) {
	if err := requireEntity(caller); err != nil {
		return domain.Entity{}, err
	}

	entity, err := s.repo.FindByID(ctx, caller.EntityID)
	if err != nil {
		return domain.Entity{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return entity, nil
}

// Delete removes the caller's own entity and cascades through its managers,
// projects, raffle sets, raffles and buyers.
func (s *EntityService) Delete(ctx context.Context, caller domain.Principal) error {
	if err := requireEntity(caller); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, caller.EntityID); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
