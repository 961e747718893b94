package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sorteo-app/raffles-api/internal/domain"
	"github.com/sorteo-app/raffles-api/internal/repository"
)

var (
	ErrRaffleSetNotFound = repository.ErrRaffleSetNotFound
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
)

type RaffleSetRepository interface {
	Create(ctx context.Context, set domain.RaffleSet, quantity uint) (domain.RaffleSet, error)
	FindByKey(ctx context.Context, entityID, projectNumber, setNumber uint) (domain.RaffleSet, error)
	List(ctx context.Context, entityID, projectNumber uint, limit, offset int) ([]domain.RaffleSet, error)
	Update(ctx context.Context, entityID, projectNumber, setNumber uint, fields map[string]interface{}) (domain.RaffleSet, error)
	Delete(ctx context.Context, entityID, projectNumber, setNumber uint) error
}

// RaffleSetUpdate carries the optional fields of a partial raffle set update.
// The number range is derived at creation and cannot be changed here.
type RaffleSetUpdate struct {
	Name      *string
	Type      *domain.SetType
	UnitPrice *int
}

type RaffleSetService struct {
	repo RaffleSetRepository
}

func NewRaffleSetService(repo RaffleSetRepository) *RaffleSetService {
	return &RaffleSetService{
		repo: repo,
	}
}

// Create adds a raffle set of the given quantity to a project. The set's
// raffle numbers continue where the project's numbering left off; a
// single-raffle set (init == final) is legal.
func (s *RaffleSetService) Create(ctx context.Context, caller domain.Principal, set domain.RaffleSet, quantity uint) (domain.RaffleSet, error) {
	if err := requireEntity(caller); err != nil {
		return domain.RaffleSet{}, err
	}
	if quantity < 1 {
		return domain.RaffleSet{}, ErrInvalidQuantity
	}
	set.EntityID = caller.EntityID

	created, err := s.repo.Create(ctx, set, quantity)
	if err != nil {
		return domain.RaffleSet{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *RaffleSetService) Get(ctx context.Context, caller domain.Principal, projectNumber, setNumber uint) (domain.RaffleSet, error) {
	if err := requireEntity(caller); err != nil {
		return domain.RaffleSet{}, err
	}

	set, err := s.repo.FindByKey(ctx, caller.EntityID, projectNumber, setNumber)
	if err != nil {
		return domain.RaffleSet{}, fmt.Errorf("s.repo.FindByKey -> %w", err)
	}

	return set, nil
}

func (s *RaffleSetService) List(ctx context.Context, caller domain.Principal, projectNumber uint, limit, offset int) ([]domain.RaffleSet, error) {
	if err := requireEntity(caller); err != nil {
		return nil, err
	}

	sets, err := s.repo.List(ctx, caller.EntityID, projectNumber, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return sets, nil
}

func (s *RaffleSetService) Update(ctx context.Context, caller domain.Principal, projectNumber, setNumber uint, update RaffleSetUpdate) (domain.RaffleSet, error) {
	if err := requireEntity(caller); err != nil {
		return domain.RaffleSet{}, err
	}

	fields := make(map[string]interface{})
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.Type != nil {
		fields["type"] = string(*update.Type)
	}
	if update.UnitPrice != nil {
		fields["unit_price"] = *update.UnitPrice
	}

	set, err := s.repo.Update(ctx, caller.EntityID, projectNumber, setNumber, fields)
	if err != nil {
		return domain.RaffleSet{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return set, nil
}

// Delete removes a raffle set together with every raffle it materialized.
func (s *RaffleSetService) Delete(ctx context.Context, caller domain.Principal, projectNumber, setNumber uint) error {
	if err := requireEntity(caller); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, caller.EntityID, projectNumber, setNumber); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
