package repository

import (
	"context"
	"fmt"

	"github.com/sorteo-app/raffles-api/internal/domain"
	"github.com/sorteo-app/raffles-api/internal/repository/dao"
)

var ErrRaffleSetNotFound = dao.ErrRaffleSetNotFound

type RaffleSetDAO interface {
	InsertWithRaffles(ctx context.Context, set dao.RaffleSet, quantity uint) (dao.RaffleSet, error)
	FindByKey(ctx context.Context, entityID, projectNumber, setNumber uint) (dao.RaffleSet, error)
	List(ctx context.Context, entityID, projectNumber uint, limit, offset int) ([]dao.RaffleSet, error)
	UpdateFields(ctx context.Context, entityID, projectNumber, setNumber uint, fields map[string]interface{}) (dao.RaffleSet, error)
}

type RaffleSetRepository struct {
	dao     RaffleSetDAO
	cascade CascadeDAO
}

func NewRaffleSetRepository(dao RaffleSetDAO, cascade CascadeDAO) *RaffleSetRepository {
	return &RaffleSetRepository{
		dao:     dao,
		cascade: cascade,
	}
}

// Create allocates the set number and its raffle number range, and
// materializes the raffles, all in one store transaction.
func (r *RaffleSetRepository) Create(ctx context.Context, set domain.RaffleSet, quantity uint) (domain.RaffleSet, error) {
	created, err := r.dao.InsertWithRaffles(ctx, dao.RaffleSet{
		EntityID:      set.EntityID,
		ProjectNumber: set.ProjectNumber,
		Name:          set.Name,
		Type:          string(set.Type),
		UnitPrice:     set.UnitPrice,
	}, quantity)
	if err != nil {
		return domain.RaffleSet{}, fmt.Errorf("r.dao.InsertWithRaffles -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *RaffleSetRepository) FindByKey(ctx context.Context, entityID, projectNumber, setNumber uint) (domain.RaffleSet, error) {
	found, err := r.dao.FindByKey(ctx, entityID, projectNumber, setNumber)
	if err != nil {
		return domain.RaffleSet{}, fmt.Errorf("r.dao.FindByKey -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *RaffleSetRepository) List(ctx context.Context, entityID, projectNumber uint, limit, offset int) ([]domain.RaffleSet, error) {
	found, err := r.dao.List(ctx, entityID, projectNumber, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	sets := make([]domain.RaffleSet, len(found))
	for i, s := range found {
		sets[i] = r.daoToDomain(s)
	}

	return sets, nil
}

func (r *RaffleSetRepository) Update(ctx context.Context, entityID, projectNumber, setNumber uint, fields map[string]interface{}) (domain.RaffleSet, error) {
	updated, err := r.dao.UpdateFields(ctx, entityID, projectNumber, setNumber, fields)
	if err != nil {
		return domain.RaffleSet{}, fmt.Errorf("r.dao.UpdateFields -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

// Delete cascades through the set's raffles.
func (r *RaffleSetRepository) Delete(ctx context.Context, entityID, projectNumber, setNumber uint) error {
	if err := r.cascade.DeleteRaffleSet(ctx, entityID, projectNumber, setNumber); err != nil {
		return fmt.Errorf("r.cascade.DeleteRaffleSet -> %w", err)
	}

	return nil
}

func (r *RaffleSetRepository) daoToDomain(s dao.RaffleSet) domain.RaffleSet {
	return domain.RaffleSet{
		EntityID:      s.EntityID,
		ProjectNumber: s.ProjectNumber,
		SetNumber:     s.SetNumber,
		Name:          s.Name,
		Type:          domain.SetType(s.Type),
		Init:          s.Init,
		Final:         s.Final,
		UnitPrice:     s.UnitPrice,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}
