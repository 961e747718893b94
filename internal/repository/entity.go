package repository

import (
	"context"
	"fmt"

	"github.com/sorteo-app/raffles-api/internal/domain"
	"github.com/sorteo-app/raffles-api/internal/repository/dao"
)

var (
	ErrEntityNotFound   = dao.ErrEntityNotFound
	ErrEntityNameExists = dao.ErrEntityNameExists
	ErrStoreUnavailable = dao.ErrStoreUnavailable
	ErrDeleteFailed     = dao.ErrDeleteFailed
)

type EntityDAO interface {
	Insert(ctx context.Context, entity dao.Entity) (dao.Entity, error)
	FindByID(ctx context.Context, id uint) (dao.Entity, error)
	FindByName(ctx context.Context, name string) (dao.Entity, error)
}

type CascadeDAO interface {
	DeleteRaffleSet(ctx context.Context, entityID, projectNumber, setNumber uint) error
	DeleteProject(ctx context.Context, entityID, projectNumber uint) error
	DeleteManager(ctx context.Context, entityID, managerNumber uint) error
	DeleteEntity(ctx context.Context, entityID uint) error
}

type EntityRepository struct {
	dao     EntityDAO
	cascade CascadeDAO
}

func NewEntityRepository(dao EntityDAO, cascade CascadeDAO) *EntityRepository {
	return &EntityRepository{
		dao:     dao,
		cascade: cascade,
	}
}

func (r *EntityRepository) Create(ctx context.Context, entity domain.Entity) (domain.Entity, error) {
	created, err := r.dao.Insert(ctx, dao.Entity{
		Name:        entity.Name,
		Password:    entity.Password,
		Description: entity.Description,
	})
	if err != nil {
		return domain.Entity{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *EntityRepository) FindByID(ctx context.Context, id uint) (domain.Entity, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Entity{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *EntityRepository) FindByName(ctx context.Context, name string) (domain.Entity, error) {
	found, err := r.dao.FindByName(ctx, name)
	if err != nil {
		return domain.Entity{}, fmt.Errorf("r.dao.FindByName -> %w", err)
	}

	return r.daoToDomain(found), nil
}

// Delete removes the entity and cascades through everything in its scope.
func (r *EntityRepository) Delete(ctx context.Context, entityID uint) error {
	if err := r.cascade.DeleteEntity(ctx, entityID); err != nil {
		return fmt.Errorf("r.cascade.DeleteEntity -> %w", err)
	}

	return nil
}

func (r *EntityRepository) daoToDomain(e dao.Entity) domain.Entity {
	return domain.Entity{
		ID:          e.ID,
		Name:        e.Name,
		Password:    e.Password,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
