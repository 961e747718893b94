package repository

import (
	"context"
	"fmt"

	"github.com/sorteo-app/raffles-api/internal/domain"
	"github.com/sorteo-app/raffles-api/internal/repository/dao"
)

var (
	ErrManagerNotFound       = dao.ErrManagerNotFound
	ErrManagerUsernameExists = dao.ErrManagerUsernameExists
)

type ManagerDAO interface {
	Insert(ctx context.Context, manager dao.Manager) (dao.Manager, error)
	FindByKey(ctx context.Context, entityID, managerNumber uint) (dao.Manager, error)
	FindByUsername(ctx context.Context, entityID uint, username string) (dao.Manager, error)
	List(ctx context.Context, entityID uint, limit, offset int) ([]dao.Manager, error)
	UpdateFields(ctx context.Context, entityID, managerNumber uint, fields map[string]interface{}) (dao.Manager, error)
}

type ManagerRepository struct {
	dao     ManagerDAO
	cascade CascadeDAO
}

func NewManagerRepository(dao ManagerDAO, cascade CascadeDAO) *ManagerRepository {
	return &ManagerRepository{
		dao:     dao,
		cascade: cascade,
	}
}

func (r *ManagerRepository) Create(ctx context.Context, manager domain.Manager) (domain.Manager, error) {
	created, err := r.dao.Insert(ctx, dao.Manager{
		EntityID: manager.EntityID,
		Username: manager.Username,
		Password: manager.Password,
	})
	if err != nil {
		return domain.Manager{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ManagerRepository) FindByKey(ctx context.Context, entityID, managerNumber uint) (domain.Manager, error) {
	found, err := r.dao.FindByKey(ctx, entityID, managerNumber)
	if err != nil {
		return domain.Manager{}, fmt.Errorf("r.dao.FindByKey -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ManagerRepository) FindByUsername(ctx context.Context, entityID uint, username string) (domain.Manager, error) {
	found, err := r.dao.FindByUsername(ctx, entityID, username)
	if err != nil {
		return domain.Manager{}, fmt.Errorf("r.dao.FindByUsername -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ManagerRepository) List(ctx context.Context, entityID uint, limit, offset int) ([]domain.Manager, error) {
	found, err := r.dao.List(ctx, entityID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	managers := make([]domain.Manager, len(found))
	for i, m := range found {
		managers[i] = r.daoToDomain(m)
	}

	return managers, nil
}

// Update applies only the supplied fields; the composite key is immutable.
func (r *ManagerRepository) Update(ctx context.Context, entityID, managerNumber uint, fields map[string]interface{}) (domain.Manager, error) {
	updated, err := r.dao.UpdateFields(ctx, entityID, managerNumber, fields)
	if err != nil {
		return domain.Manager{}, fmt.Errorf("r.dao.UpdateFields -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

// Delete removes the manager; buyers it registered keep existing with a
// nulled creator reference.
func (r *ManagerRepository) Delete(ctx context.Context, entityID, managerNumber uint) error {
	if err := r.cascade.DeleteManager(ctx, entityID, managerNumber); err != nil {
		return fmt.Errorf("r.cascade.DeleteManager -> %w", err)
	}

	return nil
}

func (r *ManagerRepository) daoToDomain(m dao.Manager) domain.Manager {
	return domain.Manager{
		EntityID:      m.EntityID,
		ManagerNumber: m.ManagerNumber,
		Username:      m.Username,
		Password:      m.Password,
		IsActive:      m.IsActive,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
