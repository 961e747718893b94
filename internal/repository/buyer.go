package repository

import (
	"context"
	"fmt"

	"github.com/sorteo-app/raffles-api/internal/domain"
	"github.com/sorteo-app/raffles-api/internal/repository/dao"
)

var (
	ErrBuyerNotFound = dao.ErrBuyerNotFound
	ErrBuyerExists   = dao.ErrBuyerExists
)

type BuyerDAO interface {
	Insert(ctx context.Context, buyer dao.Buyer) (dao.Buyer, error)
	FindByKey(ctx context.Context, entityID, buyerNumber uint) (dao.Buyer, error)
	List(ctx context.Context, entityID uint, createdByManagerNumber *uint, limit, offset int) ([]dao.Buyer, error)
	UpdateFields(ctx context.Context, entityID, buyerNumber uint, fields map[string]interface{}) (dao.Buyer, error)
	Delete(ctx context.Context, entityID, buyerNumber uint) error
}

type BuyerRepository struct {
	dao BuyerDAO
}

func NewBuyerRepository(dao BuyerDAO) *BuyerRepository {
	return &BuyerRepository{
		dao: dao,
	}
}

func (r *BuyerRepository) Create(ctx context.Context, buyer domain.Buyer) (domain.Buyer, error) {
	created, err := r.dao.Insert(ctx, dao.Buyer{
		EntityID:               buyer.EntityID,
		Name:                   buyer.Name,
		Phone:                  buyer.Phone,
		Email:                  buyer.Email,
		CreatedByManagerNumber: buyer.CreatedByManagerNumber,
	})
	if err != nil {
		return domain.Buyer{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *BuyerRepository) FindByKey(ctx context.Context, entityID, buyerNumber uint) (domain.Buyer, error) {
	found, err := r.dao.FindByKey(ctx, entityID, buyerNumber)
	if err != nil {
		return domain.Buyer{}, fmt.Errorf("r.dao.FindByKey -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *BuyerRepository) List(ctx context.Context, entityID uint, createdByManagerNumber *uint, limit, offset int) ([]domain.Buyer, error) {
	found, err := r.dao.List(ctx, entityID, createdByManagerNumber, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	buyers := make([]domain.Buyer, len(found))
	for i, b := range found {
		buyers[i] = r.daoToDomain(b)
	}

	return buyers, nil
}

func (r *BuyerRepository) Update(ctx context.Context, entityID, buyerNumber uint, fields map[string]interface{}) (domain.Buyer, error) {
	updated, err := r.dao.UpdateFields(ctx, entityID, buyerNumber, fields)
	if err != nil {
		return domain.Buyer{}, fmt.Errorf("r.dao.UpdateFields -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *BuyerRepository) Delete(ctx context.Context, entityID, buyerNumber uint) error {
	if err := r.dao.Delete(ctx, entityID, buyerNumber); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *BuyerRepository) daoToDomain(b dao.Buyer) domain.Buyer {
	return domain.Buyer{
		EntityID:               b.EntityID,
		BuyerNumber:            b.BuyerNumber,
		Name:                   b.Name,
		Phone:                  b.Phone,
		Email:                  b.Email,
		CreatedByManagerNumber: b.CreatedByManagerNumber,
		CreatedAt:              b.CreatedAt,
		UpdatedAt:              b.UpdatedAt,
	}
}
