package repository

import (
	"context"
	"fmt"

	"github.com/sorteo-app/raffles-api/internal/domain"
	"github.com/sorteo-app/raffles-api/internal/repository/dao"
)

var (
	ErrRaffleNotFound    = dao.ErrRaffleNotFound
	ErrRaffleNotSellable = dao.ErrRaffleNotSellable
)

type RaffleDAO interface {
	FindByKey(ctx context.Context, entityID, projectNumber, raffleNumber uint) (dao.Raffle, error)
	List(ctx context.Context, entityID, projectNumber uint, filter dao.RaffleFilter, limit, offset int) ([]dao.Raffle, error)
	Sell(ctx context.Context, entityID, projectNumber, raffleNumber, buyerNumber uint, paymentMethod string, soldByManagerNumber *uint) (dao.Raffle, error)
	UpdateFields(ctx context.Context, entityID, projectNumber, raffleNumber uint, fields map[string]interface{}) (dao.Raffle, error)
	Delete(ctx context.Context, entityID, projectNumber, raffleNumber uint) error
}

type RaffleRepository struct {
	dao RaffleDAO
}

func NewRaffleRepository(dao RaffleDAO) *RaffleRepository {
	return &RaffleRepository{
		dao: dao,
	}
}

func (r *RaffleRepository) FindByKey(ctx context.Context, entityID, projectNumber, raffleNumber uint) (domain.Raffle, error) {
	found, err := r.dao.FindByKey(ctx, entityID, projectNumber, raffleNumber)
	if err != nil {
		return domain.Raffle{}, fmt.Errorf("r.dao.FindByKey -> %w", err)
	}

	return r.daoToDomain(found), nil
}

// ListFilter narrows raffle listings within a project.
type ListFilter struct {
	SetNumber *uint
	State     *domain.RaffleState
}

func (r *RaffleRepository) List(ctx context.Context, entityID, projectNumber uint, filter ListFilter, limit, offset int) ([]domain.Raffle, error) {
	daoFilter := dao.RaffleFilter{
		SetNumber: filter.SetNumber,
	}
	if filter.State != nil {
		state := string(*filter.State)
		daoFilter.State = &state
	}

	found, err := r.dao.List(ctx, entityID, projectNumber, daoFilter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	raffles := make([]domain.Raffle, len(found))
	for i, raffle := range found {
		raffles[i] = r.daoToDomain(raffle)
	}

	return raffles, nil
}

// Sell binds buyer, payment method and seller and moves the raffle to sold,
// atomically. Selling an already-sold raffle fails with ErrRaffleNotSellable.
func (r *RaffleRepository) Sell(ctx context.Context, entityID, projectNumber, raffleNumber, buyerNumber uint, paymentMethod domain.PaymentMethod, soldByManagerNumber *uint) (domain.Raffle, error) {
	sold, err := r.dao.Sell(ctx, entityID, projectNumber, raffleNumber, buyerNumber, string(paymentMethod), soldByManagerNumber)
	if err != nil {
		return domain.Raffle{}, fmt.Errorf("r.dao.Sell -> %w", err)
	}

	return r.daoToDomain(sold), nil
}

func (r *RaffleRepository) Update(ctx context.Context, entityID, projectNumber, raffleNumber uint, fields map[string]interface{}) (domain.Raffle, error) {
	updated, err := r.dao.UpdateFields(ctx, entityID, projectNumber, raffleNumber, fields)
	if err != nil {
		return domain.Raffle{}, fmt.Errorf("r.dao.UpdateFields -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *RaffleRepository) Delete(ctx context.Context, entityID, projectNumber, raffleNumber uint) error {
	if err := r.dao.Delete(ctx, entityID, projectNumber, raffleNumber); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *RaffleRepository) daoToDomain(raffle dao.Raffle) domain.Raffle {
	var paymentMethod *domain.PaymentMethod
	if raffle.PaymentMethod != nil {
		method := domain.PaymentMethod(*raffle.PaymentMethod)
		paymentMethod = &method
	}

	return domain.Raffle{
		EntityID:            raffle.EntityID,
		ProjectNumber:       raffle.ProjectNumber,
		RaffleNumber:        raffle.RaffleNumber,
		SetNumber:           raffle.SetNumber,
		BuyerNumber:         raffle.BuyerNumber,
		SoldByManagerNumber: raffle.SoldByManagerNumber,
		PaymentMethod:       paymentMethod,
		State:               domain.RaffleState(raffle.State),
		CreatedAt:           raffle.CreatedAt,
		UpdatedAt:           raffle.UpdatedAt,
	}
}
