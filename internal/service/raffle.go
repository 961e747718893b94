package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sorteo-app/raffles-api/internal/domain"
	"github.com/sorteo-app/raffles-api/internal/repository"
)

var (
	ErrRaffleNotFound    = repository.ErrRaffleNotFound
	ErrRaffleNotSellable = repository.ErrRaffleNotSellable
	ErrBuyerNotFound     = repository.ErrBuyerNotFound
)

type RaffleRepository interface {
	FindByKey(ctx context.Context, entityID, projectNumber, raffleNumber uint) (domain.Raffle, error)
	List(ctx context.Context, entityID, projectNumber uint, filter repository.ListFilter, limit, offset int) ([]domain.Raffle, error)
	Sell(ctx context.Context, entityID, projectNumber, raffleNumber, buyerNumber uint, paymentMethod domain.PaymentMethod, soldByManagerNumber *uint) (domain.Raffle, error)
	Update(ctx context.Context, entityID, projectNumber, raffleNumber uint, fields map[string]interface{}) (domain.Raffle, error)
	Delete(ctx context.Context, entityID, projectNumber, raffleNumber uint) error
}

type RaffleManagerRepository interface {
	FindByKey(ctx context.Context, entityID, managerNumber uint) (domain.Manager, error)
}

// RaffleUpdate carries the optional fields of a partial raffle update. Only
// the reservation state can be adjusted outside the sale workflow.
type RaffleUpdate struct {
	State *domain.RaffleState
}

type RaffleService struct {
	repo     RaffleRepository
	managers RaffleManagerRepository
}

func NewRaffleService(repo RaffleRepository, managers RaffleManagerRepository) *RaffleService {
	return &RaffleService{
		repo:     repo,
		managers: managers,
	}
}

// Get is permitted for both roles; the scope filter alone keeps tenants
// apart.
func (s *RaffleService) Get(ctx context.Context, caller domain.Principal, projectNumber, raffleNumber uint) (domain.Raffle, error) {
	raffle, err := s.repo.FindByKey(ctx, caller.EntityID, projectNumber, raffleNumber)
	if err != nil {
		return domain.Raffle{}, fmt.Errorf("s.repo.FindByKey -> %w", err)
	}

	return raffle, nil
}

func (s *RaffleService) List(ctx context.Context, caller domain.Principal, projectNumber uint, filter repository.ListFilter, limit, offset int) ([]domain.Raffle, error) {
	raffles, err := s.repo.List(ctx, caller.EntityID, projectNumber, filter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return raffles, nil
}

// Sell transitions a raffle to sold, binding buyer and seller atomically.
// A manager caller always becomes the seller of record, whatever seller
// number the request carried; an entity caller may name a seller or none.
func (s *RaffleService) Sell(ctx context.Context, caller domain.Principal, projectNumber, raffleNumber, buyerNumber uint, paymentMethod domain.PaymentMethod, sellerNumber *uint) (domain.Raffle, error) {
	soldBy := sellerNumber
	if caller.IsManager() {
		soldBy = &caller.ManagerNumber
	}

	if soldBy != nil {
		if _, err := s.managers.FindByKey(ctx, caller.EntityID, *soldBy); err != nil {
			if errors.Is(err, repository.ErrManagerNotFound) {
				return domain.Raffle{}, ErrManagerNotFound
			}

			return domain.Raffle{}, fmt.Errorf("s.managers.FindByKey -> %w", err)
		}
	}

	sold, err := s.repo.Sell(ctx, caller.EntityID, projectNumber, raffleNumber, buyerNumber, paymentMethod, soldBy)
	if err != nil {
		return domain.Raffle{}, fmt.Errorf("s.repo.Sell -> %w", err)
	}

	return sold, nil
}

// Update applies a partial update. Managers may only touch raffles they sold
// themselves; the ownership check reads the raffle first, so a forbidden
// caller learns the raffle exists but nothing more.
func (s *RaffleService) Update(ctx context.Context, caller domain.Principal, projectNumber, raffleNumber uint, update RaffleUpdate) (domain.Raffle, error) {
	raffle, err := s.repo.FindByKey(ctx, caller.EntityID, projectNumber, raffleNumber)
	if err != nil {
		return domain.Raffle{}, fmt.Errorf("s.repo.FindByKey -> %w", err)
	}

	if err = canMutateRaffle(caller, raffle); err != nil {
		return domain.Raffle{}, err
	}

	fields := make(map[string]interface{})
	if update.State != nil {
		fields["state"] = string(*update.State)
	}

	updated, err := s.repo.Update(ctx, caller.EntityID, projectNumber, raffleNumber, fields)
	if err != nil {
		return domain.Raffle{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *RaffleService) Delete(ctx context.Context, caller domain.Principal, projectNumber, raffleNumber uint) error {
	raffle, err := s.repo.FindByKey(ctx, caller.EntityID, projectNumber, raffleNumber)
	if err != nil {
		return fmt.Errorf("s.repo.FindByKey -> %w", err)
	}

	if err = canMutateRaffle(caller, raffle); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, caller.EntityID, projectNumber, raffleNumber); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
