package service

import (
	"context"
	"fmt"

	"github.com/sorteo-app/raffles-api/internal/domain"
	"github.com/sorteo-app/raffles-api/internal/repository"
)

var ErrBuyerExists = repository.ErrBuyerExists

type BuyerRepository interface {
	Create(ctx context.Context, buyer domain.Buyer) (domain.Buyer, error)
	FindByKey(ctx context.Context, entityID, buyerNumber uint) (domain.Buyer, error)
	List(ctx context.Context, entityID uint, createdByManagerNumber *uint, limit, offset int) ([]domain.Buyer, error)
	Update(ctx context.Context, entityID, buyerNumber uint, fields map[string]interface{}) (domain.Buyer, error)
	Delete(ctx context.Context, entityID, buyerNumber uint) error
}

// BuyerUpdate carries the optional fields of a partial buyer update.
type BuyerUpdate struct {
	Name  *string
	Phone *string
	Email *string
}

type BuyerService struct {
	repo BuyerRepository
}

func NewBuyerService(repo BuyerRepository) *BuyerService {
	return &BuyerService{
		repo: repo,
	}
}

// Create registers a buyer in the caller's scope. Both roles may create
// buyers; a manager caller is recorded as the creator.
func (s *BuyerService) Create(ctx context.Context, caller domain.Principal, buyer domain.Buyer) (domain.Buyer, error) {
	buyer.EntityID = caller.EntityID
	buyer.CreatedByManagerNumber = nil
	if caller.IsManager() {
		number := caller.ManagerNumber
		buyer.CreatedByManagerNumber = &number
	}

	created, err := s.repo.Create(ctx, buyer)
	if err != nil {
		return domain.Buyer{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *BuyerService) Get(ctx context.Context, caller domain.Principal, buyerNumber uint) (domain.Buyer, error) {
	buyer, err := s.repo.FindByKey(ctx, caller.EntityID, buyerNumber)
	if err != nil {
		return domain.Buyer{}, fmt.Errorf("s.repo.FindByKey -> %w", err)
	}

	return buyer, nil
}

// List returns buyers in the caller's scope. A manager only ever sees the
// buyers it registered; an entity sees all and may narrow by creator.
func (s *BuyerService) List(ctx context.Context, caller domain.Principal, createdByManagerNumber *uint, limit, offset int) ([]domain.Buyer, error) {
	filter := createdByManagerNumber
	if caller.IsManager() {
		number := caller.ManagerNumber
		filter = &number
	}

	buyers, err := s.repo.List(ctx, caller.EntityID, filter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return buyers, nil
}

func (s *BuyerService) Update(ctx context.Context, caller domain.Principal, buyerNumber uint, update BuyerUpdate) (domain.Buyer, error) {
	buyer, err := s.repo.FindByKey(ctx, caller.EntityID, buyerNumber)
	if err != nil {
		return domain.Buyer{}, fmt.Errorf("s.repo.FindByKey -> %w", err)
	}

	if err = canMutateBuyer(caller, buyer); err != nil {
		return domain.Buyer{}, err
	}

	fields := make(map[string]interface{})
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.Phone != nil {
		fields["phone"] = *update.Phone
	}
	if update.Email != nil {
		fields["email"] = *update.Email
	}

	updated, err := s.repo.Update(ctx, caller.EntityID, buyerNumber, fields)
	if err != nil {
		return domain.Buyer{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *BuyerService) Delete(ctx context.Context, caller domain.Principal, buyerNumber uint) error {
	buyer, err := s.repo.FindByKey(ctx, caller.EntityID, buyerNumber)
	if err != nil {
		return fmt.Errorf("s.repo.FindByKey -> %w", err)
	}

	if err = canMutateBuyer(caller, buyer); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, caller.EntityID, buyerNumber); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
