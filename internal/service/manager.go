package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/sorteo-app/raffles-api/internal/domain"
)

type ManagerRepository interface {
	FindByKey(ctx context.Context, entityID, managerNumber uint) (domain.Manager, error)
	List(ctx context.Context, entityID uint, limit, offset int) ([]domain.Manager, error)
	Update(ctx context.Context, entityID, managerNumber uint, fields map[string]interface{}) (domain.Manager, error)
	Delete(ctx context.Context, entityID, managerNumber uint) error
}

// ManagerUpdate carries the optional fields of a partial manager update.
// Nil means "leave unchanged".
type ManagerUpdate struct {
	Username *string
	Password *string
	IsActive *bool
}

// ManagerService administers the managers of an entity. Every operation is
// reserved for the tenant owner.
type ManagerService struct {
	repo ManagerRepository
}

func NewManagerService(repo ManagerRepository) *ManagerService {
	return &ManagerService{
		repo: repo,
	}
}

func (s *ManagerService) Get(ctx context.Context, caller domain.Principal, managerNumber uint) (domain.Manager, error) {
	if err := requireEntity(caller); err != nil {
		return domain.Manager{}, err
	}

	manager, err := s.repo.FindByKey(ctx, caller.EntityID, managerNumber)
	if err != nil {
		return domain.Manager{}, fmt.Errorf("s.repo.FindByKey -> %w", err)
	}

	return manager, nil
}

func (s *ManagerService) List(ctx context.Context, caller domain.Principal, limit, offset int) ([]domain.Manager, error) {
	if err := requireEntity(caller); err != nil {
		return nil, err
	}

	managers, err := s.repo.List(ctx, caller.EntityID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return managers, nil
}

func (s *ManagerService) Update(ctx context.Context, caller domain.Principal, managerNumber uint, update ManagerUpdate) (domain.Manager, error) {
	if err := requireEntity(caller); err != nil {
		return domain.Manager{}, err
	}

	fields := make(map[string]interface{})
	if update.Username != nil {
		fields["username"] = *update.Username
	}
	if update.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*update.Password), bcrypt.DefaultCost)
		if err != nil {
			return domain.Manager{}, err
		}
		fields["password"] = string(hash)
	}
	if update.IsActive != nil {
		fields["is_active"] = *update.IsActive
	}

	manager, err := s.repo.Update(ctx, caller.EntityID, managerNumber, fields)
	if err != nil {
		return domain.Manager{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return manager, nil
}

func (s *ManagerService) Delete(ctx context.Context, caller domain.Principal, managerNumber uint) error {
	if err := requireEntity(caller); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, caller.EntityID, managerNumber); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
