package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/sorteo-app/raffles-api/internal/domain"
	"github.com/sorteo-app/raffles-api/internal/repository"
)

var (
	ErrEntityNotFound        = repository.ErrEntityNotFound
	ErrEntityNameExists      = repository.ErrEntityNameExists
	ErrManagerNotFound       = repository.ErrManagerNotFound
	ErrManagerUsernameExists = repository.ErrManagerUsernameExists
	ErrWrongPassword         = errors.New("wrong password")
	ErrManagerInactive       = errors.New("manager is inactive")
)

type AuthEntityRepository interface {
	Create(ctx context.Context, entity domain.Entity) (domain.Entity, error)
	FindByID(ctx context.Context, id uint) (domain.Entity, error)
	FindByName(ctx context.Context, name string) (domain.Entity, error)
}

type AuthManagerRepository interface {
	Create(ctx context.Context, manager domain.Manager) (domain.Manager, error)
	FindByKey(ctx context.Context, entityID, managerNumber uint) (domain.Manager, error)
	FindByUsername(ctx context.Context, entityID uint, username string) (domain.Manager, error)
}

type AuthService struct {
	entities AuthEntityRepository
	managers AuthManagerRepository
}

func NewAuthService(entities AuthEntityRepository, managers AuthManagerRepository) *AuthService {
	return &AuthService{
		entities: entities,
		managers: managers,
	}
}

// RegisterEntity creates a tenant account with a hashed password.
func (s *AuthService) RegisterEntity(ctx context.Context, entity domain.Entity) (domain.Entity, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(entity.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Entity{}, err
	}
	entity.Password = string(hash)

	created, err := s.entities.Create(ctx, entity)
	if err != nil {
		return domain.Entity{}, fmt.Errorf("s.entities.Create -> %w", err)
	}

	return created, nil
}

func (s *AuthService) LoginEntity(ctx context.Context, name, password string) (domain.Entity, error) {
	entity, err := s.entities.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrEntityNotFound) {
			return domain.Entity{}, ErrEntityNotFound
		}

		return domain.Entity{}, fmt.Errorf("s.entities.FindByName -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(entity.Password), []byte(password)); err != nil {
		return domain.Entity{}, ErrWrongPassword
	}

	return entity, nil
}

// RegisterManager creates a manager inside the caller's entity. Only the
// tenant owner may register managers; the manager number is allocated by the
// store.
func (s *AuthService) RegisterManager(ctx context.Context, caller domain.Principal, manager domain.Manager) (domain.Manager, error) {
	if err := requireEntity(caller); err != nil {
		return domain.Manager{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(manager.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Manager{}, err
	}
	manager.Password = string(hash)
	manager.EntityID = caller.EntityID

	created, err := s.managers.Create(ctx, manager)
	if err != nil {
		return domain.Manager{}, fmt.Errorf("s.managers.Create -> %w", err)
	}

	return created, nil
}

// LoginManager authenticates a manager by entity name plus username.
func (s *AuthService) LoginManager(ctx context.Context, entityName, username, password string) (domain.Manager, error) {
	entity, err := s.entities.FindByName(ctx, entityName)
	if err != nil {
		if errors.Is(err, repository.ErrEntityNotFound) {
			return domain.Manager{}, ErrEntityNotFound
		}

		return domain.Manager{}, fmt.Errorf("s.entities.FindByName -> %w", err)
	}

	manager, err := s.managers.FindByUsername(ctx, entity.ID, username)
	if err != nil {
		if errors.Is(err, repository.ErrManagerNotFound) {
			return domain.Manager{}, ErrManagerNotFound
		}

		return domain.Manager{}, fmt.Errorf("s.managers.FindByUsername -> %w", err)
	}

	if !manager.IsActive {
		return domain.Manager{}, ErrManagerInactive
	}

	if err = bcrypt.CompareHashAndPassword([]byte(manager.Password), []byte(password)); err != nil {
		return domain.Manager{}, ErrWrongPassword
	}

	return manager, nil
}

// ResolvePrincipal re-validates a decoded credential against the store: a
// token referencing a deleted entity, or a deleted or deactivated manager,
// is rejected even if its signature is still valid.
func (s *AuthService) ResolvePrincipal(ctx context.Context, p domain.Principal) error {
	switch p.Role {
	case domain.RoleEntity:
		if _, err := s.entities.FindByID(ctx, p.EntityID); err != nil {
			if errors.Is(err, repository.ErrEntityNotFound) {
				return ErrEntityNotFound
			}

			return fmt.Errorf("s.entities.FindByID -> %w", err)
		}

		return nil
	case domain.RoleManager:
		manager, err := s.managers.FindByKey(ctx, p.EntityID, p.ManagerNumber)
		if err != nil {
			if errors.Is(err, repository.ErrManagerNotFound) {
				return ErrManagerNotFound
			}

			return fmt.Errorf("s.managers.FindByKey -> %w", err)
		}
		if !manager.IsActive {
			return ErrManagerInactive
		}

		return nil
	default:
		return ErrPermissionDenied
	}
}
