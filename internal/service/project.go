package service

import (
	"context"
	"fmt"

	"github.com/sorteo-app/raffles-api/internal/domain"
	"github.com/sorteo-app/raffles-api/internal/repository"
)

var ErrProjectNotFound = repository.ErrProjectNotFound

type ProjectRepository interface {
	Create(ctx context.Context, project domain.Project) (domain.Project, error)
	FindByKey(ctx context.Context, entityID, projectNumber uint) (domain.Project, error)
	List(ctx context.Context, entityID uint, limit, offset int) ([]domain.Project, error)
	Update(ctx context.Context, entityID, projectNumber uint, fields map[string]interface{}) (domain.Project, error)
	Delete(ctx context.Context, entityID, projectNumber uint) error
}

// ProjectUpdate carries the optional fields of a partial project update.
type ProjectUpdate struct {
	Name        *string
	Description *string
}

// ProjectService administers projects; entity-only, scoped to the caller's
// tenant.
type ProjectService struct {
	repo ProjectRepository
}

func NewProjectService(repo ProjectRepository) *ProjectService {
	return &ProjectService{
		repo: repo,
	}
}

func (s *ProjectService) Create(ctx context.Context, caller domain.Principal, project domain.Project) (domain.Project, error) {
	if err := requireEntity(caller); err != nil {
		return domain.Project{}, err
	}
	project.EntityID = caller.EntityID

	created, err := s.repo.Create(ctx, project)
	if err != nil {
		return domain.Project{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *ProjectService) Get(ctx context.Context, caller domain.Principal, projectNumber uint) (domain.Project, error) {
	if err := requireEntity(caller); err != nil {
		return domain.Project{}, err
	}

	project, err := s.repo.FindByKey(ctx, caller.EntityID, projectNumber)
	if err != nil {
		return domain.Project{}, fmt.Errorf("s.repo.FindByKey -> %w", err)
	}

	return project, nil
}

func (s *ProjectService) List(ctx context.Context, caller domain.Principal, limit, offset int) ([]domain.Project, error) {
	if err := requireEntity(caller); err != nil {
		return nil, err
	}

	projects, err := s.repo.List(ctx, caller.EntityID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return projects, nil
}

func (s *ProjectService) Update(ctx context.Context, caller domain.Principal, projectNumber uint, update ProjectUpdate) (domain.Project, error) {
	if err := requireEntity(caller); err != nil {
		return domain.Project{}, err
	}

	fields := make(map[string]interface{})
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.Description != nil {
		fields["description"] = *update.Description
	}

	project, err := s.repo.Update(ctx, caller.EntityID, projectNumber, fields)
	if err != nil {
		return domain.Project{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return project, nil
}

// Delete removes a project together with its raffle sets and raffles.
func (s *ProjectService) Delete(ctx context.Context, caller domain.Principal, projectNumber uint) error {
	if err := requireEntity(caller); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, caller.EntityID, projectNumber); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
