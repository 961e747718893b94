package repository

import (
	"context"
	"fmt"

	"github.com/sorteo-app/raffles-api/internal/domain"
	"github.com/sorteo-app/raffles-api/internal/repository/dao"
)

var ErrProjectNotFound = dao.ErrProjectNotFound

type ProjectDAO interface {
	Insert(ctx context.Context, project dao.Project) (dao.Project, error)
	FindByKey(ctx context.Context, entityID, projectNumber uint) (dao.Project, error)
	List(ctx context.Context, entityID uint, limit, offset int) ([]dao.Project, error)
	UpdateFields(ctx context.Context, entityID, projectNumber uint, fields map[string]interface{}) (dao.Project, error)
}

type ProjectRepository struct {
	dao     ProjectDAO
	cascade CascadeDAO
}

func NewProjectRepository(dao ProjectDAO, cascade CascadeDAO) *ProjectRepository {
	return &ProjectRepository{
		dao:     dao,
		cascade: cascade,
	}
}

func (r *ProjectRepository) Create(ctx context.Context, project domain.Project) (domain.Project, error) {
	created, err := r.dao.Insert(ctx, dao.Project{
		EntityID:    project.EntityID,
		Name:        project.Name,
		Description: project.Description,
	})
	if err != nil {
		return domain.Project{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ProjectRepository) FindByKey(ctx context.Context, entityID, projectNumber uint) (domain.Project, error) {
	found, err := r.dao.FindByKey(ctx, entityID, projectNumber)
	if err != nil {
		return domain.Project{}, fmt.Errorf("r.dao.FindByKey -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ProjectRepository) List(ctx context.Context, entityID uint, limit, offset int) ([]domain.Project, error) {
	found, err := r.dao.List(ctx, entityID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	projects := make([]domain.Project, len(found))
	for i, p := range found {
		projects[i] = r.daoToDomain(p)
	}

	return projects, nil
}

func (r *ProjectRepository) Update(ctx context.Context, entityID, projectNumber uint, fields map[string]interface{}) (domain.Project, error) {
	updated, err := r.dao.UpdateFields(ctx, entityID, projectNumber, fields)
	if err != nil {
		return domain.Project{}, fmt.Errorf("r.dao.UpdateFields -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

// Delete cascades through the project's raffle sets and raffles.
func (r *ProjectRepository) Delete(ctx context.Context, entityID, projectNumber uint) error {
	if err := r.cascade.DeleteProject(ctx, entityID, projectNumber); err != nil {
		return fmt.Errorf("r.cascade.DeleteProject -> %w", err)
	}

	return nil
}

func (r *ProjectRepository) daoToDomain(p dao.Project) domain.Project {
	return domain.Project{
		EntityID:      p.EntityID,
		ProjectNumber: p.ProjectNumber,
		Name:          p.Name,
		Description:   p.Description,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
