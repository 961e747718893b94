package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Project struct {
	EntityID      uint `gorm:"primaryKey;autoIncrement:false"`
	ProjectNumber uint `gorm:"primaryKey;autoIncrement:false"`

	Name        string `gorm:"size:100;not null"`
	Description string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type ProjectDAO struct {
	db *gorm.DB
}

func NewProjectDAO(db *gorm.DB) *ProjectDAO {
	return &ProjectDAO{
		db: db,
	}
}

// Insert allocates the next project number within the entity and creates the
// row in the same transaction.
func (d *ProjectDAO) Insert(ctx context.Context, project Project) (Project, error) {
	for attempt := 0; attempt < allocRetries; attempt++ {
		err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			next, err := nextNumber(tx, &Project{}, "project_number", "entity_id = ?", project.EntityID)
			if err != nil {
				return err
			}
			project.ProjectNumber = next

			return tx.Create(&project).Error
		})
		if err == nil {
			return project, nil
		}

		if _, ok := uniqueViolation(err); ok {
			continue
		}

		return Project{}, storeErr(err)
	}

	return Project{}, storeErr(errors.New("project number allocation kept conflicting"))
}

func (d *ProjectDAO) FindByKey(ctx context.Context, entityID, projectNumber uint) (Project, error) {
	var project Project

	result := d.db.WithContext(ctx).
		Where("entity_id = ? AND project_number = ?", entityID, projectNumber).
		First(&project)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Project{}, ErrProjectNotFound
		}

		return Project{}, storeErr(result.Error)
	}

	return project, nil
}

func (d *ProjectDAO) List(ctx context.Context, entityID uint, limit, offset int) ([]Project, error) {
	var projects []Project

	query := d.db.WithContext(ctx).
		Where("entity_id = ?", entityID).
		Order("project_number ASC").
		Offset(offset)
	if limit > 0 {
		query = query.Limit(limit)
	}

	if result := query.Find(&projects); result.Error != nil {
		return nil, storeErr(result.Error)
	}

	return projects, nil
}

func (d *ProjectDAO) UpdateFields(ctx context.Context, entityID, projectNumber uint, fields map[string]interface{}) (Project, error) {
	if len(fields) == 0 {
		return d.FindByKey(ctx, entityID, projectNumber)
	}

	result := d.db.WithContext(ctx).
		Model(&Project{}).
		Where("entity_id = ? AND project_number = ?", entityID, projectNumber).
		Updates(fields)
	if result.Error != nil {
		return Project{}, storeErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return Project{}, ErrProjectNotFound
	}

	return d.FindByKey(ctx, entityID, projectNumber)
}
