package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Entity struct {
	ID uint `gorm:"primaryKey"`

	Name        string `gorm:"size:100;not null;uniqueIndex:uk_entities_name"`
	Password    string `gorm:"size:255;not null"`
	Description string `gorm:"size:500"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type EntityDAO struct {
	db *gorm.DB
}

func NewEntityDAO(db *gorm.DB) *EntityDAO {
	return &EntityDAO{
		db: db,
	}
}

func (d *EntityDAO) Insert(ctx context.Context, entity Entity) (Entity, error) {
	result := d.db.WithContext(ctx).Create(&entity)
	if result.Error != nil {
		if _, ok := uniqueViolation(result.Error); ok {
			return Entity{}, ErrEntityNameExists
		}

		return Entity{}, storeErr(result.Error)
	}

	return entity, nil
}

func (d *EntityDAO) FindByID(ctx context.Context, id uint) (Entity, error) {
	var entity Entity

	result := d.db.WithContext(ctx).First(&entity, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Entity{}, ErrEntityNotFound
		}

		return Entity{}, storeErr(result.Error)
	}

	return entity, nil
}

func (d *EntityDAO) FindByName(ctx context.Context, name string) (Entity, error) {
	var entity Entity

	result := d.db.WithContext(ctx).First(&entity, "name = ?", name)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Entity{}, ErrEntityNotFound
		}

		return Entity{}, storeErr(result.Error)
	}

	return entity, nil
}
