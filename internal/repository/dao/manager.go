package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

type Manager struct {
	EntityID      uint `gorm:"primaryKey;autoIncrement:false;uniqueIndex:uk_managers_entity_username,priority:1"`
	ManagerNumber uint `gorm:"primaryKey;autoIncrement:false"`

	Username string `gorm:"size:50;not null;uniqueIndex:uk_managers_entity_username,priority:2"`
	Password string `gorm:"size:255;not null"`
	IsActive bool   `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type ManagerDAO struct {
	db *gorm.DB
}

func NewManagerDAO(db *gorm.DB) *ManagerDAO {
	return &ManagerDAO{
		db: db,
	}
}

// Insert allocates the next manager number within the entity and creates the
// row in the same transaction.
func (d *ManagerDAO) Insert(ctx context.Context, manager Manager) (Manager, error) {
	for attempt := 0; attempt < allocRetries; attempt++ {
		err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			next, err := nextNumber(tx, &Manager{}, "manager_number", "entity_id = ?", manager.EntityID)
			if err != nil {
				return err
			}
			manager.ManagerNumber = next
			manager.IsActive = true

			return tx.Create(&manager).Error
		})
		if err == nil {
			return manager, nil
		}

		if constraint, ok := uniqueViolation(err); ok {
			if strings.Contains(constraint, "username") {
				return Manager{}, ErrManagerUsernameExists
			}

			// Lost the allocation race, re-read the counter.
			continue
		}

		return Manager{}, storeErr(err)
	}

	return Manager{}, storeErr(errors.New("manager number allocation kept conflicting"))
}

func (d *ManagerDAO) FindByKey(ctx context.Context, entityID, managerNumber uint) (Manager, error) {
	var manager Manager

	result := d.db.WithContext(ctx).
		Where("entity_id = ? AND manager_number = ?", entityID, managerNumber).
		First(&manager)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Manager{}, ErrManagerNotFound
		}

		return Manager{}, storeErr(result.Error)
	}

	return manager, nil
}

func (d *ManagerDAO) FindByUsername(ctx context.Context, entityID uint, username string) (Manager, error) {
	var manager Manager

	result := d.db.WithContext(ctx).
		Where("entity_id = ? AND username = ?", entityID, username).
		First(&manager)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Manager{}, ErrManagerNotFound
		}

		return Manager{}, storeErr(result.Error)
	}

	return manager, nil
}

func (d *ManagerDAO) List(ctx context.Context, entityID uint, limit, offset int) ([]Manager, error) {
	var managers []Manager

	query := d.db.WithContext(ctx).
		Where("entity_id = ?", entityID).
		Order("manager_number ASC").
		Offset(offset)
	if limit > 0 {
		query = query.Limit(limit)
	}

	if result := query.Find(&managers); result.Error != nil {
		return nil, storeErr(result.Error)
	}

	return managers, nil
}

// UpdateFields applies only the supplied non-key fields and returns the
// refreshed row.
func (d *ManagerDAO) UpdateFields(ctx context.Context, entityID, managerNumber uint, fields map[string]interface{}) (Manager, error) {
	if len(fields) == 0 {
		return d.FindByKey(ctx, entityID, managerNumber)
	}

	result := d.db.WithContext(ctx).
		Model(&Manager{}).
		Where("entity_id = ? AND manager_number = ?", entityID, managerNumber).
		Updates(fields)
	if result.Error != nil {
		if constraint, ok := uniqueViolation(result.Error); ok && strings.Contains(constraint, "username") {
			return Manager{}, ErrManagerUsernameExists
		}

		return Manager{}, storeErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return Manager{}, ErrManagerNotFound
	}

	return d.FindByKey(ctx, entityID, managerNumber)
}
