package dao

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// CascadeDAO owns every parent-to-child deletion order. Each delete runs as a
// single transaction: a failure anywhere rolls back the whole cascade, so the
// store never holds a partially deleted project or entity.
type CascadeDAO struct {
	db *gorm.DB
}

func NewCascadeDAO(db *gorm.DB) *CascadeDAO {
	return &CascadeDAO{
		db: db,
	}
}

// DeleteRaffleSet removes a raffle set and every raffle materialized from it.
func (d *CascadeDAO) DeleteRaffleSet(ctx context.Context, entityID, projectNumber, setNumber uint) error {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("entity_id = ? AND project_number = ? AND set_number = ?", entityID, projectNumber, setNumber).
			Delete(&RaffleSet{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrRaffleSetNotFound
		}

		return tx.Where("entity_id = ? AND project_number = ? AND set_number = ?", entityID, projectNumber, setNumber).
			Delete(&Raffle{}).Error
	})

	return classifyCascadeErr(err)
}

// DeleteProject removes a project with all its raffle sets and raffles.
func (d *CascadeDAO) DeleteProject(ctx context.Context, entityID, projectNumber uint) error {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("entity_id = ? AND project_number = ?", entityID, projectNumber).
			Delete(&Project{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrProjectNotFound
		}

		err := tx.Where("entity_id = ? AND project_number = ?", entityID, projectNumber).
			Delete(&Raffle{}).Error
		if err != nil {
			return err
		}

		return tx.Where("entity_id = ? AND project_number = ?", entityID, projectNumber).
			Delete(&RaffleSet{}).Error
	})

	return classifyCascadeErr(err)
}

// DeleteManager removes a manager. Buyers the manager registered are kept;
// their creator reference is nulled rather than blocking the delete.
func (d *CascadeDAO) DeleteManager(ctx context.Context, entityID, managerNumber uint) error {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("entity_id = ? AND manager_number = ?", entityID, managerNumber).
			Delete(&Manager{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrManagerNotFound
		}

		return tx.Model(&Buyer{}).
			Where("entity_id = ? AND created_by_manager_number = ?", entityID, managerNumber).
			Update("created_by_manager_number", nil).Error
	})

	return classifyCascadeErr(err)
}

// DeleteEntity removes a tenant with everything in its scope.
func (d *CascadeDAO) DeleteEntity(ctx context.Context, entityID uint) error {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&Entity{}, entityID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrEntityNotFound
		}

		for _, model := range []interface{}{&Raffle{}, &RaffleSet{}, &Project{}, &Buyer{}, &Manager{}} {
			if err := tx.Where("entity_id = ?", entityID).Delete(model).Error; err != nil {
				return err
			}
		}

		return nil
	})

	return classifyCascadeErr(err)
}

func classifyCascadeErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrEntityNotFound) || errors.Is(err, ErrManagerNotFound) ||
		errors.Is(err, ErrProjectNotFound) || errors.Is(err, ErrRaffleSetNotFound) {
		return err
	}

	return fmt.Errorf("%w -> %v", ErrDeleteFailed, err)
}
