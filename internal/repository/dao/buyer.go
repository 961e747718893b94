package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

type Buyer struct {
	EntityID    uint `gorm:"primaryKey;autoIncrement:false;uniqueIndex:uk_buyers_name_phone,priority:1"`
	BuyerNumber uint `gorm:"primaryKey;autoIncrement:false"`

	Name                   string  `gorm:"size:100;not null;uniqueIndex:uk_buyers_name_phone,priority:2"`
	Phone                  string  `gorm:"size:20;not null;uniqueIndex:uk_buyers_name_phone,priority:3"`
	Email                  *string `gorm:"size:100"`
	CreatedByManagerNumber *uint   `gorm:""`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type BuyerDAO struct {
	db *gorm.DB
}

func NewBuyerDAO(db *gorm.DB) *BuyerDAO {
	return &BuyerDAO{
		db: db,
	}
}

// Insert allocates the next buyer number within the entity and creates the
// row in the same transaction. A duplicate name+phone pair within the entity
// is a constraint violation, not an allocation race, and is not retried.
func (d *BuyerDAO) Insert(ctx context.Context, buyer Buyer) (Buyer, error) {
	for attempt := 0; attempt < allocRetries; attempt++ {
		err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			next, err := nextNumber(tx, &Buyer{}, "buyer_number", "entity_id = ?", buyer.EntityID)
			if err != nil {
				return err
			}
			buyer.BuyerNumber = next

			return tx.Create(&buyer).Error
		})
		if err == nil {
			return buyer, nil
		}

		if constraint, ok := uniqueViolation(err); ok {
			if strings.Contains(constraint, "name") && strings.Contains(constraint, "phone") {
				return Buyer{}, ErrBuyerExists
			}

			continue
		}

		return Buyer{}, storeErr(err)
	}

	return Buyer{}, storeErr(errors.New("buyer number allocation kept conflicting"))
}

func (d *BuyerDAO) FindByKey(ctx context.Context, entityID, buyerNumber uint) (Buyer, error) {
	var buyer Buyer

	result := d.db.WithContext(ctx).
		Where("entity_id = ? AND buyer_number = ?", entityID, buyerNumber).
		First(&buyer)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Buyer{}, ErrBuyerNotFound
		}

		return Buyer{}, storeErr(result.Error)
	}

	return buyer, nil
}

// List returns the buyers of an entity. A non-nil createdByManagerNumber
// narrows the listing to buyers registered by that manager.
func (d *BuyerDAO) List(ctx context.Context, entityID uint, createdByManagerNumber *uint, limit, offset int) ([]Buyer, error) {
	var buyers []Buyer

	query := d.db.WithContext(ctx).
		Where("entity_id = ?", entityID)
	if createdByManagerNumber != nil {
		query = query.Where("created_by_manager_number = ?", *createdByManagerNumber)
	}

	query = query.Order("buyer_number ASC").Offset(offset)
	if limit > 0 {
		query = query.Limit(limit)
	}

	if result := query.Find(&buyers); result.Error != nil {
		return nil, storeErr(result.Error)
	}

	return buyers, nil
}

func (d *BuyerDAO) UpdateFields(ctx context.Context, entityID, buyerNumber uint, fields map[string]interface{}) (Buyer, error) {
	if len(fields) == 0 {
		return d.FindByKey(ctx, entityID, buyerNumber)
	}

	result := d.db.WithContext(ctx).
		Model(&Buyer{}).
		Where("entity_id = ? AND buyer_number = ?", entityID, buyerNumber).
		Updates(fields)
	if result.Error != nil {
		if constraint, ok := uniqueViolation(result.Error); ok &&
			strings.Contains(constraint, "name") && strings.Contains(constraint, "phone") {
			return Buyer{}, ErrBuyerExists
		}

		return Buyer{}, storeErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return Buyer{}, ErrBuyerNotFound
	}

	return d.FindByKey(ctx, entityID, buyerNumber)
}

func (d *BuyerDAO) Delete(ctx context.Context, entityID, buyerNumber uint) error {
	result := d.db.WithContext(ctx).
		Where("entity_id = ? AND buyer_number = ?", entityID, buyerNumber).
		Delete(&Buyer{})
	if result.Error != nil {
		return storeErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBuyerNotFound
	}

	return nil
}
