package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

const (
	StateAvailable = "available"
	StateReserved  = "reserved"
	StateSold      = "sold"
)

const (
	PaymentCash     = "cash"
	PaymentCard     = "card"
	PaymentTransfer = "transfer"
)

type Raffle struct {
	EntityID      uint `gorm:"primaryKey;autoIncrement:false"`
	ProjectNumber uint `gorm:"primaryKey;autoIncrement:false"`
	RaffleNumber  uint `gorm:"primaryKey;autoIncrement:false"`

	SetNumber           uint    `gorm:"not null;index"`
	BuyerNumber         *uint   `gorm:""`
	SoldByManagerNumber *uint   `gorm:""`
	PaymentMethod       *string `gorm:"size:8"`                            // "cash", "card" or "transfer"
	State               string  `gorm:"size:9;not null;default:available"` // "available", "sold" or "reserved"

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// RaffleFilter narrows raffle listings within a project scope.
type RaffleFilter struct {
	SetNumber *uint
	State     *string
}

type RaffleDAO struct {
	db *gorm.DB
}

func NewRaffleDAO(db *gorm.DB) *RaffleDAO {
	return &RaffleDAO{
		db: db,
	}
}

func (d *RaffleDAO) FindByKey(ctx context.Context, entityID, projectNumber, raffleNumber uint) (Raffle, error) {
	var raffle Raffle

	result := d.db.WithContext(ctx).
		Where("entity_id = ? AND project_number = ? AND raffle_number = ?", entityID, projectNumber, raffleNumber).
		First(&raffle)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Raffle{}, ErrRaffleNotFound
		}

		return Raffle{}, storeErr(result.Error)
	}

	return raffle, nil
}

func (d *RaffleDAO) List(ctx context.Context, entityID, projectNumber uint, filter RaffleFilter, limit, offset int) ([]Raffle, error) {
	var raffles []Raffle

	query := d.db.WithContext(ctx).
		Where("entity_id = ? AND project_number = ?", entityID, projectNumber)
	if filter.SetNumber != nil {
		query = query.Where("set_number = ?", *filter.SetNumber)
	}
	if filter.State != nil {
		query = query.Where("state = ?", *filter.State)
	}

	query = query.Order("raffle_number ASC").Offset(offset)
	if limit > 0 {
		query = query.Limit(limit)
	}

	if result := query.Find(&raffles); result.Error != nil {
		return nil, storeErr(result.Error)
	}

	return raffles, nil
}

// Sell transitions the raffle to sold, binding buyer, payment method and
// seller in one atomic update. The state guard makes a second sale fail
// instead of silently overwriting the first: zero affected rows means the
// raffle either does not exist in this scope or is no longer sellable, and
// the two are told apart by a follow-up read in the same transaction.
func (d *RaffleDAO) Sell(ctx context.Context, entityID, projectNumber, raffleNumber, buyerNumber uint, paymentMethod string, soldByManagerNumber *uint) (Raffle, error) {
	var sold Raffle

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var buyer Buyer
		err := tx.Where("entity_id = ? AND buyer_number = ?", entityID, buyerNumber).
			First(&buyer).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBuyerNotFound
			}

			return err
		}

		result := tx.Model(&Raffle{}).
			Where("entity_id = ? AND project_number = ? AND raffle_number = ?", entityID, projectNumber, raffleNumber).
			Where("state IN ?", []string{StateAvailable, StateReserved}).
			Updates(map[string]interface{}{
				"buyer_number":           buyerNumber,
				"payment_method":         paymentMethod,
				"sold_by_manager_number": soldByManagerNumber,
				"state":                  StateSold,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var raffle Raffle
			err = tx.Where("entity_id = ? AND project_number = ? AND raffle_number = ?", entityID, projectNumber, raffleNumber).
				First(&raffle).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrRaffleNotFound
				}

				return err
			}

			return ErrRaffleNotSellable
		}

		return tx.Where("entity_id = ? AND project_number = ? AND raffle_number = ?", entityID, projectNumber, raffleNumber).
			First(&sold).Error
	})
	if err != nil {
		if errors.Is(err, ErrBuyerNotFound) || errors.Is(err, ErrRaffleNotFound) || errors.Is(err, ErrRaffleNotSellable) {
			return Raffle{}, err
		}

		return Raffle{}, storeErr(err)
	}

	return sold, nil
}

func (d *RaffleDAO) UpdateFields(ctx context.Context, entityID, projectNumber, raffleNumber uint, fields map[string]interface{}) (Raffle, error) {
	if len(fields) == 0 {
		return d.FindByKey(ctx, entityID, projectNumber, raffleNumber)
	}

	result := d.db.WithContext(ctx).
		Model(&Raffle{}).
		Where("entity_id = ? AND project_number = ? AND raffle_number = ?", entityID, projectNumber, raffleNumber).
		Updates(fields)
	if result.Error != nil {
		return Raffle{}, storeErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return Raffle{}, ErrRaffleNotFound
	}

	return d.FindByKey(ctx, entityID, projectNumber, raffleNumber)
}

// Delete removes a single raffle. Structural deletes of whole sets or
// projects go through CascadeDAO instead.
func (d *RaffleDAO) Delete(ctx context.Context, entityID, projectNumber, raffleNumber uint) error {
	result := d.db.WithContext(ctx).
		Where("entity_id = ? AND project_number = ? AND raffle_number = ?", entityID, projectNumber, raffleNumber).
		Delete(&Raffle{})
	if result.Error != nil {
		return storeErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRaffleNotFound
	}

	return nil
}
