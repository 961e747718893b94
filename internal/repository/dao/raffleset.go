package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

const (
	SetTypeOnline   = "online"
	SetTypePhysical = "physical"
)

type RaffleSet struct {
	EntityID      uint `gorm:"primaryKey;autoIncrement:false"`
	ProjectNumber uint `gorm:"primaryKey;autoIncrement:false"`
	SetNumber     uint `gorm:"primaryKey;autoIncrement:false"`

	Name      string `gorm:"size:60;not null"`
	Type      string `gorm:"size:8;not null"` // "online" or "physical"
	Init      uint   `gorm:"not null"`
	Final     uint   `gorm:"not null"`
	UnitPrice int    `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type RaffleSetDAO struct {
	db *gorm.DB
}

func NewRaffleSetDAO(db *gorm.DB) *RaffleSetDAO {
	return &RaffleSetDAO{
		db: db,
	}
}

// InsertWithRaffles allocates the next set number within the project, derives
// the set's raffle number range from the highest existing raffle number in
// the project (numbering is continuous across sets), and materializes one
// available raffle per number. Set row and raffles are created in the same
// transaction.
func (d *RaffleSetDAO) InsertWithRaffles(ctx context.Context, set RaffleSet, quantity uint) (RaffleSet, error) {
	for attempt := 0; attempt < allocRetries; attempt++ {
		err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var project Project
			err := tx.Where("entity_id = ? AND project_number = ?", set.EntityID, set.ProjectNumber).
				First(&project).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrProjectNotFound
				}

				return err
			}

			next, err := nextNumber(tx, &RaffleSet{}, "set_number",
				"entity_id = ? AND project_number = ?", set.EntityID, set.ProjectNumber)
			if err != nil {
				return err
			}
			set.SetNumber = next

			start, err := nextNumber(tx, &Raffle{}, "raffle_number",
				"entity_id = ? AND project_number = ?", set.EntityID, set.ProjectNumber)
			if err != nil {
				return err
			}
			set.Init = start
			set.Final = start + quantity - 1

			if err = tx.Create(&set).Error; err != nil {
				return err
			}

			raffles := make([]Raffle, 0, quantity)
			for n := set.Init; n <= set.Final; n++ {
				raffles = append(raffles, Raffle{
					EntityID:      set.EntityID,
					ProjectNumber: set.ProjectNumber,
					RaffleNumber:  n,
					SetNumber:     set.SetNumber,
					State:         StateAvailable,
				})
			}

			return tx.Create(&raffles).Error
		})
		if err == nil {
			return set, nil
		}

		if errors.Is(err, ErrProjectNotFound) {
			return RaffleSet{}, err
		}
		if _, ok := uniqueViolation(err); ok {
			continue
		}

		return RaffleSet{}, storeErr(err)
	}

	return RaffleSet{}, storeErr(errors.New("raffle set allocation kept conflicting"))
}

func (d *RaffleSetDAO) FindByKey(ctx context.Context, entityID, projectNumber, setNumber uint) (RaffleSet, error) {
	var set RaffleSet

	result := d.db.WithContext(ctx).
		Where("entity_id = ? AND project_number = ? AND set_number = ?", entityID, projectNumber, setNumber).
		First(&set)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return RaffleSet{}, ErrRaffleSetNotFound
		}

		return RaffleSet{}, storeErr(result.Error)
	}

	return set, nil
}

func (d *RaffleSetDAO) List(ctx context.Context, entityID, projectNumber uint, limit, offset int) ([]RaffleSet, error) {
	var sets []RaffleSet

	query := d.db.WithContext(ctx).
		Where("entity_id = ? AND project_number = ?", entityID, projectNumber).
		Order("set_number ASC").
		Offset(offset)
	if limit > 0 {
		query = query.Limit(limit)
	}

	if result := query.Find(&sets); result.Error != nil {
		return nil, storeErr(result.Error)
	}

	return sets, nil
}

// UpdateFields applies the supplied fields. The number range (init, final) is
// derived at creation and immutable, as are the key fields.
func (d *RaffleSetDAO) UpdateFields(ctx context.Context, entityID, projectNumber, setNumber uint, fields map[string]interface{}) (RaffleSet, error) {
	if len(fields) == 0 {
		return d.FindByKey(ctx, entityID, projectNumber, setNumber)
	}

	result := d.db.WithContext(ctx).
		Model(&RaffleSet{}).
		Where("entity_id = ? AND project_number = ? AND set_number = ?", entityID, projectNumber, setNumber).
		Updates(fields)
	if result.Error != nil {
		return RaffleSet{}, storeErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return RaffleSet{}, ErrRaffleSetNotFound
	}

	return d.FindByKey(ctx, entityID, projectNumber, setNumber)
}
