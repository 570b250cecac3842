package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nurpe/employeehub/internal/model"
)

type SubContractRepository struct {
	db *gorm.DB
}

func NewSubContractRepository(db *gorm.DB) *SubContractRepository {
	return &SubContractRepository{db: db}
}

// Allocate inserts sub with the next number for its contract. The parent contract row is
// locked for the duration of the transaction so concurrent allocations queue behind it;
// the unique index on (contract_id, subcontract_number) still rejects any duplicate.
func (r *SubContractRepository) Allocate(ctx context.Context, sub *model.SubContract) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var contract model.Contract
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&contract, sub.ContractID).Error; err != nil {
			return err
		}

		var maxNumber int
		if err := tx.Raw(`
			SELECT COALESCE(MAX(subcontract_number), 0)
			FROM subcontracts
			WHERE contract_id = ?
		`, sub.ContractID).Scan(&maxNumber).Error; err != nil {
			return err
		}

		sub.Number = maxNumber + 1
		return tx.Omit("Contract", "User", "Comments").Create(sub).Error
	})
}

// ListByAssignee returns subcontracts assigned to userID with their parent contract loaded.
func (r *SubContractRepository) ListByAssignee(ctx context.Context, userID uint, query string) ([]model.SubContract, error) {
	q := r.db.WithContext(ctx).Preload("Contract").Where("user_id = ?", userID)
	if query != "" {
		q = q.Where("name ILIKE ?", containsPattern(query))
	}
	var subs []model.SubContract
	if err := q.Order("created_at ASC").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *SubContractRepository) GetByNumber(ctx context.Context, contractID uint, number int) (*model.SubContract, error) {
	var sub model.SubContract
	err := r.db.WithContext(ctx).
		Preload("Contract").
		Preload("User").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Where("contract_id = ? AND subcontract_number = ?", contractID, number).
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *SubContractRepository) Get(ctx context.Context, id uint) (*model.SubContract, error) {
	var sub model.SubContract
	if err := r.db.WithContext(ctx).Preload("Contract").First(&sub, id).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

// Update writes name, assignee and status. Numbers never change after allocation.
func (r *SubContractRepository) Update(ctx context.Context, sub *model.SubContract) error {
	res := r.db.WithContext(ctx).Model(&model.SubContract{}).Where("id = ?", sub.ID).Updates(map[string]interface{}{
		"name":    sub.Name,
		"user_id": sub.UserID,
		"status":  sub.Status,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *SubContractRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.SubContract{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
