package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/nurpe/employeehub/internal/model"
)

type ContractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

// List returns contracts matching query. ownerID zero means every owner.
func (r *ContractRepository) List(ctx context.Context, ownerID uint, query string) ([]model.Contract, error) {
	q := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("User").
		Preload("SubContracts", func(db *gorm.DB) *gorm.DB {
			return db.Order("subcontract_number ASC")
		}).
		Order("deadline ASC")
	if ownerID != 0 {
		q = q.Where("user_id = ?", ownerID)
	}
	if query != "" {
		q = q.Where("name ILIKE ?", containsPattern(query))
	}
	var contracts []model.Contract
	if err := q.Find(&contracts).Error; err != nil {
		return nil, err
	}
	return contracts, nil
}

func (r *ContractRepository) Get(ctx context.Context, id uint) (*model.Contract, error) {
	var contract model.Contract
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("User").
		Preload("SubContracts", func(db *gorm.DB) *gorm.DB {
			return db.Order("subcontract_number ASC")
		}).
		First(&contract, id).Error
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *ContractRepository) Create(ctx context.Context, contract *model.Contract) error {
	return r.db.WithContext(ctx).Omit("User", "Customer", "SubContracts").Create(contract).Error
}

// Update writes the editable columns. The deadline is fixed at creation.
func (r *ContractRepository) Update(ctx context.Context, contract *model.Contract) error {
	res := r.db.WithContext(ctx).Model(&model.Contract{}).Where("id = ?", contract.ID).Updates(map[string]interface{}{
		"name":        contract.Name,
		"user_id":     contract.UserID,
		"customer_id": contract.CustomerID,
		"status":      contract.Status,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ContractRepository) CountSubContracts(ctx context.Context, id uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.SubContract{}).Where("contract_id = ?", id).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ContractRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Contract{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
