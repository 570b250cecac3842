package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nurpe/employeehub/internal/model"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// GetByUserID loads the profile of userID with its question, position and employee data.
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID uint) (*model.UserProfile, error) {
	var profile model.UserProfile
	err := r.db.WithContext(ctx).
		Preload("Position").
		Preload("SecurityQuestion").
		Preload("BankAccount").
		Preload("Information").
		Preload("EmergencyContacts", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetOrCreate returns the profile of userID, inserting an empty one on first access.
func (r *ProfileRepository) GetOrCreate(ctx context.Context, userID uint) (*model.UserProfile, error) {
	profile, err := r.GetByUserID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	created := model.UserProfile{UserID: userID}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Omit(clause.Associations).
		Create(&created).Error; err != nil {
		return nil, err
	}
	return r.GetByUserID(ctx, userID)
}

func (r *ProfileRepository) UpdateSecurity(ctx context.Context, profileID uint, questionID *uint, answerHash string) error {
	res := r.db.WithContext(ctx).Model(&model.UserProfile{}).Where("id = ?", profileID).Updates(map[string]interface{}{
		"security_question_id": questionID,
		"security_answer":      answerHash,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ProfileRepository) GetQuestion(ctx context.Context, id uint) (*model.SecurityQuestion, error) {
	var question model.SecurityQuestion
	if err := r.db.WithContext(ctx).First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *ProfileRepository) ListQuestions(ctx context.Context) ([]model.SecurityQuestion, error) {
	var questions []model.SecurityQuestion
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *ProfileRepository) SaveInformation(ctx context.Context, info *model.EmployeeInformation) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_profile_id"}},
			UpdateAll: true,
		}).
		Create(info).Error
}

func (r *ProfileRepository) SaveBankAccount(ctx context.Context, account *model.BankAccount) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_profile_id"}},
			UpdateAll: true,
		}).
		Create(account).Error
}

// ReplaceEmergencyContacts swaps the profile's contacts for the given set in one transaction.
func (r *ProfileRepository) ReplaceEmergencyContacts(ctx context.Context, profileID uint, contacts []model.EmergencyContact) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_profile_id = ?", profileID).Delete(&model.EmergencyContact{}).Error; err != nil {
			return err
		}
		if len(contacts) == 0 {
			return nil
		}
		for i := range contacts {
			contacts[i].ID = 0
			contacts[i].UserProfileID = profileID
		}
		return tx.Create(&contacts).Error
	})
}
