package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/nurpe/employeehub/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	if err := r.loadPermissions(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	if err := r.loadPermissions(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) List(ctx context.Context, query string) ([]model.User, error) {
	q := r.db.WithContext(ctx).Order("username ASC")
	if query != "" {
		pattern := containsPattern(query)
		q = q.Where("first_name ILIKE ? OR last_name ILIKE ? OR username ILIKE ?", pattern, pattern, pattern)
	}
	var users []model.User
	if err := q.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		for _, perm := range user.Permissions {
			if err := tx.Exec(`
				INSERT INTO user_permissions (user_id, codename)
				VALUES (?, ?)
				ON CONFLICT DO NOTHING
			`, user.ID, perm).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uint, hash string) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("password_hash", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *UserRepository) loadPermissions(ctx context.Context, user *model.User) error {
	var perms []string
	if err := r.db.WithContext(ctx).Raw(`
		SELECT codename FROM user_permissions WHERE user_id = ? ORDER BY codename
	`, user.ID).Scan(&perms).Error; err != nil {
		return err
	}
	user.Permissions = perms
	return nil
}
