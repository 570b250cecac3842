package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/nurpe/employeehub/internal/model"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *CommentRepository) ListRecent(ctx context.Context, limit int) ([]model.Comment, error) {
	var comments []model.Comment
	if err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}
