package service

import (
	"context"
	"strings"

	"github.com/nurpe/employeehub/internal/model"
)

type CommentService struct {
	comments CommentStore
	subs     SubContractStore
}

func NewCommentService(comments CommentStore, subs SubContractStore) *CommentService {
	return &CommentService{comments: comments, subs: subs}
}

func (s *CommentService) Add(ctx context.Context, contractID uint, number int, text string) (*model.Comment, error) {
	sub, err := s.subs.GetByNumber(ctx, contractID, number)
	if err != nil {
		return nil, translateNotFound(err)
	}

	var v violations
	v.required("text", text, 200)
	if err := v.err(); err != nil {
		return nil, err
	}

	comment := &model.Comment{Text: strings.TrimSpace(text), SubContractID: sub.ID}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) Recent(ctx context.Context, limit int) ([]model.Comment, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.comments.ListRecent(ctx, limit)
}
