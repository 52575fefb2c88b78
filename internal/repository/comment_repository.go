package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"blogapi/internal/model"
)

const commentViewColumns = "comments.id, comments.content, comments.post_id, comments.author_id, " +
	"users.username AS author, comments.created_at, comments.updated_at"

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return fmt.Errorf("create comment failed: %w", translate(err))
	}
	return nil
}

func (r *CommentRepository) GetView(ctx context.Context, id uint) (*model.CommentView, error) {
	var view model.CommentView
	if err := r.viewQuery(ctx).Where("comments.id = ?", id).Take(&view).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get comment failed: %w", err)
	}
	return &view, nil
}

func (r *CommentRepository) ListByPostID(ctx context.Context, postID uint) ([]model.CommentView, error) {
	views := make([]model.CommentView, 0)
	err := r.viewQuery(ctx).
		Where("comments.post_id = ?", postID).
		Order("comments.created_at ASC").
		Order("comments.id ASC").
		Scan(&views).Error
	if err != nil {
		return nil, fmt.Errorf("list comments failed: %w", err)
	}
	return views, nil
}

func (r *CommentRepository) ListRecent(ctx context.Context, limit int) ([]model.CommentView, error) {
	views := make([]model.CommentView, 0, limit)
	err := r.viewQuery(ctx).
		Order("comments.created_at DESC").
		Order("comments.id DESC").
		Limit(limit).
		Scan(&views).Error
	if err != nil {
		return nil, fmt.Errorf("list recent comments failed: %w", err)
	}
	return views, nil
}

func (r *CommentRepository) UpdateByIDAndAuthorID(ctx context.Context, id, authorID uint, content string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Comment{}).
		Where("id = ? AND author_id = ?", id, authorID).
		Update("content", content)
	if result.Error != nil {
		return false, fmt.Errorf("update comment failed: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *CommentRepository) DeleteByIDAndAuthorID(ctx context.Context, id, authorID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND author_id = ?", id, authorID).
		Delete(&model.Comment{})
	if result.Error != nil {
		return false, fmt.Errorf("delete comment failed: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *CommentRepository) viewQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("comments").
		Select(commentViewColumns).
		Joins("JOIN users ON users.id = comments.author_id")
}
