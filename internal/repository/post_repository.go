package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"blogapi/internal/model"
)

const postViewColumns = "posts.id, posts.title, posts.content, posts.author_id, users.username AS author, " +
	"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comment_count, " +
	"posts.created_at, posts.updated_at"

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return fmt.Errorf("create post failed: %w", translate(err))
	}
	return nil
}

func (r *PostRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Post{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check post exists failed: %w", err)
	}
	return count > 0, nil
}

func (r *PostRepository) GetView(ctx context.Context, id uint) (*model.PostView, error) {
	var view model.PostView
	err := r.viewQuery(ctx).Where("posts.id = ?", id).Take(&view).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get post failed: %w", err)
	}
	return &view, nil
}

func (r *PostRepository) ListRecent(ctx context.Context, limit int) ([]model.PostView, error) {
	views := make([]model.PostView, 0, limit)
	err := r.viewQuery(ctx).
		Order("posts.created_at DESC").
		Order("posts.id DESC").
		Limit(limit).
		Scan(&views).Error
	if err != nil {
		return nil, fmt.Errorf("list recent posts failed: %w", err)
	}
	return views, nil
}

// UpdateByIDAndAuthorID rewrites title and content in one statement filtered on
// both id and author. It reports whether a row matched.
func (r *PostRepository) UpdateByIDAndAuthorID(ctx context.Context, id, authorID uint, title, content string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ? AND author_id = ?", id, authorID).
		Updates(map[string]any{"title": title, "content": content})
	if result.Error != nil {
		return false, fmt.Errorf("update post failed: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// DeleteByIDAndAuthorID removes the post and its comments in one transaction.
// Nothing is removed unless the post exists and belongs to authorID.
func (r *PostRepository) DeleteByIDAndAuthorID(ctx context.Context, id, authorID uint) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND author_id = ?", id, authorID).Delete(&model.Post{})
		if result.Error != nil {
			return fmt.Errorf("delete post failed: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil
		}
		// Dialects without enforced ON DELETE CASCADE still lose the comments here.
		if err := tx.Where("post_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return fmt.Errorf("delete post comments failed: %w", err)
		}
		deleted = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

func (r *PostRepository) viewQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("posts").
		Select(postViewColumns).
		Joins("JOIN users ON users.id = posts.author_id")
}
