package app

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"blogapi/internal/model"
	"blogapi/internal/repository"
)

type CommentService struct {
	commentRepo *repository.CommentRepository
	postRepo    *repository.PostRepository
	hooks       contentHooks
}

type CreateCommentInput struct {
	AuthorID uint
	PostID   uint
	Content  string
}

type UpdateCommentInput struct {
	CommentID uint
	CallerID  uint
	Content   string
}

func NewCommentService(
	commentRepo *repository.CommentRepository,
	postRepo *repository.PostRepository,
	postList PostListCache,
	publisher EventPublisher,
	log *slog.Logger,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		hooks:       newContentHooks(postList, publisher, log),
	}
}

func (s *CommentService) CreateComment(ctx context.Context, input CreateCommentInput) (*model.CommentView, error) {
	if input.AuthorID == 0 || input.PostID == 0 {
		return nil, ErrInvalidInput
	}
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, ErrContentRequired
	}

	exists, err := s.postRepo.Exists(ctx, input.PostID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrPostNotFound
	}

	comment := &model.Comment{
		Content:  content,
		PostID:   input.PostID,
		AuthorID: input.AuthorID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		// The post can vanish between the check and the insert.
		if errors.Is(err, repository.ErrForeignKey) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	s.hooks.changed(ctx, model.ResourceComment, model.ActionCreated, comment.ID, input.AuthorID)

	return s.commentRepo.GetView(ctx, comment.ID)
}

// ListByPost returns a post's comments oldest first. An unknown post simply
// has no comments.
func (s *CommentService) ListByPost(ctx context.Context, postID uint) ([]model.CommentView, error) {
	if postID == 0 {
		return nil, ErrInvalidInput
	}
	return s.commentRepo.ListByPostID(ctx, postID)
}

func (s *CommentService) ListRecent(ctx context.Context) ([]model.CommentView, error) {
	return s.commentRepo.ListRecent(ctx, RecentLimit)
}

func (s *CommentService) UpdateComment(ctx context.Context, input UpdateCommentInput) (*model.CommentView, error) {
	if input.CommentID == 0 || input.CallerID == 0 {
		return nil, ErrInvalidInput
	}
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, ErrContentRequired
	}

	updated, err := s.commentRepo.UpdateByIDAndAuthorID(ctx, input.CommentID, input.CallerID, content)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrNotFoundOrForbidden
	}
	s.hooks.changed(ctx, model.ResourceComment, model.ActionUpdated, input.CommentID, input.CallerID)

	view, err := s.commentRepo.GetView(ctx, input.CommentID)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, ErrNotFoundOrForbidden
	}
	return view, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, commentID, callerID uint) error {
	if commentID == 0 || callerID == 0 {
		return ErrInvalidInput
	}
	deleted, err := s.commentRepo.DeleteByIDAndAuthorID(ctx, commentID, callerID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFoundOrForbidden
	}
	s.hooks.changed(ctx, model.ResourceComment, model.ActionDeleted, commentID, callerID)
	return nil
}
