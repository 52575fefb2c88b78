package app

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"blogapi/internal/model"
	"blogapi/internal/repository"
)

const maxTitleLength = 255

type PostService struct {
	postRepo *repository.PostRepository
	postList PostListCache
	hooks    contentHooks
}

type CreatePostInput struct {
	AuthorID uint
	Title    string
	Content  string
}

type UpdatePostInput struct {
	PostID   uint
	CallerID uint
	Title    string
	Content  string
}

// NewPostService builds the post service. postList and publisher are optional.
func NewPostService(
	postRepo *repository.PostRepository,
	postList PostListCache,
	publisher EventPublisher,
	log *slog.Logger,
) *PostService {
	return &PostService{
		postRepo: postRepo,
		postList: postList,
		hooks:    newContentHooks(postList, publisher, log),
	}
}

func (s *PostService) CreatePost(ctx context.Context, input CreatePostInput) (*model.PostView, error) {
	if input.AuthorID == 0 {
		return nil, ErrInvalidInput
	}
	title, content, err := validatePostFields(input.Title, input.Content)
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		Title:    title,
		Content:  content,
		AuthorID: input.AuthorID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	s.hooks.changed(ctx, model.ResourcePost, model.ActionCreated, post.ID, input.AuthorID)

	return s.postRepo.GetView(ctx, post.ID)
}

// ListRecent returns the newest posts with author and comment count, served
// from cache when possible.
func (s *PostService) ListRecent(ctx context.Context) ([]model.PostView, error) {
	fill := false
	var generation int64
	if s.postList != nil {
		cached, hit, err := s.postList.GetRecent(ctx)
		if err != nil {
			s.hooks.log.WarnContext(ctx, "read recent posts cache failed", "error", err)
		} else if hit {
			return cached, nil
		}
		// The generation must be read before the database so a write that
		// commits in between stops the fill.
		if generation, err = s.postList.Generation(ctx); err != nil {
			s.hooks.log.WarnContext(ctx, "read recent posts generation failed", "error", err)
		} else {
			fill = true
		}
	}

	posts, err := s.postRepo.ListRecent(ctx, RecentLimit)
	if err != nil {
		return nil, err
	}
	if fill {
		if _, err := s.postList.SetRecent(ctx, generation, posts); err != nil {
			s.hooks.log.WarnContext(ctx, "fill recent posts cache failed", "error", err)
		}
	}
	return posts, nil
}

func (s *PostService) UpdatePost(ctx context.Context, input UpdatePostInput) (*model.PostView, error) {
	if input.PostID == 0 || input.CallerID == 0 {
		return nil, ErrInvalidInput
	}
	title, content, err := validatePostFields(input.Title, input.Content)
	if err != nil {
		return nil, err
	}

	updated, err := s.postRepo.UpdateByIDAndAuthorID(ctx, input.PostID, input.CallerID, title, content)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrNotFoundOrForbidden
	}
	s.hooks.changed(ctx, model.ResourcePost, model.ActionUpdated, input.PostID, input.CallerID)

	view, err := s.postRepo.GetView(ctx, input.PostID)
	if err != nil {
		return nil, err
	}
	if view == nil {
		// Deleted by its owner between the update and the read.
		return nil, ErrNotFoundOrForbidden
	}
	return view, nil
}

// DeletePost removes the caller's post together with its comments.
func (s *PostService) DeletePost(ctx context.Context, postID, callerID uint) error {
	if postID == 0 || callerID == 0 {
		return ErrInvalidInput
	}
	deleted, err := s.postRepo.DeleteByIDAndAuthorID(ctx, postID, callerID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFoundOrForbidden
	}
	s.hooks.changed(ctx, model.ResourcePost, model.ActionDeleted, postID, callerID)
	return nil
}

func validatePostFields(title, content string) (string, string, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" {
		return "", "", ErrTitleRequired
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return "", "", ErrTitleTooLong
	}
	if content == "" {
		return "", "", ErrContentRequired
	}
	return title, content, nil
}
