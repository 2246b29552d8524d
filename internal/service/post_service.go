package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "blogapi/internal/errors"
	"blogapi/internal/model"
	"blogapi/internal/repository"
)

// PostInput is the payload of a new post.
type PostInput struct {
	Title       string
	Description string
	Img         string
}

// PostService handles post operations on behalf of an authenticated identity.
// email and userID always come from verified session claims.
type PostService interface {
	Create(ctx context.Context, email string, input PostInput) (*model.Post, error)
	List(ctx context.Context, email string) ([]model.Post, error)
	Update(ctx context.Context, email, userID, postID string, patch model.PostPatch) (*model.Post, error)
	Delete(ctx context.Context, email, userID, postID string) error
}

type postService struct {
	users    repository.UserRepository
	posts    repository.PostRepository
	profiles UserService
}

// NewPostService creates a new post service.
func NewPostService(users repository.UserRepository, posts repository.PostRepository, profiles UserService) PostService {
	return &postService{
		users:    users,
		posts:    posts,
		profiles: profiles,
	}
}

// Create stores a post owned by the user registered under email.
func (s *postService) Create(ctx context.Context, email string, input PostInput) (*model.Post, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	post := &model.Post{
		Title:       input.Title,
		Description: input.Description,
		Img:         input.Img,
		UserID:      user.ID,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	s.profiles.Invalidate(ctx, email)
	return post, nil
}

// List returns the posts of the user registered under email, read straight
// from storage so a just-acknowledged write is always included.
func (s *postService) List(ctx context.Context, email string) ([]model.Post, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	posts, err := s.posts.ListByOwner(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	if posts == nil {
		return []model.Post{}, nil
	}
	return posts, nil
}

// Update applies patch to postID if and only if userID owns it.
func (s *postService) Update(ctx context.Context, email, userID, postID string, patch model.PostPatch) (*model.Post, error) {
	id, owner, err := parseOwnedRef(postID, userID)
	if err != nil {
		return nil, err
	}

	post, err := s.posts.UpdateOwned(ctx, id, owner, patch.Columns())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("update post: %w", err)
	}

	s.profiles.Invalidate(ctx, email)
	return post, nil
}

// Delete removes postID if and only if userID owns it.
func (s *postService) Delete(ctx context.Context, email, userID, postID string) error {
	id, owner, err := parseOwnedRef(postID, userID)
	if err != nil {
		return err
	}

	if err := s.posts.DeleteOwned(ctx, id, owner); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrPostNotFound
		}
		return fmt.Errorf("delete post: %w", err)
	}

	s.profiles.Invalidate(ctx, email)
	return nil
}

// parseOwnedRef treats identifiers that cannot match any row as not found.
func parseOwnedRef(postID, userID string) (uuid.UUID, uuid.UUID, error) {
	id, err := uuid.Parse(postID)
	if err != nil {
		return uuid.Nil, uuid.Nil, apperrors.ErrPostNotFound
	}
	owner, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, uuid.Nil, apperrors.ErrPostNotFound
	}
	return id, owner, nil
}
