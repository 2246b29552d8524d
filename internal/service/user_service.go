package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"blogapi/internal/cache"
	apperrors "blogapi/internal/errors"
	"blogapi/internal/model"
	"blogapi/internal/repository"
)

// DefaultProfileCacheTTL is used when no positive TTL is configured.
const DefaultProfileCacheTTL = 5 * time.Minute

// UserService resolves authenticated users together with their posts.
type UserService interface {
	Profile(ctx context.Context, email string) (*model.User, error)
	Invalidate(ctx context.Context, email string)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
	ttl   time.Duration
}

// NewUserService builds a UserService with repository and cache. cache may be nil.
func NewUserService(repo repository.UserRepository, cache *cache.Client, ttl time.Duration) UserService {
	if ttl <= 0 {
		ttl = DefaultProfileCacheTTL
	}
	return &userService{repo: repo, cache: cache, ttl: ttl}
}

// Cached profiles live under a per-user version. Invalidate bumps the version
// after a write has committed, so an entry filled from a read that raced the
// write lands under a version no later lookup consults.
func profileVersionKey(email string) string {
	return "profile-version:" + email
}

func profileKey(email string, version int64) string {
	return "profile:" + email + ":" + strconv.FormatInt(version, 10)
}

// Profile returns the user registered under email with posts resolved.
func (s *userService) Profile(ctx context.Context, email string) (*model.User, error) {
	version, cacheable := s.cache.Counter(ctx, profileVersionKey(email))
	if cacheable {
		var cached model.User
		if s.cache.GetJSON(ctx, profileKey(email, version), &cached) {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByEmailWithPosts(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("load profile: %w", err)
	}

	if cacheable {
		s.cache.SetJSON(ctx, profileKey(email, version), user, s.ttl)
	}
	return user, nil
}

// Invalidate retires every cached profile for email. Call it after the write
// that changed the profile has committed.
func (s *userService) Invalidate(ctx context.Context, email string) {
	// An unreachable redis serves no entries either; the TTL bounds the rest.
	_ = s.cache.Incr(ctx, profileVersionKey(email))
}
