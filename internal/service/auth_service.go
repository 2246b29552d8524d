package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"blogapi/internal/auth"
	apperrors "blogapi/internal/errors"
	"blogapi/internal/model"
	"blogapi/internal/repository"
)

// TokenIssuer signs session tokens for an identity.
type TokenIssuer interface {
	Issue(email, userID string) (string, error)
}

// AuthService handles registration and login.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (user *model.User, token string, err error)
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
}

type authService struct {
	userRepo repository.UserRepository
	hasher   auth.PasswordHasher
	tokens   TokenIssuer
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, hasher auth.PasswordHasher, tokens TokenIssuer) AuthService {
	return &authService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
	}
}

// Register creates a user with a hashed password and issues its first token.
func (s *authService) Register(ctx context.Context, name, email, password string) (*model.User, string, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, "", apperrors.ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("check user existence: %w", err)
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", apperrors.ErrHashing, err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: digest,
		Posts:        []model.Post{},
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.Issue(user.Email, user.ID.String())
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

// Login checks the password of a registered email and issues a token.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperrors.ErrUserNotRegistered
		}
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(email, user.ID.String())
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}
