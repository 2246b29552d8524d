package repository

import (
	"context"

	"gorm.io/gorm"

	"blogapi/internal/model"
)

// UserRepository defines user persistence operations. Lookups that match
// nothing return gorm.ErrRecordNotFound.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByEmailWithPosts(ctx context.Context, email string) (*model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Scopes(byEmail(email)).Take(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmailWithPosts loads the user together with its posts, oldest first.
func (r *userRepository) FindByEmailWithPosts(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("Posts", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Scopes(byEmail(email)).
		Take(&user).Error
	if err != nil {
		return nil, err
	}
	if user.Posts == nil {
		user.Posts = []model.Post{}
	}
	return &user, nil
}

// byEmail picks the earliest registered user when several share an email,
// since the column is not unique.
func byEmail(email string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("email = ?", email).Order("created_at ASC")
	}
}
