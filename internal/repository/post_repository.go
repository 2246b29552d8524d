package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"blogapi/internal/model"
)

// PostRepository defines post persistence operations. Every mutation of an
// existing post is filtered by owner; a post that exists but belongs to
// someone else is indistinguishable from a missing one (gorm.ErrRecordNotFound).
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Post, error)
	UpdateOwned(ctx context.Context, id, ownerID uuid.UUID, columns map[string]interface{}) (*model.Post, error)
	DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// ListByOwner returns the owner's posts, oldest first. Never nil.
func (r *postRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Post, error) {
	posts := []model.Post{}
	if err := r.db.WithContext(ctx).Where("user_id = ?", ownerID).Order("created_at ASC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdateOwned locks the owner's post, applies columns and returns the stored row.
func (r *postRepository) UpdateOwned(ctx context.Context, id, ownerID uuid.UUID, columns map[string]interface{}) (*model.Post, error) {
	var post model.Post
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Scopes(ownedPost(id, ownerID)).Take(&post).Error; err != nil {
			return err
		}
		if len(columns) == 0 {
			return nil
		}
		if err := tx.Model(&post).Updates(columns).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Take(&post).Error
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// DeleteOwned locks the owner's post and removes it in the same transaction.
func (r *postRepository) DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post model.Post
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Scopes(ownedPost(id, ownerID)).Take(&post).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Post{}, "id = ?", post.ID).Error
	})
}

func ownedPost(id, ownerID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id = ? AND user_id = ?", id, ownerID)
	}
}
