package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a registered author. Posts is derived from posts.user_id and only
// populated when the repository preloads it.
type User struct {
	ID    uuid.UUID `json:"_id" gorm:"type:char(36);primaryKey"`
	Name  string    `json:"name" gorm:"size:255"`
	Email string    `json:"email" gorm:"size:255;index"`
	// Serialized as "password" on purpose: clients of the registration and
	// profile endpoints have always received the digest.
	PasswordHash string    `json:"password" gorm:"size:255;not null"`
	Posts        []Post    `json:"posts" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
