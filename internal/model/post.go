package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is a blog entry owned by exactly one User.
type Post struct {
	ID          uuid.UUID `json:"_id" gorm:"type:char(36);primaryKey"`
	Title       string    `json:"title" gorm:"size:255"`
	Description string    `json:"description" gorm:"type:text"`
	Img         string    `json:"img" gorm:"size:1024"`
	UserID      uuid.UUID `json:"user" gorm:"type:char(36);not null;index"`
	CreatedAt   time.Time `json:"date"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// PostPatch carries the client-writable subset of a Post. Nil fields are left untouched.
type PostPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Img         *string `json:"img"`
}

// Columns returns the column/value pairs to write, empty when nothing was sent.
func (p PostPatch) Columns() map[string]interface{} {
	cols := make(map[string]interface{}, 3)
	if p.Title != nil {
		cols["title"] = *p.Title
	}
	if p.Description != nil {
		cols["description"] = *p.Description
	}
	if p.Img != nil {
		cols["img"] = *p.Img
	}
	return cols
}
