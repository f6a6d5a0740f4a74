package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Bookmark struct {
	ID                 uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	UserID             uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index"`
	URL                string     `json:"url" gorm:"size:2048;not null"`
	Title              string     `json:"title" gorm:"size:255;not null"`
	Description        *string    `json:"description" gorm:"type:text"`
	CategoryID         *uuid.UUID `json:"category_id" gorm:"type:uuid;index"`
	PreviewImage       *string    `json:"preview_image" gorm:"size:2048"`
	PreviewDescription *string    `json:"preview_description" gorm:"type:text"`
	Favicon            *string    `json:"favicon" gorm:"size:2048"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`

	// Category deletion detaches the bookmark rather than deleting it.
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	Tags     []Tag     `json:"tags" gorm:"many2many:bookmark_tags"`
}

func (b *Bookmark) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// BookmarkTag is the explicit join table so both foreign keys carry
// ON DELETE CASCADE: removing a bookmark or a tag drops the association
// rows and nothing else.
type BookmarkTag struct {
	BookmarkID uuid.UUID `gorm:"type:uuid;primaryKey"`
	TagID      uuid.UUID `gorm:"type:uuid;primaryKey"`

	Bookmark Bookmark `gorm:"foreignKey:BookmarkID;constraint:OnDelete:CASCADE"`
	Tag      Tag      `gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE"`
}

type BookmarkCreateRequest struct {
	URL         string      `json:"url" validate:"required,url"`
	Title       string      `json:"title" validate:"required,max=255"`
	Description *string     `json:"description"`
	CategoryID  *uuid.UUID  `json:"category_id"`
	TagIDs      []uuid.UUID `json:"tag_ids"`

	// Cached preview fields, typically the result of a prior
	// POST /bookmarks/preview call.
	PreviewImage       *string `json:"preview_image" validate:"omitempty,url"`
	PreviewDescription *string `json:"preview_description"`
	Favicon            *string `json:"favicon" validate:"omitempty,url"`
}

type BookmarkUpdateRequest struct {
	URL         *string     `json:"url" validate:"omitempty,url"`
	Title       *string     `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string     `json:"description"`
	CategoryID  *uuid.UUID  `json:"category_id"`
	TagIDs      []uuid.UUID `json:"tag_ids"`

	PreviewImage       *string `json:"preview_image" validate:"omitempty,url"`
	PreviewDescription *string `json:"preview_description"`
	Favicon            *string `json:"favicon" validate:"omitempty,url"`
}

type PreviewRequest struct {
	URL string `json:"url" validate:"required,url"`
}

type BookmarkPreview struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	Favicon     *string `json:"favicon"`
}
