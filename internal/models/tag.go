package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Tag struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_tags_owner_name"`
	Name      string    `json:"name" gorm:"size:50;not null;uniqueIndex:idx_tags_owner_name"`
	Color     *string   `json:"color" gorm:"size:7"`
	CreatedAt time.Time `json:"created_at"`

	Bookmarks []Bookmark `json:"-" gorm:"many2many:bookmark_tags"`
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

type TagCreateRequest struct {
	Name  string  `json:"name" validate:"required,max=50"`
	Color *string `json:"color" validate:"omitempty,hexcolor"`
}

type TagUpdateRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=50"`
	Color *string `json:"color" validate:"omitempty,hexcolor"`
}
