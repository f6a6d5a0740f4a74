package services

import (
	"context"
	"errors"

	"github.com/ajaybhatia/xync-server/internal/apperrors"
	"github.com/ajaybhatia/xync-server/internal/database"
	"github.com/ajaybhatia/xync-server/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TagService struct {
	db *gorm.DB
}

func NewTagService(db *gorm.DB) *TagService {
	return &TagService{db: db}
}

func (s *TagService) Create(ctx context.Context, userID uuid.UUID, req *models.TagCreateRequest) (*models.Tag, error) {
	opCtx, cancel := database.WithTimeout(ctx)
	defer cancel()
	db := s.db.WithContext(opCtx)

	var count int64
	if err := db.Model(&models.Tag{}).Where("user_id = ? AND name = ?", userID, req.Name).Count(&count).Error; err != nil {
		return nil, apperrors.FromDB(err, "tag")
	}
	if count > 0 {
		return nil, apperrors.Conflict("tag already exists")
	}

	tag := models.Tag{
		UserID: userID,
		Name:   req.Name,
		Color:  req.Color,
	}

	if err := db.Create(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("tag already exists")
		}
		return nil, apperrors.FromDB(err, "tag")
	}

	return &tag, nil
}

func (s *TagService) List(ctx context.Context, userID uuid.UUID) ([]models.Tag, error) {
	var tags []models.Tag
	err := database.Retry(ctx, func(ctx context.Context) error {
		return s.db.WithContext(ctx).Where("user_id = ?", userID).Order("name ASC").Find(&tags).Error
	})
	if err != nil {
		return nil, apperrors.FromDB(err, "tag")
	}
	return tags, nil
}

func (s *TagService) Get(ctx context.Context, userID, tagID uuid.UUID) (*models.Tag, error) {
	var tag models.Tag
	err := database.Retry(ctx, func(ctx context.Context) error {
		return s.db.WithContext(ctx).Where("id = ? AND user_id = ?", tagID, userID).First(&tag).Error
	})
	if err != nil {
		return nil, apperrors.FromDB(err, "tag")
	}
	return &tag, nil
}

func (s *TagService) Update(ctx context.Context, userID, tagID uuid.UUID, req *models.TagUpdateRequest) (*models.Tag, error) {
	opCtx, cancel := database.WithTimeout(ctx)
	defer cancel()
	db := s.db.WithContext(opCtx)

	var tag models.Tag
	if err := db.Where("id = ? AND user_id = ?", tagID, userID).First(&tag).Error; err != nil {
		return nil, apperrors.FromDB(err, "tag")
	}

	updates := map[string]interface{}{}

	if req.Name != nil && *req.Name != tag.Name {
		var count int64
		if err := db.Model(&models.Tag{}).
			Where("user_id = ? AND name = ? AND id <> ?", userID, *req.Name, tagID).
			Count(&count).Error; err != nil {
			return nil, apperrors.FromDB(err, "tag")
		}
		if count > 0 {
			return nil, apperrors.Conflict("tag already exists")
		}
		updates["name"] = *req.Name
	}

	if req.Color != nil {
		updates["color"] = req.Color
	}

	if len(updates) == 0 {
		return &tag, nil
	}

	if err := db.Model(&tag).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("tag already exists")
		}
		return nil, apperrors.FromDB(err, "tag")
	}

	return &tag, nil
}

// Delete removes the tag. The cascade on bookmark_tags drops its
// association rows; the bookmarks themselves stay.
func (s *TagService) Delete(ctx context.Context, userID, tagID uuid.UUID) error {
	opCtx, cancel := database.WithTimeout(ctx)
	defer cancel()

	result := s.db.WithContext(opCtx).Where("id = ? AND user_id = ?", tagID, userID).Delete(&models.Tag{})
	if result.Error != nil {
		return apperrors.FromDB(result.Error, "tag")
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("tag")
	}
	return nil
}
