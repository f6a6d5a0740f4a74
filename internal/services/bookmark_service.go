package services

import (
	"context"

	"github.com/ajaybhatia/xync-server/internal/apperrors"
	"github.com/ajaybhatia/xync-server/internal/database"
	"github.com/ajaybhatia/xync-server/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookmarkService struct {
	db *gorm.DB
}

func NewBookmarkService(db *gorm.DB) *BookmarkService {
	return &BookmarkService{db: db}
}

// Create inserts the bookmark and its tag associations in one transaction:
// either all of it commits or none of it does.
func (s *BookmarkService) Create(ctx context.Context, userID uuid.UUID, req *models.BookmarkCreateRequest) (*models.Bookmark, error) {
	opCtx, cancel := database.WithTimeout(ctx)
	defer cancel()

	bookmark := models.Bookmark{
		UserID:             userID,
		URL:                req.URL,
		Title:              req.Title,
		Description:        req.Description,
		CategoryID:         req.CategoryID,
		PreviewImage:       req.PreviewImage,
		PreviewDescription: req.PreviewDescription,
		Favicon:            req.Favicon,
	}

	err := s.db.WithContext(opCtx).Transaction(func(tx *gorm.DB) error {
		if req.CategoryID != nil {
			if err := s.checkCategory(tx, userID, *req.CategoryID); err != nil {
				return err
			}
		}

		if err := tx.Create(&bookmark).Error; err != nil {
			return apperrors.FromDB(err, "bookmark")
		}

		if len(req.TagIDs) > 0 {
			tags, err := s.ownedTags(tx, userID, req.TagIDs)
			if err != nil {
				return err
			}
			if err := tx.Model(&bookmark).Association("Tags").Append(tags); err != nil {
				return apperrors.FromDB(err, "bookmark")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, userID, bookmark.ID)
}

func (s *BookmarkService) List(ctx context.Context, userID uuid.UUID) ([]models.Bookmark, error) {
	var bookmarks []models.Bookmark
	err := database.Retry(ctx, func(ctx context.Context) error {
		return s.db.WithContext(ctx).
			Preload("Tags").
			Preload("Category").
			Where("user_id = ?", userID).
			Order("created_at DESC").
			Find(&bookmarks).Error
	})
	if err != nil {
		return nil, apperrors.FromDB(err, "bookmark")
	}
	return bookmarks, nil
}

func (s *BookmarkService) Get(ctx context.Context, userID, bookmarkID uuid.UUID) (*models.Bookmark, error) {
	var bookmark models.Bookmark
	err := database.Retry(ctx, func(ctx context.Context) error {
		return s.db.WithContext(ctx).
			Preload("Tags").
			Preload("Category").
			Where("id = ? AND user_id = ?", bookmarkID, userID).
			First(&bookmark).Error
	})
	if err != nil {
		return nil, apperrors.FromDB(err, "bookmark")
	}
	return &bookmark, nil
}

// Update applies the provided fields. A non-nil TagIDs slice replaces the
// tag set wholesale; nil leaves it alone.
func (s *BookmarkService) Update(ctx context.Context, userID, bookmarkID uuid.UUID, req *models.BookmarkUpdateRequest) (*models.Bookmark, error) {
	opCtx, cancel := database.WithTimeout(ctx)
	defer cancel()

	err := s.db.WithContext(opCtx).Transaction(func(tx *gorm.DB) error {
		var bookmark models.Bookmark
		if err := tx.Where("id = ? AND user_id = ?", bookmarkID, userID).First(&bookmark).Error; err != nil {
			return apperrors.FromDB(err, "bookmark")
		}

		updates := map[string]interface{}{}
		if req.URL != nil {
			updates["url"] = *req.URL
		}
		if req.Title != nil {
			updates["title"] = *req.Title
		}
		if req.Description != nil {
			updates["description"] = req.Description
		}
		if req.CategoryID != nil {
			if err := s.checkCategory(tx, userID, *req.CategoryID); err != nil {
				return err
			}
			updates["category_id"] = *req.CategoryID
		}
		if req.PreviewImage != nil {
			updates["preview_image"] = req.PreviewImage
		}
		if req.PreviewDescription != nil {
			updates["preview_description"] = req.PreviewDescription
		}
		if req.Favicon != nil {
			updates["favicon"] = req.Favicon
		}

		if len(updates) > 0 {
			if err := tx.Model(&bookmark).Updates(updates).Error; err != nil {
				return apperrors.FromDB(err, "bookmark")
			}
		}

		if req.TagIDs != nil {
			if err := tx.Model(&bookmark).Association("Tags").Clear(); err != nil {
				return apperrors.FromDB(err, "bookmark")
			}
			if len(req.TagIDs) > 0 {
				tags, err := s.ownedTags(tx, userID, req.TagIDs)
				if err != nil {
					return err
				}
				if err := tx.Model(&bookmark).Association("Tags").Append(tags); err != nil {
					return apperrors.FromDB(err, "bookmark")
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, userID, bookmarkID)
}

// Delete removes the bookmark; the cascade on bookmark_tags drops its
// association rows.
func (s *BookmarkService) Delete(ctx context.Context, userID, bookmarkID uuid.UUID) error {
	opCtx, cancel := database.WithTimeout(ctx)
	defer cancel()

	result := s.db.WithContext(opCtx).Where("id = ? AND user_id = ?", bookmarkID, userID).Delete(&models.Bookmark{})
	if result.Error != nil {
		return apperrors.FromDB(result.Error, "bookmark")
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("bookmark")
	}
	return nil
}

// checkCategory confirms the category exists and belongs to the caller.
// A foreign category is reported the same way as a missing one.
func (s *BookmarkService) checkCategory(tx *gorm.DB, userID, categoryID uuid.UUID) error {
	var count int64
	if err := tx.Model(&models.Category{}).Where("id = ? AND user_id = ?", categoryID, userID).Count(&count).Error; err != nil {
		return apperrors.FromDB(err, "category")
	}
	if count == 0 {
		return apperrors.Validation("category not found")
	}
	return nil
}

// ownedTags resolves tag ids against the caller's tags; any id that does
// not resolve, including another user's, is a validation error.
func (s *BookmarkService) ownedTags(tx *gorm.DB, userID uuid.UUID, tagIDs []uuid.UUID) ([]models.Tag, error) {
	unique := make(map[uuid.UUID]struct{}, len(tagIDs))
	for _, id := range tagIDs {
		unique[id] = struct{}{}
	}

	var tags []models.Tag
	if err := tx.Where("id IN ? AND user_id = ?", tagIDs, userID).Find(&tags).Error; err != nil {
		return nil, apperrors.FromDB(err, "tag")
	}
	if len(tags) != len(unique) {
		return nil, apperrors.Validation("one or more tags not found")
	}
	return tags, nil
}
