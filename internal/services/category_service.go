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

type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

func (s *CategoryService) Create(ctx context.Context, userID uuid.UUID, req *models.CategoryCreateRequest) (*models.Category, error) {
	opCtx, cancel := database.WithTimeout(ctx)
	defer cancel()
	db := s.db.WithContext(opCtx)

	if req.ParentID != nil {
		var count int64
		if err := db.Model(&models.Category{}).Where("id = ? AND user_id = ?", *req.ParentID, userID).Count(&count).Error; err != nil {
			return nil, apperrors.FromDB(err, "category")
		}
		if count == 0 {
			return nil, apperrors.Validation("parent category not found")
		}
	}

	var count int64
	if err := db.Model(&models.Category{}).Where("user_id = ? AND name = ?", userID, req.Name).Count(&count).Error; err != nil {
		return nil, apperrors.FromDB(err, "category")
	}
	if count > 0 {
		return nil, apperrors.Conflict("category already exists")
	}

	category := models.Category{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		ParentID:    req.ParentID,
	}

	if err := db.Create(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("category already exists")
		}
		return nil, apperrors.FromDB(err, "category")
	}

	return &category, nil
}

func (s *CategoryService) List(ctx context.Context, userID uuid.UUID) ([]models.Category, error) {
	var categories []models.Category
	err := database.Retry(ctx, func(ctx context.Context) error {
		return s.db.WithContext(ctx).Where("user_id = ?", userID).Order("name ASC").Find(&categories).Error
	})
	if err != nil {
		return nil, apperrors.FromDB(err, "category")
	}
	return categories, nil
}

func (s *CategoryService) Get(ctx context.Context, userID, categoryID uuid.UUID) (*models.Category, error) {
	var category models.Category
	err := database.Retry(ctx, func(ctx context.Context) error {
		return s.db.WithContext(ctx).Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error
	})
	if err != nil {
		return nil, apperrors.FromDB(err, "category")
	}
	return &category, nil
}

// Update changes name, description or parent. A parent change walks the
// ancestor chain inside the same transaction, so a concurrent reparent
// cannot sneak a cycle past the check.
func (s *CategoryService) Update(ctx context.Context, userID, categoryID uuid.UUID, req *models.CategoryUpdateRequest) (*models.Category, error) {
	opCtx, cancel := database.WithTimeout(ctx)
	defer cancel()

	var category models.Category
	err := s.db.WithContext(opCtx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
			return apperrors.FromDB(err, "category")
		}

		updates := map[string]interface{}{}

		if req.Name != nil && *req.Name != category.Name {
			var count int64
			if err := tx.Model(&models.Category{}).
				Where("user_id = ? AND name = ? AND id <> ?", userID, *req.Name, categoryID).
				Count(&count).Error; err != nil {
				return apperrors.FromDB(err, "category")
			}
			if count > 0 {
				return apperrors.Conflict("category already exists")
			}
			updates["name"] = *req.Name
		}

		if req.Description != nil {
			updates["description"] = req.Description
		}

		if req.ParentID != nil {
			if err := s.checkParent(tx, userID, categoryID, *req.ParentID); err != nil {
				return err
			}
			updates["parent_id"] = *req.ParentID
		}

		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(&category).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.Conflict("category already exists")
			}
			return apperrors.FromDB(err, "category")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &category, nil
}

// checkParent rejects self-parenting, cross-owner parents and cycles. The
// canonical hierarchy lives in the store, so this is an explicit ancestor
// walk over rows rather than an in-memory graph.
func (s *CategoryService) checkParent(tx *gorm.DB, userID, categoryID, parentID uuid.UUID) error {
	if parentID == categoryID {
		return apperrors.Validation("category cannot be its own parent")
	}

	current := parentID
	for {
		var parent models.Category
		if err := tx.Where("id = ? AND user_id = ?", current, userID).First(&parent).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.Validation("parent category not found")
			}
			return apperrors.FromDB(err, "category")
		}
		if parent.ParentID == nil {
			return nil
		}
		if *parent.ParentID == categoryID {
			return apperrors.Validation("category parent would create a cycle")
		}
		current = *parent.ParentID
	}
}

// Delete removes the category. Children and referencing bookmarks are
// detached by the SET NULL constraints, never deleted.
func (s *CategoryService) Delete(ctx context.Context, userID, categoryID uuid.UUID) error {
	opCtx, cancel := database.WithTimeout(ctx)
	defer cancel()

	result := s.db.WithContext(opCtx).Where("id = ? AND user_id = ?", categoryID, userID).Delete(&models.Category{})
	if result.Error != nil {
		return apperrors.FromDB(result.Error, "category")
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("category")
	}
	return nil
}
