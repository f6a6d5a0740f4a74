package services

import (
	"context"

	"github.com/ajaybhatia/xync-server/internal/apperrors"
	"github.com/ajaybhatia/xync-server/internal/database"
	"github.com/ajaybhatia/xync-server/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NoteService struct {
	db *gorm.DB
}

func NewNoteService(db *gorm.DB) *NoteService {
	return &NoteService{db: db}
}

func (s *NoteService) Create(ctx context.Context, userID uuid.UUID, req *models.NoteCreateRequest) (*models.Note, error) {
	opCtx, cancel := database.WithTimeout(ctx)
	defer cancel()

	note := models.Note{
		UserID:  userID,
		Title:   req.Title,
		Content: req.Content,
	}

	if err := s.db.WithContext(opCtx).Create(&note).Error; err != nil {
		return nil, apperrors.FromDB(err, "note")
	}

	return &note, nil
}

func (s *NoteService) List(ctx context.Context, userID uuid.UUID) ([]models.Note, error) {
	var notes []models.Note
	err := database.Retry(ctx, func(ctx context.Context) error {
		return s.db.WithContext(ctx).Where("user_id = ?", userID).Order("updated_at DESC").Find(&notes).Error
	})
	if err != nil {
		return nil, apperrors.FromDB(err, "note")
	}
	return notes, nil
}

func (s *NoteService) Get(ctx context.Context, userID, noteID uuid.UUID) (*models.Note, error) {
	var note models.Note
	err := database.Retry(ctx, func(ctx context.Context) error {
		return s.db.WithContext(ctx).Where("id = ? AND user_id = ?", noteID, userID).First(&note).Error
	})
	if err != nil {
		return nil, apperrors.FromDB(err, "note")
	}
	return &note, nil
}

func (s *NoteService) Update(ctx context.Context, userID, noteID uuid.UUID, req *models.NoteUpdateRequest) (*models.Note, error) {
	opCtx, cancel := database.WithTimeout(ctx)
	defer cancel()
	db := s.db.WithContext(opCtx)

	var note models.Note
	if err := db.Where("id = ? AND user_id = ?", noteID, userID).First(&note).Error; err != nil {
		return nil, apperrors.FromDB(err, "note")
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if len(updates) == 0 {
		return &note, nil
	}

	if err := db.Model(&note).Updates(updates).Error; err != nil {
		return nil, apperrors.FromDB(err, "note")
	}

	return &note, nil
}

func (s *NoteService) Delete(ctx context.Context, userID, noteID uuid.UUID) error {
	opCtx, cancel := database.WithTimeout(ctx)
	defer cancel()

	result := s.db.WithContext(opCtx).Where("id = ? AND user_id = ?", noteID, userID).Delete(&models.Note{})
	if result.Error != nil {
		return apperrors.FromDB(result.Error, "note")
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("note")
	}
	return nil
}
