package services

import (
	"context"
	"errors"
	"strings"

	"github.com/ajaybhatia/xync-server/internal/apperrors"
	"github.com/ajaybhatia/xync-server/internal/database"
	"github.com/ajaybhatia/xync-server/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Register creates a new account. Emails are stored lowercased so
// uniqueness is case-insensitive.
func (s *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	user := models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         req.Name,
	}

	opCtx, cancel := database.WithTimeout(ctx)
	defer cancel()

	var count int64
	if err := s.db.WithContext(opCtx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, apperrors.FromDB(err, "user")
	}
	if count > 0 {
		return nil, apperrors.Conflict("email already registered")
	}

	// The unique index on email is the real arbiter; the pre-check only
	// exists for the friendly error message.
	if err := s.db.WithContext(opCtx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("email already registered")
		}
		return nil, apperrors.FromDB(err, "user")
	}

	return &user, nil
}

// Authenticate verifies credentials. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	err := database.Retry(ctx, func(ctx context.Context) error {
		return s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.InvalidCredentials()
		}
		return nil, apperrors.FromDB(err, "user")
	}

	ok, err := VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return nil, apperrors.InvalidCredentials()
	}

	return &user, nil
}

func (s *UserService) GetByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	err := database.Retry(ctx, func(ctx context.Context) error {
		return s.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error
	})
	if err != nil {
		return nil, apperrors.FromDB(err, "user")
	}
	return &user, nil
}
