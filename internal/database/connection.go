package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ajaybhatia/xync-server/internal/config"
	"github.com/ajaybhatia/xync-server/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// QueryTimeout bounds every storage call so a wedged connection surfaces
// as a retryable 503 instead of hanging the request.
const QueryTimeout = 5 * time.Second

func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := cfg.URL
	if dsn == "" {
		dsn = fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// Map postgres unique violations to gorm.ErrDuplicatedKey so the
		// services can answer 409 even when two writers race past the
		// application-level pre-checks.
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// AutoMigrate creates the schema. Cascade and detach behavior lives in the
// foreign key constraints declared on the models: deleting a user cascades
// to everything owned, deleting a category detaches children and bookmarks
// (SET NULL), deleting a bookmark or tag cascades its association rows.
func AutoMigrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.Bookmark{}, "Tags", &models.BookmarkTag{}); err != nil {
		return fmt.Errorf("failed to set up bookmark_tags join table: %w", err)
	}
	if err := db.SetupJoinTable(&models.Tag{}, "Bookmarks", &models.BookmarkTag{}); err != nil {
		return fmt.Errorf("failed to set up bookmark_tags join table: %w", err)
	}

	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Tag{},
		&models.Bookmark{},
		&models.Note{},
	)
}

func WithTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, QueryTimeout)
}

// Retry runs op under a bounded timeout and retries once if the first
// attempt timed out. Only reads go through here; writes run a single
// attempt so a commit is never replayed.
func Retry(ctx context.Context, op func(ctx context.Context) error) error {
	attempt := func() error {
		opCtx, cancel := WithTimeout(ctx)
		defer cancel()
		return op(opCtx)
	}

	err := attempt()
	if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		err = attempt()
	}
	return err
}
