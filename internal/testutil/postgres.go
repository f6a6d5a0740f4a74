// Package testutil provides shared test infrastructure, most importantly
// a throwaway PostgreSQL instance for exercising the ownership and
// cascade behavior that lives in real database constraints.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/ajaybhatia/xync-server/internal/database"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB starts a PostgreSQL container, opens a gorm connection and
// runs the schema migration. The cleanup function terminates the
// container. Tests are skipped when no container runtime is available.
func SetupTestDB(t *testing.T) (*gorm.DB, func()) {
	t.Helper()

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("xync_test"),
		postgres.WithUsername("xync_test"),
		postgres.WithPassword("test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Skipf("skipping: failed to start postgres container: %v", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		t.Fatalf("failed to get connection string: %v", err)
	}

	db, err := gorm.Open(gormpostgres.Open(connStr), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		t.Fatalf("failed to open gorm connection: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		_ = pgContainer.Terminate(ctx)
		t.Fatalf("failed to migrate schema: %v", err)
	}

	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
		_ = pgContainer.Terminate(context.Background())
	}

	return db, cleanup
}
